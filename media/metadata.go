// SPDX-License-Identifier: EPL-2.0

package media

import "strings"

// Tag is one metadata entry, e.g. a Vorbis comment.
type Tag struct {
	Key   string
	Value string
}

// Revision is a snapshot of stream metadata.
type Revision struct {
	Vendor string
	Tags   []Tag
}

// Get returns the first value for key, matched case-insensitively.
func (r Revision) Get(key string) (string, bool) {
	for _, t := range r.Tags {
		if strings.EqualFold(t.Key, key) {
			return t.Value, true
		}
	}

	return "", false
}

// MetadataLog queues revisions in the order a demuxer read them.
// The newest revision is never popped.
type MetadataLog struct {
	revs []Revision
}

// Push appends a newer revision.
func (l *MetadataLog) Push(r Revision) {
	l.revs = append(l.revs, r)
}

// IsLatest reports whether at most one revision is queued.
func (l *MetadataLog) IsLatest() bool {
	return len(l.revs) <= 1
}

// Pop removes the oldest revision unless it is the latest one.
func (l *MetadataLog) Pop() (Revision, bool) {
	if l.IsLatest() {
		return Revision{}, false
	}

	r := l.revs[0]
	l.revs = l.revs[1:]

	return r, true
}

// Current returns the oldest queued revision.
func (l *MetadataLog) Current() (Revision, bool) {
	if len(l.revs) == 0 {
		return Revision{}, false
	}

	return l.revs[0], true
}

// Len is the number of queued revisions.
func (l *MetadataLog) Len() int { return len(l.revs) }
