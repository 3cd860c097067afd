// SPDX-License-Identifier: EPL-2.0

// Package ui is the terminal waveform viewer.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ik5/rauditor/decoder"
	"github.com/ik5/rauditor/media"
	"github.com/ik5/rauditor/render"
)

const (
	plotRows     = 12
	tickInterval = 100 * time.Millisecond
)

// Decoder is what the viewer needs from a decoder.
type Decoder interface {
	Decode(ctx context.Context) error
	Samples() []float32
	Status() decoder.Status
	Track() media.Track
}

// Options controls what is plotted.
type Options struct {
	// Buckets is the maximum plot width in columns.
	Buckets int
	// Samples is how many leading interleaved samples are plotted.
	Samples int
}

// Model is the bubbletea model for the viewer.
type Model struct {
	title string
	dec   Decoder
	opts  Options

	ctx    context.Context
	cancel context.CancelFunc

	width    int
	decoding bool
	started  bool
	quitting bool

	samples []float32
	status  decoder.Status
	err     error
}

type tickMsg time.Time

// decodedMsg is sent when Decode returns.
type decodedMsg struct{ err error }

// NewModel creates a viewer for dec. title is shown in the header.
func NewModel(ctx context.Context, title string, dec Decoder, opts Options) Model {
	ctx, cancel := context.WithCancel(ctx)

	return Model{
		title:  title,
		dec:    dec,
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		status: dec.Status(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.refresh()
		if m.decoding {
			return m, tickEvery()
		}
		return m, nil

	case decodedMsg:
		m.decoding = false
		m.err = msg.err
		m.refresh()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.cancel()
		return m, tea.Quit

	case "d":
		if m.decoding {
			return m, nil
		}
		m.decoding = true
		m.started = true
		m.err = nil
		return m, tea.Batch(m.decode(), tickEvery())
	}

	return m, nil
}

func (m Model) decode() tea.Cmd {
	dec, ctx := m.dec, m.ctx

	return func() tea.Msg {
		return decodedMsg{err: dec.Decode(ctx)}
	}
}

func tickEvery() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) refresh() {
	m.samples = m.dec.Samples()
	m.status = m.dec.Status()
}

func (m Model) columns() int {
	cols := m.opts.Buckets
	if m.width > 4 {
		cols = min(cols, m.width-4)
	}

	return max(cols, 1)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	plotStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func (m Model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("rauditor: " + m.title))
	b.WriteString("\n\n")

	track := m.dec.Track()
	field(&b, "Codec: ", track.Params.Codec.String())
	field(&b, "Signal: ", track.Params.Spec().String())
	field(&b, "State: ", m.stateLine())
	field(&b, "Samples: ", fmt.Sprintf("%d", len(m.samples)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	switch {
	case len(m.samples) > 0:
		b.WriteString(plotStyle.Render(m.plot()))
	case m.started:
		b.WriteString(valueStyle.Render("Waiting for samples..."))
	default:
		b.WriteString(valueStyle.Render("Press d to decode."))
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("d: decode • q: quit"))
	b.WriteString("\n")

	return b.String()
}

func field(b *strings.Builder, name, value string) {
	b.WriteString(headerStyle.Render(name))
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

func (m Model) stateLine() string {
	s := m.status
	if s.State != decoder.StateStopped {
		return s.State.String()
	}

	return fmt.Sprintf("%s (%s), %d packets, %d skipped", s.State, s.Reason, s.Packets, s.Skipped)
}

// plot draws the envelope of the leading samples.
func (m Model) plot() string {
	samples := m.samples[:min(len(m.samples), m.opts.Samples)]
	lo, hi := render.Bounds(samples)
	peaks := render.Envelope(samples, max(m.dec.Track().Params.Channels, 1), m.columns())

	return strings.Join(Plot(peaks, lo, hi, plotRows), "\n")
}

// Plot renders peaks as rows of text, top row first. Each column is filled
// between its minimum and maximum scaled into [lo, hi].
func Plot(peaks []render.Peak, lo, hi float32, rows int) []string {
	if rows < 1 || len(peaks) == 0 {
		return nil
	}

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", len(peaks)))
	}

	row := func(v float32) int {
		if hi <= lo {
			return rows / 2
		}
		r := int((hi - v) / (hi - lo) * float32(rows-1))
		return min(max(r, 0), rows-1)
	}

	for c, p := range peaks {
		top, bottom := row(p.Max), row(p.Min)
		for r := top; r <= bottom; r++ {
			grid[r][c] = '█'
		}
	}

	out := make([]string, rows)
	for r, line := range grid {
		out[r] = string(line)
	}

	return out
}

// Run starts the viewer and blocks until it quits.
func Run(m Model) error {
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()

	return err
}
