// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/ik5/rauditor"
	"github.com/ik5/rauditor/audio"
	"github.com/ik5/rauditor/internal/config"
	"github.com/ik5/rauditor/internal/mediatest"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// sineWAV writes one second of a 16-bit mono 440 Hz sine at 8 kHz.
func sineWAV(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sine.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	samples := mediatest.Quantize(mediatest.Generate(1, 8000, mediatest.Sine(8000, 440)), 16)
	if err := mediatest.WriteWAV(f, 8000, 1, 16, samples); err != nil {
		t.Fatal(err)
	}

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestProbe_Text(t *testing.T) {
	out, err := run(t, "probe", sineWAV(t))
	if err != nil {
		t.Fatalf("probe error = %v", err)
	}

	for _, want := range []string{"pcm_s16le", "8000 Hz, 1 ch", "Bits:      16"} {
		if !strings.Contains(out, want) {
			t.Errorf("probe output missing %q:\n%s", want, out)
		}
	}
}

func TestProbe_JSON(t *testing.T) {
	out, err := run(t, "probe", "--output", "json", sineWAV(t))
	if err != nil {
		t.Fatalf("probe error = %v", err)
	}

	var res probeResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("probe output is not JSON: %v\n%s", err, out)
	}

	if res.Codec != "pcm_s16le" || res.SampleRate != 8000 || res.Channels != 1 {
		t.Errorf("probe = %+v", res)
	}
}

func TestDecode_Summary(t *testing.T) {
	out, err := run(t, "decode", "--peaks", "4", sineWAV(t))
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}

	for _, want := range []string{"exhausted", "Samples:   8000", "Duration:  1s", "   3  "} {
		if !strings.Contains(out, want) {
			t.Errorf("decode output missing %q:\n%s", want, out)
		}
	}
}

func TestDecode_Export(t *testing.T) {
	in := sineWAV(t)
	dst := filepath.Join(t.TempDir(), "out.wav")

	out, err := run(t, "decode", "--export", dst, "--rate", "4000", in)
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}

	if !strings.Contains(out, "Exported") {
		t.Errorf("decode output does not report the export:\n%s", out)
	}

	samples, spec, err := rauditor.DecodeFile(context.Background(), dst)
	if err != nil {
		t.Fatalf("DecodeFile(export) error = %v", err)
	}

	if spec.Rate != 4000 || spec.Channels != 1 {
		t.Errorf("export spec = %v, want 4000 Hz mono", spec)
	}

	if n := len(samples); n < 3999 || n > 4001 {
		t.Errorf("export has %d samples, want about 4000", n)
	}
}

func TestCommand_Errors(t *testing.T) {
	wav := sineWAV(t)

	tests := []struct {
		name string
		env  [2]string
		args []string
	}{
		{name: "missing file", args: []string{"decode", filepath.Join(t.TempDir(), "nope.wav")}},
		{name: "not audio", args: []string{"probe", writeFile(t, "junk.bin", "definitely not audio")}},
		{name: "no args", args: []string{"probe"}},
		{name: "bad config", env: [2]string{"RAUDITOR_LOG_FORMAT", "xml"}, args: []string{"probe", wav}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env[0] != "" {
				t.Setenv(tt.env[0], tt.env[1])
			}

			if _, err := run(t, tt.args...); err == nil {
				t.Error("command error = nil")
			}
		})
	}

	t.Run("bad config is a config error", func(t *testing.T) {
		t.Setenv("RAUDITOR_LOG_FORMAT", "xml")

		_, err := run(t, "probe", wav)
		if !errors.Is(err, config.ErrInvalidLogFormat) {
			t.Errorf("error = %v, want %v", err, config.ErrInvalidLogFormat)
		}
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestViewOptions(t *testing.T) {
	t.Parallel()

	a := &app{cfg: config.Config{ViewBuckets: 80, ViewSamples: 1000}}

	got := a.viewOptions(&ViewOptions{})
	if got.Buckets != 80 || got.Samples != 1000 {
		t.Errorf("defaults = %+v", got)
	}

	got = a.viewOptions(&ViewOptions{Buckets: 30, Samples: 500})
	if got.Buckets != 30 || got.Samples != 500 {
		t.Errorf("flags = %+v", got)
	}
}

func TestExportSpec(t *testing.T) {
	t.Parallel()

	mono8k := audio.SignalSpec{Rate: 8000, Channels: 1}
	stereo48k := audio.SignalSpec{Rate: 48000, Channels: 2}

	tests := []struct {
		name    string
		initial audio.SignalSpec
		current audio.SignalSpec
		resets  uint64
		wantErr bool
	}{
		{name: "no reset", initial: mono8k, current: mono8k},
		{name: "reset to the same spec", initial: mono8k, current: mono8k, resets: 2},
		{name: "reset to another spec", initial: mono8k, current: stereo48k, resets: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := exportSpec(tt.initial, tt.current, tt.resets)
			if tt.wantErr {
				if !errors.Is(err, errSpecChanged) {
					t.Errorf("exportSpec() error = %v, want %v", err, errSpecChanged)
				}
				return
			}

			if err != nil || got != tt.current {
				t.Errorf("exportSpec() = %v, %v, want %v", got, err, tt.current)
			}
		})
	}
}
