// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/rauditor/codecs/pcm"
	"github.com/ik5/rauditor/internal/mediatest"
	"github.com/ik5/rauditor/media"
)

// drain decodes every packet of d with codecs/pcm and returns the samples.
func drain(t *testing.T, d media.Demuxer) ([]float32, int) {
	t.Helper()

	dec, err := pcm.New(d.Tracks()[0].Params)
	if err != nil {
		t.Fatalf("pcm.New() error = %v", err)
	}

	var (
		out     []float32
		packets int
	)

	for {
		pkt, err := d.NextPacket()
		if errors.Is(err, io.EOF) {
			return out, packets
		}

		if err != nil {
			t.Fatalf("NextPacket() error = %v", err)
		}
		packets++

		f, err := dec.Decode(pkt)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}

		buf := make([]float32, f.Frames()*f.Spec().Channels)
		f.CopyInterleaved(buf)
		out = append(out, buf...)
	}
}

func TestFormat_Probe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   bool
	}{
		{name: "wav", header: mediatest.WAV16(8000, 1, nil), want: true},
		{name: "riff but not wave", header: []byte("RIFF\x24\x00\x00\x00AVI LIST"), want: false},
		{name: "short", header: []byte("RIFF"), want: false},
		{name: "ogg", header: []byte("OggS\x00\x02"), want: false},
	}

	for _, tt := range tests {
		if got := (Format{}).Probe(tt.header); got != tt.want {
			t.Errorf("%s: Probe() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFormat_Open(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bits     int
		channels int
		want     media.CodecType
	}{
		{name: "u8 mono", bits: 8, channels: 1, want: media.CodecPCMU8},
		{name: "s16 stereo", bits: 16, channels: 2, want: media.CodecPCMS16LE},
		{name: "s24 stereo", bits: 24, channels: 2, want: media.CodecPCMS24LE},
		{name: "s32 mono", bits: 32, channels: 1, want: media.CodecPCMS32LE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := mediatest.Generate(tt.channels, 3000, mediatest.Sine(22050, 440))
			buf := new(bytes.Buffer)
			if err := mediatest.WriteWAV(buf, 22050, tt.channels, tt.bits, mediatest.Quantize(in, tt.bits)); err != nil {
				t.Fatalf("WriteWAV() error = %v", err)
			}

			d, err := Format{}.Open(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}

			p := d.Tracks()[0].Params
			if p.Codec != tt.want || p.Channels != tt.channels || p.SampleRate != 22050 {
				t.Errorf("Params = %+v", p)
			}

			if p.Frames != 3000 {
				t.Errorf("Frames = %d, want 3000", p.Frames)
			}

			got, packets := drain(t, d)

			// 3000 frames: two full packets of 1152 and one of 696.
			if packets != 3 {
				t.Errorf("packets = %d, want 3", packets)
			}

			if len(got) != len(in) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(in))
			}

			tolerance := max(float32(2.0/float64(int64(1)<<(tt.bits-1))), 1e-6)
			for i := range in {
				if diff := got[i] - in[i]; diff > tolerance || diff < -tolerance {
					t.Fatalf("sample[%d] = %v, want ≈%v", i, got[i], in[i])
				}
			}
		})
	}
}

func TestFormat_OpenFloat(t *testing.T) {
	t.Parallel()

	in := []float32{0.5, -0.5, 0.25, 1}
	buf := new(bytes.Buffer)
	if err := mediatest.WriteFloatWAV(buf, 48000, 2, in); err != nil {
		t.Fatalf("WriteFloatWAV() error = %v", err)
	}

	d, err := Format{}.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if c := d.Tracks()[0].Params.Codec; c != media.CodecPCMF32LE {
		t.Fatalf("Codec = %v, want pcm_f32le", c)
	}

	got, _ := drain(t, d)
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("sample[%d] = %v, want %v", i, got[i], in[i])
		}
	}
}

func TestFormat_OpenExtensible(t *testing.T) {
	t.Parallel()

	floats := make([]byte, 0, 16)
	for _, v := range []float32{0.5, -0.5, 0.25, 1} {
		floats = binary.LittleEndian.AppendUint32(floats, math.Float32bits(v))
	}

	tests := []struct {
		name      string
		bits      int
		subFormat uint16
		data      []byte
		want      media.CodecType
	}{
		{name: "float", bits: 32, subFormat: formatFloat, data: floats, want: media.CodecPCMF32LE},
		{name: "pcm 24", bits: 24, subFormat: formatPCM, data: []byte{0, 0, 0x40, 0, 0, 0xc0}, want: media.CodecPCMS24LE},
		{name: "pcm 16", bits: 16, subFormat: formatPCM, data: []byte{0, 0x40, 0, 0xc0}, want: media.CodecPCMS16LE},
		{name: "unknown sub format", bits: 16, subFormat: 2, data: []byte{0, 0, 0, 0}, want: media.CodecNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := new(bytes.Buffer)
			if err := mediatest.WriteExtensibleWAV(buf, 48000, 1, tt.bits, tt.subFormat, tt.data); err != nil {
				t.Fatalf("WriteExtensibleWAV() error = %v", err)
			}

			d, err := Format{}.Open(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}

			if c := d.Tracks()[0].Params.Codec; c != tt.want {
				t.Fatalf("Codec = %v, want %v", c, tt.want)
			}
		})
	}

	t.Run("float samples", func(t *testing.T) {
		t.Parallel()

		buf := new(bytes.Buffer)
		if err := mediatest.WriteExtensibleWAV(buf, 48000, 2, 32, formatFloat, floats); err != nil {
			t.Fatalf("WriteExtensibleWAV() error = %v", err)
		}

		d, err := Format{}.Open(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}

		got, _ := drain(t, d)
		want := []float32{0.5, -0.5, 0.25, 1}
		if len(got) != len(want) {
			t.Fatalf("got %d samples, want %d", len(got), len(want))
		}

		for i := range want {
			if got[i] != want[i] {
				t.Errorf("sample[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})
}

func TestFormat_OpenGoAudioEncoded(t *testing.T) {
	t.Parallel()

	f := &memFile{}
	enc := gowav.NewEncoder(f, 16000, 16, 1, 1)
	data := []int{0, 16384, -16384, 32767, -32768}

	err := enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 16000},
		Data:           data,
		SourceBitDepth: 16,
	})
	if err != nil {
		t.Fatalf("encoder Write() error = %v", err)
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("encoder Close() error = %v", err)
	}

	d, err := Format{}.Open(bytes.NewReader(f.Bytes()))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got, _ := drain(t, d)
	want := []float32{0, 0.5, -0.5, 32767.0 / 32768, -1}

	if len(got) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFormat_UnknownFormatTag(t *testing.T) {
	t.Parallel()

	data := mediatest.WAV16(8000, 1, []int16{1, 2, 3, 4})
	binary.LittleEndian.PutUint16(data[20:22], 0x11) // IMA ADPCM

	d, err := Format{}.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if c := d.Tracks()[0].Params.Codec; c != media.CodecNull {
		t.Errorf("Codec = %v, want null", c)
	}
}

func TestFormat_TruncatedData(t *testing.T) {
	t.Parallel()

	data := mediatest.WAV16(8000, 2, []int16{1, 2, 3, 4, 5, 6})
	data = data[:len(data)-3] // half a frame short

	d, err := Format{}.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	pkt, err := d.NextPacket()
	if err != nil {
		t.Fatalf("NextPacket() error = %v", err)
	}

	if len(pkt.Data) != 9 {
		t.Errorf("len(Data) = %d, want 9", len(pkt.Data))
	}

	dec, _ := pcm.New(d.Tracks()[0].Params)
	if _, err := dec.Decode(pkt); !media.IsRecoverable(err) {
		t.Errorf("Decode(partial) error = %v, want recoverable", err)
	}

	if _, err := d.NextPacket(); !errors.Is(err, io.EOF) {
		t.Errorf("NextPacket() after tail error = %v, want io.EOF", err)
	}
}

func TestFormat_OpenNotWav(t *testing.T) {
	t.Parallel()

	_, err := Format{}.Open(bytes.NewReader([]byte("NOT A WAV FILE DATA AT ALL, REALLY NOT ONE")))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Open() error = %v, want ErrNotWavFile", err)
	}
}

func TestCodec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format uint16
		bits   int
		want   media.CodecType
	}{
		{formatPCM, 12, media.CodecNull},
		{formatFloat, 64, media.CodecPCMF64LE},
		{formatFloat, 16, media.CodecNull},
		{formatExtensible, 24, media.CodecNull},
		{2, 4, media.CodecNull},
	}

	for _, tt := range tests {
		if got := Codec(tt.format, tt.bits); got != tt.want {
			t.Errorf("Codec(%#x, %d) = %v, want %v", tt.format, tt.bits, got, tt.want)
		}
	}
}

// memFile is an in-memory io.WriteSeeker for the go-audio encoder.
type memFile struct {
	buf []byte
	pos int
}

func (m *memFile) Write(p []byte) (int, error) {
	if end := m.pos + len(p); end > len(m.buf) {
		m.buf = append(m.buf, make([]byte, end-len(m.buf))...)
	}

	n := copy(m.buf[m.pos:], p)
	m.pos += n

	return n, nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		m.pos = int(offset)
	case io.SeekCurrent:
		m.pos += int(offset)
	case io.SeekEnd:
		m.pos = len(m.buf) + int(offset)
	}

	return int64(m.pos), nil
}

func (m *memFile) Bytes() []byte { return m.buf }

func BenchmarkDemuxer(b *testing.B) {
	data := mediatest.WAV16(44100, 2, make([]int16, 44100*2))

	b.ReportAllocs()

	for b.Loop() {
		d, _ := Format{}.Open(bytes.NewReader(data))
		for {
			if _, err := d.NextPacket(); err != nil {
				break
			}
		}
	}
}
