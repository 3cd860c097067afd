// SPDX-License-Identifier: EPL-2.0

package mediatest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// WriteWAV writes interleaved integer samples as a canonical PCM WAV file.
// bits is 8, 16, 24 or 32; 8-bit samples are stored unsigned.
func WriteWAV(w io.Writer, sampleRate, channels, bits int, samples []int32) error {
	switch bits {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("unsupported bit depth %d", bits)
	}

	width := bits / 8
	data := make([]byte, len(samples)*width)

	for i, s := range samples {
		b := data[i*width : (i+1)*width]
		switch width {
		case 1:
			b[0] = byte(s + 128)
		case 2:
			binary.LittleEndian.PutUint16(b, uint16(s))
		case 3:
			b[0], b[1], b[2] = byte(s), byte(s>>8), byte(s>>16)
		case 4:
			binary.LittleEndian.PutUint32(b, uint32(s))
		}
	}

	return writeRIFF(w, wavFormatPCM, sampleRate, channels, bits, data)
}

// WriteFloatWAV writes interleaved samples as a 32-bit IEEE float WAV file.
func WriteFloatWAV(w io.Writer, sampleRate, channels int, samples []float32) error {
	data := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(s))
	}

	return writeRIFF(w, wavFormatFloat, sampleRate, channels, 32, data)
}

// WAV16 is WriteWAV for 16-bit samples into a byte slice.
func WAV16(sampleRate, channels int, samples []int16) []byte {
	wide := make([]int32, len(samples))
	for i, s := range samples {
		wide[i] = int32(s)
	}

	buf := new(bytes.Buffer)
	_ = WriteWAV(buf, sampleRate, channels, 16, wide)

	return buf.Bytes()
}

// ksDataFormatTail is the part of a KSDATAFORMAT_SUBTYPE GUID after the
// leading format tag.
const ksDataFormatTail = "\x00\x00\x00\x00\x10\x00\x80\x00\x00\xaa\x00\x38\x9b\x71"

// WriteExtensibleWAV writes raw interleaved data as a WAVE_FORMAT_EXTENSIBLE
// file whose SubFormat GUID carries subFormat (1 for PCM, 3 for float).
func WriteExtensibleWAV(w io.Writer, sampleRate, channels, bits int, subFormat uint16, data []byte) error {
	ext := make([]byte, 24)
	binary.LittleEndian.PutUint16(ext[0:2], 22)
	binary.LittleEndian.PutUint16(ext[2:4], uint16(bits))
	binary.LittleEndian.PutUint16(ext[8:10], subFormat)
	copy(ext[10:], ksDataFormatTail)

	fmtBody := append(fmtChunk(0xfffe, sampleRate, channels, bits), ext...)

	return writeChunks(w, fmtBody, data)
}

func writeRIFF(w io.Writer, format, sampleRate, channels, bits int, data []byte) error {
	return writeChunks(w, fmtChunk(format, sampleRate, channels, bits), data)
}

func fmtChunk(format, sampleRate, channels, bits int) []byte {
	blockAlign := channels * bits / 8

	b := make([]byte, 16)
	binary.LittleEndian.PutUint16(b[0:2], uint16(format))
	binary.LittleEndian.PutUint16(b[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(b[4:8], uint32(sampleRate))
	binary.LittleEndian.PutUint32(b[8:12], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(b[12:14], uint16(blockAlign))
	binary.LittleEndian.PutUint16(b[14:16], uint16(bits))

	return b
}

func writeChunks(w io.Writer, fmtBody, data []byte) error {
	fmtSize := uint32(len(fmtBody))
	dataSize := uint32(len(data))

	header := make([]byte, 0, 28+fmtSize)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, 4+8+fmtSize+8+dataSize)
	header = append(header, "WAVE"...)

	header = append(header, "fmt "...)
	header = binary.LittleEndian.AppendUint32(header, fmtSize)
	header = append(header, fmtBody...)

	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}

	return nil
}
