// SPDX-License-Identifier: EPL-2.0

package mpegtest

import (
	"encoding/binary"
	"errors"
	"io"
)

// Common header words.
const (
	// MPEG-1 Layer III, 128 kbps, 44100 Hz, stereo, no CRC: 417 bytes.
	Word128 uint32 = 0xFFFB9000
	// Same with the padding bit set: 418 bytes.
	Word128Padded uint32 = 0xFFFB9200
	// MPEG-1 Layer III, 192 kbps, 44100 Hz, stereo: 626 bytes.
	Word192 uint32 = 0xFFFBB000
	// MPEG-1 Layer III, free format, 44100 Hz, stereo.
	WordFree uint32 = 0xFFFB0000
)

// ErrInjected is returned by ErrAfterReader once its data is consumed.
var ErrInjected = errors.New("injected read failure")

// HeaderWord assembles a header word from field values. version and layer
// take the raw 2-bit codes as they appear in the bitstream.
func HeaderWord(version, layer, bitrateIndex, sampleRateIndex uint32, padding bool, mode uint32) uint32 {
	w := uint32(0xFFE00000)
	w |= (version & 0x3) << 19
	w |= (layer & 0x3) << 17
	w |= 1 << 16 // no CRC
	w |= (bitrateIndex & 0xF) << 12
	w |= (sampleRateIndex & 0x3) << 10
	if padding {
		w |= 1 << 9
	}
	w |= (mode & 0x3) << 6
	return w
}

// Frame returns a frame of length bytes: the header word followed by a
// zero payload.
func Frame(word uint32, length int) []byte {
	if length < 4 {
		length = 4
	}
	b := make([]byte, length)
	binary.BigEndian.PutUint32(b, word)
	return b
}

// XingFrame returns a frame of length bytes carrying a Xing (or Info, when
// tag is "Info") header at offset with the given frame and byte counts.
// offset is 4 plus the side information size for the header.
func XingFrame(word uint32, length, offset int, tag string, frames, bytes uint32) []byte {
	b := Frame(word, length)
	copy(b[offset:], tag)
	binary.BigEndian.PutUint32(b[offset+4:], 0x3) // frames and bytes present
	binary.BigEndian.PutUint32(b[offset+8:], frames)
	binary.BigEndian.PutUint32(b[offset+12:], bytes)
	return b
}

// VBRIFrame returns a frame carrying a VBRI header at offset 36.
func VBRIFrame(word uint32, length int, frames, bytes uint32) []byte {
	b := Frame(word, length)
	copy(b[36:], "VBRI")
	binary.BigEndian.PutUint16(b[40:], 1)
	binary.BigEndian.PutUint32(b[46:], bytes)
	binary.BigEndian.PutUint32(b[50:], frames)
	return b
}

// Repeat returns n consecutive frames built from word.
func Repeat(word uint32, length, n int) []byte {
	out := make([]byte, 0, length*n)
	for i := 0; i < n; i++ {
		out = append(out, Frame(word, length)...)
	}
	return out
}

// Join concatenates byte slices.
func Join(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// ChunkReader hands out at most chunk bytes per Read, so callers see every
// possible split of headers and frame bodies.
type ChunkReader struct {
	data  []byte
	chunk int
	off   int
}

// NewChunkReader creates a reader returning chunk bytes per call.
func NewChunkReader(data []byte, chunk int) *ChunkReader {
	if chunk <= 0 {
		chunk = 1
	}
	return &ChunkReader{data: data, chunk: chunk}
}

func (c *ChunkReader) Read(p []byte) (int, error) {
	if c.off >= len(c.data) {
		return 0, io.EOF
	}
	n := min(len(p), c.chunk, len(c.data)-c.off)
	copy(p, c.data[c.off:c.off+n])
	c.off += n
	return n, nil
}

// ErrAfterReader returns data and then fails with ErrInjected instead of io.EOF.
type ErrAfterReader struct {
	data []byte
	off  int
}

func NewErrAfterReader(data []byte) *ErrAfterReader {
	return &ErrAfterReader{data: data}
}

func (e *ErrAfterReader) Read(p []byte) (int, error) {
	if e.off >= len(e.data) {
		return 0, ErrInjected
	}
	n := copy(p, e.data[e.off:])
	e.off += n
	return n, nil
}

// StallReader never makes progress.
type StallReader struct{}

func (StallReader) Read(p []byte) (int, error) { return 0, nil }
