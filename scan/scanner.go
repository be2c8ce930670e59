// SPDX-License-Identifier: EPL-2.0

package scan

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/mpegaudio/frame"
)

// DefaultChunkSize is the read size used when Config.ChunkSize is zero.
const DefaultChunkSize = 4096

// maxEmptyReads bounds successive (0, nil) reads, as bufio does.
const maxEmptyReads = 100

// Reason tells why a scan stopped.
type Reason uint8

const (
	// Running means the scan has not terminated yet.
	Running Reason = iota
	// EndOfInput: fewer than 4 bytes were left.
	EndOfInput
	// TruncatedFrame: a header announced more bytes than the input holds.
	TruncatedFrame
	// MaxFramesReached: Config.MaxFrames frames were accepted.
	MaxFramesReached
	// FreeFormat: a free format frame was met under FreeFormatStop.
	FreeFormat
	// ReadError: the reader failed; Err returns the cause.
	ReadError
)

func (r Reason) String() string {
	switch r {
	case Running:
		return "running"
	case EndOfInput:
		return "end of input"
	case TruncatedFrame:
		return "truncated frame"
	case MaxFramesReached:
		return "max frames reached"
	case FreeFormat:
		return "free format frame"
	case ReadError:
		return "read error"
	}
	return "unknown"
}

// FreeFormatPolicy decides what happens to a frame with bitrate index 0.
type FreeFormatPolicy uint8

const (
	// FreeFormatSkip counts the header and keeps searching one byte later.
	// The bytes stepped over until the next frame are counted in
	// SkippedBytes but do not add a sync loss.
	FreeFormatSkip FreeFormatPolicy = iota
	// FreeFormatStop ends the scan with Reason FreeFormat.
	FreeFormatStop
	// FreeFormatCarry sizes the frame with the previous frame's bitrate and
	// accepts it as Estimated. The previous frame must have the same version,
	// layer and sample rate; otherwise it behaves like Skip.
	FreeFormatCarry
)

// Config controls a scan. The zero value scans everything with 4 KiB reads.
type Config struct {
	// MaxFrames stops the scan after that many accepted frames; 0 means no limit.
	MaxFrames  int
	ChunkSize  int
	FreeFormat FreeFormatPolicy
}

func (c Config) withDefaults() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.MaxFrames < 0 {
		c.MaxFrames = 0
	}
	return c
}

// Frame is one accepted frame.
type Frame struct {
	frame.Header
	// Offset is the stream position of the header, relative to where the
	// Scanner started reading.
	Offset int64
	// Length is the number of bytes the frame occupies.
	Length int
	// Estimated marks a free format frame sized from the previous bitrate.
	Estimated bool
	// Info marks the first frame when it carries a Xing, Info or VBRI tag
	// instead of audio.
	Info bool
}

// Scanner walks an MPEG audio stream frame by frame, in the manner of
// bufio.Scanner:
//
//	sc := scan.NewScanner(r, scan.Config{})
//	for sc.Scan() {
//	    f := sc.Frame()
//	}
//	if err := sc.Err(); err != nil { ... }
//
// It holds one buffer of ChunkSize plus the largest possible frame, so its
// memory use does not depend on the stream length.
type Scanner struct {
	r   io.Reader
	cfg Config

	buf  []byte
	pos  int
	base int64 // stream offset of buf[0]
	eof  bool
	err  error

	cur    Frame
	reason Reason

	frames     int
	consumed   int64
	syncLosses int
	skipped    int64
	freeFrames int
	lost       bool
	prev       frame.Header // last frame sized from the bitrate table
	vbr        *frame.VBRInfo
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader, cfg Config) *Scanner {
	cfg = cfg.withDefaults()
	return &Scanner{
		r:   r,
		cfg: cfg,
		buf: make([]byte, 0, cfg.ChunkSize+frame.MaxFrameLength),
	}
}

// Scan advances to the next frame. It returns false once the scan has
// terminated; Reason and Err tell why.
func (s *Scanner) Scan() bool {
	if s.reason != Running {
		return false
	}
	if s.cfg.MaxFrames > 0 && s.frames >= s.cfg.MaxFrames {
		return s.stop(MaxFramesReached)
	}

	for {
		if err := s.fill(frame.HeaderSize); err != nil {
			return s.fail(err)
		}
		if s.avail() < frame.HeaderSize {
			return s.stop(EndOfInput)
		}

		h, err := frame.Decode(binary.BigEndian.Uint32(s.buf[s.pos:]))
		length := 0
		estimated := false

		switch {
		case err == nil:
			length = h.FrameLength()
		case errors.Is(err, frame.ErrFreeBitrate):
			s.freeFrames++
			if s.cfg.FreeFormat == FreeFormatStop {
				return s.stop(FreeFormat)
			}
			if s.cfg.FreeFormat == FreeFormatCarry {
				length = s.carriedLength(h)
			}
			if length == 0 {
				// The bytes up to the next header belong to this frame:
				// stepping over them is not a sync loss.
				s.pos++
				s.skipped++
				s.lost = true
				continue
			}
			estimated = true
		}

		if length < frame.HeaderSize {
			s.skip()
			continue
		}

		if err := s.fill(length); err != nil {
			return s.fail(err)
		}
		if s.avail() < length {
			return s.stop(TruncatedFrame)
		}

		body := s.buf[s.pos : s.pos+length]
		s.cur = Frame{
			Header:    h,
			Offset:    s.base + int64(s.pos),
			Length:    length,
			Estimated: estimated,
		}
		if s.frames == 0 {
			if info, err := frame.ParseVBRInfo(h, body); err == nil {
				s.vbr = info
				s.cur.Info = true
			}
		}
		if !estimated {
			s.prev = h
		}

		s.pos += length
		s.consumed += int64(length)
		s.frames++
		s.lost = false
		return true
	}
}

// Frame returns the frame found by the last successful call to Scan.
func (s *Scanner) Frame() Frame { return s.cur }

// Err returns the read error that stopped the scan, if any. Running out of
// input is not an error.
func (s *Scanner) Err() error { return s.err }

// Reason reports why the scan stopped, or Running.
func (s *Scanner) Reason() Reason { return s.reason }

// VBRInfo returns the encoder info header of the first frame, or nil.
func (s *Scanner) VBRInfo() *frame.VBRInfo { return s.vbr }

// Stats fills the counters of a Result; Frames is left to the caller.
func (s *Scanner) Stats() Result {
	return Result{
		BytesConsumed:    s.consumed,
		SyncLosses:       s.syncLosses,
		SkippedBytes:     s.skipped,
		FreeFormatFrames: s.freeFrames,
		Reason:           s.reason,
		VBR:              s.vbr,
	}
}

// carriedLength sizes a free format frame with the bitrate of the previous
// frame. It returns 0 when there is no previous frame of the same version,
// layer and sample rate, or when the result cannot be a real frame.
func (s *Scanner) carriedLength(h frame.Header) int {
	p := s.prev
	if p.Bitrate() == 0 || p.Version != h.Version || p.Layer != h.Layer || p.SampleRateIndex != h.SampleRateIndex {
		return 0
	}
	n := h.FrameLengthAt(p.Bitrate())
	if n < frame.HeaderSize || n > frame.MaxFrameLength {
		return 0
	}
	return n
}

func (s *Scanner) avail() int { return len(s.buf) - s.pos }

// skip moves one byte forward. A run of skipped bytes is one sync loss.
func (s *Scanner) skip() {
	if !s.lost {
		s.syncLosses++
		s.lost = true
	}
	s.pos++
	s.skipped++
}

func (s *Scanner) stop(r Reason) bool {
	s.reason = r
	return false
}

func (s *Scanner) fail(err error) bool {
	s.err = err
	return s.stop(ReadError)
}

// fill makes sure n bytes are buffered past pos, unless the reader ends
// first. Consumed bytes are dropped so only the unread tail is carried into
// the next read.
func (s *Scanner) fill(n int) error {
	empty := 0
	for s.avail() < n && !s.eof {
		if s.pos > 0 {
			rem := copy(s.buf[:cap(s.buf)], s.buf[s.pos:])
			s.buf = s.buf[:rem]
			s.base += int64(s.pos)
			s.pos = 0
		}

		end := min(len(s.buf)+s.cfg.ChunkSize, cap(s.buf))
		k, err := s.r.Read(s.buf[len(s.buf):end])
		s.buf = s.buf[:len(s.buf)+k]

		switch {
		case errors.Is(err, io.EOF):
			s.eof = true
		case err != nil:
			return fmt.Errorf("reading MPEG stream at offset %d: %w", s.base+int64(len(s.buf)), err)
		case k == 0:
			empty++
			if empty >= maxEmptyReads {
				return io.ErrNoProgress
			}
		default:
			empty = 0
		}
	}
	return nil
}
