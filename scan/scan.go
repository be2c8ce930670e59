// SPDX-License-Identifier: EPL-2.0

package scan

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/mpegaudio/frame"
)

// Result is the outcome of a complete or bounded scan.
type Result struct {
	// Frames in stream order.
	Frames []Frame
	// BytesConsumed is the total length of the accepted frames.
	BytesConsumed int64
	// SyncLosses counts runs of positions where no valid header was found.
	SyncLosses int
	// SkippedBytes counts every byte stepped over while resynchronizing.
	SkippedBytes     int64
	FreeFormatFrames int
	Reason           Reason
	// VBR is the encoder info header of the first frame, if it had one.
	VBR *frame.VBRInfo
}

// First returns the first accepted frame.
func (r Result) First() (Frame, bool) {
	if len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[0], true
}

// Scan discards start bytes from r and then collects every frame until the
// scan terminates. On a read failure the frames found so far are returned
// together with the error.
func Scan(r io.Reader, start int64, cfg Config) (Result, error) {
	if start > 0 {
		n, err := io.CopyN(io.Discard, r, start)
		if err != nil && !errors.Is(err, io.EOF) {
			return Result{Reason: ReadError}, fmt.Errorf("skipping to offset %d: %w", start, err)
		}
		if n < start {
			return Result{Reason: EndOfInput}, nil
		}
	}

	sc := NewScanner(r, cfg)
	var frames []Frame
	for sc.Scan() {
		f := sc.Frame()
		f.Offset += start
		frames = append(frames, f)
	}

	res := sc.Stats()
	res.Frames = frames
	if err := sc.Err(); err != nil {
		return res, err
	}
	return res, nil
}
