// SPDX-License-Identifier: EPL-2.0

package crosscheck

import (
	"errors"
	"fmt"
	"io"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/mpegaudio"
	"github.com/ik5/mpegaudio/duration"
)

// ErrNoLength is returned when the decoder could not measure the stream.
var ErrNoLength = errors.New("decoder reported no length")

// pcmFrameSize is the size of one decoded sample: 16-bit stereo.
const pcmFrameSize = 4

// lengthReader is the part of gomp3.Decoder used here, to allow testing.
type lengthReader interface {
	Length() int64
	SampleRate() int
}

var newDecoder = func(r io.Reader) (lengthReader, error) {
	return gomp3.NewDecoder(r)
}

// Report compares the scanner's exact duration with the decoder's.
type Report struct {
	Scanned duration.Estimate
	Decoded time.Duration
	// Drift is Scanned.Duration minus Decoded.
	Drift time.Duration
}

// Agrees reports whether the two durations are within tolerance.
func (r Report) Agrees(tolerance time.Duration) bool {
	return r.Drift <= tolerance && r.Drift >= -tolerance
}

// Decoded walks r with a Layer III decoder and returns the length it
// reports. r must be positioned at the start of the file.
func Decoded(r io.ReadSeeker) (time.Duration, error) {
	dec, err := newDecoder(r)
	if err != nil {
		return 0, fmt.Errorf("opening decoder: %w", err)
	}

	n, rate := dec.Length(), dec.SampleRate()
	if n < 0 || rate <= 0 {
		return 0, ErrNoLength
	}

	samples := n / pcmFrameSize
	return time.Duration(float64(samples) / float64(rate) * float64(time.Second)), nil
}

// Compare measures r twice: once with mpegaudio.EstimateExact after any
// ID3v2 tag, and once with the decoder. Only MPEG-1 and MPEG-2 Layer III
// streams without free format frames can be decoded.
func Compare(r io.ReadSeeker) (Report, error) {
	head := make([]byte, 10)
	if _, err := io.ReadFull(r, head); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Report{}, fmt.Errorf("reading tag header: %w", err)
	}
	start := mpegaudio.SkipID3v2(head)

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Report{}, fmt.Errorf("rewinding: %w", err)
	}
	est, err := mpegaudio.EstimateExact(r, start)
	if err != nil {
		return Report{}, err
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Report{}, fmt.Errorf("rewinding: %w", err)
	}
	decoded, err := Decoded(r)
	if err != nil {
		return Report{Scanned: est}, err
	}

	return Report{
		Scanned: est,
		Decoded: decoded,
		Drift:   est.Duration - decoded,
	}, nil
}
