// SPDX-License-Identifier: EPL-2.0

package duration

import (
	"math"
	"time"

	"github.com/go-audio/audio"
	"github.com/ik5/mpegaudio/frame"
	"github.com/ik5/mpegaudio/scan"
)

// DefaultSampleFrames is the frame budget of a sampled scan.
const DefaultSampleFrames = 300

// Mode classifies the bitrate of a stream.
type Mode uint8

const (
	Unknown Mode = iota
	Constant
	Variable
)

func (m Mode) String() string {
	switch m {
	case Constant:
		return "CBR"
	case Variable:
		return "VBR"
	}
	return "unknown"
}

// Strategy names the method that produced an Estimate.
type Strategy uint8

const (
	Exact Strategy = iota
	Sampled
	VBRHeader
)

func (s Strategy) String() string {
	switch s {
	case Exact:
		return "exact"
	case Sampled:
		return "sampled"
	case VBRHeader:
		return "vbr header"
	}
	return "unknown"
}

// Estimate is the playback length and bitrate of a stream.
type Estimate struct {
	Duration time.Duration
	// Bitrate is the average bitrate in bits per second.
	Bitrate  uint32
	Mode     Mode
	Strategy Strategy
	// Frames is the number of audio frames counted, sampled or declared.
	Frames int
	// Extrapolated is set when a sampled estimate reports Constant: the
	// sample was uniform but the rest of the stream was not read.
	Extrapolated bool
	// Format of the first frame, nil when no frame was found.
	Format *audio.Format
}

// Known reports whether any audio was found. An unknown estimate must not
// be taken as a zero length track.
func (e Estimate) Known() bool {
	return e.Frames > 0 && e.Duration > 0
}

// tally sums audio frames. Info frames are metadata and are skipped;
// estimated free format frames count for time but not for the bitrate.
type tally struct {
	frames      int
	seconds     float64
	rateSeconds float64
	rateBytes   int64
	first       uint32
	uniform     bool
	format      *audio.Format
}

func count(frames []scan.Frame) tally {
	t := tally{uniform: true}
	for _, f := range frames {
		if f.Info {
			continue
		}
		sr := f.SampleRate()
		if sr == 0 {
			continue
		}
		secs := float64(f.SamplesPerFrame()) / float64(sr)
		t.frames++
		t.seconds += secs
		if t.format == nil {
			t.format = f.Format()
		}
		if f.Estimated {
			continue
		}
		t.rateSeconds += secs
		t.rateBytes += int64(f.Length)
		kbps := f.Bitrate()
		if t.first == 0 {
			t.first = kbps
		} else if kbps != t.first {
			t.uniform = false
		}
	}
	return t
}

func (t tally) bitrate() uint32 {
	if t.rateSeconds <= 0 {
		return 0
	}
	return uint32(math.Round(float64(t.rateBytes) * 8 / t.rateSeconds))
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// samplesDuration converts frame count times samples per frame to time.
func samplesDuration(frames uint64, h frame.Header) time.Duration {
	sr := uint64(h.SampleRate())
	if sr == 0 {
		return 0
	}
	return seconds(float64(frames*uint64(h.SamplesPerFrame())) / float64(sr))
}
