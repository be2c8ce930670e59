// SPDX-License-Identifier: EPL-2.0

package duration

import (
	"math"

	"github.com/ik5/mpegaudio/frame"
	"github.com/ik5/mpegaudio/scan"
)

// FromScan computes the exact duration of a fully scanned stream by summing
// the length of every audio frame.
//
// The bitrate mode is Constant when all frames share the first frame's
// bitrate and Variable otherwise. A stream without frames yields a zero,
// Unknown estimate and no error. A scan that did not reach the end of the
// input, whatever the reason, returns ErrPartialScan.
func FromScan(res scan.Result) (Estimate, error) {
	switch res.Reason {
	case scan.EndOfInput, scan.TruncatedFrame:
	default:
		return Estimate{Strategy: Exact}, ErrPartialScan
	}

	t := count(res.Frames)
	if t.frames == 0 {
		return Estimate{Strategy: Exact, Mode: Unknown}, nil
	}

	est := Estimate{
		Duration: seconds(t.seconds),
		Bitrate:  t.bitrate(),
		Mode:     Unknown,
		Strategy: Exact,
		Frames:   t.frames,
		Format:   t.format,
	}
	if t.first != 0 {
		est.Mode = Variable
		if t.uniform {
			est.Mode = Constant
		}
	}
	return est, nil
}

// FromVBRHeader uses the frame count declared in a Xing, Info or VBRI tag.
// Only the first frame and the tag are needed, so the cost does not depend
// on the stream length. Without a usable tag it falls back to Sampled.
// audioBytes is only used for the bitrate when the tag has no byte count.
func FromVBRHeader(res scan.Result, audioBytes int64) Estimate {
	first, ok := res.First()
	info := res.VBR
	if !ok || info == nil || !info.HasFrames || info.Frames == 0 || first.SampleRate() == 0 {
		return FromSample(res, audioBytes)
	}

	est := Estimate{
		Duration: samplesDuration(uint64(info.Frames), first.Header),
		Mode:     Variable,
		Strategy: VBRHeader,
		Frames:   int(info.Frames),
		Format:   first.Format(),
	}
	if info.Kind == frame.VBRInfoTag {
		est.Mode = Constant
	}

	size := audioBytes
	if info.HasBytes && info.Bytes > 0 {
		size = int64(info.Bytes)
	}
	if size > 0 && est.Duration > 0 {
		est.Bitrate = uint32(math.Round(float64(size) * 8 / est.Duration.Seconds()))
	}
	return est
}

// FromSample extrapolates from the frames of a bounded scan: the average
// bitrate of the sample applied to audioBytes. When audioBytes is not
// positive the bytes covered by the sample are used instead.
//
// The mode is Constant, with Extrapolated set, when every sampled frame has
// the same bitrate, and Unknown otherwise. Without audio frames there is
// nothing to extrapolate and the result is the same zero, Unknown, Exact
// estimate FromScan gives.
func FromSample(res scan.Result, audioBytes int64) Estimate {
	t := count(res.Frames)
	if t.frames == 0 {
		return Estimate{Strategy: Exact, Mode: Unknown}
	}

	est := Estimate{
		Bitrate:  t.bitrate(),
		Mode:     Unknown,
		Strategy: Sampled,
		Format:   t.format,
	}
	if t.first != 0 && t.uniform {
		est.Mode = Constant
		est.Extrapolated = true
	}

	if audioBytes <= 0 || est.Bitrate == 0 {
		est.Duration = seconds(t.seconds)
		est.Frames = t.frames
		return est
	}

	secs := float64(audioBytes) * 8 / float64(est.Bitrate)
	est.Duration = seconds(secs)
	est.Frames = int(math.Round(secs / (t.seconds / float64(t.frames))))
	return est
}
