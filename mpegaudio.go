// SPDX-License-Identifier: EPL-2.0

package mpegaudio

import (
	"fmt"
	"io"

	"github.com/ik5/mpegaudio/duration"
	"github.com/ik5/mpegaudio/scan"
)

// id3v2HeaderSize is the size of an ID3v2 header, and of its optional footer.
const id3v2HeaderSize = 10

// EstimateExact scans the whole stream from start and returns the exact
// duration.
//
// The stream is read once, sequentially. A read failure returns only the
// error, since a partial sum is not a duration.
//
// Example:
//
//	f, _ := os.Open("track.mp3")
//	head := make([]byte, 10)
//	f.ReadAt(head, 0)
//	est, err := mpegaudio.EstimateExact(f, mpegaudio.SkipID3v2(head))
func EstimateExact(r io.Reader, start int64) (duration.Estimate, error) {
	res, err := scan.Scan(r, start, scan.Config{})
	if err != nil {
		return duration.Estimate{}, fmt.Errorf("scanning frames: %w", err)
	}

	return duration.FromScan(res)
}

// EstimateFast reads at most duration.DefaultSampleFrames frames from
// start. It trusts a Xing, Info or VBRI tag when the first frame has one and
// otherwise extrapolates over audioBytes, the length of the audio region
// (file size minus tags) when the caller knows it.
func EstimateFast(r io.Reader, start, audioBytes int64) (duration.Estimate, error) {
	res, err := scan.Scan(r, start, scan.Config{MaxFrames: duration.DefaultSampleFrames})
	if err != nil {
		return duration.Estimate{}, fmt.Errorf("sampling frames: %w", err)
	}

	return duration.FromVBRHeader(res, audioBytes), nil
}

// SkipID3v2 returns the number of bytes taken by an ID3v2 tag whose header
// starts head, footer included, or 0 if head does not start with one.
func SkipID3v2(head []byte) int64 {
	if len(head) < id3v2HeaderSize || string(head[:3]) != "ID3" {
		return 0
	}

	size := head[6:10]
	for _, b := range size {
		if b&0x80 != 0 {
			return 0 // not syncsafe
		}
	}

	n := int64(size[0])<<21 | int64(size[1])<<14 | int64(size[2])<<7 | int64(size[3])
	n += id3v2HeaderSize
	if head[5]&0x10 != 0 {
		n += id3v2HeaderSize
	}
	return n
}
