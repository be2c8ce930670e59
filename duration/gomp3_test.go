package duration

import (
	"bytes"
	"testing"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/mpegaudio/internal/mpegtest"
	"github.com/ik5/mpegaudio/scan"
)

// TestFromScan_MatchesDecoder checks the exact duration against the frame
// walk of a full Layer III decoder. go-mp3 reports its length in bytes of
// 16-bit stereo PCM, 4 bytes per sample.
func TestFromScan_MatchesDecoder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"constant", mpegtest.Repeat(mpegtest.Word128, 417, 20)},
		{"padded", mpegtest.Join(
			mpegtest.Repeat(mpegtest.Word128, 417, 8),
			mpegtest.Repeat(mpegtest.Word128Padded, 418, 8),
		)},
		{"variable", mpegtest.Join(
			mpegtest.Repeat(mpegtest.Word128, 417, 6),
			mpegtest.Repeat(mpegtest.Word192, 626, 6),
			mpegtest.Repeat(mpegtest.Word128, 417, 6),
		)},
		{"garbage between frames", mpegtest.Join(
			mpegtest.Repeat(mpegtest.Word128, 417, 5),
			[]byte{0x01, 0x02, 0x03, 0x04, 0x05},
			mpegtest.Repeat(mpegtest.Word128, 417, 5),
		)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dec, err := gomp3.NewDecoder(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("gomp3.NewDecoder() error = %v", err)
			}
			samples := dec.Length() / 4
			want := time.Duration(float64(samples) / float64(dec.SampleRate()) * float64(time.Second))

			res, err := scan.Scan(bytes.NewReader(tt.data), 0, scan.Config{})
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			est, err := FromScan(res)
			if err != nil {
				t.Fatalf("FromScan() error = %v", err)
			}

			diff := est.Duration - want
			if diff > time.Microsecond || diff < -time.Microsecond {
				t.Errorf("Duration = %v, decoder = %v", est.Duration, want)
			}
			if int64(est.Frames)*1152 != samples {
				t.Errorf("Frames = %d, decoder samples = %d", est.Frames, samples)
			}
		})
	}
}
