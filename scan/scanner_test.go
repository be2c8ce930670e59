package scan

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/ik5/mpegaudio/frame"
	"github.com/ik5/mpegaudio/internal/mpegtest"
)

// tenWithGarbage is ten 417-byte frames with three stray bytes between the
// fourth and the fifth.
func tenWithGarbage() []byte {
	return mpegtest.Join(
		mpegtest.Repeat(mpegtest.Word128, 417, 4),
		[]byte{0x12, 0x34, 0x56},
		mpegtest.Repeat(mpegtest.Word128, 417, 6),
	)
}

func TestScan_Resync(t *testing.T) {
	t.Parallel()

	res, err := Scan(bytes.NewReader(tenWithGarbage()), 0, Config{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(res.Frames) != 10 {
		t.Errorf("len(Frames) = %d, want 10", len(res.Frames))
	}
	if res.SyncLosses != 1 {
		t.Errorf("SyncLosses = %d, want 1", res.SyncLosses)
	}
	if res.SkippedBytes != 3 {
		t.Errorf("SkippedBytes = %d, want 3", res.SkippedBytes)
	}
	if res.Reason != EndOfInput {
		t.Errorf("Reason = %v, want %v", res.Reason, EndOfInput)
	}
	if res.BytesConsumed != 10*417 {
		t.Errorf("BytesConsumed = %d, want %d", res.BytesConsumed, 10*417)
	}
	if res.Frames[4].Offset != 4*417+3 {
		t.Errorf("Frames[4].Offset = %d, want %d", res.Frames[4].Offset, 4*417+3)
	}
}

func TestScan_EmptyInput(t *testing.T) {
	t.Parallel()

	res, err := Scan(bytes.NewReader(nil), 0, Config{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Frames) != 0 || res.Reason != EndOfInput {
		t.Errorf("Scan(empty) = %d frames, %v, want 0 frames, %v", len(res.Frames), res.Reason, EndOfInput)
	}
}

func TestScan_GarbageOnly(t *testing.T) {
	t.Parallel()

	res, err := Scan(bytes.NewReader([]byte("this is not an MPEG stream")), 0, Config{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Frames) != 0 {
		t.Errorf("len(Frames) = %d, want 0", len(res.Frames))
	}
	if res.SyncLosses != 1 {
		t.Errorf("SyncLosses = %d, want 1", res.SyncLosses)
	}
	if res.Reason != EndOfInput {
		t.Errorf("Reason = %v, want %v", res.Reason, EndOfInput)
	}
}

func TestScan_TruncatedFrame(t *testing.T) {
	t.Parallel()

	data := mpegtest.Join(
		mpegtest.Repeat(mpegtest.Word128, 417, 3),
		mpegtest.Frame(mpegtest.Word128, 417)[:200],
	)

	res, err := Scan(bytes.NewReader(data), 0, Config{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Frames) != 3 {
		t.Errorf("len(Frames) = %d, want 3", len(res.Frames))
	}
	if res.Reason != TruncatedFrame {
		t.Errorf("Reason = %v, want %v", res.Reason, TruncatedFrame)
	}
	if res.BytesConsumed != 3*417 {
		t.Errorf("BytesConsumed = %d, want %d", res.BytesConsumed, 3*417)
	}
}

func TestScan_MaxFrames(t *testing.T) {
	t.Parallel()

	data := mpegtest.Repeat(mpegtest.Word128, 417, 10)

	for _, limit := range []int{1, 4, 10} {
		res, err := Scan(bytes.NewReader(data), 0, Config{MaxFrames: limit})
		if err != nil {
			t.Fatalf("Scan(max %d) error = %v", limit, err)
		}
		if len(res.Frames) != limit {
			t.Errorf("Scan(max %d): len(Frames) = %d", limit, len(res.Frames))
		}
		if res.Reason != MaxFramesReached {
			t.Errorf("Scan(max %d): Reason = %v, want %v", limit, res.Reason, MaxFramesReached)
		}
	}

	res, _ := Scan(bytes.NewReader(data), 0, Config{MaxFrames: 11})
	if len(res.Frames) != 10 || res.Reason != EndOfInput {
		t.Errorf("Scan(max 11) = %d frames, %v, want 10, %v", len(res.Frames), res.Reason, EndOfInput)
	}
}

func TestScan_ChunkBoundaries(t *testing.T) {
	t.Parallel()

	data := tenWithGarbage()
	want, err := Scan(bytes.NewReader(data), 0, Config{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	tests := []struct {
		name string
		r    func() io.Reader
		cfg  Config
	}{
		{"one byte reader", func() io.Reader { return iotest.OneByteReader(bytes.NewReader(data)) }, Config{}},
		{"half reader", func() io.Reader { return iotest.HalfReader(bytes.NewReader(data)) }, Config{}},
		{"data with EOF", func() io.Reader { return iotest.DataErrReader(bytes.NewReader(data)) }, Config{}},
		{"3 byte chunks", func() io.Reader { return mpegtest.NewChunkReader(data, 3) }, Config{}},
		{"tiny buffer", func() io.Reader { return bytes.NewReader(data) }, Config{ChunkSize: 1}},
		{"odd buffer", func() io.Reader { return mpegtest.NewChunkReader(data, 500) }, Config{ChunkSize: 7}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Scan(tt.r(), 0, tt.cfg)
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if len(got.Frames) != len(want.Frames) {
				t.Fatalf("len(Frames) = %d, want %d", len(got.Frames), len(want.Frames))
			}
			for i := range got.Frames {
				if got.Frames[i] != want.Frames[i] {
					t.Errorf("Frames[%d] = %+v, want %+v", i, got.Frames[i], want.Frames[i])
				}
			}
			if got.SyncLosses != want.SyncLosses || got.SkippedBytes != want.SkippedBytes || got.Reason != want.Reason {
				t.Errorf("stats = %d/%d/%v, want %d/%d/%v",
					got.SyncLosses, got.SkippedBytes, got.Reason,
					want.SyncLosses, want.SkippedBytes, want.Reason)
			}
		})
	}
}

func TestScan_StartOffset(t *testing.T) {
	t.Parallel()

	prefix := bytes.Repeat([]byte{0xAB}, 100)
	data := mpegtest.Join(prefix, mpegtest.Repeat(mpegtest.Word128, 417, 2))

	res, err := Scan(bytes.NewReader(data), 100, Config{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Frames) != 2 || res.SyncLosses != 0 {
		t.Errorf("Scan(start 100) = %d frames, %d sync losses, want 2, 0", len(res.Frames), res.SyncLosses)
	}
	if res.Frames[0].Offset != 100 || res.Frames[1].Offset != 517 {
		t.Errorf("offsets = %d, %d, want 100, 517", res.Frames[0].Offset, res.Frames[1].Offset)
	}

	res, err = Scan(bytes.NewReader(data), 0, Config{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Frames) != 2 || res.SyncLosses != 1 || res.SkippedBytes != 100 {
		t.Errorf("Scan(start 0) = %d frames, %d losses, %d skipped, want 2, 1, 100",
			len(res.Frames), res.SyncLosses, res.SkippedBytes)
	}
}

func TestScan_StartBeyondInput(t *testing.T) {
	t.Parallel()

	res, err := Scan(bytes.NewReader(make([]byte, 10)), 1000, Config{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Frames) != 0 || res.Reason != EndOfInput {
		t.Errorf("Scan() = %d frames, %v, want 0, %v", len(res.Frames), res.Reason, EndOfInput)
	}
}

func TestScan_VBRInfoFrame(t *testing.T) {
	t.Parallel()

	data := mpegtest.Join(
		mpegtest.XingFrame(mpegtest.Word128, 417, 36, "Xing", 5, 5*417),
		mpegtest.Repeat(mpegtest.Word128, 417, 5),
	)

	res, err := Scan(bytes.NewReader(data), 0, Config{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Frames) != 6 {
		t.Fatalf("len(Frames) = %d, want 6", len(res.Frames))
	}
	if !res.Frames[0].Info {
		t.Error("Frames[0].Info = false, want true")
	}
	for i, f := range res.Frames[1:] {
		if f.Info {
			t.Errorf("Frames[%d].Info = true, want false", i+1)
		}
	}
	if res.VBR == nil || res.VBR.Kind != frame.VBRXing || res.VBR.Frames != 5 {
		t.Errorf("VBR = %+v, want Xing with 5 frames", res.VBR)
	}
}

func TestScan_VBRTagOnlyInFirstFrame(t *testing.T) {
	t.Parallel()

	data := mpegtest.Join(
		mpegtest.Frame(mpegtest.Word128, 417),
		mpegtest.XingFrame(mpegtest.Word128, 417, 36, "Xing", 5, 5*417),
	)

	res, _ := Scan(bytes.NewReader(data), 0, Config{})
	if res.VBR != nil || res.Frames[1].Info {
		t.Errorf("tag in second frame was reported: %+v", res.VBR)
	}
}

func freeFormatStream() []byte {
	return mpegtest.Join(
		mpegtest.Repeat(mpegtest.Word128, 417, 2),
		mpegtest.Frame(mpegtest.WordFree, 417),
		mpegtest.Repeat(mpegtest.Word128, 417, 2),
	)
}

func TestScan_FreeFormatSkip(t *testing.T) {
	t.Parallel()

	res, err := Scan(bytes.NewReader(freeFormatStream()), 0, Config{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Frames) != 4 {
		t.Errorf("len(Frames) = %d, want 4", len(res.Frames))
	}
	if res.FreeFormatFrames != 1 {
		t.Errorf("FreeFormatFrames = %d, want 1", res.FreeFormatFrames)
	}
	if res.SkippedBytes != 417 {
		t.Errorf("SkippedBytes = %d, want 417", res.SkippedBytes)
	}
	if res.SyncLosses != 0 {
		t.Errorf("SyncLosses = %d, want 0", res.SyncLosses)
	}
	if res.Reason != EndOfInput {
		t.Errorf("Reason = %v, want %v", res.Reason, EndOfInput)
	}
}

func TestScan_FreeFormatSkipThenGarbage(t *testing.T) {
	t.Parallel()

	// A sync loss after a frame that follows the free format one is counted.
	data := mpegtest.Join(
		freeFormatStream(),
		[]byte{0x01, 0x02},
		mpegtest.Frame(mpegtest.Word128, 417),
	)

	res, err := Scan(bytes.NewReader(data), 0, Config{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Frames) != 5 || res.SyncLosses != 1 || res.SkippedBytes != 419 {
		t.Errorf("Scan() = %d frames, %d sync losses, %d skipped, want 5, 1, 419",
			len(res.Frames), res.SyncLosses, res.SkippedBytes)
	}
}

func TestScan_FreeFormatStop(t *testing.T) {
	t.Parallel()

	res, err := Scan(bytes.NewReader(freeFormatStream()), 0, Config{FreeFormat: FreeFormatStop})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Frames) != 2 || res.Reason != FreeFormat {
		t.Errorf("Scan() = %d frames, %v, want 2, %v", len(res.Frames), res.Reason, FreeFormat)
	}
}

func TestScan_FreeFormatCarry(t *testing.T) {
	t.Parallel()

	res, err := Scan(bytes.NewReader(freeFormatStream()), 0, Config{FreeFormat: FreeFormatCarry})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Frames) != 5 {
		t.Fatalf("len(Frames) = %d, want 5", len(res.Frames))
	}
	free := res.Frames[2]
	if !free.Estimated || !free.FreeFormat() || free.Length != 417 {
		t.Errorf("Frames[2] = %+v, want estimated free format frame of 417 bytes", free)
	}
	if res.SyncLosses != 0 {
		t.Errorf("SyncLosses = %d, want 0", res.SyncLosses)
	}
}

func TestScan_FreeFormatCarryWithoutPrevious(t *testing.T) {
	t.Parallel()

	data := mpegtest.Join(
		mpegtest.Frame(mpegtest.WordFree, 417),
		mpegtest.Repeat(mpegtest.Word128, 417, 2),
	)

	res, _ := Scan(bytes.NewReader(data), 0, Config{FreeFormat: FreeFormatCarry})
	if len(res.Frames) != 2 || res.FreeFormatFrames != 1 {
		t.Errorf("Scan() = %d frames, %d free, want 2, 1", len(res.Frames), res.FreeFormatFrames)
	}
	if res.SyncLosses != 0 {
		t.Errorf("SyncLosses = %d, want 0", res.SyncLosses)
	}
}

func TestScan_FreeFormatCarryNeedsMatchingFrame(t *testing.T) {
	t.Parallel()

	// MPEG-1 Layer I, 448 kbps, 32 kHz: 672 bytes.
	layer1 := mpegtest.HeaderWord(3, 3, 14, 2, false, 0)

	tests := []struct {
		name string
		free uint32
	}{
		// 448 kbps on an MPEG-2.5 Layer II 8 kHz frame would need 8064
		// bytes, more than any real frame.
		{"other version and layer", mpegtest.HeaderWord(0, 2, 0, 2, false, 0)},
		{"other sample rate", mpegtest.HeaderWord(3, 3, 0, 0, false, 0)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := mpegtest.Join(
				mpegtest.Repeat(layer1, 672, 2),
				mpegtest.Frame(tt.free, 100),
				mpegtest.Repeat(layer1, 672, 2),
			)

			res, err := Scan(bytes.NewReader(data), 0, Config{FreeFormat: FreeFormatCarry})
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if len(res.Frames) != 4 || res.Reason != EndOfInput {
				t.Errorf("Scan() = %d frames, %v, want 4, %v", len(res.Frames), res.Reason, EndOfInput)
			}
			for i, f := range res.Frames {
				if f.Estimated {
					t.Errorf("Frames[%d] is estimated, want none", i)
				}
			}
			if res.FreeFormatFrames != 1 || res.SkippedBytes != 100 {
				t.Errorf("FreeFormatFrames, SkippedBytes = %d, %d, want 1, 100", res.FreeFormatFrames, res.SkippedBytes)
			}
		})
	}
}

func TestScan_ReadError(t *testing.T) {
	t.Parallel()

	data := mpegtest.Repeat(mpegtest.Word128, 417, 3)

	res, err := Scan(mpegtest.NewErrAfterReader(data), 0, Config{})
	if !errors.Is(err, mpegtest.ErrInjected) {
		t.Fatalf("Scan() error = %v, want ErrInjected", err)
	}
	if len(res.Frames) != 3 {
		t.Errorf("len(Frames) = %d, want 3", len(res.Frames))
	}
	if res.Reason != ReadError {
		t.Errorf("Reason = %v, want %v", res.Reason, ReadError)
	}
}

func TestScan_ReadErrorWhileSkipping(t *testing.T) {
	t.Parallel()

	_, err := Scan(iotest.ErrReader(mpegtest.ErrInjected), 10, Config{})
	if !errors.Is(err, mpegtest.ErrInjected) {
		t.Errorf("Scan() error = %v, want ErrInjected", err)
	}
}

func TestScan_NoProgress(t *testing.T) {
	t.Parallel()

	res, err := Scan(mpegtest.StallReader{}, 0, Config{})
	if !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("Scan() error = %v, want io.ErrNoProgress", err)
	}
	if res.Reason != ReadError {
		t.Errorf("Reason = %v, want %v", res.Reason, ReadError)
	}
}

func TestScanner_Streaming(t *testing.T) {
	t.Parallel()

	data := mpegtest.Join(
		mpegtest.Repeat(mpegtest.Word128, 417, 2),
		mpegtest.Frame(mpegtest.Word192, 626),
	)
	sc := NewScanner(bytes.NewReader(data), Config{})

	if sc.Reason() != Running {
		t.Errorf("Reason() before Scan = %v, want %v", sc.Reason(), Running)
	}

	var offsets []int64
	var kbps []uint32
	for sc.Scan() {
		offsets = append(offsets, sc.Frame().Offset)
		kbps = append(kbps, sc.Frame().Bitrate())
	}

	if sc.Err() != nil {
		t.Fatalf("Err() = %v", sc.Err())
	}
	if len(offsets) != 3 || offsets[1] != 417 || offsets[2] != 834 {
		t.Errorf("offsets = %v, want [0 417 834]", offsets)
	}
	if kbps[2] != 192 {
		t.Errorf("third bitrate = %d, want 192", kbps[2])
	}
	if sc.Scan() {
		t.Error("Scan() after the end = true, want false")
	}
	if sc.Reason() != EndOfInput {
		t.Errorf("Reason() = %v, want %v", sc.Reason(), EndOfInput)
	}
}

func TestScanner_BoundedMemory(t *testing.T) {
	t.Parallel()

	data := mpegtest.Repeat(mpegtest.Word192, 626, 500)
	sc := NewScanner(bytes.NewReader(data), Config{ChunkSize: 1024})
	want := cap(sc.buf)

	n := 0
	for sc.Scan() {
		n++
	}

	if n != 500 {
		t.Errorf("frames = %d, want 500", n)
	}
	if cap(sc.buf) != want || want != 1024+frame.MaxFrameLength {
		t.Errorf("buffer capacity = %d (started at %d), want %d", cap(sc.buf), want, 1024+frame.MaxFrameLength)
	}
}

func TestReason_String(t *testing.T) {
	t.Parallel()

	want := map[Reason]string{
		Running:          "running",
		EndOfInput:       "end of input",
		TruncatedFrame:   "truncated frame",
		MaxFramesReached: "max frames reached",
		FreeFormat:       "free format frame",
		ReadError:        "read error",
		Reason(99):       "unknown",
	}
	for r, w := range want {
		if r.String() != w {
			t.Errorf("Reason(%d).String() = %q, want %q", r, r.String(), w)
		}
	}
}
