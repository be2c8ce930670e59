// SPDX-License-Identifier: EPL-2.0

// Package mpegaudio measures MPEG audio streams (MP1, MP2, MP3) without
// decoding them.
//
// It reads frame headers only, which is enough to know how long a track
// plays, its average bitrate and whether that bitrate is constant or
// variable. Tag readers and writers use it to fill in length fields.
//
// # Quick Start
//
//	f, _ := os.Open("track.mp3")
//	defer f.Close()
//
//	head := make([]byte, 10)
//	f.ReadAt(head, 0)
//	start := mpegaudio.SkipID3v2(head)
//
//	est, err := mpegaudio.EstimateExact(f, start)
//	if err != nil {
//	    return err
//	}
//	if !est.Known() {
//	    // no audio frames: report the length as unknown
//	}
//	fmt.Println(est.Duration, est.Bitrate, est.Mode)
//
// EstimateExact reads the whole stream. EstimateFast reads a few hundred
// frames at most and relies on a Xing/Info/VBRI tag or on extrapolation:
//
//	st, _ := f.Stat()
//	est, err := mpegaudio.EstimateFast(f, start, st.Size()-start)
//
// # Packages
//
// The work is split leaf first:
//   - frame: lookup tables and the 32-bit header decoder
//   - scan: the frame walker with resynchronization on corrupt input
//   - duration: the exact, VBR header and sampled estimators
//   - crosscheck: compares the exact duration with a Layer III decoder
//
// Use them directly for diagnostics, for example to count sync losses:
//
//	res, _ := scan.Scan(f, start, scan.Config{})
//	fmt.Println(res.SyncLosses, res.SkippedBytes, res.Reason)
//
// # Input
//
// Input is any io.Reader. It is read sequentially in small chunks and never
// seeked, so memory use does not grow with the file. Nothing here opens
// files or touches the network.
//
// # Concurrency
//
// Every call is independent and keeps no shared state; different streams
// can be measured from different goroutines at once.
package mpegaudio
