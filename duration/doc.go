// SPDX-License-Identifier: EPL-2.0

// Package duration turns scan results into a playback length and a
// bitrate classification.
//
// There are three strategies, picked by the caller so the cost stays
// predictable:
//
//   - FromScan: exact. Needs a complete scan and sums every frame.
//   - FromVBRHeader: uses the frame count of a Xing, Info or VBRI tag in
//     the first frame. Constant cost. Falls back to FromSample.
//   - FromSample: extrapolates the average bitrate of a bounded scan
//     (see DefaultSampleFrames) over the audio byte length.
//
// Typical use:
//
//	res, err := scan.Scan(r, 0, scan.Config{})
//	if err != nil {
//	    return err
//	}
//	est, err := duration.FromScan(res)
//	fmt.Println(est.Duration, est.Mode)
//
// A stream with no frames gives an Estimate whose Known method returns
// false. Treat it as "duration unknown", not as a zero length track.
package duration
