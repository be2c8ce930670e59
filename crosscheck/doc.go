// SPDX-License-Identifier: EPL-2.0

// Package crosscheck compares the frame scanner's exact duration with the
// length reported by a full Layer III decoder (github.com/hajimehoshi/go-mp3).
//
// It is a diagnostic aid: the decoder walks the same frames but applies its
// own sync rules, so a drift between the two points at a stream the scanner
// and the decoder disagree on. The decoder rejects MPEG-2.5, Layers I and
// II, and free format streams; Compare returns its error in those cases.
//
//	f, _ := os.Open("track.mp3")
//	rep, err := crosscheck.Compare(f)
//	if err == nil && !rep.Agrees(time.Millisecond) {
//		fmt.Println("drift:", rep.Drift)
//	}
package crosscheck
