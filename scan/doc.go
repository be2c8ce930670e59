// SPDX-License-Identifier: EPL-2.0

// Package scan walks an MPEG audio byte stream frame by frame.
//
// The scanner decodes the header at the current position. A valid header
// moves it forward by the frame length; anything else moves it forward by
// exactly one byte until a header decodes again. Garbage, stray tag bytes
// and corrupt regions are stepped over this way and counted as sync losses.
// The body of a skipped free format frame is stepped over the same way but
// is not a sync loss.
//
// The input is read sequentially in chunks and never seeked, so any
// io.Reader works, including network streams:
//
//	res, err := scan.Scan(r, tagSize, scan.Config{})
//	if err != nil {
//	    // read failure; res still holds the frames found before it
//	}
//	fmt.Println(len(res.Frames), res.Reason)
//
// A scan ends with one of these reasons:
//   - EndOfInput: fewer than 4 bytes left
//   - TruncatedFrame: the last header claims more bytes than remain; that frame is dropped
//   - MaxFramesReached: Config.MaxFrames frames were accepted
//   - FreeFormat: a free format header was met and Config.FreeFormat is FreeFormatStop
//   - ReadError: the reader failed
//
// If the first frame carries a Xing, Info or VBRI tag it is still reported
// as a frame, with Frame.Info set, and the tag totals are in Result.VBR.
package scan
