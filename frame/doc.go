// SPDX-License-Identifier: EPL-2.0

// Package frame decodes MPEG audio frame headers.
//
// It covers MPEG-1, MPEG-2 and MPEG-2.5, layers I to III. A header is the
// 32-bit word at the start of every frame:
//
//	AAAAAAAA AAABBCCD EEEEFFGH IIJJKLMM
//
//	A  sync (11 bits, all set)
//	B  version: 11 MPEG-1, 10 MPEG-2, 00 MPEG-2.5, 01 reserved
//	C  layer: 11 I, 10 II, 01 III, 00 reserved
//	D  protection: 0 means a CRC follows
//	E  bitrate index: 0 free, 15 reserved
//	F  sample rate index: 3 reserved
//	G  padding
//	H  private
//	I  channel mode
//	J  mode extension
//	K  copyright
//	L  original
//	M  emphasis
//
// # Decoding
//
//	h, err := frame.Decode(0xFFFB9000)
//	if err != nil {
//	    // frame.IsResync(err): not a frame here, move one byte on
//	    // errors.Is(err, frame.ErrFreeBitrate): h is valid but has no table size
//	}
//	fmt.Println(h.FrameLength()) // 417
//
// The lookup tables are exposed as plain functions (Bitrate, SampleRate,
// SamplesPerFrame, SideInfoSize, PaddingUnit). They never panic: out of
// range input yields a zero value or false.
//
// # Encoder Info Headers
//
// ParseVBRInfo reads the frame and byte totals from a Xing, Info or VBRI
// tag stored in the first frame of a stream.
package frame
