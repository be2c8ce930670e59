// SPDX-License-Identifier: EPL-2.0

package frame

import (
	"encoding/binary"
)

// VBRKind identifies which encoder info header was found in a first frame.
type VBRKind uint8

const (
	// VBRXing is a "Xing" tag, written by encoders for variable bitrate streams.
	VBRXing VBRKind = iota + 1
	// VBRInfoTag is an "Info" tag, the LAME variant for constant bitrate streams.
	VBRInfoTag
	// VBRFraunhofer is a "VBRI" tag.
	VBRFraunhofer
)

func (k VBRKind) String() string {
	switch k {
	case VBRXing:
		return "Xing"
	case VBRInfoTag:
		return "Info"
	case VBRFraunhofer:
		return "VBRI"
	}
	return "none"
}

const (
	xingFlagFrames = 1 << iota
	xingFlagBytes
)

// vbriOffset is the fixed VBRI position: header plus 32 bytes.
const vbriOffset = HeaderSize + 32

// VBRInfo holds the stream totals an encoder stored in the first frame.
// Only the counts are decoded; seek tables and quality fields are skipped.
type VBRInfo struct {
	Kind VBRKind
	// Frames is the number of audio frames, not counting the info frame.
	Frames    uint32
	HasFrames bool
	// Bytes is the audio stream size in bytes.
	Bytes    uint32
	HasBytes bool
}

// ParseVBRInfo looks for a Xing/Info tag right after the side information
// of frame, then for a VBRI tag. frame must start with the 4-byte header
// described by h.
func ParseVBRInfo(h Header, frame []byte) (*VBRInfo, error) {
	off := HeaderSize + int(h.SideInfoSize())
	if len(frame) >= off+8 {
		var kind VBRKind
		switch string(frame[off : off+4]) {
		case "Xing":
			kind = VBRXing
		case "Info":
			kind = VBRInfoTag
		}
		if kind != 0 {
			return parseXing(kind, frame[off+4:])
		}
	}

	if len(frame) >= vbriOffset+18 && string(frame[vbriOffset:vbriOffset+4]) == "VBRI" {
		// id(4) version(2) delay(2) quality(2) bytes(4) frames(4)
		b := frame[vbriOffset:]
		return &VBRInfo{
			Kind:      VBRFraunhofer,
			Bytes:     binary.BigEndian.Uint32(b[10:14]),
			HasBytes:  true,
			Frames:    binary.BigEndian.Uint32(b[14:18]),
			HasFrames: true,
		}, nil
	}

	return nil, ErrNoVBRInfo
}

func parseXing(kind VBRKind, b []byte) (*VBRInfo, error) {
	info := &VBRInfo{Kind: kind}
	flags := binary.BigEndian.Uint32(b[:4])
	b = b[4:]

	if flags&xingFlagFrames != 0 {
		if len(b) < 4 {
			return info, nil
		}
		info.Frames = binary.BigEndian.Uint32(b[:4])
		info.HasFrames = true
		b = b[4:]
	}

	if flags&xingFlagBytes != 0 && len(b) >= 4 {
		info.Bytes = binary.BigEndian.Uint32(b[:4])
		info.HasBytes = true
	}

	return info, nil
}
