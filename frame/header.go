// SPDX-License-Identifier: EPL-2.0

package frame

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-audio/audio"
)

// HeaderSize is the length of an encoded frame header in bytes.
const HeaderSize = 4

const (
	maskSync          = 0b11111111_11100000_00000000_00000000
	maskVersion       = 0b00000000_00011000_00000000_00000000
	maskLayer         = 0b00000000_00000110_00000000_00000000
	maskProtection    = 0b00000000_00000001_00000000_00000000
	maskBitrate       = 0b00000000_00000000_11110000_00000000
	maskSampleRate    = 0b00000000_00000000_00001100_00000000
	maskPadding       = 0b00000000_00000000_00000010_00000000
	maskPrivate       = 0b00000000_00000000_00000001_00000000
	maskChannelMode   = 0b00000000_00000000_00000000_11000000
	maskModeExtension = 0b00000000_00000000_00000000_00110000
	maskCopyright     = 0b00000000_00000000_00000000_00001000
	maskOriginal      = 0b00000000_00000000_00000000_00000100
	maskEmphasis      = 0b00000000_00000000_00000000_00000011
)

// versionBits maps the 2-bit version field; false marks the reserved value 01.
var versionBits = [4]struct {
	v  Version
	ok bool
}{
	{Version25, true},
	{0, false},
	{Version2, true},
	{Version1, true},
}

// layerBits maps the 2-bit layer field; false marks the reserved value 00.
var layerBits = [4]struct {
	l  Layer
	ok bool
}{
	{0, false},
	{Layer3, true},
	{Layer2, true},
	{Layer1, true},
}

// Header is one decoded frame header. It only holds the raw fields; every
// derived quantity is computed from the tables on demand.
type Header struct {
	Version Version
	Layer   Layer
	// Protected is true when a 16-bit CRC follows the header (protection bit 0).
	Protected       bool
	BitrateIndex    uint8
	SampleRateIndex uint8
	Padding         bool
	Private         bool
	ChannelMode     ChannelMode
	ModeExtension   uint8
	Copyright       bool
	Original        bool
	Emphasis        uint8
}

// Decode parses a big-endian header word.
//
// For a free format frame (bitrate index 0) the returned Header is fully
// populated and the error is ErrFreeBitrate, so callers can decide what to
// do with it. Every other error leaves the Header zero.
func Decode(word uint32) (Header, error) {
	if word&maskSync != maskSync {
		return Header{}, ErrSyncLost
	}

	ver := versionBits[(word&maskVersion)>>19]
	if !ver.ok {
		return Header{}, ErrReservedVersion
	}

	lay := layerBits[(word&maskLayer)>>17]
	if !lay.ok {
		return Header{}, ErrReservedLayer
	}

	bitrateIndex := uint8((word & maskBitrate) >> 12)
	if bitrateIndex == 15 {
		return Header{}, ErrReservedBitrate
	}

	sampleRateIndex := uint8((word & maskSampleRate) >> 10)
	if sampleRateIndex == 3 {
		return Header{}, ErrReservedSampleRate
	}

	h := Header{
		Version:         ver.v,
		Layer:           lay.l,
		Protected:       word&maskProtection == 0,
		BitrateIndex:    bitrateIndex,
		SampleRateIndex: sampleRateIndex,
		Padding:         word&maskPadding != 0,
		Private:         word&maskPrivate != 0,
		ChannelMode:     ChannelMode((word & maskChannelMode) >> 6),
		ModeExtension:   uint8((word & maskModeExtension) >> 4),
		Copyright:       word&maskCopyright != 0,
		Original:        word&maskOriginal != 0,
		Emphasis:        uint8(word & maskEmphasis),
	}

	if bitrateIndex == 0 {
		return h, ErrFreeBitrate
	}

	return h, nil
}

// DecodeBytes decodes the first four bytes of b.
func DecodeBytes(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d", ErrShortHeader, len(b))
	}
	return Decode(binary.BigEndian.Uint32(b))
}

// FreeFormat reports whether the frame uses a bitrate outside the table.
func (h Header) FreeFormat() bool { return h.BitrateIndex == 0 }

// Bitrate returns the frame bitrate in kbps, 0 for free format.
func (h Header) Bitrate() uint32 {
	kbps, _ := Bitrate(h.Layer, Group(h.Version), h.BitrateIndex)
	return kbps
}

// SampleRate returns the sampling frequency in Hz.
func (h Header) SampleRate() uint32 {
	hz, _ := SampleRate(h.Version, h.SampleRateIndex)
	return hz
}

func (h Header) SamplesPerFrame() uint16 {
	return SamplesPerFrame(h.Layer, Group(h.Version))
}

// SideInfoSize is the number of side information bytes after the header.
func (h Header) SideInfoSize() uint32 {
	return SideInfoSize(h.Version, h.ChannelMode)
}

// FrameLength returns the frame size in bytes, header included. It is 0 for
// free format frames, whose size cannot be looked up.
func (h Header) FrameLength() int {
	return h.FrameLengthAt(h.Bitrate())
}

// FrameLengthAt computes the frame size as if the frame had the given
// bitrate in kbps. The number of slots is samples/8 bits-to-bytes, divided
// by the slot size, scaled by bitrate over sample rate and truncated.
func (h Header) FrameLengthAt(kbps uint32) int {
	sr := h.SampleRate()
	slot := uint64(PaddingUnit(h.Layer))
	if kbps == 0 || sr == 0 || slot == 0 {
		return 0
	}

	coeff := uint64(h.SamplesPerFrame()) / 8 / slot
	slots := coeff * uint64(kbps) * 1000 / uint64(sr)
	if h.Padding {
		slots++
	}

	return int(slots * slot)
}

// Duration is the playback time of the frame.
func (h Header) Duration() time.Duration {
	sr := h.SampleRate()
	if sr == 0 {
		return 0
	}
	return time.Duration(uint64(h.SamplesPerFrame()) * uint64(time.Second) / uint64(sr))
}

func (h Header) Channels() int {
	if h.ChannelMode == Mono {
		return 1
	}
	return 2
}

// Format describes the PCM stream the frame decodes to.
func (h Header) Format() *audio.Format {
	return &audio.Format{
		NumChannels: h.Channels(),
		SampleRate:  int(h.SampleRate()),
	}
}

func (h Header) String() string {
	br := "free"
	if kbps := h.Bitrate(); kbps != 0 {
		br = fmt.Sprintf("%d kbps", kbps)
	}
	return fmt.Sprintf("%s %s, %s, %d Hz, %s", h.Version, h.Layer, br, h.SampleRate(), h.ChannelMode)
}
