// SPDX-License-Identifier: EPL-2.0

package frame

// Version is the MPEG audio version a frame was encoded with.
type Version uint8

const (
	Version1 Version = iota
	Version2
	Version25
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "MPEG-1"
	case Version2:
		return "MPEG-2"
	case Version25:
		return "MPEG-2.5"
	}
	return "reserved"
}

// VersionGroup collapses MPEG-2 and MPEG-2.5, which share the bitrate and
// samples-per-frame tables.
type VersionGroup uint8

const (
	GroupMPEG1 VersionGroup = iota
	GroupMPEG2
)

// Group returns the table axis used for bitrates and samples per frame.
func Group(v Version) VersionGroup {
	if v == Version1 {
		return GroupMPEG1
	}
	return GroupMPEG2
}

// Layer is the MPEG audio compression layer.
type Layer uint8

const (
	Layer1 Layer = iota
	Layer2
	Layer3
)

func (l Layer) String() string {
	switch l {
	case Layer1:
		return "Layer I"
	case Layer2:
		return "Layer II"
	case Layer3:
		return "Layer III"
	}
	return "reserved"
}

// ChannelMode is the channel layout signalled in the header.
type ChannelMode uint8

const (
	Stereo ChannelMode = iota
	JointStereo
	DualChannel
	Mono
)

func (m ChannelMode) String() string {
	switch m {
	case Stereo:
		return "stereo"
	case JointStereo:
		return "joint stereo"
	case DualChannel:
		return "dual channel"
	case Mono:
		return "mono"
	}
	return "unknown"
}

// bitrates in kbps, indexed by [group][layer][index]. Index 0 (free) and
// 15 (reserved) hold zero.
var bitrates = [2][3][16]uint32{
	{
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
	},
	{
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
	},
}

var sampleRates = [3][3]uint32{
	{44100, 48000, 32000},
	{22050, 24000, 16000},
	{11025, 12000, 8000},
}

// samples per frame, indexed by [layer][group]
var samples = [3][2]uint16{
	{384, 384},
	{1152, 1152},
	{1152, 576},
}

// side information bytes, indexed by [version][channel mode]
var sideInfoSizes = [3][4]uint32{
	{32, 32, 32, 17},
	{17, 17, 17, 9},
	{17, 17, 17, 9},
}

var paddingUnits = [3]uint8{4, 1, 1}

// MaxFrameLength is the largest frame any valid header can describe
// (MPEG-2.5 Layer II, 160 kbps, 8000 Hz, padded).
const MaxFrameLength = 2881

// Bitrate returns the table bitrate in kbps. Index 0 (free format) and 15
// (reserved) are reported as absent.
func Bitrate(layer Layer, group VersionGroup, index uint8) (uint32, bool) {
	if layer > Layer3 || group > GroupMPEG2 || index == 0 || index >= 15 {
		return 0, false
	}
	return bitrates[group][layer][index], true
}

// SampleRate returns the sampling frequency in Hz, or false for the
// reserved index 3.
func SampleRate(version Version, index uint8) (uint32, bool) {
	if version > Version25 || index >= 3 {
		return 0, false
	}
	return sampleRates[version][index], true
}

// SamplesPerFrame returns 0 for out-of-range input.
func SamplesPerFrame(layer Layer, group VersionGroup) uint16 {
	if layer > Layer3 || group > GroupMPEG2 {
		return 0
	}
	return samples[layer][group]
}

// SideInfoSize returns the Layer III side information length in bytes that
// follows the header (and CRC) of a frame.
func SideInfoSize(version Version, mode ChannelMode) uint32 {
	if version > Version25 || mode > Mono {
		return 0
	}
	return sideInfoSizes[version][mode]
}

// PaddingUnit is the slot size of a layer: one padding unit is added to a
// padded frame.
func PaddingUnit(layer Layer) uint8 {
	if layer > Layer3 {
		return 0
	}
	return paddingUnits[layer]
}
