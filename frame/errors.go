// SPDX-License-Identifier: EPL-2.0

package frame

import "errors"

var (
	ErrSyncLost           = errors.New("frame sync not found")
	ErrReservedVersion    = errors.New("reserved MPEG version")
	ErrReservedLayer      = errors.New("reserved MPEG layer")
	ErrReservedBitrate    = errors.New("reserved bitrate index")
	ErrReservedSampleRate = errors.New("reserved sample rate index")
	ErrFreeBitrate        = errors.New("free format bitrate")
	ErrShortHeader        = errors.New("header needs 4 bytes")
	ErrNoVBRInfo          = errors.New("no Xing, Info or VBRI header")
)

// IsResync reports whether err means "no valid frame starts here": the
// caller should move one byte forward and try again.
func IsResync(err error) bool {
	return errors.Is(err, ErrSyncLost) ||
		errors.Is(err, ErrReservedVersion) ||
		errors.Is(err, ErrReservedLayer) ||
		errors.Is(err, ErrReservedBitrate) ||
		errors.Is(err, ErrReservedSampleRate)
}
