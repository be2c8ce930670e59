// SPDX-License-Identifier: EPL-2.0

package duration

import "errors"

var (
	ErrPartialScan = errors.New("exact duration needs a complete scan")
)
