// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package common

import (
	"fmt"
	"time"
)

// PrettyDuration formats a duration with reduced precision, the way the
// teacher's worker.go logs mining elapsed time ("elapsed", common.PrettyDuration(...)).
type PrettyDuration time.Duration

var durationDecimals = []time.Duration{time.Second, time.Millisecond, time.Microsecond, time.Nanosecond}

func (d PrettyDuration) String() string {
	label := time.Duration(d)
	for _, unit := range durationDecimals {
		if label >= unit || unit == time.Nanosecond {
			return fmt.Sprintf("%.3f%s", float64(label)/float64(unit)*1000/1000, unitSuffix(unit))
		}
	}
	return label.String()
}

func unitSuffix(unit time.Duration) string {
	switch unit {
	case time.Second:
		return "s"
	case time.Millisecond:
		return "ms"
	case time.Microsecond:
		return "µs"
	default:
		return "ns"
	}
}
