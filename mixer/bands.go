// =================================================================================
//
//			mx-alias - https://www.foxhollow.cc/projects/mx-alias/
//
//		 mx-alias reads the card routing of a digital mixing console and
//	  names the matching audio interface ports on the recording host
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package mixer

import "fmt"

// Band is one row of a classification table. It covers every code after the
// previous row's Upper up to and including its own Upper.
type Band[K comparable] struct {
	Upper int
	Kind  K
}

// Bands is an ordered classification table over a contiguous code space starting at 0.
type Bands[K comparable] []Band[K]

// NewBands checks that the upper bounds strictly ascend. Tables are package
// level vars, so a mis-ordered table fails at init rather than mid-scan.
func NewBands[K comparable](rows ...Band[K]) Bands[K] {
	for i := 1; i < len(rows); i++ {
		if rows[i].Upper <= rows[i-1].Upper {
			panic(fmt.Sprintf("band %d upper bound %d does not exceed %d", i, rows[i].Upper, rows[i-1].Upper))
		}
	}

	return Bands[K](rows)
}

// Classify returns the band a code falls in and the code's offset from the
// first code of that band. Codes outside the table are not ok.
func (bands Bands[K]) Classify(code int) (K, int, bool) {
	base := 0

	for _, band := range bands {
		if code < base {
			break
		}

		if code <= band.Upper {
			return band.Kind, code - base, true
		}

		base = band.Upper + 1
	}

	var zero K
	return zero, 0, false
}

// Lower returns the first code of the band of the given kind.
func (bands Bands[K]) Lower(kind K) (int, bool) {
	base := 0

	for _, band := range bands {
		if band.Kind == kind {
			return base, true
		}

		base = band.Upper + 1
	}

	return 0, false
}
