// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randx

// PChoose32 chooses an index in given slice of float32's at random according
// to the probilities of each item (must be normalized to sum to 1).
// Optionally can pass a single Rand interface to use --
// otherwise uses system global Rand source.
func PChoose32(ps []float32, randOpt ...Rand) int {
	rnd := optRand(randOpt)
	pv := rnd.Float32()
	sum := float32(0)
	for i, p := range ps {
		sum += p
		if pv < sum { // note: lower values already excluded
			return i
		}
	}
	return len(ps) - 1
}

// Normalize32 scales the given non-negative weights in place so they
// sum to 1, as needed by [PChoose32]. If they sum to zero, every weight
// is set to the same value.
func Normalize32(ps []float32) {
	sum := float32(0)
	for _, p := range ps {
		sum += p
	}
	if sum == 0 {
		for i := range ps {
			ps[i] = 1 / float32(len(ps))
		}
		return
	}
	for i := range ps {
		ps[i] /= sum
	}
}

func optRand(randOpt []Rand) Rand {
	if len(randOpt) == 0 {
		return NewGlobalRand()
	}
	return randOpt[0]
}
