// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randx

import (
	"time"
)

// Seeds is a set of random seeds, typically used one per
// independently simulated system.
type Seeds []int64

// Init allocates given number of seeds and initializes them to
// sequential numbers base+1..base+n
func (rs *Seeds) Init(n int, base int64) {
	*rs = make([]int64, n)
	for i := range *rs {
		(*rs)[i] = base + int64(i) + 1
	}
}

// NewSeeds sets a new set of random seeds based on current time
func (rs *Seeds) NewSeeds() {
	rn := time.Now().UnixNano()
	for i := range *rs {
		(*rs)[i] = rn + int64(i)
	}
}

// Rand returns a new deterministic source for the seed at the given index.
func (rs Seeds) Rand(idx int) *SysRand {
	return NewSysRand(rs[idx])
}
