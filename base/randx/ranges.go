// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randx

// Uniform32 returns a value uniformly distributed in [min, max).
// Optionally can pass a single Rand interface to use --
// otherwise uses system global Rand source.
func Uniform32(min, max float32, randOpt ...Rand) float32 {
	rnd := optRand(randOpt)
	return min + (max-min)*rnd.Float32()
}

// Signed32 returns a value uniformly distributed in [-1, 1).
func Signed32(randOpt ...Rand) float32 {
	return Uniform32(-1, 1, randOpt...)
}
