// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package randx provides a seedable random number source interface
// and helpers for sampling ranges and weighted choices.
package randx

import "math/rand"

// Rand provides an interface with the subset of the standard
// rand.Rand methods used for sampling, to support the use of either the
// global rand generator or a separate, deterministically seeded source.
type Rand interface {
	// Seed uses the provided seed value to initialize the generator to a deterministic state.
	Seed(seed int64)

	// Int63 returns a non-negative pseudo-random 63-bit integer as an int64.
	Int63() int64

	// Intn returns, as an int, a non-negative pseudo-random number in the half-open interval [0,n).
	// It panics if n <= 0.
	Intn(n int) int

	// Float64 returns, as a float64, a pseudo-random number in the half-open interval [0.0,1.0).
	Float64() float64

	// Float32 returns, as a float32, a pseudo-random number in the half-open interval [0.0,1.0).
	Float32() float32
}

// SysRand supports the system random number generator
// for either a separate rand.Rand source, or, if that
// is nil, the global rand stream.
type SysRand struct {

	// if non-nil, use this random number source instead of the global default one
	Rand *rand.Rand
}

// NewGlobalRand returns a new SysRand that implements the
// randx.Rand interface, with the system global rand source.
func NewGlobalRand() *SysRand {
	return &SysRand{}
}

// NewSysRand returns a new SysRand with a new
// rand.Rand random source with given initial seed.
func NewSysRand(seed int64) *SysRand {
	r := &SysRand{}
	r.NewRand(seed)
	return r
}

// NewRand sets Rand to a new rand.Rand source using given seed.
func (r *SysRand) NewRand(seed int64) {
	r.Rand = rand.New(rand.NewSource(seed))
}

// Seed uses the provided seed value to initialize the generator to a deterministic state.
// On the global source this replaces it with a separate seeded source,
// so that the global stream is never reseeded.
func (r *SysRand) Seed(seed int64) {
	if r.Rand == nil {
		r.NewRand(seed)
		return
	}
	r.Rand.Seed(seed)
}

// Int63 returns a non-negative pseudo-random 63-bit integer as an int64.
func (r *SysRand) Int63() int64 {
	if r.Rand == nil {
		return rand.Int63()
	}
	return r.Rand.Int63()
}

// Intn returns, as an int, a non-negative pseudo-random number in the half-open interval [0,n).
// It panics if n <= 0.
func (r *SysRand) Intn(n int) int {
	if r.Rand == nil {
		return rand.Intn(n)
	}
	return r.Rand.Intn(n)
}

// Float64 returns, as a float64, a pseudo-random number in the half-open interval [0.0,1.0).
func (r *SysRand) Float64() float64 {
	if r.Rand == nil {
		return rand.Float64()
	}
	return r.Rand.Float64()
}

// Float32 returns, as a float32, a pseudo-random number in the half-open interval [0.0,1.0).
func (r *SysRand) Float32() float32 {
	if r.Rand == nil {
		return rand.Float32()
	}
	return r.Rand.Float32()
}
