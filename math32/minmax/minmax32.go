// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package minmax provides a struct that holds Min and Max values.
package minmax

import "fmt"

// F32 represents a min / max range for float32 values.
// Supports clipping, renormalizing, etc
type F32 struct {
	Min float32
	Max float32
}

// Set sets the min and max values
func (mr *F32) Set(mn, mx float32) {
	mr.Min = mn
	mr.Max = mx
}

// String returns the range as "[min, max]".
func (mr F32) String() string {
	return fmt.Sprintf("[%v, %v]", mr.Min, mr.Max)
}

// IsValid returns true if Min <= Max
func (mr *F32) IsValid() bool {
	return mr.Min <= mr.Max
}

// InRange tests whether value is within the range (>= Min and <= Max)
func (mr *F32) InRange(val float32) bool {
	return ((val >= mr.Min) && (val <= mr.Max))
}

// Range returns Max - Min
func (mr *F32) Range() float32 {
	return mr.Max - mr.Min
}

// Midpoint returns point halfway between Min and Max
func (mr *F32) Midpoint() float32 {
	return 0.5 * (mr.Max + mr.Min)
}

// ProjValue projects a normalized value in the 0-1 range into the range:
// Min + val * (Max - Min).
func (mr *F32) ProjValue(val float32) float32 {
	return mr.Min + (val * mr.Range())
}

// ClipValue clips given value within Min / Max range
func (mr *F32) ClipValue(val float32) float32 {
	if val < mr.Min {
		return mr.Min
	}
	if val > mr.Max {
		return mr.Max
	}
	return val
}

// FitValInRange adjusts our Min, Max to fit given value within Min, Max range
// returns true if we had to adjust to fit.
func (mr *F32) FitValInRange(val float32) bool {
	adj := false
	if val < mr.Min {
		mr.Min = val
		adj = true
	}
	if val > mr.Max {
		mr.Max = val
		adj = true
	}
	return adj
}
