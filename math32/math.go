// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

// Package math32 is a float32 based vector, matrix, and geometry package
// for particle simulation and mesh generation.
package math32

import (
	"cmp"
	"math"

	"github.com/chewxy/math32"
)

// These are mostly just wrappers around chewxy/math32, which has
// some optimized implementations.

// Mathematical constants.
const (
	Pi = math.Pi

	// TwoPi is the full circle in radians.
	TwoPi = 2 * math.Pi

	// HalfPi is a quarter circle in radians.
	HalfPi = math.Pi / 2
)

// Floating-point limit values.
const (
	MaxFloat32             = math.MaxFloat32
	SmallestNonzeroFloat32 = math.SmallestNonzeroFloat32
)

const (
	// DegToRadFactor is the number of radians per degree.
	DegToRadFactor = Pi / 180

	// RadToDegFactor is the number of degrees per radian.
	RadToDegFactor = 180 / Pi
)

// Epsilon is the tolerance used for near-zero and near-parallel tests.
const Epsilon = 1e-6

// Infinity is positive infinity.
var Infinity = float32(math.Inf(1))

// DegToRad converts a number from degrees to radians
func DegToRad(degrees float32) float32 {
	return degrees * DegToRadFactor
}

// RadToDeg converts a number from radians to degrees
func RadToDeg(radians float32) float32 {
	return radians * RadToDegFactor
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return math32.Abs(x)
}

// Sign returns -1 if x < 0 and 1 otherwise.
func Sign(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}

// Acos returns the arccosine, in radians, of x.
//
// Special case is:
//
//	Acos(x) = NaN if x < -1 or x > 1
func Acos(x float32) float32 {
	return math32.Acos(x)
}

// Atan2 returns the arc tangent of y/x, using
// the signs of the two to determine the quadrant
// of the return value.
func Atan2(y, x float32) float32 {
	return math32.Atan2(y, x)
}

// Cos returns the cosine of the radian argument x.
func Cos(x float32) float32 {
	return math32.Cos(x)
}

// Sin returns the sine of the radian argument x.
func Sin(x float32) float32 {
	return math32.Sin(x)
}

// Sincos returns Sin(x), Cos(x).
func Sincos(x float32) (sin, cos float32) {
	return math32.Sincos(x)
}

// Sqrt returns the square root of x.
//
// Special cases are:
//
//	Sqrt(+Inf) = +Inf
//	Sqrt(±0) = ±0
//	Sqrt(x < 0) = NaN
//	Sqrt(NaN) = NaN
func Sqrt(x float32) float32 {
	return math32.Sqrt(x)
}

// Floor returns the greatest integer value less than or equal to x.
func Floor(x float32) float32 {
	return math32.Floor(x)
}

// Mod returns the floating-point remainder of x/y.
// The magnitude of the result is less than y and its
// sign agrees with that of x.
func Mod(x, y float32) float32 {
	return math32.Mod(x, y)
}

// Inf returns positive infinity if sign >= 0, negative infinity if sign < 0.
func Inf(sign int) float32 {
	return math32.Inf(sign)
}

// IsInf reports whether f is an infinity, according to sign.
// If sign > 0, IsInf reports whether f is positive infinity.
// If sign < 0, IsInf reports whether f is negative infinity.
// If sign == 0, IsInf reports whether f is either infinity.
func IsInf(x float32, sign int) bool {
	return math32.IsInf(x, sign)
}

// NaN returns an IEEE 754 “not-a-number” value.
func NaN() float32 {
	return math32.NaN()
}

// IsNaN reports whether f is an IEEE 754 “not-a-number” value.
func IsNaN(x float32) bool {
	return math32.IsNaN(x)
}

// Signbit reports whether x is negative or negative zero.
func Signbit(x float32) bool {
	return math32.Signbit(x)
}

// Lerp is linear interpolation between start and stop in proportion to amount
func Lerp(start, stop, amount float32) float32 {
	return (1-amount)*start + amount*stop
}

// Max returns the larger of x or y.
func Max(x, y float32) float32 {
	return math32.Max(x, y)
}

// Min returns the smaller of x or y.
func Min(x, y float32) float32 {
	return math32.Min(x, y)
}

// Clamp clamps x to the provided closed interval [a, b]
func Clamp[T cmp.Ordered](x, a, b T) T {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// NonNegative returns x, or 0 if x is negative.
func NonNegative(x float32) float32 {
	if x < 0 {
		return 0
	}
	return x
}
