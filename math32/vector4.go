// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

import (
	"fmt"
	"image/color"
)

// Vector4 is a vector with X, Y, Z and W components.
// It is used for RGBA colors, with components in the 0-1 range
// stored in X (red), Y (green), Z (blue) and W (alpha).
type Vector4 struct {
	X float32
	Y float32
	Z float32
	W float32
}

// Vec4 returns a new [Vector4] with the given x, y, z, and w components.
func Vec4(x, y, z, w float32) Vector4 {
	return Vector4{X: x, Y: y, Z: z, W: w}
}

// Vector4Scalar returns a new [Vector4] with all components set to the given scalar value.
func Vector4Scalar(scalar float32) Vector4 {
	return Vector4{X: scalar, Y: scalar, Z: scalar, W: scalar}
}

// NewVector4Color returns a [Vector4] from a standard [color.Color],
// with components normalized to the 0-1 range. Color values are
// premultiplied by alpha, so they are divided back out.
func NewVector4Color(c color.Color) Vector4 {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Vector4{}
	}
	fa := float32(a)
	return Vec4(float32(r)/fa, float32(g)/fa, float32(b)/fa, fa/0xffff)
}

// Set sets this vector X, Y, Z and W components.
func (v *Vector4) Set(x, y, z, w float32) {
	v.X = x
	v.Y = y
	v.Z = z
	v.W = w
}

// SetScalar sets all vector components to the same scalar value.
func (v *Vector4) SetScalar(scalar float32) {
	v.X = scalar
	v.Y = scalar
	v.Z = scalar
	v.W = scalar
}

// String returns a string representation of the vector.
func (v Vector4) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", v.X, v.Y, v.Z, v.W)
}

// ToSlice copies this vector's components to the given float32 slice starting at idx.
func (v Vector4) ToSlice(array []float32, idx int) {
	array[idx] = v.X
	array[idx+1] = v.Y
	array[idx+2] = v.Z
	array[idx+3] = v.W
}

// FromSlice sets this vector's components from the given float32 slice starting at idx.
func (v *Vector4) FromSlice(array []float32, idx int) {
	v.X = array[idx]
	v.Y = array[idx+1]
	v.Z = array[idx+2]
	v.W = array[idx+3]
}

// Add adds other vector to this one and returns the result in a new vector.
func (v Vector4) Add(other Vector4) Vector4 {
	return Vector4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// Sub subtracts other vector from this one and returns result in new vector.
func (v Vector4) Sub(other Vector4) Vector4 {
	return Vector4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

// MulScalar returns a new vector with each component multiplied by the given scalar.
func (v Vector4) MulScalar(s float32) Vector4 {
	return Vector4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Lerp returns vector with each components as the linear interpolated value of
// alpha between itself and the corresponding other component.
func (v Vector4) Lerp(other Vector4, alpha float32) Vector4 {
	return Vector4{v.X + (other.X-v.X)*alpha, v.Y + (other.Y-v.Y)*alpha, v.Z + (other.Z-v.Z)*alpha,
		v.W + (other.W-v.W)*alpha}
}

// Clamp returns the vector with each component clamped to the 0-1 range.
func (v Vector4) Clamp() Vector4 {
	return Vector4{Clamp(v.X, 0, 1), Clamp(v.Y, 0, 1), Clamp(v.Z, 0, 1), Clamp(v.W, 0, 1)}
}

// AsRGBA returns the vector as a standard non-premultiplied [color.NRGBA],
// clamping each component to the 0-1 range first.
func (v Vector4) AsRGBA() color.NRGBA {
	c := v.Clamp()
	return color.NRGBA{uint8(c.X*255 + 0.5), uint8(c.Y*255 + 0.5), uint8(c.Z*255 + 0.5), uint8(c.W*255 + 0.5)}
}
