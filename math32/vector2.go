// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

import "fmt"

// Vector2 is a 2D vector/point with X and Y components.
// It is used for texture coordinates.
type Vector2 struct {
	X float32
	Y float32
}

// Vec2 returns a new [Vector2] with the given x and y components.
func Vec2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// Vector2Scalar returns a new [Vector2] with all components set to the given scalar value.
func Vector2Scalar(scalar float32) Vector2 {
	return Vector2{X: scalar, Y: scalar}
}

// Set sets this vector X and Y components.
func (v *Vector2) Set(x, y float32) {
	v.X = x
	v.Y = y
}

// SetScalar sets all vector components to the same scalar value.
func (v *Vector2) SetScalar(scalar float32) {
	v.X = scalar
	v.Y = scalar
}

// String returns a string representation of the vector.
func (v Vector2) String() string {
	return fmt.Sprintf("(%v, %v)", v.X, v.Y)
}

// Add adds other vector to this one and returns the result in a new vector.
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts other vector from this one and returns the result in a new vector.
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{v.X - other.X, v.Y - other.Y}
}

// MulScalar returns the vector multiplied by the given scalar.
func (v Vector2) MulScalar(s float32) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Dot returns the dot product of this vector with the given other vector.
func (v Vector2) Dot(other Vector2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the length of this vector.
func (v Vector2) Length() float32 {
	return Sqrt(v.X*v.X + v.Y*v.Y)
}

// ToSlice copies this vector's components to the given float32 slice starting at idx.
func (v Vector2) ToSlice(array []float32, idx int) {
	array[idx] = v.X
	array[idx+1] = v.Y
}

// FromSlice sets this vector's components from the given float32 slice starting at idx.
func (v *Vector2) FromSlice(array []float32, idx int) {
	v.X = array[idx]
	v.Y = array[idx+1]
}
