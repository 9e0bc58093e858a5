// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Rect3 is a parallelogram in 3D defined by three corners: A, and the
// two corners B and C adjacent to it. The fourth corner is B + C - A.
type Rect3 struct {
	A Vector3
	B Vector3
	C Vector3
}

// NewRect3 returns a new [Rect3] with the given corners.
func NewRect3(a, b, c Vector3) Rect3 {
	return Rect3{a, b, c}
}

// At returns the point A + (B-A)*s + (C-A)*t.
// Values of s and t in [0, 1] cover the parallelogram.
func (r *Rect3) At(s, t float32) Vector3 {
	return r.A.Add(r.B.Sub(r.A).MulScalar(s)).Add(r.C.Sub(r.A).MulScalar(t))
}

// Center returns the center of the parallelogram.
func (r *Rect3) Center() Vector3 {
	return r.At(0.5, 0.5)
}

// Normal returns the unit normal of the plane through the three corners,
// or a zero vector if they are collinear.
func (r *Rect3) Normal() Vector3 {
	return r.B.Sub(r.A).Cross(r.C.Sub(r.A)).Normal()
}

// Area returns the area of the parallelogram.
func (r *Rect3) Area() float32 {
	return r.B.Sub(r.A).Cross(r.C.Sub(r.A)).Length()
}
