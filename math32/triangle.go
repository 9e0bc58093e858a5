// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Triangle represents a triangle made of three vertices.
type Triangle struct {
	A Vector3
	B Vector3
	C Vector3
}

// NewTriangle returns a new Triangle object.
func NewTriangle(a, b, c Vector3) Triangle {
	return Triangle{a, b, c}
}

// Normal returns the triangle's normal.
func Normal(a, b, c Vector3) Vector3 {
	nv := c.Sub(b).Cross(a.Sub(b))
	lenSq := nv.LengthSquared()
	if lenSq > 0 {
		return nv.MulScalar(1 / Sqrt(lenSq))
	}
	return Vector3{}
}

// BarycoordFromPoint returns the barycentric coordinates for the specified point.
func BarycoordFromPoint(point, a, b, c Vector3) Vector3 {
	v0 := c.Sub(a)
	v1 := b.Sub(a)
	v2 := point.Sub(a)

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	denom := dot00*dot11 - dot01*dot01

	// colinear or singular triangle
	if denom == 0 {
		return Vec3(-2, -1, -1)
	}

	invDenom := 1 / denom
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	// barycoordinates must always sum to 1
	return Vec3(1-u-v, v, u)
}

// Set sets the triangle's three vertices.
func (t *Triangle) Set(a, b, c Vector3) {
	t.A = a
	t.B = b
	t.C = c
}

// SetFromSlice sets the triangle's vertices from the given flat xyz
// coordinate slice and vertex indices.
func (t *Triangle) SetFromSlice(array []float32, i0, i1, i2 int) {
	t.A.FromSlice(array, i0*3)
	t.B.FromSlice(array, i1*3)
	t.C.FromSlice(array, i2*3)
}

// Area returns the triangle's area.
func (t *Triangle) Area() float32 {
	v0 := t.C.Sub(t.B)
	v1 := t.A.Sub(t.B)
	return v0.Cross(v1).Length() * 0.5
}

// Midpoint returns the triangle's midpoint.
func (t *Triangle) Midpoint() Vector3 {
	return t.A.Add(t.B).Add(t.C).MulScalar(float32(1) / 3)
}

// Normal returns the triangle's normal.
func (t *Triangle) Normal() Vector3 {
	return Normal(t.A, t.B, t.C)
}

// BarycoordFromPoint returns the barycentric coordinates for the specified point.
func (t *Triangle) BarycoordFromPoint(point Vector3) Vector3 {
	return BarycoordFromPoint(point, t.A, t.B, t.C)
}

// ContainsPoint returns whether the triangle contains a point
// lying in its plane.
func (t *Triangle) ContainsPoint(point Vector3) bool {
	rv := t.BarycoordFromPoint(point)
	return rv.X >= -Epsilon && rv.Y >= -Epsilon && rv.Z >= -Epsilon
}

// PointAt maps two uniform values in [0, 1) to a point uniformly
// distributed inside the triangle. Pairs with u + v > 1 are folded
// back into the triangle.
func (t *Triangle) PointAt(u, v float32) Vector3 {
	if u+v > 1 {
		u = 1 - u
		v = 1 - v
	}
	return t.A.Add(t.B.Sub(t.A).MulScalar(u)).Add(t.C.Sub(t.A).MulScalar(v))
}
