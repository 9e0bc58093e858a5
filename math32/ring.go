// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Ring is a flat annulus around Center, in the plane perpendicular to Up,
// between InnerRadius and OuterRadius.
type Ring struct {
	Center      Vector3
	Up          Vector3
	InnerRadius float32
	OuterRadius float32
}

// NewRing returns a new [Ring]. A zero up vector is replaced with +Y.
func NewRing(center, up Vector3, inner, outer float32) Ring {
	r := Ring{Center: center, Up: up, InnerRadius: inner, OuterRadius: outer}
	if r.Up.IsZero() {
		r.Up = Vec3(0, 1, 0)
	}
	return r
}

// Basis returns two orthonormal vectors spanning the plane of the ring.
// The first is Up x X, falling back to Up x Y when Up is parallel to X.
func (r *Ring) Basis() (b1, b2 Vector3) {
	up := r.Up.Normal()
	b1 = up.Cross(Vec3(1, 0, 0))
	if b1.LengthSquared() < Epsilon {
		b1 = up.Cross(Vec3(0, 1, 0))
	}
	b1.SetNormal()
	b2 = up.Cross(b1)
	return
}

// At returns the point at the given radius and angle in radians
// in the plane of the ring.
func (r *Ring) At(radius, angle float32) Vector3 {
	b1, b2 := r.Basis()
	s, c := Sincos(angle)
	return r.Center.Add(b1.MulScalar(radius * c)).Add(b2.MulScalar(radius * s))
}

// RadiusAt maps a uniform value u in [0, 1) to a radius between the
// inner and outer radius such that points are uniform over the area
// of the annulus.
func (r *Ring) RadiusAt(u float32) float32 {
	in2 := r.InnerRadius * r.InnerRadius
	out2 := r.OuterRadius * r.OuterRadius
	return Sqrt(in2 + u*(out2-in2))
}

// Area returns the area of the annulus.
func (r *Ring) Area() float32 {
	return Pi * Abs(r.OuterRadius*r.OuterRadius-r.InnerRadius*r.InnerRadius)
}
