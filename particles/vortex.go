// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import "cogentcore.org/particles/math32"

// Vortex swirls particles around an axis line. The push is tangent
// to the circle around the axis through the particle, tilted outward
// by Divergence.
type Vortex struct {
	InfluenceBase

	// Origin is a point on the axis.
	Origin math32.Vector3

	// Axis is the unit direction of the axis.
	Axis math32.Vector3

	// Strength is the velocity change per second.
	Strength float32

	// Divergence tilts the push away from the axis, in radians.
	Divergence float32

	// Random scales the strength by a uniform random factor in [0, 1).
	Random bool
}

// NewVortex returns a new enabled [Vortex] around the given axis line.
func NewVortex(strength, divergence float32, origin, axis math32.Vector3, random bool) *Vortex {
	return &Vortex{Strength: strength, Divergence: divergence, Origin: origin, Axis: axis, Random: random}
}

func (v *Vortex) Prepare(sys *System) {}

func (v *Vortex) Apply(dt float32, p *Particle, index int) {
	tangent := v.Axis.Cross(p.Position.Sub(v.Origin))
	if tangent.IsZero() {
		return
	}
	tangent.SetNormal()
	if v.Divergence != 0 {
		tangent = tangent.RotateAxis(v.Axis, -v.Divergence)
	}
	s := v.Strength * dt
	if v.Random {
		s *= p.sys.rand.Float32()
	}
	p.Velocity.SetAdd(tangent.MulScalar(s))
}
