// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import "cogentcore.org/particles/math32"

// Influence is a per-tick force or steering model applied to the
// velocity of alive particles by a [Controller], in insertion order.
type Influence interface {

	// IsEnabled returns whether the influence is applied.
	IsEnabled() bool

	// SetEnabled sets whether the influence is applied.
	SetEnabled(on bool)

	// Prepare is called once per processed tick, before any particle
	// is updated. Influences with per-particle state resize it here.
	Prepare(sys *System)

	// Apply updates the particle at the given pool index
	// for a step of dt seconds.
	Apply(dt float32, p *Particle, index int)
}

// InfluenceBase provides the enabled state of an [Influence].
// The zero value is enabled.
type InfluenceBase struct {

	// Disabled turns the influence off.
	Disabled bool
}

func (ib *InfluenceBase) IsEnabled() bool { return !ib.Disabled }

func (ib *InfluenceBase) SetEnabled(on bool) { ib.Disabled = !on }

// Wind pushes particles along a direction.
type Wind struct {
	InfluenceBase

	// Direction is the unit direction the wind blows in.
	Direction math32.Vector3

	// Strength scales the direction twice: once as a magnitude and
	// once as the (optionally randomized) factor, so the velocity change
	// per second is Strength squared.
	Strength float32

	// Random scales the factor by a uniform random value in [0, 1)
	// for every particle and tick.
	Random bool

	// RotateWithScene rotates the direction by the world rotation.
	RotateWithScene bool

	worldDir math32.Vector3
}

// NewWind returns a new enabled [Wind].
func NewWind(strength float32, dir math32.Vector3, random, rotateWithScene bool) *Wind {
	return &Wind{Strength: strength, Direction: dir, Random: random, RotateWithScene: rotateWithScene}
}

func (w *Wind) Prepare(sys *System) {
	w.worldDir = w.Direction
	if w.RotateWithScene {
		rot := sys.WorldRotation()
		w.worldDir = rot.MulVector3(w.Direction)
	}
	w.worldDir.SetMulScalar(w.Strength)
}

func (w *Wind) Apply(dt float32, p *Particle, index int) {
	s := w.Strength
	if w.Random {
		s *= p.sys.rand.Float32()
	}
	p.Velocity.SetAdd(w.worldDir.MulScalar(s * dt))
}

// Gravity accelerates particles by a constant vector.
type Gravity struct {
	InfluenceBase

	// Gravity is the velocity change per second.
	Gravity math32.Vector3

	// RotateWithScene rotates the gravity vector by the world rotation.
	RotateWithScene bool

	worldGravity math32.Vector3
}

// NewGravity returns a new enabled [Gravity].
func NewGravity(gravity math32.Vector3, rotateWithScene bool) *Gravity {
	return &Gravity{Gravity: gravity, RotateWithScene: rotateWithScene}
}

func (g *Gravity) Prepare(sys *System) {
	g.worldGravity = g.Gravity
	if g.RotateWithScene {
		rot := sys.WorldRotation()
		g.worldGravity = rot.MulVector3(g.Gravity)
	}
}

func (g *Gravity) Apply(dt float32, p *Particle, index int) {
	p.Velocity.SetAdd(g.worldGravity.MulScalar(dt))
}

// Drag slows particles in proportion to their velocity and
// inverse mass. The damping is linear in the velocity.
type Drag struct {
	InfluenceBase

	// Coefficient is the fraction of velocity removed per second
	// for a particle of unit mass.
	Coefficient float32
}

// NewDrag returns a new enabled [Drag].
func NewDrag(coefficient float32) *Drag {
	return &Drag{Coefficient: coefficient}
}

func (d *Drag) Prepare(sys *System) {}

// Apply removes at most the whole velocity in one tick. A zero mass
// particle (infinite inverse mass) stops dead.
func (d *Drag) Apply(dt float32, p *Particle, index int) {
	k := d.Coefficient * dt
	if k == 0 || p.invMass == 0 {
		return
	}
	if math32.IsInf(p.invMass, 0) {
		p.Velocity = math32.Vector3{}
		return
	}
	k = min(k*p.invMass, 1)
	p.Velocity.SetAdd(p.Velocity.MulScalar(-k))
}
