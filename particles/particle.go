// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"math"

	"cogentcore.org/particles/math32"
)

// Particle is the kinematic and visual state of one simulated particle.
// Particles are owned by a [System], which assigns each one a fixed
// range of vertex slots in its buffers.
type Particle struct {

	// Position is the current location.
	Position math32.Vector3

	// Velocity is in units per millisecond.
	Velocity math32.Vector3

	// Status is the lifecycle state.
	Status Status

	// Age is the time since the last spawn, in milliseconds.
	Age float32

	// LifeSpan is the age at which the particle dies, in milliseconds.
	LifeSpan float32

	// Color is the current RGBA color.
	Color math32.Vector4

	// Size is the current half extent of the billboard.
	Size float32

	// SpinAngle is the accumulated in-plane rotation, in radians.
	SpinAngle float32

	startColor  math32.Vector4
	colorChange math32.Vector4

	mass    float32
	invMass float32

	startIndex int

	// sys is the owning system; particles only read its configuration
	// and write their own buffer slots.
	sys *System
}

// InvMassOf returns the inverse of the given mass, with the
// singularities mapped explicitly: 0 has infinite inverse mass,
// +Inf has zero inverse mass and -Inf has negative zero.
func InvMassOf(mass float32) float32 {
	switch {
	case mass == 0:
		return math32.Inf(1)
	case math32.IsInf(mass, 1):
		return 0
	case math32.IsInf(mass, -1):
		return float32(math.Copysign(0, -1))
	}
	return 1 / mass
}

// Mass returns the mass of the particle.
func (p *Particle) Mass() float32 { return p.mass }

// InvMass returns the inverse mass of the particle.
func (p *Particle) InvMass() float32 { return p.invMass }

// SetMass sets the mass and recomputes the inverse mass with [InvMassOf].
func (p *Particle) SetMass(mass float32) {
	p.mass = mass
	p.invMass = InvMassOf(mass)
}

// SetMasses sets both the mass and the inverse mass as given.
func (p *Particle) SetMasses(mass, invMass float32) {
	p.mass = mass
	p.invMass = invMass
}

// StartIndex returns the first vertex slot of the particle.
func (p *Particle) StartIndex() int { return p.startIndex }

// System returns the owning system.
func (p *Particle) System() *System { return p.sys }

// LifeRatio returns Age / LifeSpan, or 1 for a zero life span.
func (p *Particle) LifeRatio() float32 {
	if p.LifeSpan <= 0 {
		return 1
	}
	return p.Age / p.LifeSpan
}

// init sets the never-spawned state of a freshly allocated particle.
func (p *Particle) init() {
	p.Velocity = p.sys.RandomVelocity()
	p.Position.SetZero()
	p.LifeSpan = p.sys.RandomLifeSpan()
	p.startColor = p.sys.startColor
	p.colorChange = p.sys.startColor.Sub(p.sys.endColor)
	p.Color = p.sys.startColor
	p.Size = p.sys.startSize
	p.Status = Available
	p.writeColor()
}

// Recreate resets the particle for a new life of the given span:
// color and size go back to the system start values and age and
// spin back to zero. The status becomes [Available]; the system
// marks it [Alive] once placed.
func (p *Particle) Recreate(lifeSpan float32) {
	p.LifeSpan = lifeSpan
	p.startColor = p.sys.startColor
	p.colorChange = p.sys.startColor.Sub(p.sys.endColor)
	p.Color = p.startColor
	p.writeColor()
	p.Size = p.sys.startSize
	p.Age = 0
	p.SpinAngle = 0
	p.Status = Available
}

// UpdateAndCheck advances the particle by dt seconds and returns
// whether it is done: not alive on entry, or dead after aging.
// Dead particles have zero alpha and all vertices collapsed
// onto the first one.
func (p *Particle) UpdateAndCheck(dt float32) bool {
	if p.Status != Alive {
		return true
	}
	p.Age += dt * 1000
	if p.Age >= p.LifeSpan {
		p.kill()
		return true
	}
	sys := p.sys
	p.Position.SetAdd(p.Velocity.MulScalar(dt * 1000))
	p.SpinAngle += sys.spinSpeed * dt

	if rm := sys.randomMod; rm != 0 {
		p.Position.X += rm * 2 * (sys.rand.Float32() - 0.5)
		p.Position.Z += rm * 2 * (sys.rand.Float32() - 0.5)
	}

	ratio := p.Age / p.LifeSpan
	p.Size = sys.startSize - (sys.startSize-sys.endSize)*ratio
	p.Color = p.startColor.Sub(p.colorChange.MulScalar(ratio))
	p.writeColor()
	return false
}

func (p *Particle) kill() {
	p.Status = Dead
	p.Color.W = 0
	nv := p.sys.vertsPerParticle
	vtx := p.sys.Vertex
	first := 3 * p.startIndex
	for c := 1; c < nv; c++ {
		copy(vtx[first+3*c:first+3*c+3], vtx[first:first+3])
	}
	p.writeColor()
}

// writeColor writes the current color to all vertex slots.
func (p *Particle) writeColor() {
	clr := p.sys.Color
	for c := range p.sys.vertsPerParticle {
		clr.SetVector4(4*(p.startIndex+c), p.Color)
	}
}

// UpdateVerts writes the vertices of the particle for the given camera.
// The billboard basis is the camera left and up vectors when the system
// is camera facing and cam is non-nil, and the system left and up
// vectors otherwise. Camera facing billboards are rotated in-plane by
// the system orientation plus the particle spin.
func (p *Particle) UpdateVerts(cam *Camera) {
	sys := p.sys
	vtx := sys.Vertex
	si := 3 * p.startIndex
	if sys.typ == TypePoint {
		vtx.SetVector3(si, p.Position)
		return
	}

	var bx, by math32.Vector3
	if cam != nil && sys.cameraFacing {
		orient := sys.orientation + p.SpinAngle
		if orient == 0 {
			bx = cam.Left.MulScalar(p.Size)
			by = cam.Up.MulScalar(p.Size)
		} else {
			s, c := math32.Sincos(orient)
			cA := c * p.Size
			sA := s * p.Size
			bx = cam.Left.MulScalar(cA).Add(cam.Up.MulScalar(sA))
			by = cam.Left.MulScalar(-sA).Add(cam.Up.MulScalar(cA))
		}
	} else {
		bx = sys.left.MulScalar(p.Size)
		by = sys.up.MulScalar(p.Size)
	}

	pos := p.Position
	switch sys.typ {
	case TypeQuad:
		vtx.SetVector3(si, pos.Add(bx).Sub(by))
		vtx.SetVector3(si+3, pos.Add(bx).Add(by))
		vtx.SetVector3(si+6, pos.Sub(bx).Sub(by))
		vtx.SetVector3(si+9, pos.Sub(bx).Add(by))
	case TypeTriangle:
		vtx.SetVector3(si, pos.Add(bx).Sub(by))
		vtx.SetVector3(si+3, pos.Add(bx).Add(by.MulScalar(3)))
		vtx.SetVector3(si+6, pos.Sub(bx.MulScalar(3)).Sub(by))
	case TypeLine:
		vtx.SetVector3(si, pos.Sub(bx).Sub(by))
		vtx.SetVector3(si+3, pos.Add(bx).Sub(by))
	}
}
