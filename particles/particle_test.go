// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/particles/base/randx"
	"cogentcore.org/particles/base/tolassert"
	"cogentcore.org/particles/math32"
)

const tol = float32(1.0e-4)

// newTestSystem returns a seeded quad system of n particles
// with a fixed life span and an attached controller.
func newTestSystem(t *testing.T, n int, life float32) (*System, *Controller) {
	t.Helper()
	sys, err := NewMesh("test", n, TypeQuad)
	require.NoError(t, err)
	sys.SetRand(randx.NewSysRand(1))
	sys.SetMinimumLifeTime(life)
	sys.SetMaximumLifeTime(life)
	return sys, NewController(sys)
}

func assertVector3(t *testing.T, expected, actual math32.Vector3) {
	t.Helper()
	tolassert.EqualTol(t, expected.X, actual.X, tol)
	tolassert.EqualTol(t, expected.Y, actual.Y, tol)
	tolassert.EqualTol(t, expected.Z, actual.Z, tol)
}

func assertVector4(t *testing.T, expected, actual math32.Vector4) {
	t.Helper()
	tolassert.EqualTol(t, expected.X, actual.X, tol)
	tolassert.EqualTol(t, expected.Y, actual.Y, tol)
	tolassert.EqualTol(t, expected.Z, actual.Z, tol)
	tolassert.EqualTol(t, expected.W, actual.W, tol)
}

func vertex(sys *System, i int) math32.Vector3 {
	var v math32.Vector3
	sys.Vertex.GetVector3(3*i, &v)
	return v
}

func color(sys *System, i int) math32.Vector4 {
	var c math32.Vector4
	sys.Color.GetVector4(4*i, &c)
	return c
}

func TestScenario(t *testing.T) {
	sys, c := newTestSystem(t, 1, 1000)
	c.Repeat = RepeatClamp
	p := sys.Particle(0)
	assert.Equal(t, Available, p.Status)

	// particles start available, so the first tick only spawns them
	c.Update(0.01)
	assert.Equal(t, Alive, p.Status)
	assert.Equal(t, float32(0), p.Age)

	c.Update(0.5)
	assert.Equal(t, Alive, p.Status)
	tolassert.EqualTol(t, 500, p.Age, 0.01)
	assertVector4(t, math32.Vec4(1, 0.5, 0, 0.5), p.Color)
	for i := range 4 {
		assertVector4(t, p.Color, color(sys, i))
	}

	c.Update(0.6)
	assert.Equal(t, Dead, p.Status)
	assert.Equal(t, float32(0), p.Color.W)
	for i := range 4 {
		assert.Equal(t, float32(0), color(sys, i).W)
	}
	assert.False(t, c.Active)

	age := p.Age
	c.Update(1)
	assert.Equal(t, Dead, p.Status)
	assert.Equal(t, age, p.Age)
}

func TestAgeMonotonic(t *testing.T) {
	sys, _ := newTestSystem(t, 1, 1000)
	sys.RecreateParticle(0)
	p := sys.Particle(0)
	prev := p.Age
	died := false
	for range 30 {
		done := p.UpdateAndCheck(0.07)
		if p.Age >= p.LifeSpan {
			assert.True(t, done)
			assert.Equal(t, Dead, p.Status)
			died = true
			break
		}
		assert.False(t, done)
		assert.Greater(t, p.Age, prev)
		assert.Equal(t, Alive, p.Status)
		prev = p.Age
	}
	assert.True(t, died)
	assert.True(t, p.UpdateAndCheck(0.07))
}

func TestRespawn(t *testing.T) {
	sys, _ := newTestSystem(t, 4, 1000)
	sys.SetStartSize(3)
	sys.SetStartColor(math32.Vec4(0, 1, 0, 1))
	for i := range sys.NumParticles() {
		p := sys.Particle(i)
		p.Age = 123
		p.Status = Dead
		sys.RecreateParticle(i)
		assert.Equal(t, float32(0), p.Age)
		assert.Equal(t, Alive, p.Status)
		assert.Equal(t, float32(3), p.Size)
		assert.Equal(t, math32.Vec4(0, 1, 0, 1), p.Color)
		assert.Equal(t, float32(1000), p.LifeSpan)
		tolassert.EqualTol(t, 1, p.Velocity.Length(), tol)
	}
}

func TestInterpolationBounds(t *testing.T) {
	sys, _ := newTestSystem(t, 1, 1000)
	sys.SetStartSize(10)
	sys.SetEndSize(2)
	sys.SetStartColor(math32.Vec4(0.2, 1, 0, 1))
	sys.SetEndColor(math32.Vec4(0.8, 0, 0.5, 0))
	sys.RecreateParticle(0)
	p := sys.Particle(0)
	between := func(v, a, b float32) {
		t.Helper()
		assert.GreaterOrEqual(t, v, min(a, b)-tol)
		assert.LessOrEqual(t, v, max(a, b)+tol)
	}
	for !p.UpdateAndCheck(0.013) {
		between(p.Size, 10, 2)
		between(p.Color.X, 0.2, 0.8)
		between(p.Color.Y, 1, 0)
		between(p.Color.Z, 0, 0.5)
		between(p.Color.W, 1, 0)
		tolassert.EqualTol(t, 10-8*p.LifeRatio(), p.Size, tol)
	}
}

func TestMass(t *testing.T) {
	var p Particle
	p.SetMass(4)
	assert.Equal(t, float32(4), p.Mass())
	tolassert.EqualTol(t, 0.25, p.InvMass(), 1e-7)

	p.SetMass(0)
	assert.True(t, math32.IsInf(p.InvMass(), 1))

	p.SetMass(math32.Inf(1))
	assert.Equal(t, float32(0), p.InvMass())
	assert.False(t, math32.Signbit(p.InvMass()))

	p.SetMass(math32.Inf(-1))
	assert.Equal(t, float32(0), p.InvMass())
	assert.True(t, math32.Signbit(p.InvMass()))

	p.SetMasses(2, 7)
	assert.Equal(t, float32(2), p.Mass())
	assert.Equal(t, float32(7), p.InvMass())

	sys, _ := newTestSystem(t, 3, 1000)
	sys.SetParticleMass(0.5)
	for _, p := range sys.Particles() {
		assert.Equal(t, float32(2), p.InvMass())
	}
	sys.Recreate(5)
	assert.Equal(t, float32(2), sys.Particle(4).InvMass())
}

func TestUpdateVerts(t *testing.T) {
	sys, _ := newTestSystem(t, 2, 1000)
	cam := Camera{Left: math32.Vec3(-1, 0, 0), Up: math32.Vec3(0, 1, 0)}
	p := sys.Particle(1)
	p.Position = math32.Vec3(1, 2, 3)
	p.Size = 2
	p.UpdateVerts(&cam)
	assert.Equal(t, math32.Vec3(-1, 0, 3), vertex(sys, 4))
	assert.Equal(t, math32.Vec3(-1, 4, 3), vertex(sys, 5))
	assert.Equal(t, math32.Vec3(3, 0, 3), vertex(sys, 6))
	assert.Equal(t, math32.Vec3(3, 4, 3), vertex(sys, 7))
	assert.Equal(t, math32.Vector3{}, vertex(sys, 0))

	sys.SetParticleOrientation(math32.HalfPi)
	p.UpdateVerts(&cam)
	// basis is now X = (0, 2, 0) and Y = (2, 0, 0)
	assertVector3(t, math32.Vec3(-1, 4, 3), vertex(sys, 4))
	assertVector3(t, math32.Vec3(3, 4, 3), vertex(sys, 5))
	assertVector3(t, math32.Vec3(-1, 0, 3), vertex(sys, 6))

	sys.SetParticleOrientation(0)
	sys.SetCameraFacing(false)
	sys.SetLeftVector(math32.Vec3(0, 0, 1))
	p.UpdateVerts(&cam)
	assert.Equal(t, math32.Vec3(1, 0, 5), vertex(sys, 4))
	assert.Equal(t, math32.Vec3(1, 4, 1), vertex(sys, 7))
}

func TestUpdateVertsTypes(t *testing.T) {
	pos := math32.Vec3(1, 1, 1)
	cam := Camera{Left: math32.Vec3(1, 0, 0), Up: math32.Vec3(0, 1, 0)}

	tri, err := NewMesh("tri", 1, TypeTriangle)
	require.NoError(t, err)
	p := tri.Particle(0)
	p.Position, p.Size = pos, 1
	p.UpdateVerts(&cam)
	assert.Equal(t, math32.Vec3(2, 0, 1), vertex(tri, 0))
	assert.Equal(t, math32.Vec3(2, 4, 1), vertex(tri, 1))
	assert.Equal(t, math32.Vec3(-2, 0, 1), vertex(tri, 2))

	lines := NewLines("lines", 1)
	p = lines.Particle(0)
	p.Position, p.Size = pos, 1
	p.UpdateVerts(&cam)
	assert.Equal(t, math32.Vec3(0, 0, 1), vertex(lines, 0))
	assert.Equal(t, math32.Vec3(2, 0, 1), vertex(lines, 1))

	points := NewPoints("points", 1)
	p = points.Particle(0)
	p.Position = pos
	p.UpdateVerts(&cam)
	assert.Equal(t, pos, vertex(points, 0))
}

func TestDeadCollapse(t *testing.T) {
	sys, _ := newTestSystem(t, 2, 100)
	sys.RecreateParticle(1)
	p := sys.Particle(1)
	p.Position = math32.Vec3(5, 5, 5)
	p.UpdateVerts(nil)
	assert.NotEqual(t, vertex(sys, 4), vertex(sys, 5))
	assert.True(t, p.UpdateAndCheck(0.2))
	assert.Equal(t, Dead, p.Status)
	for c := 5; c < 8; c++ {
		assert.Equal(t, vertex(sys, 4), vertex(sys, c))
		assert.Equal(t, float32(0), color(sys, c).W)
	}
}

func TestCameraLookAt(t *testing.T) {
	cam := CameraLookAt(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0))
	assertVector3(t, math32.Vec3(-1, 0, 0), cam.Left)
	assertVector3(t, math32.Vec3(0, 1, 0), cam.Up)

	cam = CameraLookAt(math32.Vec3(10, 0, 0), math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0))
	assertVector3(t, math32.Vec3(0, 0, 1), cam.Left)
	assertVector3(t, math32.Vec3(0, 1, 0), cam.Up)
}
