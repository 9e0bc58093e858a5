// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/particles/base/errors"
	"cogentcore.org/particles/base/randx"
	"cogentcore.org/particles/base/tolassert"
	"cogentcore.org/particles/math32"
)

func TestNewSystem(t *testing.T) {
	_, err := NewMesh("bad", 4, TypePoint)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	_, err = NewMesh("bad", 4, TypeLine)
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	sys, err := NewMesh("quads", 10, TypeQuad)
	require.NoError(t, err)
	assert.Equal(t, "quads", sys.Name)
	assert.Equal(t, 10, sys.NumParticles())
	assert.Equal(t, 10, sys.ReleaseRate())
	assert.Equal(t, math32.Vec3(0, 1, 0), sys.EmissionDirection())
	assert.Equal(t, float32(0), sys.MinimumAngle())
	tolassert.EqualTol(t, math32.Pi/4, sys.MaximumAngle(), 1e-6)
	assert.Equal(t, float32(2000), sys.MinimumLifeTime())
	assert.Equal(t, float32(3000), sys.MaximumLifeTime())
	assert.Equal(t, math32.Vec4(1, 0, 0, 1), sys.StartColor())
	assert.Equal(t, math32.Vec4(1, 1, 0, 0), sys.EndColor())
	assert.Equal(t, float32(20), sys.StartSize())
	assert.Equal(t, float32(4), sys.EndSize())
	assert.Equal(t, float32(1), sys.InitialVelocity())
	assert.True(t, sys.CameraFacing())
	assert.False(t, sys.RotateWithScene())
	assert.Equal(t, math32.Vec3(-1, 0, 0), sys.LeftVector())
	assert.IsType(t, &PointEmitter{}, sys.Emitter())
	assert.Nil(t, sys.Controller())
	for _, p := range sys.Particles() {
		assert.Equal(t, Available, p.Status)
		assert.Equal(t, float32(1), p.Mass())
	}

	lines := NewLines("lines", 3)
	assert.Equal(t, TypeLine, lines.ParticleType())
	assert.ErrorIs(t, lines.SetParticleType(TypeQuad), ErrUnsupportedType)
	assert.Equal(t, TypeLine, lines.ParticleType())
	points := NewPoints("points", 3)
	assert.ErrorIs(t, points.SetParticleType(TypeLine), ErrUnsupportedType)

	require.NoError(t, sys.SetParticleType(TypeTriangle))
	assert.Equal(t, 3, sys.VertsPerParticle())
	assert.Len(t, sys.Vertex, 10*3*3)
	assert.Len(t, sys.Index, 10*3)
}

func TestBuffers(t *testing.T) {
	sys, err := NewMesh("quads", 3, TypeQuad)
	require.NoError(t, err)
	assert.Len(t, sys.Vertex, 3*4*3)
	assert.Len(t, sys.Color, 3*4*4)
	assert.Len(t, sys.TexCoord, 3*4*2)
	assert.Equal(t, 12, sys.NumVertex())
	require.Len(t, sys.Index, 18)
	assert.Equal(t, []uint32{2, 1, 0, 3, 2, 0}, []uint32(sys.Index[:6]))
	assert.Equal(t, []uint32{10, 9, 8, 11, 10, 8}, []uint32(sys.Index[12:]))
	assert.Equal(t, []float32{0, 0, 1, 0, 1, 1, 0, 1}, []float32(sys.TexCoord[8:16]))
	for i := range 12 {
		assert.Equal(t, math32.Vec4(1, 0, 0, 1), color(sys, i))
	}

	sys.Recreate(5)
	assert.Equal(t, 5, sys.NumParticles())
	assert.Len(t, sys.Vertex, 5*4*3)
	assert.Len(t, sys.Index, 30)
	assert.Equal(t, 16, sys.Particle(4).StartIndex())
	assert.Same(t, sys, sys.Particle(4).System())

	sys.Recreate(-3)
	assert.Equal(t, 0, sys.NumParticles())
	assert.Len(t, sys.Vertex, 0)
	assert.Len(t, sys.Index, 0)

	tri, err := NewMesh("tri", 2, TypeTriangle)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, []uint32(tri.Index))
	assert.Equal(t, []float32{2, 0, 0, 2, 0, 0}, []float32(tri.TexCoord[6:]))

	lines := NewLines("lines", 2)
	assert.Equal(t, []uint32{0, 1, 2, 3}, []uint32(lines.Index))
	assert.Equal(t, []float32{0, 0, 1, 1, 0, 0, 1, 1}, []float32(lines.TexCoord))

	points := NewPoints("points", 3)
	assert.Equal(t, []uint32{0, 1, 2}, []uint32(points.Index))
	assert.Len(t, points.Vertex, 9)
}

func TestClamping(t *testing.T) {
	sys := NewPoints("clamp", 2)
	sys.SetStartSize(-1)
	sys.SetEndSize(-2)
	sys.SetMinimumAngle(-0.5)
	sys.SetMaximumAngle(-0.5)
	sys.SetMinimumLifeTime(-10)
	sys.SetMaximumLifeTime(-20)
	sys.SetReleaseRate(-4)
	assert.Equal(t, float32(0), sys.StartSize())
	assert.Equal(t, float32(0), sys.EndSize())
	assert.Equal(t, float32(0), sys.MinimumAngle())
	assert.Equal(t, float32(0), sys.MaximumAngle())
	assert.Equal(t, float32(1), sys.MinimumLifeTime())
	assert.Equal(t, float32(1), sys.MaximumLifeTime())
	assert.Equal(t, 0, sys.ReleaseRate())
}

func TestEmissionRotation(t *testing.T) {
	sys := NewPoints("rot", 1)
	up := sys.UpVector()
	dirs := []math32.Vector3{
		math32.Vec3(0, 1, 0),
		math32.Vec3(0, -1, 0),
		math32.Vec3(1, 0, 0),
		math32.Vec3(0, 0, -3),
		math32.Vec3(1, 2, 3),
		math32.Vec3(-0.2, -5, 0.1),
		math32.Vec3(0.0001, 1, 0),
	}
	for _, d := range dirs {
		sys.SetEmissionDirection(d)
		sys.UpdateRotationMatrix()
		rot := sys.EmitRotation()
		assertVector3(t, d.Normal(), rot.MulVector3(up))
	}

	sys.SetEmissionDirection(math32.Vector3{})
	sys.UpdateRotationMatrix()
	rot := sys.EmitRotation()
	assert.True(t, rot.IsIdentity())

	// world rotation only applies when rotating with the scene
	sys.SetEmissionDirection(math32.Vec3(0, 1, 0))
	sys.SetWorldTransform(math32.Matrix3Rotation(math32.Vec3(0, 0, 1), math32.HalfPi), math32.Vector3{}, math32.Vector3Scalar(1))
	assert.Equal(t, math32.Vec3(0, 1, 0), sys.WorldEmit())
	sys.SetRotateWithScene(true)
	assertVector3(t, math32.Vec3(-1, 0, 0), sys.WorldEmit())
	sys.UpdateRotationMatrix()
	rot = sys.EmitRotation()
	assertVector3(t, math32.Vec3(-1, 0, 0), rot.MulVector3(up))
}

func TestRandomVelocity(t *testing.T) {
	sys := NewPoints("vel", 1)
	sys.SetRand(randx.NewSysRand(3))
	sys.SetInitialVelocity(2)
	sys.SetEmissionDirection(math32.Vec3(1, 1, 0))
	sys.SetMaximumAngle(0)
	sys.UpdateRotationMatrix()
	assertVector3(t, math32.Vec3(1, 1, 0).Normal().MulScalar(2), sys.RandomVelocity())

	sys.SetMinimumAngle(0.2)
	sys.SetMaximumAngle(0.4)
	emit := sys.WorldEmit()
	for range 100 {
		v := sys.RandomVelocity()
		tolassert.EqualTol(t, 2, v.Length(), tol)
		a := v.AngleTo(emit)
		assert.GreaterOrEqual(t, a, float32(0.2)-1e-3)
		assert.LessOrEqual(t, a, float32(0.4)+1e-3)

		ang := sys.RandomAngle()
		assert.GreaterOrEqual(t, ang, float32(0.2))
		assert.LessOrEqual(t, ang, float32(0.4))
	}

	sys.SetMinimumLifeTime(100)
	sys.SetMaximumLifeTime(200)
	for range 100 {
		ls := sys.RandomLifeSpan()
		assert.GreaterOrEqual(t, ls, float32(100))
		assert.LessOrEqual(t, ls, float32(200))
	}
}

func TestDeterministic(t *testing.T) {
	run := func() []math32.Vector3 {
		sys, err := NewMesh("seeded", 20, TypeQuad)
		require.NoError(t, err)
		sys.SetRand(randx.NewSysRand(42))
		sys.SetEmitter(NewRingEmitter(math32.Vector3{}, math32.Vec3(0, 1, 0), 1, 2))
		c := NewController(sys)
		c.AddInfluence(NewWander(0.5, 1, 0.2))
		c.WarmUp(1)
		var pos []math32.Vector3
		for _, p := range sys.Particles() {
			pos = append(pos, p.Position)
		}
		return pos
	}
	assert.Equal(t, run(), run())
}

func TestWorldTransform(t *testing.T) {
	sys := NewPoints("xform", 1)
	sys.SetEmitter(&PointEmitter{Offset: math32.Vec3(1, 0, 0)})
	rot := math32.Matrix3Rotation(math32.Vec3(0, 0, 1), math32.HalfPi)
	sys.SetWorldTransform(rot, math32.Vec3(0, 0, 4), math32.Vector3Scalar(2))
	sys.SetOriginOffset(math32.Vec3(1, 1, 1))
	assert.Equal(t, math32.Vec3(1, 1, 5), sys.OriginCenter())

	sys.InitParticleLocation(0)
	assertVector3(t, math32.Vec3(0, 1, 2), sys.Particle(0).Position)

	sys.UpdateInvScale()
	assert.Equal(t, math32.Vector3Scalar(0.5), sys.InvScale())
	sys.SetWorldTransform(rot, math32.Vector3{}, math32.Vec3(0, 4, 1))
	sys.UpdateInvScale()
	assert.Equal(t, math32.Vec3(0, 0.25, 1), sys.InvScale())
}

func TestInitAllParticlesLocation(t *testing.T) {
	sys := NewPoints("all", 10)
	sys.SetRand(randx.NewSysRand(5))
	sys.SetEmitter(NewLineEmitter(math32.Vec3(0, 0, 0), math32.Vec3(0, 0, 10)))
	sys.InitAllParticlesLocation()
	for i, p := range sys.Particles() {
		assert.Equal(t, float32(0), p.Position.X)
		assert.GreaterOrEqual(t, p.Position.Z, float32(0))
		assert.LessOrEqual(t, p.Position.Z, float32(10))
		assert.Equal(t, p.Position, vertex(sys, i))
	}
}

func TestForceRespawn(t *testing.T) {
	sys, c := newTestSystem(t, 5, 1000)
	c.Repeat = RepeatClamp
	c.WarmUp(3)
	assert.False(t, c.Active)

	sys.ForceRespawn()
	assert.True(t, c.Active)
	for i, p := range sys.Particles() {
		assert.Equal(t, Available, p.Status)
		assert.Equal(t, float32(0), color(sys, 4*i).W)
	}
	c.Update(0.1)
	for _, p := range sys.Particles() {
		assert.Equal(t, Alive, p.Status)
	}
}

func TestReleaseRateReactivates(t *testing.T) {
	sys, c := newTestSystem(t, 5, 1000)
	c.ControlFlow = true
	sys.SetReleaseRate(0)
	c.Active = false
	sys.SetReleaseRate(10)
	assert.True(t, c.Active)

	c.Active = false
	sys.SetReleaseRate(20)
	assert.False(t, c.Active)
}

func TestBound(t *testing.T) {
	sys, c := newTestSystem(t, 8, 5000)
	sys.SetStartSize(1)
	sys.SetEndSize(1)
	sys.SetEmitter(NewRectEmitter(math32.Vec3(-5, 0, -5), math32.Vec3(5, 0, -5), math32.Vec3(-5, 0, 5)))
	assert.Equal(t, math32.Box3{}, sys.Bound())

	sys.UpdateBound()
	assert.True(t, sys.Bound().IsEmpty())

	sys.SetTrackBound(true)
	c.Update(0.1)
	bb := sys.Bound()
	require.False(t, bb.IsEmpty())
	for i := range sys.NumParticles() * 4 {
		assert.True(t, bb.ContainsPoint(vertex(sys, i)))
	}

	c.Update(0.1)
	sys.UpdateVertices(nil)
	sys.UpdateBound()
	bb = sys.Bound()
	for _, p := range sys.Particles() {
		assert.Equal(t, Alive, p.Status)
		assert.True(t, bb.ContainsPoint(p.Position))
	}
}

func TestDelegation(t *testing.T) {
	sys := NewPoints("delegate", 2)
	g := NewGravity(math32.Vec3(0, -1, 0), false)
	sys.AddInfluence(g)
	assert.Empty(t, sys.Influences())
	assert.False(t, sys.RemoveInfluence(g))
	sys.WarmUp(1)

	c := NewController(sys)
	assert.Same(t, c, sys.Controller())
	assert.Same(t, sys, c.System())
	sys.AddInfluence(g)
	assert.Equal(t, []Influence{g}, sys.Influences())
	assert.True(t, sys.RemoveInfluence(g))
	assert.False(t, sys.RemoveInfluence(g))
	sys.AddInfluence(g)
	sys.ClearInfluences()
	assert.Empty(t, sys.Influences())

	sys.WarmUp(2)
	assert.InDelta(t, 2, c.CurrentTime(), 1e-4)
}
