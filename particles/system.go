// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package particles provides a particle simulation engine: a fixed pool
// of particles spawned from emitter shapes, driven by pluggable
// influences and a flow-regulating controller, writing billboard
// geometry into flat vertex buffers for a renderer to draw.
package particles

import (
	"log/slog"

	"cogentcore.org/particles/base/errors"
	"cogentcore.org/particles/base/randx"
	"cogentcore.org/particles/base/slicesx"
	"cogentcore.org/particles/math32"
	"cogentcore.org/particles/math32/minmax"
)

// systemKind is the primitive family a [System] draws with,
// which restricts the particle types it accepts.
type systemKind int32

const (
	kindMesh systemKind = iota
	kindLines
	kindPoints
)

// System owns a fixed-size pool of [Particle]s, their emission
// configuration, and the vertex buffers in its embedded [Mesh]:
// Vertex, Color and TexCoord hold one entry per vertex at
// particle index * VertsPerParticle + corner, and Index holds
// the connectivity for the particle type.
// Configuration is changed between ticks through the setters.
type System struct {
	Mesh

	particles []Particle
	kind      systemKind
	typ       ParticleType

	vertsPerParticle int

	emissionDir     math32.Vector3
	angles          minmax.F32
	lifeTimes       minmax.F32
	startColor      math32.Vector4
	endColor        math32.Vector4
	startSize       float32
	endSize         float32
	initialVelocity float32
	spinSpeed       float32
	releaseRate     int
	particleMass    float32
	emitter         Emitter
	originOffset    math32.Vector3
	rotateWithScene bool
	cameraFacing    bool
	orientation     float32
	up              math32.Vector3
	left            math32.Vector3
	randomMod       float32
	emitAlongNormal bool

	// world transform as pushed by the scene
	worldRotation    math32.Matrix3
	worldTranslation math32.Vector3
	worldScale       math32.Vector3

	// derived per-tick state
	worldEmit          math32.Vector3
	oldEmit            math32.Vector3
	emitRotation       math32.Matrix3
	invScale           math32.Vector3
	emitterRotation    math32.Matrix3
	emitterTranslation math32.Vector3

	trackBound bool
	bound      math32.Box3

	controller *Controller
	rand       randx.Rand
}

// NewMesh returns a new [System] of n particles drawn as triangle
// meshes. The type must be [TypeQuad] or [TypeTriangle]; anything
// else returns an error wrapping [ErrUnsupportedType].
func NewMesh(name string, n int, typ ParticleType) (*System, error) {
	if !kindMesh.accepts(typ) {
		return nil, errors.Errorf("particles.NewMesh %q: %w: %v", name, ErrUnsupportedType, typ)
	}
	return newSystem(name, n, kindMesh, typ), nil
}

// NewLines returns a new [System] of n particles drawn as line segments.
func NewLines(name string, n int) *System {
	return newSystem(name, n, kindLines, TypeLine)
}

// NewPoints returns a new [System] of n particles drawn as points.
func NewPoints(name string, n int) *System {
	return newSystem(name, n, kindPoints, TypePoint)
}

func newSystem(name string, n int, kind systemKind, typ ParticleType) *System {
	n = max(n, 0)
	s := &System{kind: kind, typ: typ}
	s.Name = name
	s.vertsPerParticle = typ.VertsPerParticle()
	s.emissionDir = math32.Vec3(0, 1, 0)
	s.angles.Set(0, math32.Pi/4)
	s.lifeTimes.Set(2000, 3000)
	s.startColor = math32.Vec4(1, 0, 0, 1)
	s.endColor = math32.Vec4(1, 1, 0, 0)
	s.startSize = 20
	s.endSize = 4
	s.initialVelocity = 1
	s.releaseRate = n
	s.particleMass = 1
	s.emitter = &PointEmitter{}
	s.cameraFacing = true
	s.up = math32.Vec3(0, 1, 0)
	s.left = math32.Vec3(-1, 0, 0)

	s.worldRotation.SetIdentity()
	s.worldScale = math32.Vector3Scalar(1)
	s.invScale = math32.Vector3Scalar(1)
	s.emitterRotation.SetIdentity()
	s.resetEmitCache()
	s.rand = randx.NewGlobalRand()

	s.updateWorldEmit()
	s.UpdateRotationMatrix()
	s.Recreate(n)
	return s
}

func (k systemKind) accepts(typ ParticleType) bool {
	switch k {
	case kindMesh:
		return typ == TypeQuad || typ == TypeTriangle
	case kindLines:
		return typ == TypeLine
	default:
		return typ == TypePoint
	}
}

// Recreate reallocates the pool and buffers for n particles
// (negative n is treated as zero) and regenerates the index
// and texture coordinate buffers.
func (s *System) Recreate(n int) {
	n = max(n, 0)
	nv := s.vertsPerParticle
	s.particles = slicesx.SetLength(s.particles, n)
	s.Vertex.SetLen(n * nv * 3)
	s.Color.SetLen(n * nv * 4)
	s.TexCoord.SetLen(n * nv * 2)
	for i := range s.particles {
		p := &s.particles[i]
		*p = Particle{sys: s, startIndex: i * nv}
		p.SetMass(s.particleMass)
		p.init()
	}
	s.buildIndex()
}

// buildIndex writes the index and texture coordinate buffers,
// which depend only on the pool size and particle type.
func (s *System) buildIndex() {
	n := len(s.particles)
	s.Index = s.Index[:0]
	tc := s.TexCoord
	for j := range n {
		b := uint32(j * s.vertsPerParticle)
		t := 2 * int(b)
		switch s.typ {
		case TypeQuad:
			s.Index.Append(b+2, b+1, b, b+3, b+2, b)
			tc.Set(t, 0, 0, 1, 0, 1, 1, 0, 1)
		case TypeTriangle:
			s.Index.Append(b, b+1, b+2)
			tc.Set(t, 2, 0, 0, 2, 0, 0)
		case TypeLine:
			s.Index.Append(b, b+1)
			tc.Set(t, 0, 0, 1, 1)
		case TypePoint:
			s.Index.Append(b)
			tc.Set(t, 0, 0)
		}
	}
}

// NumParticles returns the size of the particle pool.
func (s *System) NumParticles() int { return len(s.particles) }

// Particle returns the particle at the given pool index.
func (s *System) Particle(i int) *Particle { return &s.particles[i] }

// Particles returns the particle pool. It is owned by the system
// and reallocated by [System.Recreate].
func (s *System) Particles() []Particle { return s.particles }

// VertsPerParticle returns the number of vertices per particle.
func (s *System) VertsPerParticle() int { return s.vertsPerParticle }

// Controller returns the controller attached by [NewController], if any.
func (s *System) Controller() *Controller { return s.controller }

// Rand returns the random source used for all sampling.
func (s *System) Rand() randx.Rand { return s.rand }

// SetRand sets the random source used for all sampling.
// A nil source selects the global one.
func (s *System) SetRand(rnd randx.Rand) {
	if rnd == nil {
		rnd = randx.NewGlobalRand()
	}
	s.rand = rnd
}

// ParticleType returns the particle type.
func (s *System) ParticleType() ParticleType { return s.typ }

// SetParticleType changes the particle type and reallocates the pool.
// The type must be drawable by the kind of the system (quads and
// triangles for [NewMesh], lines for [NewLines], points for [NewPoints]);
// otherwise an error wrapping [ErrUnsupportedType] is returned and
// nothing changes.
func (s *System) SetParticleType(typ ParticleType) error {
	if !s.kind.accepts(typ) {
		return errors.Errorf("particles.System %q: %w: %v", s.Name, ErrUnsupportedType, typ)
	}
	if typ == s.typ {
		return nil
	}
	s.typ = typ
	s.vertsPerParticle = typ.VertsPerParticle()
	s.Recreate(len(s.particles))
	return nil
}

////////////////////////////////////////////////////////////////////////
//  Configuration

// nonNegative clamps negative values of the named setting to zero.
func nonNegative(name string, v float32) float32 {
	if v < 0 {
		slog.Debug("particles: clamped negative setting to 0", "setting", name, "value", v)
		return 0
	}
	return v
}

// lifeTime clamps negative life times to 1.
func lifeTime(name string, v float32) float32 {
	if v < 0 {
		slog.Debug("particles: clamped negative life time to 1", "setting", name, "value", v)
		return 1
	}
	return v
}

// EmissionDirection returns the local emission direction.
func (s *System) EmissionDirection() math32.Vector3 { return s.emissionDir }

// SetEmissionDirection sets the local emission direction, which is the
// axis of the cone that initial velocities are sampled from.
func (s *System) SetEmissionDirection(dir math32.Vector3) {
	s.emissionDir = dir
	s.updateWorldEmit()
}

// MinimumAngle returns the minimum emission angle from the emission
// direction, in radians.
func (s *System) MinimumAngle() float32 { return s.angles.Min }

// SetMinimumAngle sets the minimum emission angle in radians.
// Negative values are clamped to 0.
func (s *System) SetMinimumAngle(angle float32) {
	s.angles.Min = nonNegative("MinimumAngle", angle)
}

// MaximumAngle returns the maximum emission angle in radians.
func (s *System) MaximumAngle() float32 { return s.angles.Max }

// SetMaximumAngle sets the maximum emission angle in radians.
// Negative values are clamped to 0.
func (s *System) SetMaximumAngle(angle float32) {
	s.angles.Max = nonNegative("MaximumAngle", angle)
}

// MinimumLifeTime returns the minimum life span in milliseconds.
func (s *System) MinimumLifeTime() float32 { return s.lifeTimes.Min }

// SetMinimumLifeTime sets the minimum life span in milliseconds.
// Negative values are clamped to 1.
func (s *System) SetMinimumLifeTime(ms float32) {
	s.lifeTimes.Min = lifeTime("MinimumLifeTime", ms)
}

// MaximumLifeTime returns the maximum life span in milliseconds.
func (s *System) MaximumLifeTime() float32 { return s.lifeTimes.Max }

// SetMaximumLifeTime sets the maximum life span in milliseconds.
// Negative values are clamped to 1.
func (s *System) SetMaximumLifeTime(ms float32) {
	s.lifeTimes.Max = lifeTime("MaximumLifeTime", ms)
}

// StartColor returns the color of newly spawned particles.
func (s *System) StartColor() math32.Vector4 { return s.startColor }

// SetStartColor sets the color of newly spawned particles.
// It applies from the next spawn.
func (s *System) SetStartColor(c math32.Vector4) { s.startColor = c }

// EndColor returns the color particles fade to at the end of their life.
func (s *System) EndColor() math32.Vector4 { return s.endColor }

// SetEndColor sets the color particles fade to at the end of their life.
// It applies from the next spawn.
func (s *System) SetEndColor(c math32.Vector4) { s.endColor = c }

// StartSize returns the size of newly spawned particles.
func (s *System) StartSize() float32 { return s.startSize }

// SetStartSize sets the size of newly spawned particles.
// Negative values are clamped to 0.
func (s *System) SetStartSize(size float32) {
	s.startSize = nonNegative("StartSize", size)
}

// EndSize returns the size particles shrink or grow to.
func (s *System) EndSize() float32 { return s.endSize }

// SetEndSize sets the size particles shrink or grow to.
// Negative values are clamped to 0.
func (s *System) SetEndSize(size float32) {
	s.endSize = nonNegative("EndSize", size)
}

// InitialVelocity returns the initial speed in units per millisecond.
func (s *System) InitialVelocity() float32 { return s.initialVelocity }

// SetInitialVelocity sets the initial speed in units per millisecond.
func (s *System) SetInitialVelocity(v float32) { s.initialVelocity = v }

// ParticleSpinSpeed returns the spin speed in radians per second.
func (s *System) ParticleSpinSpeed() float32 { return s.spinSpeed }

// SetParticleSpinSpeed sets the spin speed in radians per second.
func (s *System) SetParticleSpinSpeed(speed float32) { s.spinSpeed = speed }

// ReleaseRate returns the number of particles released per second
// when the controller regulates flow.
func (s *System) ReleaseRate() int { return s.releaseRate }

// SetReleaseRate sets the number of particles released per second.
// Negative rates are clamped to 0. Raising the rate from 0 reactivates
// a flow-controlled controller that went inactive.
func (s *System) SetReleaseRate(rate int) {
	rate = max(rate, 0)
	old := s.releaseRate
	s.releaseRate = rate
	if c := s.controller; c != nil && !c.Active && c.ControlFlow && old == 0 {
		c.Active = true
	}
}

// ParticleMass returns the mass given to every particle.
func (s *System) ParticleMass() float32 { return s.particleMass }

// SetParticleMass sets the mass of every particle, including those
// allocated by later calls to [System.Recreate].
func (s *System) SetParticleMass(mass float32) {
	s.particleMass = mass
	for i := range s.particles {
		s.particles[i].SetMass(mass)
	}
}

// Emitter returns the emission shape.
func (s *System) Emitter() Emitter { return s.emitter }

// SetEmitter sets the emission shape. A nil emitter selects a
// [PointEmitter] at the origin.
func (s *System) SetEmitter(em Emitter) {
	if em == nil {
		em = &PointEmitter{}
	}
	s.emitter = em
}

// OriginOffset returns the offset of the system origin.
func (s *System) OriginOffset() math32.Vector3 { return s.originOffset }

// SetOriginOffset sets the offset of the system origin,
// which influences such as [Swarm] steer relative to.
func (s *System) SetOriginOffset(off math32.Vector3) { s.originOffset = off }

// OriginCenter returns the world translation plus the origin offset.
func (s *System) OriginCenter() math32.Vector3 {
	return s.worldTranslation.Add(s.originOffset)
}

// RotateWithScene returns whether the emission direction follows
// the world rotation.
func (s *System) RotateWithScene() bool { return s.rotateWithScene }

// SetRotateWithScene sets whether the emission direction follows
// the world rotation.
func (s *System) SetRotateWithScene(rotate bool) {
	s.rotateWithScene = rotate
	s.updateWorldEmit()
}

// CameraFacing returns whether billboards face the camera.
func (s *System) CameraFacing() bool { return s.cameraFacing }

// SetCameraFacing sets whether billboards face the camera. Otherwise
// they are spanned by the left and up vectors.
func (s *System) SetCameraFacing(facing bool) { s.cameraFacing = facing }

// ParticleOrientation returns the in-plane rotation of billboards in radians.
func (s *System) ParticleOrientation() float32 { return s.orientation }

// SetParticleOrientation sets the in-plane rotation of billboards in radians.
func (s *System) SetParticleOrientation(angle float32) { s.orientation = angle }

// UpVector returns the up vector.
func (s *System) UpVector() math32.Vector3 { return s.up }

// SetUpVector sets the up vector, which spans billboards that do not
// face the camera and is the axis rotated onto the emission direction.
func (s *System) SetUpVector(up math32.Vector3) {
	s.up = up
	s.resetEmitCache()
}

// LeftVector returns the left vector.
func (s *System) LeftVector() math32.Vector3 { return s.left }

// SetLeftVector sets the left vector, which spans billboards that do
// not face the camera.
func (s *System) SetLeftVector(left math32.Vector3) { s.left = left }

// RandomMod returns the amount of per-tick positional jitter.
func (s *System) RandomMod() float32 { return s.randomMod }

// SetRandomMod sets the amount of per-tick positional jitter
// in the horizontal plane.
func (s *System) SetRandomMod(mod float32) { s.randomMod = mod }

// EmitAlongNormal returns whether velocities are sampled around the
// surface normal of emitters that provide one.
func (s *System) EmitAlongNormal() bool { return s.emitAlongNormal }

// SetEmitAlongNormal sets whether velocities are sampled around the
// surface normal of emitters that provide one.
func (s *System) SetEmitAlongNormal(along bool) { s.emitAlongNormal = along }

////////////////////////////////////////////////////////////////////////
//  World transform

// SetWorldTransform sets the world rotation, translation and scale of
// the system, as propagated by the scene it lives in.
func (s *System) SetWorldTransform(rotation math32.Matrix3, translation, scale math32.Vector3) {
	s.worldRotation = rotation
	s.worldTranslation = translation
	s.worldScale = scale
	s.emitterRotation = rotation
	s.emitterTranslation = translation.Mul(inverse(scale))
	s.updateWorldEmit()
}

// WorldRotation returns the world rotation.
func (s *System) WorldRotation() math32.Matrix3 { return s.worldRotation }

// WorldTranslation returns the world translation.
func (s *System) WorldTranslation() math32.Vector3 { return s.worldTranslation }

// WorldScale returns the world scale.
func (s *System) WorldScale() math32.Vector3 { return s.worldScale }

// WorldEmit returns the emission direction in world space.
func (s *System) WorldEmit() math32.Vector3 { return s.worldEmit }

// EmitRotation returns the rotation that maps the up vector onto
// the world emission direction.
func (s *System) EmitRotation() math32.Matrix3 { return s.emitRotation }

// InvScale returns the cached inverse world scale.
func (s *System) InvScale() math32.Vector3 { return s.invScale }

func (s *System) updateWorldEmit() {
	if s.rotateWithScene {
		s.worldEmit = s.worldRotation.MulVector3(s.emissionDir)
	} else {
		s.worldEmit = s.emissionDir
	}
}

// resetEmitCache forces the next [System.UpdateRotationMatrix] to recompute.
func (s *System) resetEmitCache() {
	s.oldEmit = math32.Vector3Scalar(math32.NaN())
}

// UpdateRotationMatrix recomputes the emission rotation if the world
// emission direction changed since the last call.
func (s *System) UpdateRotationMatrix() {
	if s.oldEmit == s.worldEmit {
		return
	}
	s.emitRotation.SetFromToRotation(s.up, s.worldEmit)
	s.oldEmit = s.worldEmit
}

// UpdateInvScale caches the inverse of the world scale.
func (s *System) UpdateInvScale() {
	s.invScale = inverse(s.worldScale)
}

// inverse returns the per-component reciprocal, mapping zero to zero.
func inverse(v math32.Vector3) math32.Vector3 {
	inv := func(x float32) float32 {
		if x == 0 {
			return 0
		}
		return 1 / x
	}
	return math32.Vec3(inv(v.X), inv(v.Y), inv(v.Z))
}

////////////////////////////////////////////////////////////////////////
//  Sampling

// RandomAngle returns an angle uniform between the minimum and
// maximum emission angles.
func (s *System) RandomAngle() float32 {
	return s.angles.Min + s.rand.Float32()*s.angles.Range()
}

// RandomLifeSpan returns a life span uniform between the minimum
// and maximum life times.
func (s *System) RandomLifeSpan() float32 {
	return randx.Uniform32(s.lifeTimes.Min, s.lifeTimes.Max, s.rand)
}

// RandomVelocity returns a velocity of the initial speed in a random
// direction within the emission cone around the world emission direction.
func (s *System) RandomVelocity() math32.Vector3 {
	return s.randomVelocity(&s.emitRotation)
}

// randomVelocity samples the cone around +Y and rotates it by rot.
func (s *System) randomVelocity(rot *math32.Matrix3) math32.Vector3 {
	phi := math32.TwoPi * s.rand.Float32()
	theta := s.RandomAngle()
	sp, cp := math32.Sincos(phi)
	st, ct := math32.Sincos(theta)
	dir := math32.Vec3(cp*st, ct, sp*st)
	return rot.MulVector3(dir).MulScalar(s.initialVelocity)
}

////////////////////////////////////////////////////////////////////////
//  Spawning

// InitParticleLocation places the particle at a new spawn position.
func (s *System) InitParticleLocation(i int) {
	s.place(&s.particles[i])
}

// place sets a spawn position and returns the emitter normal there,
// if the emitter has one.
func (s *System) place(p *Particle) (normal math32.Vector3, hasNormal bool) {
	if ne, ok := s.emitter.(NormalEmitter); ok {
		pos, nrm := ne.SpawnPoint(s.rand)
		p.Position = pos.Mul(s.invScale)
		return nrm, true
	}
	pos := s.emitter.SpawnPosition(s.rand)
	p.Position = s.emitterRotation.MulVector3(pos).Add(s.emitterTranslation)
	return
}

// InitAllParticlesLocation places every particle at a new spawn
// position and updates its vertices.
func (s *System) InitAllParticlesLocation() {
	for i := range s.particles {
		s.InitParticleLocation(i)
		s.particles[i].UpdateVerts(nil)
	}
}

// RecreateParticle respawns the particle at index i: a new life span,
// spawn position and velocity, start color and size, and zero age.
// The particle is [Alive] afterwards.
func (s *System) RecreateParticle(i int) {
	p := &s.particles[i]
	p.Recreate(s.RandomLifeSpan())
	p.Status = Alive
	normal, ok := s.place(p)
	if ok && s.emitAlongNormal {
		var rot math32.Matrix3
		rot.SetFromToRotation(s.up, normal)
		p.Velocity = s.randomVelocity(&rot)
	} else {
		p.Velocity = s.RandomVelocity()
	}
	p.UpdateVerts(nil)
}

// ForceRespawn kills every particle, leaving them [Available] for
// immediate respawn, and reactivates the controller.
func (s *System) ForceRespawn() {
	for i := range s.particles {
		p := &s.particles[i]
		p.Recreate(0)
		p.Status = Alive
		p.UpdateAndCheck(1)
		p.Status = Available
	}
	if s.controller != nil {
		s.controller.Active = true
	}
}

////////////////////////////////////////////////////////////////////////
//  Geometry

// UpdateVertices writes the vertices of all alive particles for the
// given camera, which may be nil for non camera facing systems.
// It is called once per render pass.
func (s *System) UpdateVertices(cam *Camera) {
	for i := range s.particles {
		if p := &s.particles[i]; p.Status == Alive {
			p.UpdateVerts(cam)
		}
	}
}

// TrackBound returns whether the controller refreshes the bound.
func (s *System) TrackBound() bool { return s.trackBound }

// SetTrackBound sets whether the controller refreshes the bound
// after every processed tick.
func (s *System) SetTrackBound(track bool) { s.trackBound = track }

// Bound returns the last computed bound.
func (s *System) Bound() math32.Box3 { return s.bound }

// UpdateBound computes the bound of the vertices of all alive
// particles. It is empty when none are alive.
func (s *System) UpdateBound() {
	s.bound.SetEmpty()
	var v math32.Vector3
	for i := range s.particles {
		p := &s.particles[i]
		if p.Status != Alive {
			continue
		}
		for c := range s.vertsPerParticle {
			s.Vertex.GetVector3(3*(p.startIndex+c), &v)
			s.bound.ExpandByPoint(v)
		}
	}
}

////////////////////////////////////////////////////////////////////////
//  Controller delegation

// AddInfluence adds an influence to the controller.
func (s *System) AddInfluence(inf Influence) {
	if s.controller != nil {
		s.controller.AddInfluence(inf)
	}
}

// RemoveInfluence removes an influence from the controller and
// returns whether it was present.
func (s *System) RemoveInfluence(inf Influence) bool {
	if s.controller == nil {
		return false
	}
	return s.controller.RemoveInfluence(inf)
}

// ClearInfluences removes all influences from the controller.
func (s *System) ClearInfluences() {
	if s.controller != nil {
		s.controller.ClearInfluences()
	}
}

// Influences returns the influences of the controller.
func (s *System) Influences() []Influence {
	if s.controller == nil {
		return nil
	}
	return s.controller.Influences()
}

// WarmUp runs the controller; see [Controller.WarmUp].
func (s *System) WarmUp(iterations int) {
	if s.controller != nil {
		s.controller.WarmUp(iterations)
	}
}
