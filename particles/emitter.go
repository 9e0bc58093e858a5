// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"cogentcore.org/particles/base/randx"
	"cogentcore.org/particles/math32"
)

// Emitter is a region that particles are spawned from.
type Emitter interface {

	// SpawnPosition returns a new spawn position in emitter space,
	// using rnd for any sampling.
	SpawnPosition(rnd randx.Rand) math32.Vector3
}

// NormalEmitter is an [Emitter] that also knows the surface normal at
// each spawn position, which can steer the initial velocity.
type NormalEmitter interface {
	Emitter

	// SpawnPoint returns a new spawn position and the surface normal there.
	SpawnPoint(rnd randx.Rand) (pos, normal math32.Vector3)
}

// PointEmitter emits every particle from a single fixed point.
type PointEmitter struct {
	Offset math32.Vector3
}

func (em *PointEmitter) SpawnPosition(rnd randx.Rand) math32.Vector3 {
	return em.Offset
}

// LineEmitter emits uniformly along a line segment.
type LineEmitter struct {
	math32.Line3
}

// NewLineEmitter returns a [LineEmitter] between start and end.
func NewLineEmitter(start, end math32.Vector3) *LineEmitter {
	return &LineEmitter{Line3: math32.NewLine3(start, end)}
}

func (em *LineEmitter) SpawnPosition(rnd randx.Rand) math32.Vector3 {
	return em.At(rnd.Float32())
}

// RectEmitter emits uniformly over a parallelogram given by a corner
// and its two neighbors.
type RectEmitter struct {
	math32.Rect3
}

// NewRectEmitter returns a [RectEmitter] with corner a and neighbors b and c.
func NewRectEmitter(a, b, c math32.Vector3) *RectEmitter {
	return &RectEmitter{Rect3: math32.NewRect3(a, b, c)}
}

func (em *RectEmitter) SpawnPosition(rnd randx.Rand) math32.Vector3 {
	s := rnd.Float32()
	t := rnd.Float32()
	return em.At(s, t)
}

// RingEmitter emits uniformly over the area of a flat annulus.
type RingEmitter struct {
	math32.Ring
}

// NewRingEmitter returns a [RingEmitter]; see [math32.NewRing].
func NewRingEmitter(center, up math32.Vector3, inner, outer float32) *RingEmitter {
	return &RingEmitter{Ring: math32.NewRing(center, up, inner, outer)}
}

func (em *RingEmitter) SpawnPosition(rnd randx.Rand) math32.Vector3 {
	r := em.RadiusAt(rnd.Float32())
	return em.At(r, math32.TwoPi*rnd.Float32())
}

// SurfaceEmitter emits uniformly over the surface of an indexed
// triangle mesh: triangles are chosen with probability proportional
// to their area.
type SurfaceEmitter struct {

	// Mesh is the emitting surface. Call [SurfaceEmitter.Update]
	// after changing it.
	Mesh *Mesh

	// weights are the normalized triangle areas.
	weights []float32
}

// NewSurfaceEmitter returns a [SurfaceEmitter] for the given mesh.
func NewSurfaceEmitter(ms *Mesh) *SurfaceEmitter {
	em := &SurfaceEmitter{Mesh: ms}
	em.Update()
	return em
}

// Update recomputes the triangle area weights from the mesh.
func (em *SurfaceEmitter) Update() {
	em.weights = em.weights[:0]
	if em.Mesh == nil {
		return
	}
	for i := range em.Mesh.NumTriangles() {
		t := em.Mesh.Triangle(i)
		em.weights = append(em.weights, t.Area())
	}
	if len(em.weights) > 0 {
		randx.Normalize32(em.weights)
	}
}

// SpawnPoint returns a point inside an area-weighted random triangle
// and the normal of that triangle. An empty mesh yields the origin
// with a +Y normal.
func (em *SurfaceEmitter) SpawnPoint(rnd randx.Rand) (pos, normal math32.Vector3) {
	if len(em.weights) == 0 {
		return math32.Vector3{}, math32.Vec3(0, 1, 0)
	}
	t := em.Mesh.Triangle(randx.PChoose32(em.weights, rnd))
	u := rnd.Float32()
	v := rnd.Float32()
	return t.PointAt(u, v), t.Normal()
}

func (em *SurfaceEmitter) SpawnPosition(rnd randx.Rand) math32.Vector3 {
	pos, _ := em.SpawnPoint(rnd)
	return pos
}
