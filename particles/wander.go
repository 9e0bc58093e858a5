// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"cogentcore.org/particles/base/slicesx"
	"cogentcore.org/particles/math32"
)

// Wander steers particles smoothly at random. Every particle has a
// persistent wander target that is jittered each tick and projected
// on a sphere of Radius placed Distance ahead along its heading; the
// particle turns toward that point while keeping its speed.
type Wander struct {
	InfluenceBase

	// Radius of the sphere the wander target lies on.
	Radius float32

	// Distance of the sphere center ahead of the particle.
	Distance float32

	// Jitter is the maximum per-axis change of the target each tick.
	Jitter float32

	// targets holds one wander target per pool index.
	targets []math32.Vector3
}

// NewWander returns a new enabled [Wander].
func NewWander(radius, distance, jitter float32) *Wander {
	return &Wander{Radius: radius, Distance: distance, Jitter: jitter}
}

// Prepare resizes the wander targets to the pool size of the system.
// New targets start at zero and existing ones are kept.
func (w *Wander) Prepare(sys *System) {
	n := sys.NumParticles()
	old := len(w.targets)
	if old == n {
		return
	}
	w.targets = slicesx.SetLength(w.targets, n)
	for i := old; i < n; i++ {
		w.targets[i] = math32.Vector3{}
	}
}

// Target returns the wander target of the given pool index.
func (w *Wander) Target(index int) math32.Vector3 {
	return w.targets[index]
}

func (w *Wander) Apply(dt float32, p *Particle, index int) {
	if w.Radius == 0 && w.Distance == 0 && w.Jitter == 0 {
		return
	}
	if index >= len(w.targets) {
		return
	}
	rnd := p.sys.rand
	t := &w.targets[index]
	t.X += w.Jitter * (2*rnd.Float32() - 1)
	t.Y += w.Jitter * (2*rnd.Float32() - 1)
	t.Z += w.Jitter * (2*rnd.Float32() - 1)
	t.SetNormal()
	t.SetMulScalar(w.Radius)

	speed := p.Velocity.Length()
	steer := p.Velocity.Normal().MulScalar(w.Distance).Add(*t)
	p.Velocity = steer.Normal().MulScalar(speed)
}
