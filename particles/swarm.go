// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import "cogentcore.org/particles/math32"

// Swarm keeps particles around a point offset from the system origin
// center. Particles outside Range either speed up, if already heading
// within Deviance of the point, or turn toward it.
type Swarm struct {
	InfluenceBase

	// Offset of the swarm point from the origin center of the system.
	Offset math32.Vector3

	// Range is the radius around the swarm point with no steering.
	Range float32

	// TurnSpeed is the fraction of the heading error corrected per second.
	TurnSpeed float32

	// Deviance is the heading error in radians below which
	// particles speed up instead of turning.
	Deviance float32

	// SpeedBump is the speed gained per second while heading in.
	SpeedBump float32

	// MaxSpeed caps the speed gained through SpeedBump.
	MaxSpeed float32

	point math32.Vector3
}

// NewSwarm returns a new enabled [Swarm] with default steering.
func NewSwarm(offset math32.Vector3, swarmRange float32) *Swarm {
	return &Swarm{
		Offset:    offset,
		Range:     swarmRange,
		TurnSpeed: 2.5,
		Deviance:  math32.DegToRad(15),
		SpeedBump: 0.1,
		MaxSpeed:  0.2,
	}
}

// Point returns the swarm point computed by the last Prepare.
func (sw *Swarm) Point() math32.Vector3 { return sw.point }

func (sw *Swarm) Prepare(sys *System) {
	sw.point = sys.OriginCenter().Add(sw.Offset)
}

func (sw *Swarm) Apply(dt float32, p *Particle, index int) {
	if p.Position.DistanceToSquared(sw.point) <= sw.Range*sw.Range {
		return
	}
	heading := p.Velocity.Normal()
	toPoint := sw.point.Sub(p.Position).Normal()
	angle := toPoint.AngleTo(heading)
	if angle < sw.Deviance {
		if p.Velocity.LengthSquared() < sw.MaxSpeed*sw.MaxSpeed {
			p.Velocity.SetAdd(heading.MulScalar(sw.SpeedBump * dt))
		}
		return
	}
	axis := heading.Cross(toPoint)
	if axis.IsZero() {
		return
	}
	p.Velocity = p.Velocity.RotateAxis(axis.Normal(), angle*sw.TurnSpeed*dt)
}
