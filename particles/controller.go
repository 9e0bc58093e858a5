// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"log/slog"
	"slices"

	"cogentcore.org/particles/base/slicesx"
	"cogentcore.org/particles/math32"
)

// Controller drives a [System] once per frame: it advances the
// simulation clock, applies influences, ages particles and respawns
// the ones that are done, optionally regulating the respawn rate.
type Controller struct {

	// Active controllers update their system. A one-shot controller
	// turns inactive once all of its particles are dead.
	Active bool

	// Repeat is how dead particles are treated.
	Repeat RepeatType

	// Speed scales the time passed to [Controller.Update].
	Speed float32

	// MinTime and MaxTime bound the window of simulation time,
	// in seconds, during which particles are updated.
	MinTime float32
	MaxTime float32

	// Precision is the minimum step in seconds: shorter updates are
	// accumulated until at least this much time has passed.
	Precision float32

	// ReleaseVariance is the relative random variation of the
	// release rate when regulating flow.
	ReleaseVariance float32

	// ControlFlow limits respawns to the release rate of the system,
	// instead of respawning particles as soon as they are done.
	ControlFlow bool

	sys         *System
	influences  []Influence
	currentTime float32
	prevTime    float32
	releaseAcc  float32
}

// NewController returns a new active [Controller] for the given system
// and attaches it to the system.
func NewController(sys *System) *Controller {
	c := &Controller{
		Active:    true,
		Repeat:    RepeatWrap,
		Speed:     1,
		MaxTime:   math32.MaxFloat32,
		Precision: 0.01,
		sys:       sys,
	}
	sys.controller = c
	sys.UpdateRotationMatrix()
	return c
}

// System returns the controlled system.
func (c *Controller) System() *System { return c.sys }

// CurrentTime returns the simulation time in seconds.
func (c *Controller) CurrentTime() float32 { return c.currentTime }

// Reset sets the clock and release accumulator back to zero
// and reactivates the controller.
func (c *Controller) Reset() {
	c.currentTime = 0
	c.prevTime = 0
	c.releaseAcc = 0
	c.Active = true
}

// AddInfluence appends an influence.
func (c *Controller) AddInfluence(inf Influence) {
	c.influences = append(c.influences, inf)
}

// RemoveInfluence removes the first occurrence of the influence
// and returns whether it was present.
func (c *Controller) RemoveInfluence(inf Influence) bool {
	i := slices.Index(c.influences, inf)
	if i < 0 {
		return false
	}
	c.influences = slices.Delete(c.influences, i, i+1)
	return true
}

// ClearInfluences removes all influences.
func (c *Controller) ClearInfluences() {
	c.influences = nil
}

// Influences returns the influences in application order.
func (c *Controller) Influences() []Influence {
	return c.influences
}

// MoveInfluence moves the influence at index from to index to,
// changing the order in which influences are applied.
func (c *Controller) MoveInfluence(from, to int) {
	c.influences = slicesx.Move(c.influences, from, to)
}

// WarmUp runs iterations*10 updates of 0.1 seconds, to bring a new
// system to its steady state population before it is first drawn.
func (c *Controller) WarmUp(iterations int) {
	for range iterations * 10 {
		c.Update(0.1)
	}
}

// Update advances the simulation by dt seconds.
func (c *Controller) Update(dt float32) {
	if !c.Active {
		return
	}
	c.currentTime += dt * c.Speed
	passed := c.currentTime - c.prevTime
	if passed < c.Precision*c.Speed {
		return
	}
	c.prevTime = c.currentTime

	sys := c.sys
	sys.UpdateRotationMatrix()
	if c.currentTime >= c.MinTime && c.currentTime <= c.MaxTime {
		toCreate := 0
		if c.ControlFlow {
			c.releaseAcc += float32(sys.releaseRate) * passed * (1 + c.ReleaseVariance*(sys.rand.Float32()-0.5))
			toCreate = int(c.releaseAcc)
			c.releaseAcc -= float32(toCreate)
		}

		sys.UpdateInvScale()
		for _, inf := range c.influences {
			if inf.IsEnabled() {
				inf.Prepare(sys)
			}
		}

		dead := true
		for i := range sys.particles {
			p := &sys.particles[i]
			if p.Status == Alive {
				for _, inf := range c.influences {
					if inf.IsEnabled() {
						inf.Apply(passed, p, i)
					}
				}
			}
			if p.UpdateAndCheck(passed) && (!c.ControlFlow || toCreate > 0) {
				if p.Status == Dead && c.Repeat == RepeatClamp {
					continue
				}
				dead = false
				if c.ControlFlow {
					toCreate--
				}
				sys.RecreateParticle(i)
			} else {
				dead = false
			}
		}
		if dead {
			c.Active = false
			slog.Debug("particles: system exhausted", "system", sys.Name, "time", c.currentTime)
		}
	}
	if sys.trackBound {
		sys.UpdateBound()
	}
}
