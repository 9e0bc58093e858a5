// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"fmt"
	"strings"

	"cogentcore.org/particles/base/errors"
)

// Status is the lifecycle state of a [Particle].
type Status int32

const (
	// Dead particles have outlived their life span and are
	// waiting to be respawned.
	Dead Status = iota

	// Alive particles are actively simulated.
	Alive

	// Available particles have been constructed but never spawned.
	Available
)

var statusNames = []string{"dead", "alive", "available"}

func (s Status) String() string { return enumString(int(s), statusNames) }

// MarshalText implements [encoding.TextMarshaler].
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Status) UnmarshalText(text []byte) error {
	return enumSet((*int32)(s), text, statusNames, "Status")
}

// ParticleType determines the primitive drawn for each particle,
// and therefore the number of vertices each particle occupies.
type ParticleType int32

const (
	// TypeQuad is a billboard quad of two triangles.
	TypeQuad ParticleType = iota

	// TypeTriangle is a single oversized triangle that contains
	// the unit texture square.
	TypeTriangle

	// TypePoint is a single point.
	TypePoint

	// TypeLine is a line segment.
	TypeLine
)

var particleTypeNames = []string{"quad", "triangle", "point", "line"}

func (t ParticleType) String() string { return enumString(int(t), particleTypeNames) }

// MarshalText implements [encoding.TextMarshaler].
func (t ParticleType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *ParticleType) UnmarshalText(text []byte) error {
	return enumSet((*int32)(t), text, particleTypeNames, "ParticleType")
}

// VertsPerParticle returns the number of vertices used by one
// particle of this type.
func (t ParticleType) VertsPerParticle() int {
	switch t {
	case TypeQuad:
		return 4
	case TypeTriangle:
		return 3
	case TypeLine:
		return 2
	default:
		return 1
	}
}

// IndexesPerParticle returns the number of connectivity indexes used
// by one particle of this type.
func (t ParticleType) IndexesPerParticle() int {
	if t == TypeQuad {
		return 6
	}
	return t.VertsPerParticle()
}

// RepeatType is how a [Controller] treats particles that die.
type RepeatType int32

const (
	// RepeatClamp is one-shot: dead particles are never respawned,
	// and the controller goes inactive once all of them are dead.
	RepeatClamp RepeatType = iota

	// RepeatWrap respawns dead particles.
	RepeatWrap

	// RepeatCycle behaves as [RepeatWrap] for particles.
	RepeatCycle
)

var repeatTypeNames = []string{"clamp", "wrap", "cycle"}

func (r RepeatType) String() string { return enumString(int(r), repeatTypeNames) }

// MarshalText implements [encoding.TextMarshaler].
func (r RepeatType) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (r *RepeatType) UnmarshalText(text []byte) error {
	return enumSet((*int32)(r), text, repeatTypeNames, "RepeatType")
}

func enumString(i int, names []string) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%d", i)
	}
	return names[i]
}

func enumSet(v *int32, text []byte, names []string, typ string) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, nm := range names {
		if nm == s {
			*v = int32(i)
			return nil
		}
	}
	return errors.Errorf("%q is not a valid value for type %s", string(text), typ)
}
