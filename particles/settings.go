// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"cogentcore.org/particles/base/errors"
	"cogentcore.org/particles/base/randx"
	"cogentcore.org/particles/math32"
)

// HexColor is an RGBA color that is written as a "#rrggbb" hex string,
// or "#rrggbbaa" when it is not opaque.
type HexColor math32.Vector4

// Vector4 returns the color as a [math32.Vector4].
func (hc HexColor) Vector4() math32.Vector4 { return math32.Vector4(hc) }

// MarshalText implements [encoding.TextMarshaler].
func (hc HexColor) MarshalText() ([]byte, error) {
	v := math32.Vector4(hc).Clamp()
	s := colorful.Color{R: float64(v.X), G: float64(v.Y), B: float64(v.Z)}.Hex()
	if v.W < 1 {
		s += fmt.Sprintf("%02x", uint8(v.W*255+0.5))
	}
	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (hc *HexColor) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	alpha := float32(1)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return errors.Errorf("particles: invalid alpha in color %q: %w", s, err)
		}
		alpha = float32(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return errors.Wrap(err)
	}
	*hc = HexColor{X: float32(c.R), Y: float32(c.G), Z: float32(c.B), W: alpha}
	return nil
}

// Settings is the serializable configuration of a [System], its
// [Controller], emitter and influences. Angles are in radians and
// times in milliseconds, as on [System].
type Settings struct {

	// Name of the effect.
	Name string `toml:"name" yaml:"name"`

	// Type of the particles, which selects the kind of system built.
	Type ParticleType `toml:"type" yaml:"type"`

	// Count is the number of particles in the pool.
	Count int `toml:"count" yaml:"count"`

	EmissionDirection math32.Vector3 `toml:"emission_direction,inline" yaml:"emission_direction"`
	MinAngle          float32        `toml:"min_angle" yaml:"min_angle"`
	MaxAngle          float32        `toml:"max_angle" yaml:"max_angle"`
	MinLife           float32        `toml:"min_life" yaml:"min_life"`
	MaxLife           float32        `toml:"max_life" yaml:"max_life"`
	StartColor        HexColor       `toml:"start_color" yaml:"start_color"`
	EndColor          HexColor       `toml:"end_color" yaml:"end_color"`
	StartSize         float32        `toml:"start_size" yaml:"start_size"`
	EndSize           float32        `toml:"end_size" yaml:"end_size"`
	InitialVelocity   float32        `toml:"initial_velocity" yaml:"initial_velocity"`
	SpinSpeed         float32        `toml:"spin_speed" yaml:"spin_speed"`
	ReleaseRate       int            `toml:"release_rate" yaml:"release_rate"`
	Mass              float32        `toml:"mass" yaml:"mass"`
	OriginOffset      math32.Vector3 `toml:"origin_offset,inline" yaml:"origin_offset"`
	RotateWithScene   bool           `toml:"rotate_with_scene" yaml:"rotate_with_scene"`
	CameraFacing      bool           `toml:"camera_facing" yaml:"camera_facing"`
	Orientation       float32        `toml:"orientation" yaml:"orientation"`
	RandomMod         float32        `toml:"random_mod" yaml:"random_mod"`
	EmitAlongNormal   bool           `toml:"emit_along_normal" yaml:"emit_along_normal"`

	// WarmUp is the number of warm up iterations run by
	// [Library.NewSystem]; see [Controller.WarmUp].
	WarmUp int `toml:"warm_up" yaml:"warm_up"`

	Emitter    EmitterSettings     `toml:"emitter" yaml:"emitter"`
	Controller ControllerSettings  `toml:"controller" yaml:"controller"`
	Influences []InfluenceSettings `toml:"influence" yaml:"influences"`
}

// EmitterSettings is the serializable form of an [Emitter].
// Kind is one of point, line, rect, ring or surface; only the fields
// of that kind are used. Surface emitters are built without a mesh,
// which must be set on the [SurfaceEmitter] afterwards.
type EmitterSettings struct {
	Kind        string         `toml:"kind" yaml:"kind"`
	Offset      math32.Vector3 `toml:"offset,inline,omitempty" yaml:"offset,omitempty"`
	Start       math32.Vector3 `toml:"start,inline,omitempty" yaml:"start,omitempty"`
	End         math32.Vector3 `toml:"end,inline,omitempty" yaml:"end,omitempty"`
	A           math32.Vector3 `toml:"a,inline,omitempty" yaml:"a,omitempty"`
	B           math32.Vector3 `toml:"b,inline,omitempty" yaml:"b,omitempty"`
	C           math32.Vector3 `toml:"c,inline,omitempty" yaml:"c,omitempty"`
	Center      math32.Vector3 `toml:"center,inline,omitempty" yaml:"center,omitempty"`
	Up          math32.Vector3 `toml:"up,inline,omitempty" yaml:"up,omitempty"`
	InnerRadius float32        `toml:"inner_radius,omitempty" yaml:"inner_radius,omitempty"`
	OuterRadius float32        `toml:"outer_radius,omitempty" yaml:"outer_radius,omitempty"`
}

// NewEmitter returns the emitter described by the settings.
// An empty kind is a point emitter.
func (es *EmitterSettings) NewEmitter() (Emitter, error) {
	switch es.Kind {
	case "", "point":
		return &PointEmitter{Offset: es.Offset}, nil
	case "line":
		return NewLineEmitter(es.Start, es.End), nil
	case "rect":
		return NewRectEmitter(es.A, es.B, es.C), nil
	case "ring":
		return NewRingEmitter(es.Center, es.Up, es.InnerRadius, es.OuterRadius), nil
	case "surface":
		return NewSurfaceEmitter(nil), nil
	}
	return nil, errors.Errorf("%w: %q", ErrUnknownEmitter, es.Kind)
}

// EmitterSettingsOf returns the settings describing the given emitter.
func EmitterSettingsOf(em Emitter) (EmitterSettings, error) {
	switch em := em.(type) {
	case *PointEmitter:
		return EmitterSettings{Kind: "point", Offset: em.Offset}, nil
	case *LineEmitter:
		return EmitterSettings{Kind: "line", Start: em.Start, End: em.End}, nil
	case *RectEmitter:
		return EmitterSettings{Kind: "rect", A: em.A, B: em.B, C: em.C}, nil
	case *RingEmitter:
		return EmitterSettings{Kind: "ring", Center: em.Center, Up: em.Up, InnerRadius: em.InnerRadius, OuterRadius: em.OuterRadius}, nil
	case *SurfaceEmitter:
		return EmitterSettings{Kind: "surface"}, nil
	}
	return EmitterSettings{}, errors.Errorf("%w: %T", ErrUnknownEmitter, em)
}

// ControllerSettings is the serializable form of a [Controller].
type ControllerSettings struct {
	Repeat          RepeatType `toml:"repeat" yaml:"repeat"`
	Speed           float32    `toml:"speed" yaml:"speed"`
	MinTime         float32    `toml:"min_time" yaml:"min_time"`
	MaxTime         float32    `toml:"max_time" yaml:"max_time"`
	Precision       float32    `toml:"precision" yaml:"precision"`
	ReleaseVariance float32    `toml:"release_variance" yaml:"release_variance"`
	ControlFlow     bool       `toml:"control_flow" yaml:"control_flow"`
}

// FillDefaults replaces the values that would stop the clock with the
// [NewController] defaults, and reports whether anything changed.
// A zero record, as decoded from a preset without a controller table,
// becomes the default controller. Otherwise a zero Speed, a
// non-positive Precision and an empty [0, 0] time window are filled.
func (cs *ControllerSettings) FillDefaults() bool {
	if *cs == (ControllerSettings{}) {
		cs.Repeat = RepeatWrap
	}
	changed := false
	if cs.Speed == 0 {
		cs.Speed = 1
		changed = true
	}
	if cs.Precision <= 0 {
		cs.Precision = 0.01
		changed = true
	}
	if cs.MinTime == 0 && cs.MaxTime == 0 {
		cs.MaxTime = math32.MaxFloat32
		changed = true
	}
	return changed
}

// InfluenceSettings is the serializable form of an [Influence].
// Kind is one of wind, gravity, drag, wander, vortex or swarm; only
// the fields of that kind are used. Direction is the wind direction,
// the gravity vector or the vortex axis, and Origin is the vortex
// origin or the swarm offset.
type InfluenceSettings struct {
	Kind            string         `toml:"kind" yaml:"kind"`
	Disabled        bool           `toml:"disabled,omitempty" yaml:"disabled,omitempty"`
	Direction       math32.Vector3 `toml:"direction,inline,omitempty" yaml:"direction,omitempty"`
	Origin          math32.Vector3 `toml:"origin,inline,omitempty" yaml:"origin,omitempty"`
	Strength        float32        `toml:"strength,omitempty" yaml:"strength,omitempty"`
	Random          bool           `toml:"random,omitempty" yaml:"random,omitempty"`
	RotateWithScene bool           `toml:"rotate_with_scene,omitempty" yaml:"rotate_with_scene,omitempty"`
	Coefficient     float32        `toml:"coefficient,omitempty" yaml:"coefficient,omitempty"`
	Radius          float32        `toml:"radius,omitempty" yaml:"radius,omitempty"`
	Distance        float32        `toml:"distance,omitempty" yaml:"distance,omitempty"`
	Jitter          float32        `toml:"jitter,omitempty" yaml:"jitter,omitempty"`
	Divergence      float32        `toml:"divergence,omitempty" yaml:"divergence,omitempty"`
	Range           float32        `toml:"range,omitempty" yaml:"range,omitempty"`
	TurnSpeed       float32        `toml:"turn_speed,omitempty" yaml:"turn_speed,omitempty"`
	Deviance        float32        `toml:"deviance,omitempty" yaml:"deviance,omitempty"`
	SpeedBump       float32        `toml:"speed_bump,omitempty" yaml:"speed_bump,omitempty"`
	MaxSpeed        float32        `toml:"max_speed,omitempty" yaml:"max_speed,omitempty"`
}

// NewInfluence returns the influence described by the settings.
func (is *InfluenceSettings) NewInfluence() (Influence, error) {
	var inf Influence
	switch is.Kind {
	case "wind":
		inf = NewWind(is.Strength, is.Direction, is.Random, is.RotateWithScene)
	case "gravity":
		inf = NewGravity(is.Direction, is.RotateWithScene)
	case "drag":
		inf = NewDrag(is.Coefficient)
	case "wander":
		inf = NewWander(is.Radius, is.Distance, is.Jitter)
	case "vortex":
		inf = NewVortex(is.Strength, is.Divergence, is.Origin, is.Direction, is.Random)
	case "swarm":
		inf = &Swarm{Offset: is.Origin, Range: is.Range, TurnSpeed: is.TurnSpeed, Deviance: is.Deviance, SpeedBump: is.SpeedBump, MaxSpeed: is.MaxSpeed}
	default:
		return nil, errors.Errorf("%w: %q", ErrUnknownInfluence, is.Kind)
	}
	inf.SetEnabled(!is.Disabled)
	return inf, nil
}

// InfluenceSettingsOf returns the settings describing the given influence.
func InfluenceSettingsOf(inf Influence) (InfluenceSettings, error) {
	is := InfluenceSettings{Disabled: !inf.IsEnabled()}
	switch inf := inf.(type) {
	case *Wind:
		is.Kind = "wind"
		is.Strength, is.Direction, is.Random, is.RotateWithScene = inf.Strength, inf.Direction, inf.Random, inf.RotateWithScene
	case *Gravity:
		is.Kind = "gravity"
		is.Direction, is.RotateWithScene = inf.Gravity, inf.RotateWithScene
	case *Drag:
		is.Kind = "drag"
		is.Coefficient = inf.Coefficient
	case *Wander:
		is.Kind = "wander"
		is.Radius, is.Distance, is.Jitter = inf.Radius, inf.Distance, inf.Jitter
	case *Vortex:
		is.Kind = "vortex"
		is.Strength, is.Divergence, is.Origin, is.Direction, is.Random = inf.Strength, inf.Divergence, inf.Origin, inf.Axis, inf.Random
	case *Swarm:
		is.Kind = "swarm"
		is.Origin, is.Range, is.TurnSpeed, is.Deviance, is.SpeedBump, is.MaxSpeed = inf.Offset, inf.Range, inf.TurnSpeed, inf.Deviance, inf.SpeedBump, inf.MaxSpeed
	default:
		return is, errors.Errorf("%w: %T", ErrUnknownInfluence, inf)
	}
	return is, nil
}

// DefaultSettings returns the settings of a new quad system
// of n particles with a new controller.
func DefaultSettings(name string, n int) Settings {
	sys := newSystem(name, 0, kindMesh, TypeQuad)
	NewController(sys)
	st := errors.Must1(FromSystem(sys))
	st.Count = n
	st.ReleaseRate = n
	return st
}

// FromSystem captures the settings of the given system and its
// controller, which must be attached.
func FromSystem(sys *System) (Settings, error) {
	st := Settings{
		Name:              sys.Name,
		Type:              sys.typ,
		Count:             sys.NumParticles(),
		EmissionDirection: sys.emissionDir,
		MinAngle:          sys.angles.Min,
		MaxAngle:          sys.angles.Max,
		MinLife:           sys.lifeTimes.Min,
		MaxLife:           sys.lifeTimes.Max,
		StartColor:        HexColor(sys.startColor),
		EndColor:          HexColor(sys.endColor),
		StartSize:         sys.startSize,
		EndSize:           sys.endSize,
		InitialVelocity:   sys.initialVelocity,
		SpinSpeed:         sys.spinSpeed,
		ReleaseRate:       sys.releaseRate,
		Mass:              sys.particleMass,
		OriginOffset:      sys.originOffset,
		RotateWithScene:   sys.rotateWithScene,
		CameraFacing:      sys.cameraFacing,
		Orientation:       sys.orientation,
		RandomMod:         sys.randomMod,
		EmitAlongNormal:   sys.emitAlongNormal,
	}
	var err error
	st.Emitter, err = EmitterSettingsOf(sys.emitter)
	if err != nil {
		return st, err
	}
	c := sys.controller
	if c == nil {
		return st, errors.Errorf("particles.FromSystem %q: no controller", sys.Name)
	}
	st.Controller = ControllerSettings{
		Repeat:          c.Repeat,
		Speed:           c.Speed,
		MinTime:         c.MinTime,
		MaxTime:         c.MaxTime,
		Precision:       c.Precision,
		ReleaseVariance: c.ReleaseVariance,
		ControlFlow:     c.ControlFlow,
	}
	for _, inf := range c.influences {
		is, err := InfluenceSettingsOf(inf)
		if err != nil {
			return st, err
		}
		st.Influences = append(st.Influences, is)
	}
	return st, nil
}

// NewSystem builds a new system and controller from the settings,
// sampling from rnd, or from the global source if it is nil.
// It does not warm the system up.
func (st *Settings) NewSystem(rnd randx.Rand) (*System, *Controller, error) {
	var sys *System
	switch st.Type {
	case TypeQuad, TypeTriangle:
		sys = newSystem(st.Name, 0, kindMesh, st.Type)
	case TypeLine:
		sys = NewLines(st.Name, 0)
	case TypePoint:
		sys = NewPoints(st.Name, 0)
	default:
		return nil, nil, errors.Errorf("particles.Settings %q: %w: %v", st.Name, ErrUnsupportedType, st.Type)
	}
	sys.SetRand(rnd)
	c := NewController(sys)
	if err := st.Apply(sys); err != nil {
		return nil, nil, err
	}
	return sys, c, nil
}

// Apply applies the settings to an existing system and its attached
// controller, reallocating the pool if the type or count changed.
// The influences of the controller are replaced.
func (st *Settings) Apply(sys *System) error {
	em, err := st.Emitter.NewEmitter()
	if err != nil {
		return err
	}
	infs := make([]Influence, 0, len(st.Influences))
	for i := range st.Influences {
		inf, err := st.Influences[i].NewInfluence()
		if err != nil {
			return err
		}
		infs = append(infs, inf)
	}
	if err := sys.SetParticleType(st.Type); err != nil {
		return err
	}

	sys.Name = st.Name
	sys.SetEmissionDirection(st.EmissionDirection)
	sys.SetMinimumAngle(st.MinAngle)
	sys.SetMaximumAngle(st.MaxAngle)
	sys.SetMinimumLifeTime(st.MinLife)
	sys.SetMaximumLifeTime(st.MaxLife)
	sys.SetStartColor(st.StartColor.Vector4())
	sys.SetEndColor(st.EndColor.Vector4())
	sys.SetStartSize(st.StartSize)
	sys.SetEndSize(st.EndSize)
	sys.SetInitialVelocity(st.InitialVelocity)
	sys.SetParticleSpinSpeed(st.SpinSpeed)
	sys.SetOriginOffset(st.OriginOffset)
	sys.SetRotateWithScene(st.RotateWithScene)
	sys.SetCameraFacing(st.CameraFacing)
	sys.SetParticleOrientation(st.Orientation)
	sys.SetRandomMod(st.RandomMod)
	sys.SetEmitAlongNormal(st.EmitAlongNormal)
	sys.SetEmitter(em)
	sys.particleMass = st.Mass
	if st.Count != sys.NumParticles() {
		sys.Recreate(st.Count)
	} else {
		sys.SetParticleMass(st.Mass)
	}

	if c := sys.controller; c != nil {
		cs := st.Controller
		if cs.FillDefaults() {
			slog.Warn("particles: controller settings filled with defaults", "preset", st.Name,
				"speed", cs.Speed, "precision", cs.Precision, "max_time", cs.MaxTime)
		}
		c.Repeat = cs.Repeat
		c.Speed = cs.Speed
		c.MinTime = cs.MinTime
		c.MaxTime = cs.MaxTime
		c.Precision = cs.Precision
		c.ReleaseVariance = cs.ReleaseVariance
		c.ControlFlow = cs.ControlFlow
		c.influences = infs
	}
	sys.SetReleaseRate(st.ReleaseRate)
	return nil
}
