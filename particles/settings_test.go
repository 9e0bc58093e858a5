// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/particles/base/iox/tomlx"
	"cogentcore.org/particles/base/iox/yamlx"
	"cogentcore.org/particles/base/randx"
	"cogentcore.org/particles/base/tolassert"
	"cogentcore.org/particles/math32"
)

// testSettings returns settings that use every kind of influence.
func testSettings() Settings {
	st := DefaultSettings("test", 20)
	st.Type = TypeTriangle
	st.EmissionDirection = math32.Vec3(0, 0, 1)
	st.MinAngle = 0.1
	st.MaxAngle = 0.5
	st.MinLife = 500
	st.MaxLife = 700
	st.StartColor = HexColor{1, 1, 1, 1}
	st.EndColor = HexColor{0, 0, 1, 0}
	st.SpinSpeed = 1.5
	st.ReleaseRate = 40
	st.Mass = 3
	st.OriginOffset = math32.Vec3(0, 2, 0)
	st.RandomMod = 0.25
	st.Emitter = EmitterSettings{Kind: "ring", Center: math32.Vec3(1, 0, 0), Up: math32.Vec3(0, 1, 0), InnerRadius: 1, OuterRadius: 2}
	st.Controller.Repeat = RepeatClamp
	st.Controller.MaxTime = 60
	st.Controller.ReleaseVariance = 0.5
	st.Controller.ControlFlow = true
	st.Influences = []InfluenceSettings{
		{Kind: "wind", Direction: math32.Vec3(1, 0, 0), Strength: 0.5, Random: true},
		{Kind: "gravity", Direction: math32.Vec3(0, -1, 0), RotateWithScene: true},
		{Kind: "drag", Coefficient: 0.25, Disabled: true},
		{Kind: "wander", Radius: 1, Distance: 2, Jitter: 0.5},
		{Kind: "vortex", Direction: math32.Vec3(0, 1, 0), Origin: math32.Vec3(1, 0, 0), Strength: 2, Divergence: 0.5},
		{Kind: "swarm", Origin: math32.Vec3(0, 5, 0), Range: 1, TurnSpeed: 2.5, Deviance: 0.25, SpeedBump: 0.125, MaxSpeed: 0.5},
	}
	return st
}

func TestHexColor(t *testing.T) {
	b, err := HexColor{1, 64.0 / 255, 0, 1}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#ff4000", string(b))

	b, err = HexColor{1, 1, 0, 0}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#ffff0000", string(b))

	var hc HexColor
	require.NoError(t, hc.UnmarshalText([]byte("#808080c0")))
	assertVector4(t, math32.Vec4(128.0/255, 128.0/255, 128.0/255, 192.0/255), hc.Vector4())

	require.NoError(t, hc.UnmarshalText([]byte(" #00ff00 ")))
	assert.Equal(t, math32.Vec4(0, 1, 0, 1), hc.Vector4())

	assert.Error(t, hc.UnmarshalText([]byte("green")))
	assert.Error(t, hc.UnmarshalText([]byte("#00ff00zz")))
	assert.Equal(t, math32.Vec4(0, 1, 0, 1), hc.Vector4())
}

func TestDefaultSettings(t *testing.T) {
	st := DefaultSettings("default", 50)
	assert.Equal(t, "default", st.Name)
	assert.Equal(t, TypeQuad, st.Type)
	assert.Equal(t, 50, st.Count)
	assert.Equal(t, 50, st.ReleaseRate)
	assert.Equal(t, float32(2000), st.MinLife)
	assert.Equal(t, float32(3000), st.MaxLife)
	assert.Equal(t, HexColor{1, 0, 0, 1}, st.StartColor)
	assert.Equal(t, "point", st.Emitter.Kind)
	assert.Equal(t, RepeatWrap, st.Controller.Repeat)
	assert.Equal(t, float32(1), st.Controller.Speed)
	assert.Empty(t, st.Influences)
}

func TestSettingsSystem(t *testing.T) {
	st := testSettings()
	sys, c, err := st.NewSystem(randx.NewSysRand(1))
	require.NoError(t, err)
	assert.Same(t, c, sys.Controller())
	assert.Equal(t, 20, sys.NumParticles())
	assert.Equal(t, TypeTriangle, sys.ParticleType())
	assert.Equal(t, float32(1)/3, sys.Particle(19).InvMass())
	assert.Equal(t, math32.Vec3(0, 2, 0), sys.OriginCenter())
	assert.IsType(t, &RingEmitter{}, sys.Emitter())
	assert.Equal(t, RepeatClamp, c.Repeat)
	require.Len(t, c.Influences(), 6)
	assert.IsType(t, &Swarm{}, c.Influences()[5])
	assert.False(t, c.Influences()[2].IsEnabled())

	got, err := FromSystem(sys)
	require.NoError(t, err)
	assert.Equal(t, st, got)

	for range 20 {
		c.Update(0.1)
	}
}

func TestSettingsApply(t *testing.T) {
	st := testSettings()
	sys, c, err := st.NewSystem(randx.NewSysRand(1))
	require.NoError(t, err)
	c.Update(0.1)
	p := sys.Particle(0)

	// same count keeps the pool
	st.Mass = 4
	st.ReleaseRate = 10
	st.Influences = st.Influences[:1]
	require.NoError(t, st.Apply(sys))
	assert.Same(t, p, sys.Particle(0))
	assert.Equal(t, float32(0.25), p.InvMass())
	assert.Equal(t, 10, sys.ReleaseRate())
	assert.Len(t, c.Influences(), 1)

	st.Count = 5
	require.NoError(t, st.Apply(sys))
	assert.Equal(t, 5, sys.NumParticles())
	assert.Equal(t, Available, sys.Particle(0).Status)
	assert.Equal(t, float32(0.25), sys.Particle(4).InvMass())

	st.Type = TypeQuad
	require.NoError(t, st.Apply(sys))
	assert.Equal(t, 4, sys.VertsPerParticle())

	// errors leave the system unchanged
	bad := st
	bad.Type = TypeLine
	assert.ErrorIs(t, bad.Apply(sys), ErrUnsupportedType)
	assert.Equal(t, TypeQuad, sys.ParticleType())

	bad = st
	bad.Emitter.Kind = "cone"
	bad.Name = "changed"
	assert.ErrorIs(t, bad.Apply(sys), ErrUnknownEmitter)
	assert.Equal(t, "test", sys.Name)

	bad = st
	bad.Influences = []InfluenceSettings{{Kind: "magnet"}}
	assert.ErrorIs(t, bad.Apply(sys), ErrUnknownInfluence)
	assert.Len(t, c.Influences(), 1)

	bad = st
	bad.Type = ParticleType(9)
	_, _, err = bad.NewSystem(nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestControllerDefaults(t *testing.T) {
	cs := ControllerSettings{}
	assert.True(t, cs.FillDefaults())
	assert.Equal(t, RepeatWrap, cs.Repeat)
	assert.Equal(t, float32(1), cs.Speed)
	assert.Equal(t, float32(0.01), cs.Precision)
	assert.Equal(t, float32(math32.MaxFloat32), cs.MaxTime)

	cs = ControllerSettings{Repeat: RepeatClamp, MaxTime: 5}
	assert.True(t, cs.FillDefaults())
	assert.Equal(t, RepeatClamp, cs.Repeat)
	assert.Equal(t, float32(1), cs.Speed)
	assert.Equal(t, float32(5), cs.MaxTime)

	cs = ControllerSettings{Repeat: RepeatClamp, Speed: 2, MaxTime: 5, Precision: 0.1}
	assert.False(t, cs.FillDefaults())
	assert.Equal(t, float32(2), cs.Speed)

	// a preset without a controller table still runs
	st := testSettings()
	st.Controller = ControllerSettings{}
	sys, c, err := st.NewSystem(randx.NewSysRand(1))
	require.NoError(t, err)
	assert.Equal(t, float32(1), c.Speed)
	assert.Equal(t, RepeatWrap, c.Repeat)
	c.Update(0.1)
	tolassert.EqualTol(t, 0.1, c.CurrentTime(), 1e-5)
	assert.Equal(t, Alive, sys.Particle(0).Status)
	assert.Equal(t, ControllerSettings{}, st.Controller)
}

func TestSettingsKinds(t *testing.T) {
	sys := NewPoints("points", 4)
	st, err := FromSystem(sys)
	assert.Error(t, err)
	assert.Equal(t, "points", st.Name)

	NewController(sys)
	st, err = FromSystem(sys)
	require.NoError(t, err)
	assert.Equal(t, TypePoint, st.Type)
	sys2, _, err := st.NewSystem(nil)
	require.NoError(t, err)
	assert.Equal(t, TypePoint, sys2.ParticleType())

	st.Type = TypeLine
	sys2, _, err = st.NewSystem(nil)
	require.NoError(t, err)
	assert.Equal(t, TypeLine, sys2.ParticleType())

	emitters := []Emitter{
		&PointEmitter{Offset: math32.Vec3(1, 2, 3)},
		NewLineEmitter(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0)),
		NewRectEmitter(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 0, 1)),
		NewRingEmitter(math32.Vec3(0, 1, 0), math32.Vec3(0, 0, 1), 1, 2),
	}
	for _, em := range emitters {
		es, err := EmitterSettingsOf(em)
		require.NoError(t, err)
		got, err := es.NewEmitter()
		require.NoError(t, err)
		assert.Equal(t, em, got)
	}

	es, err := EmitterSettingsOf(NewSurfaceEmitter(testMesh()))
	require.NoError(t, err)
	assert.Equal(t, EmitterSettings{Kind: "surface"}, es)
	em, err := es.NewEmitter()
	require.NoError(t, err)
	assert.Nil(t, em.(*SurfaceEmitter).Mesh)

	em, err = (&EmitterSettings{}).NewEmitter()
	require.NoError(t, err)
	assert.Equal(t, &PointEmitter{}, em)

	_, err = EmitterSettingsOf(nil)
	assert.ErrorIs(t, err, ErrUnknownEmitter)
}

func TestSettingsTOML(t *testing.T) {
	st := testSettings()
	b, err := tomlx.WriteBytes(&st)
	require.NoError(t, err)
	assert.Contains(t, string(b), "triangle")

	var got Settings
	require.NoError(t, tomlx.ReadBytes(&got, b))
	assert.Equal(t, st, got)
}

func TestSettingsYAML(t *testing.T) {
	st := testSettings()
	b, err := yamlx.WriteBytes(&st)
	require.NoError(t, err)
	assert.Contains(t, string(b), "repeat: clamp")

	var got Settings
	require.NoError(t, yamlx.ReadBytes(&got, b))
	assert.Equal(t, st, got)
}
