// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"image/color"
	"testing"

	"cogentcore.org/particles/base/tolassert"
	"github.com/stretchr/testify/assert"
)

const standardTol = float32(1.0e-5)

func tolAssertEqualVector(t *testing.T, vt, va Vector3) {
	t.Helper()
	tolassert.EqualTol(t, vt.X, va.X, standardTol)
	tolassert.EqualTol(t, vt.Y, va.Y, standardTol)
	tolassert.EqualTol(t, vt.Z, va.Z, standardTol)
}

func TestVector3(t *testing.T) {
	assert.Equal(t, Vector3{5, 10, 2}, Vec3(5, 10, 2))
	assert.Equal(t, Vector3{20, 20, 20}, Vector3Scalar(20))

	v := Vector3{}
	assert.True(t, v.IsZero())
	v.Set(-1, 7, 3)
	assert.Equal(t, Vector3{-1, 7, 3}, v)
	assert.Equal(t, float32(7), v.Dim(1))
	v.SetDim(2, 4)
	assert.Equal(t, float32(4), v.Z)

	assert.Equal(t, Vec3(0, 8, 5), v.Add(Vec3(1, 1, 1)))
	assert.Equal(t, Vec3(-2, 6, 3), v.Sub(Vec3(1, 1, 1)))
	assert.Equal(t, Vec3(-2, 14, 8), v.MulScalar(2))
	assert.Equal(t, Vec3(1, -7, -4), v.Negate())
	assert.Equal(t, Vector3{}, v.DivScalar(0))

	v.SetAdd(Vec3(1, 0, 0))
	assert.Equal(t, Vec3(0, 7, 4), v)
	v.SetMulScalar(0.5)
	assert.Equal(t, Vec3(0, 3.5, 2), v)

	assert.Equal(t, Vec3(0, 0, 1), Vec3(1, 0, 0).Cross(Vec3(0, 1, 0)))
	assert.Equal(t, float32(32), Vec3(1, 2, 3).Dot(Vec3(4, 5, 6)))
	assert.Equal(t, float32(5), Vec3(3, 4, 0).Length())
	assert.Equal(t, float32(25), Vec3(3, 4, 0).LengthSquared())
	tolAssertEqualVector(t, Vec3(0.6, 0.8, 0), Vec3(3, 4, 0).Normal())
	assert.Equal(t, Vector3{}, Vector3{}.Normal())

	v = Vec3(3, 4, 0)
	v.SetLength(10)
	tolAssertEqualVector(t, Vec3(6, 8, 0), v)

	assert.Equal(t, Vec3(1, -2, 3), Vec3(1, 5, 3).Min(Vec3(4, -2, 6)))
	assert.Equal(t, Vec3(4, 5, 6), Vec3(1, 5, 3).Max(Vec3(4, -2, 6)))
	tolAssertEqualVector(t, Vec3(2, 2, 2), Vec3(0, 0, 0).Lerp(Vec3(4, 4, 4), 0.5))
	assert.Equal(t, float32(5), Vec3(0, 0, 0).DistanceTo(Vec3(0, 3, 4)))
}

func TestVector3Angles(t *testing.T) {
	tolassert.EqualTol(t, HalfPi, Vec3(1, 0, 0).AngleTo(Vec3(0, 2, 0)), standardTol)
	tolassert.EqualTol(t, 0, Vec3(1, 0, 0).AngleTo(Vec3(3, 0, 0)), standardTol)
	tolassert.EqualTol(t, Pi, Vec3(1, 0, 0).AngleTo(Vec3(-1, 0, 0)), standardTol)
	assert.Equal(t, float32(0), Vector3{}.AngleTo(Vec3(1, 0, 0)))

	tolAssertEqualVector(t, Vec3(0, 1, 0), Vec3(1, 0, 0).RotateAxis(Vec3(0, 0, 1), HalfPi))
	tolAssertEqualVector(t, Vec3(-1, 0, 0), Vec3(1, 0, 0).RotateAxis(Vec3(0, 1, 0), Pi))
}

func TestVector3Slice(t *testing.T) {
	buf := make([]float32, 6)
	Vec3(1, 2, 3).ToSlice(buf, 3)
	assert.Equal(t, []float32{0, 0, 0, 1, 2, 3}, buf)
	v := Vector3{}
	v.FromSlice(buf, 3)
	assert.Equal(t, Vec3(1, 2, 3), v)
}

func TestVector4(t *testing.T) {
	c := Vec4(1, 0.5, 0, 1)
	assert.Equal(t, Vec4(0, 0.5, 1, 0), Vec4(1, 1, 1, 1).Sub(c))
	assert.Equal(t, Vec4(0.5, 0.25, 0, 0.5), c.MulScalar(0.5))
	assert.Equal(t, Vec4(1, 0.75, 0.5, 1), c.Lerp(Vec4(1, 1, 1, 1), 0.5))
	assert.Equal(t, Vec4(1, 0, 0.5, 0), Vec4(2, -1, 0.5, -3).Clamp())
	rgba := c.AsRGBA()
	assert.Equal(t, uint8(255), rgba.R)
	assert.Equal(t, uint8(128), rgba.G)
	assert.Equal(t, uint8(255), rgba.A)
	assert.Equal(t, Vec4(1, 0, 0, 1), NewVector4Color(color.NRGBA{255, 0, 0, 255}))
	assert.Equal(t, Vector4{}, NewVector4Color(color.NRGBA{}))

	buf := make([]float32, 4)
	c.ToSlice(buf, 0)
	var d Vector4
	d.FromSlice(buf, 0)
	assert.Equal(t, c, d)
}

func TestMathHelpers(t *testing.T) {
	assert.Equal(t, float32(0), NonNegative(-3))
	assert.Equal(t, float32(3), NonNegative(3))
	assert.Equal(t, 2, Clamp(5, 0, 2))
	assert.Equal(t, float32(-1), Sign(-0.1))
	tolassert.EqualTol(t, Pi, DegToRad(180), standardTol)
	tolassert.EqualTol(t, 90, RadToDeg(HalfPi), 1e-4)
	assert.True(t, IsInf(Inf(1), 1))
	assert.Equal(t, float32(2.5), Lerp(0, 10, 0.25))
}
