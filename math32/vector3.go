// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

import "fmt"

// Vector3 is a 3D vector/point with X, Y and Z components.
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// Vec3 returns a new [Vector3] with the given x, y and z components.
func Vec3(x, y, z float32) Vector3 {
	return Vector3{x, y, z}
}

// Vector3Scalar returns a new [Vector3] with all components set to the given scalar value.
func Vector3Scalar(scalar float32) Vector3 {
	return Vector3{scalar, scalar, scalar}
}

// Set sets this vector X, Y and Z components.
func (v *Vector3) Set(x, y, z float32) {
	v.X = x
	v.Y = y
	v.Z = z
}

// SetScalar sets all vector X, Y and Z components to same scalar value.
func (v *Vector3) SetScalar(scalar float32) {
	v.X = scalar
	v.Y = scalar
	v.Z = scalar
}

// SetZero sets this vector X, Y and Z components to be zero.
func (v *Vector3) SetZero() {
	v.SetScalar(0)
}

// String returns a string representation of the vector.
func (v Vector3) String() string {
	return fmt.Sprintf("(%v, %v, %v)", v.X, v.Y, v.Z)
}

// IsZero returns whether all components are exactly zero.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsNil returns true if all values are 0 (uninitialized).
func (v Vector3) IsNil() bool {
	return v.IsZero()
}

// Dim returns the given vector component (0 = X, 1 = Y, 2 = Z).
func (v Vector3) Dim(dim int) float32 {
	switch dim {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SetDim sets the given vector component (0 = X, 1 = Y, 2 = Z).
func (v *Vector3) SetDim(dim int, value float32) {
	switch dim {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
}

// ToSlice copies this vector's components to the given float32 slice starting at idx.
func (v Vector3) ToSlice(array []float32, idx int) {
	array[idx] = v.X
	array[idx+1] = v.Y
	array[idx+2] = v.Z
}

// FromSlice sets this vector's components from the given float32 slice starting at idx.
func (v *Vector3) FromSlice(array []float32, idx int) {
	v.X = array[idx]
	v.Y = array[idx+1]
	v.Z = array[idx+2]
}

///////////////////////////////////////////////////////////////////////
//  Basic math operations

// Add adds other vector to this one and returns the result in a new vector.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// AddScalar adds scalar s to each component of this vector and returns new vector.
func (v Vector3) AddScalar(s float32) Vector3 {
	return Vector3{v.X + s, v.Y + s, v.Z + s}
}

// SetAdd sets this to addition with other vector (i.e., += or plus-equals).
func (v *Vector3) SetAdd(other Vector3) {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
}

// Sub subtracts other vector from this one and returns result in new vector.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// SetSub sets this to subtraction with other vector (i.e., -= or minus-equals).
func (v *Vector3) SetSub(other Vector3) {
	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
}

// Mul multiplies each component of this vector by the corresponding one from other
// and returns resulting vector.
func (v Vector3) Mul(other Vector3) Vector3 {
	return Vector3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// MulScalar multiplies each component of this vector by the scalar s and returns resulting vector.
func (v Vector3) MulScalar(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// SetMul sets this to multiplication with other vector (i.e., *= or times-equals).
func (v *Vector3) SetMul(other Vector3) {
	v.X *= other.X
	v.Y *= other.Y
	v.Z *= other.Z
}

// SetMulScalar sets this to multiplication by scalar (i.e., *= or times-equals).
func (v *Vector3) SetMulScalar(s float32) {
	v.X *= s
	v.Y *= s
	v.Z *= s
}

// Div divides each component of this vector by the corresponding one from other vector
// and returns resulting vector.
func (v Vector3) Div(other Vector3) Vector3 {
	return Vector3{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

// DivScalar divides each component of this vector by the scalar s and returns resulting vector.
// If scalar is zero, returns zero.
func (v Vector3) DivScalar(scalar float32) Vector3 {
	if scalar != 0 {
		return v.MulScalar(1 / scalar)
	}
	return Vector3{}
}

// Min returns min of this vector components vs. other vector.
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{Min(v.X, other.X), Min(v.Y, other.Y), Min(v.Z, other.Z)}
}

// SetMin sets this vector components to the minimum values of itself and other vector.
func (v *Vector3) SetMin(other Vector3) {
	v.X = Min(v.X, other.X)
	v.Y = Min(v.Y, other.Y)
	v.Z = Min(v.Z, other.Z)
}

// Max returns max of this vector components vs. other vector.
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{Max(v.X, other.X), Max(v.Y, other.Y), Max(v.Z, other.Z)}
}

// SetMax sets this vector components to the maximum value of itself and other vector.
func (v *Vector3) SetMax(other Vector3) {
	v.X = Max(v.X, other.X)
	v.Y = Max(v.Y, other.Y)
	v.Z = Max(v.Z, other.Z)
}

// Negate returns vector with each component negated.
func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Abs returns vector with abs of each component.
func (v Vector3) Abs() Vector3 {
	return Vector3{Abs(v.X), Abs(v.Y), Abs(v.Z)}
}

///////////////////////////////////////////////////////////////////////
//  Distance, Norm

// Dot returns the dot product of this vector with other.
func (v Vector3) Dot(other Vector3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of this vector with other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vec3(v.Y*other.Z-v.Z*other.Y, v.Z*other.X-v.X*other.Z, v.X*other.Y-v.Y*other.X)
}

// Length returns the length (magnitude) of this vector.
func (v Vector3) Length() float32 {
	return Sqrt(v.LengthSquared())
}

// LengthSquared returns the length squared of this vector.
// LengthSquared can be used to compare the lengths of vectors
// without the need to perform a square root.
func (v Vector3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normal returns this vector divided by its length (its unit vector).
// A zero vector is returned unchanged.
func (v Vector3) Normal() Vector3 {
	return v.DivScalar(v.Length())
}

// SetNormal normalizes this vector so its length will be 1.
func (v *Vector3) SetNormal() {
	*v = v.Normal()
}

// SetLength sets this vector to have the specified length.
// If the current length is zero, does nothing.
func (v *Vector3) SetLength(l float32) {
	oldLength := v.Length()
	if oldLength != 0 && l != oldLength {
		v.SetMulScalar(l / oldLength)
	}
}

// Lerp returns vector with each components as the linear interpolated value of
// alpha between itself and the corresponding other component.
func (v Vector3) Lerp(other Vector3, alpha float32) Vector3 {
	return Vector3{v.X + (other.X-v.X)*alpha, v.Y + (other.Y-v.Y)*alpha, v.Z + (other.Z-v.Z)*alpha}
}

// DistanceTo returns the distance of this point to other.
func (v Vector3) DistanceTo(other Vector3) float32 {
	return Sqrt(v.DistanceToSquared(other))
}

// DistanceToSquared returns the distance squared of this point to other.
func (v Vector3) DistanceToSquared(other Vector3) float32 {
	return v.Sub(other).LengthSquared()
}

// AngleTo returns the angle between this vector and other.
// Returns zero if either vector has zero length.
func (v Vector3) AngleTo(other Vector3) float32 {
	denom := Sqrt(v.LengthSquared() * other.LengthSquared())
	if denom == 0 {
		return 0
	}
	return Acos(Clamp(v.Dot(other)/denom, -1, 1))
}

// MulMatrix3 returns the vector multiplied by the specified 3x3 matrix.
func (v Vector3) MulMatrix3(m *Matrix3) Vector3 {
	return Vector3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// RotateAxis returns the vector rotated by angle radians around the given
// unit axis, using Rodrigues' rotation formula.
func (v Vector3) RotateAxis(axis Vector3, angle float32) Vector3 {
	s, c := Sincos(angle)
	return v.MulScalar(c).Add(axis.Cross(v).MulScalar(s)).Add(axis.MulScalar(axis.Dot(v) * (1 - c)))
}
