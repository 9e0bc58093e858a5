// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Matrix3 is 3x3 matrix organized internally as column matrix.
type Matrix3 [9]float32

// Identity3 returns a new identity [Matrix3] matrix.
func Identity3() Matrix3 {
	m := Matrix3{}
	m.SetIdentity()
	return m
}

// Matrix3Rotation returns a [Matrix3] that rotates by the given angle
// in radians around the given unit axis.
func Matrix3Rotation(axis Vector3, angle float32) Matrix3 {
	m := Matrix3{}
	m.SetRotationAxis(axis, angle)
	return m
}

// Set sets all the elements of the matrix row by row starting at row1, column1,
// row1, column2, row1, column3 and so forth.
func (m *Matrix3) Set(n11, n12, n13, n21, n22, n23, n31, n32, n33 float32) {
	m[0] = n11
	m[3] = n12
	m[6] = n13
	m[1] = n21
	m[4] = n22
	m[7] = n23
	m[2] = n31
	m[5] = n32
	m[8] = n33
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix3) SetIdentity() {
	m.Set(
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	)
}

// IsIdentity returns whether this matrix is exactly the identity matrix.
func (m *Matrix3) IsIdentity() bool {
	return *m == Identity3()
}

// At returns the element at the given row and column.
func (m *Matrix3) At(row, col int) float32 {
	return m[col*3+row]
}

// Column returns the given column as a vector.
func (m *Matrix3) Column(col int) Vector3 {
	return Vec3(m[col*3], m[col*3+1], m[col*3+2])
}

// Mul returns this matrix times other matrix (this matrix is unchanged)
func (m Matrix3) Mul(other Matrix3) Matrix3 {
	nm := Matrix3{}
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			nm[c*3+r] = m[r]*other[c*3] + m[3+r]*other[c*3+1] + m[6+r]*other[c*3+2]
		}
	}
	return nm
}

// MulVector3 returns the given vector transformed by this matrix.
func (m *Matrix3) MulVector3(v Vector3) Vector3 {
	return v.MulMatrix3(m)
}

// Transpose returns the transpose of this matrix.
func (m Matrix3) Transpose() Matrix3 {
	m[1], m[3] = m[3], m[1]
	m[2], m[6] = m[6], m[2]
	m[5], m[7] = m[7], m[5]
	return m
}

// SetRotationAxis sets this matrix to a rotation of the given angle
// in radians around the given unit axis.
func (m *Matrix3) SetRotationAxis(axis Vector3, angle float32) {
	s, c := Sincos(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z
	m.Set(
		t*x*x+c, t*x*y-s*z, t*x*z+s*y,
		t*x*y+s*z, t*y*y+c, t*y*z-s*x,
		t*x*z-s*y, t*y*z+s*x, t*z*z+c,
	)
}

// SetFromToRotation sets this matrix to the rotation that maps the direction
// of from onto the direction of to, following Möller and Hughes,
// "Efficiently Building a Matrix to Rotate One Vector to Another" (1999).
// When the vectors are nearly parallel or antiparallel the rotation is built
// from a pair of reflections. If either vector has zero length the matrix is
// set to the identity.
func (m *Matrix3) SetFromToRotation(from, to Vector3) {
	if from.LengthSquared() == 0 || to.LengthSquared() == 0 {
		m.SetIdentity()
		return
	}
	from = from.Normal()
	to = to.Normal()
	e := from.Dot(to)
	v := from.Cross(to)

	if Abs(e) > 1-Epsilon {
		// x is the coordinate axis most orthogonal to from
		x := from.Abs()
		switch {
		case x.X < x.Y && x.X < x.Z:
			x = Vec3(1, 0, 0)
		case x.Y <= x.X && x.Y < x.Z:
			x = Vec3(0, 1, 0)
		default:
			x = Vec3(0, 0, 1)
		}
		u := x.Sub(from)
		w := x.Sub(to)
		c1 := 2 / u.Dot(u)
		c2 := 2 / w.Dot(w)
		c3 := c1 * c2 * u.Dot(w)
		uv := [3]float32{u.X, u.Y, u.Z}
		wv := [3]float32{w.X, w.Y, w.Z}
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				val := -c1*uv[r]*uv[c] - c2*wv[r]*wv[c] + c3*wv[r]*uv[c]
				if r == c {
					val += 1
				}
				m[c*3+r] = val
			}
		}
		return
	}

	h := 1 / (1 + e)
	hvx := h * v.X
	hvz := h * v.Z
	hvxy := hvx * v.Y
	hvxz := hvx * v.Z
	hvyz := hvz * v.Y
	m.Set(
		e+hvx*v.X, hvxy-v.Z, hvxz+v.Y,
		hvxy+v.Z, e+h*v.Y*v.Y, hvyz-v.X,
		hvxz-v.Y, hvyz+v.X, e+hvz*v.Z,
	)
}
