// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// ArrayF32 is a slice of float32 with additional convenience methods
// for packing vectors into flat vertex buffers.
type ArrayF32 []float32

// NewArrayF32 creates a returns a new array of floats
// with the specified initial size and capacity
func NewArrayF32(size, capacity int) ArrayF32 {
	return make([]float32, size, capacity)
}

// Bytes returns the size of the array in bytes
func (a *ArrayF32) Bytes() int {
	return len(*a) * 4
}

// Size returns the number of float32 elements in the array
func (a *ArrayF32) Size() int {
	return len(*a)
}

// Len returns the number of float32 elements in the array
// It is equivalent to Size()
func (a *ArrayF32) Len() int {
	return len(*a)
}

// SetLen sets the length of the array, reusing the existing
// backing storage when it is large enough. New elements are zero.
func (a *ArrayF32) SetLen(n int) {
	if cap(*a) >= n {
		old := len(*a)
		*a = (*a)[:n]
		for i := old; i < n; i++ {
			(*a)[i] = 0
		}
		return
	}
	na := make([]float32, n)
	copy(na, *a)
	*a = na
}

// Append appends any number of values to the array
func (a *ArrayF32) Append(v ...float32) {
	*a = append(*a, v...)
}

// Set sets the values of the array starting at the specified pos
// from the specified values
func (a ArrayF32) Set(pos int, v ...float32) {
	for i := 0; i < len(v); i++ {
		a[pos+i] = v[i]
	}
}

// SetVector2 stores the specified Vector2 in the array at the specified pos
func (a ArrayF32) SetVector2(pos int, v Vector2) {
	a[pos] = v.X
	a[pos+1] = v.Y
}

// SetVector3 stores the specified Vector3 in the array at the specified pos
func (a ArrayF32) SetVector3(pos int, v Vector3) {
	a[pos] = v.X
	a[pos+1] = v.Y
	a[pos+2] = v.Z
}

// SetVector4 stores the specified Vector4 in the array at the specified pos
func (a ArrayF32) SetVector4(pos int, v Vector4) {
	a[pos] = v.X
	a[pos+1] = v.Y
	a[pos+2] = v.Z
	a[pos+3] = v.W
}

// GetVector2 stores in the specified Vector2 the
// values from the array starting at the specified pos.
func (a ArrayF32) GetVector2(pos int, v *Vector2) {
	v.X = a[pos]
	v.Y = a[pos+1]
}

// GetVector3 stores in the specified Vector3 the
// values from the array starting at the specified pos.
func (a ArrayF32) GetVector3(pos int, v *Vector3) {
	v.X = a[pos]
	v.Y = a[pos+1]
	v.Z = a[pos+2]
}

// GetVector4 stores in the specified Vector4 the
// values from the array starting at the specified pos.
func (a ArrayF32) GetVector4(pos int, v *Vector4) {
	v.X = a[pos]
	v.Y = a[pos+1]
	v.Z = a[pos+2]
	v.W = a[pos+3]
}

/////////////////////////////////////////////////////////////////////////////////////
//   ArrayU32

// ArrayU32 is a slice of uint32 with additional convenience methods
type ArrayU32 []uint32

// NewArrayU32 creates a returns a new array of uint32
// with the specified initial size and capacity
func NewArrayU32(size, capacity int) ArrayU32 {
	return make([]uint32, size, capacity)
}

// Bytes returns the size of the array in bytes
func (a *ArrayU32) Bytes() int {
	return len(*a) * 4
}

// Size returns the number of float32 elements in the array
func (a *ArrayU32) Size() int {
	return len(*a)
}

// Len returns the number of float32 elements in the array
func (a *ArrayU32) Len() int {
	return len(*a)
}

// Append appends n elements to the array updating the slice if necessary
func (a *ArrayU32) Append(v ...uint32) {
	*a = append(*a, v...)
}

// Set sets the values of the array starting at the specified pos
// from the specified values
func (a ArrayU32) Set(pos int, v ...uint32) {
	for i := 0; i < len(v); i++ {
		a[pos+i] = v[i]
	}
}
