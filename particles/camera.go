// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import (
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/particles/math32"
)

// Camera is the view basis used to orient camera facing billboards.
type Camera struct {

	// Left is the unit vector pointing to the left of the view.
	Left math32.Vector3

	// Up is the unit vector pointing up in the view.
	Up math32.Vector3
}

// CameraLookAt returns the [Camera] of a view at eye looking at target
// with the given up direction.
func CameraLookAt(eye, target, up math32.Vector3) Camera {
	vm := mgl32.LookAtV(toMgl(eye), toMgl(target), toMgl(up))
	right := vm.Row(0)
	vup := vm.Row(1)
	return Camera{
		Left: math32.Vec3(-right[0], -right[1], -right[2]),
		Up:   math32.Vec3(vup[0], vup[1], vup[2]),
	}
}

func toMgl(v math32.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}
