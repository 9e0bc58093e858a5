// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particles

import "cogentcore.org/particles/math32"

// Mesh holds flat vertex buffers. A [System] writes its particle geometry
// into an embedded Mesh for a renderer to consume, and a [SurfaceEmitter]
// reads an indexed triangle Mesh to spawn particles on its surface.
// Vertex holds 3 floats per vertex, TexCoord 2 and Color 4.
type Mesh struct {

	// Name of the mesh.
	Name string

	// Vertex positions.
	Vertex math32.ArrayF32

	// TexCoord holds texture coordinates.
	TexCoord math32.ArrayF32

	// Color holds RGBA colors.
	Color math32.ArrayF32

	// Index holds connectivity, interpreted according to the
	// primitive: triangles for meshes, segments for lines.
	Index math32.ArrayU32
}

// NumVertex returns the number of vertices.
func (ms *Mesh) NumVertex() int {
	return len(ms.Vertex) / 3
}

// NumIndex returns the number of indexes.
func (ms *Mesh) NumIndex() int {
	return len(ms.Index)
}

// NumTriangles returns the number of indexed triangles.
func (ms *Mesh) NumTriangles() int {
	return len(ms.Index) / 3
}

// Triangle returns the i-th indexed triangle.
func (ms *Mesh) Triangle(i int) math32.Triangle {
	var t math32.Triangle
	t.SetFromSlice(ms.Vertex, int(ms.Index[3*i]), int(ms.Index[3*i+1]), int(ms.Index[3*i+2]))
	return t
}

// VertexAt returns the position of vertex i.
func (ms *Mesh) VertexAt(i int) math32.Vector3 {
	var v math32.Vector3
	ms.Vertex.GetVector3(3*i, &v)
	return v
}

// ComputeBBox returns the bounding box of all vertices.
func (ms *Mesh) ComputeBBox() math32.Box3 {
	bb := math32.B3Empty()
	for i := range ms.NumVertex() {
		bb.ExpandByPoint(ms.VertexAt(i))
	}
	return bb
}
