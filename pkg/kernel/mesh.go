package kernel

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Mesh is a triangle mesh. All arrays are flat: vertices has 3 floats
// per vertex (x,y,z), normals has 3 floats per vertex, indices has
// 3 uint32s per triangle.
//
// Pipeline stages never mutate a Mesh in place; every transform returns
// a new value. This keeps fan-out to worker goroutines safe without
// locking.
type Mesh struct {
	Vertices []float32 // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 // [nx0,ny0,nz0, ...]
	Indices  []uint32  // [i0,i1,i2, ...] triangles
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) ms3.Vec {
	return ms3.Vec{X: m.Vertices[i*3], Y: m.Vertices[i*3+1], Z: m.Vertices[i*3+2]}
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]float32(nil), m.Vertices...),
		Normals:  append([]float32(nil), m.Normals...),
		Indices:  append([]uint32(nil), m.Indices...),
	}
}

// Translate returns a copy of the mesh moved by (dx, dy, dz).
// Normals and connectivity carry over unchanged.
func (m *Mesh) Translate(dx, dy, dz float32) *Mesh {
	out := m.Clone()
	for i := 0; i+2 < len(out.Vertices); i += 3 {
		out.Vertices[i] += dx
		out.Vertices[i+1] += dy
		out.Vertices[i+2] += dz
	}
	return out
}

// BoundingBox returns the axis-aligned bounding box of the mesh.
// It is computed from the current vertices on every call so it always
// reflects post-transform geometry.
func (m *Mesh) BoundingBox() ms3.Box {
	if m.IsEmpty() {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: m.Vertex(0), Max: m.Vertex(0)}
	for i := 1; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		bb.Min = ms3.MinElem(bb.Min, v)
		bb.Max = ms3.MaxElem(bb.Max, v)
	}
	return bb
}

// ComputeVertexNormals generates per-vertex normals by averaging the
// face normals of all triangles incident on each vertex, weighted by
// triangle area.
func ComputeVertexNormals(vertices []float32, indices []uint32) []float32 {
	normals := make([]float32, len(vertices))

	numTris := len(indices) / 3
	for t := 0; t < numTris; t++ {
		i0 := indices[t*3+0]
		i1 := indices[t*3+1]
		i2 := indices[t*3+2]

		a := ms3.Vec{X: vertices[i0*3], Y: vertices[i0*3+1], Z: vertices[i0*3+2]}
		b := ms3.Vec{X: vertices[i1*3], Y: vertices[i1*3+1], Z: vertices[i1*3+2]}
		c := ms3.Vec{X: vertices[i2*3], Y: vertices[i2*3+1], Z: vertices[i2*3+2]}

		// Unnormalized face normal; its magnitude is twice the triangle
		// area, which gives the area weighting for free.
		n := ms3.Cross(ms3.Sub(b, a), ms3.Sub(c, a))

		for _, idx := range [3]uint32{i0, i1, i2} {
			normals[idx*3+0] += n.X
			normals[idx*3+1] += n.Y
			normals[idx*3+2] += n.Z
		}
	}

	for i := 0; i+2 < len(normals); i += 3 {
		length := math32.Sqrt(normals[i]*normals[i] + normals[i+1]*normals[i+1] + normals[i+2]*normals[i+2])
		if length > 1e-12 {
			normals[i] /= length
			normals[i+1] /= length
			normals[i+2] /= length
		}
	}

	return normals
}
