// Package stitch implements the kernel.Kernel interface in pure Go for
// the non-overlapping fragments the tiling pipeline produces: union by
// vertex-welding concatenation, refinement by uniform edge-midpoint
// subdivision, and volume by signed tetrahedra. It is not a general
// boolean engine; fragments whose interiors overlap will double-count
// geometry. For arbitrary booleans use the manifold backend.
package stitch

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/rsiegemit/MorphoStruct-sub001/pkg/kernel"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*StitchKernel)(nil)
var _ kernel.BatchUnioner = (*StitchKernel)(nil)

// defaultWeldTolerance is the coordinate quantum used to identify
// coincident vertices along shared fragment edges.
const defaultWeldTolerance = 1e-5

// maxRefinePasses bounds the uniform subdivision loop. Each pass halves
// edge lengths, so twelve passes cover a 4096x reduction.
const maxRefinePasses = 12

// StitchKernel implements kernel.Kernel by welding shared vertices.
type StitchKernel struct {
	// WeldTolerance overrides the vertex welding quantum. Zero means
	// the default.
	WeldTolerance float32
}

// New returns a StitchKernel with the default weld tolerance.
func New() *StitchKernel {
	return &StitchKernel{}
}

func (k *StitchKernel) tolerance() float32 {
	if k.WeldTolerance > 0 {
		return k.WeldTolerance
	}
	return defaultWeldTolerance
}

// welder deduplicates vertices by quantized position while building a
// merged vertex array.
type welder struct {
	quantum float32
	lookup  map[[3]int64]uint32
	verts   []float32
}

func newWelder(quantum float32, capacityHint int) *welder {
	return &welder{
		quantum: quantum,
		lookup:  make(map[[3]int64]uint32, capacityHint),
		verts:   make([]float32, 0, capacityHint*3),
	}
}

// add returns the merged index for the vertex at (x, y, z), reusing an
// existing index when a previously added vertex quantizes to the same
// cell.
func (w *welder) add(x, y, z float32) uint32 {
	key := [3]int64{
		int64(math32.Round(x / w.quantum)),
		int64(math32.Round(y / w.quantum)),
		int64(math32.Round(z / w.quantum)),
	}
	if idx, ok := w.lookup[key]; ok {
		return idx
	}
	idx := uint32(len(w.verts) / 3)
	w.verts = append(w.verts, x, y, z)
	w.lookup[key] = idx
	return idx
}

// appendMesh welds all of m's vertices into w and appends its
// reindexed triangles to indices.
func (w *welder) appendMesh(m *kernel.Mesh, indices []uint32) []uint32 {
	remap := make([]uint32, m.VertexCount())
	for i := 0; i < m.VertexCount(); i++ {
		remap[i] = w.add(m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2])
	}
	for _, idx := range m.Indices {
		indices = append(indices, remap[idx])
	}
	return indices
}

// Union merges two meshes, welding vertices that coincide within the
// weld tolerance so shared fragment edges fuse instead of duplicating.
func (k *StitchKernel) Union(a, b *kernel.Mesh) (*kernel.Mesh, error) {
	return k.BatchUnion([]*kernel.Mesh{a, b})
}

// BatchUnion merges any number of meshes in a single welding pass.
func (k *StitchKernel) BatchUnion(meshes []*kernel.Mesh) (*kernel.Mesh, error) {
	switch len(meshes) {
	case 0:
		return nil, errors.New("stitch: batch union of zero meshes")
	case 1:
		return meshes[0], nil
	}
	totalVerts := 0
	totalIdx := 0
	for i, m := range meshes {
		if m == nil {
			return nil, fmt.Errorf("stitch: nil mesh at index %d", i)
		}
		totalVerts += m.VertexCount()
		totalIdx += len(m.Indices)
	}
	w := newWelder(k.tolerance(), totalVerts)
	indices := make([]uint32, 0, totalIdx)
	for _, m := range meshes {
		indices = w.appendMesh(m, indices)
	}
	return &kernel.Mesh{
		Vertices: w.verts,
		Normals:  kernel.ComputeVertexNormals(w.verts, indices),
		Indices:  indices,
	}, nil
}

// Refine uniformly subdivides the mesh 4:1 until no edge is longer than
// maxEdge. Subdividing every triangle in a pass keeps the mesh free of
// T-junctions, so watertight input stays watertight.
func (k *StitchKernel) Refine(m *kernel.Mesh, maxEdge float32) (*kernel.Mesh, error) {
	if maxEdge <= 0 {
		return nil, fmt.Errorf("stitch: refine edge length must be positive, got %g", maxEdge)
	}
	out := m
	for pass := 0; pass < maxRefinePasses; pass++ {
		if longestEdge(out) <= maxEdge {
			break
		}
		out = subdivide(out)
	}
	if out == m {
		// Already fine enough; still return a fresh value.
		out = m.Clone()
	}
	return out, nil
}

// longestEdge returns the length of the longest triangle edge.
func longestEdge(m *kernel.Mesh) float32 {
	var longest float32
	for t := 0; t < m.TriangleCount(); t++ {
		a := m.Vertex(int(m.Indices[t*3]))
		b := m.Vertex(int(m.Indices[t*3+1]))
		c := m.Vertex(int(m.Indices[t*3+2]))
		longest = math32.Max(longest, ms3.Norm(ms3.Sub(b, a)))
		longest = math32.Max(longest, ms3.Norm(ms3.Sub(c, b)))
		longest = math32.Max(longest, ms3.Norm(ms3.Sub(a, c)))
	}
	return longest
}

// subdivide splits every triangle into four using edge midpoints.
// Midpoints are shared between the two triangles flanking an edge.
func subdivide(m *kernel.Mesh) *kernel.Mesh {
	verts := append([]float32(nil), m.Vertices...)
	midpoints := make(map[[2]uint32]uint32, m.TriangleCount()*3/2)

	midpoint := func(i, j uint32) uint32 {
		key := [2]uint32{i, j}
		if j < i {
			key = [2]uint32{j, i}
		}
		if idx, ok := midpoints[key]; ok {
			return idx
		}
		idx := uint32(len(verts) / 3)
		verts = append(verts,
			(m.Vertices[i*3]+m.Vertices[j*3])/2,
			(m.Vertices[i*3+1]+m.Vertices[j*3+1])/2,
			(m.Vertices[i*3+2]+m.Vertices[j*3+2])/2,
		)
		midpoints[key] = idx
		return idx
	}

	indices := make([]uint32, 0, len(m.Indices)*4)
	for t := 0; t < m.TriangleCount(); t++ {
		i0 := m.Indices[t*3]
		i1 := m.Indices[t*3+1]
		i2 := m.Indices[t*3+2]
		m01 := midpoint(i0, i1)
		m12 := midpoint(i1, i2)
		m20 := midpoint(i2, i0)
		indices = append(indices,
			i0, m01, m20,
			m01, i1, m12,
			m20, m12, i2,
			m01, m12, m20,
		)
	}

	return &kernel.Mesh{
		Vertices: verts,
		Normals:  kernel.ComputeVertexNormals(verts, indices),
		Indices:  indices,
	}
}

// Volume returns the volume enclosed by a watertight mesh via the
// signed tetrahedron sum. The result is orientation-independent.
func (k *StitchKernel) Volume(m *kernel.Mesh) float64 {
	var sum float64
	for t := 0; t < m.TriangleCount(); t++ {
		a := m.Vertex(int(m.Indices[t*3]))
		b := m.Vertex(int(m.Indices[t*3+1]))
		c := m.Vertex(int(m.Indices[t*3+2]))
		sum += float64(ms3.Dot(a, ms3.Cross(b, c)))
	}
	sum /= 6
	if sum < 0 {
		sum = -sum
	}
	return sum
}

// Box returns a closed axis-aligned box mesh centered at the origin
// with the given dimensions: 8 welded vertices, 12 outward-wound
// triangles. It is the canonical flat unit patch for tiling.
func Box(x, y, z float32) *kernel.Mesh {
	hx, hy, hz := x/2, y/2, z/2
	verts := []float32{
		-hx, -hy, -hz,
		hx, -hy, -hz,
		hx, hy, -hz,
		-hx, hy, -hz,
		-hx, -hy, hz,
		hx, -hy, hz,
		hx, hy, hz,
		-hx, hy, hz,
	}
	indices := []uint32{
		0, 2, 1, 0, 3, 2, // bottom
		4, 5, 6, 4, 6, 7, // top
		0, 1, 5, 0, 5, 4, // front
		2, 3, 7, 2, 7, 6, // back
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
	}
	return &kernel.Mesh{
		Vertices: verts,
		Normals:  kernel.ComputeVertexNormals(verts, indices),
		Indices:  indices,
	}
}
