//go:build manifold

// Package manifold provides a CGo-based mesh kernel binding to the
// Manifold library (https://github.com/elalish/manifold). Manifold
// provides guaranteed-manifold boolean operations and edge-length
// refinement, so it handles overlapping fragments that the stitch
// backend cannot.
//
// This package requires the Manifold C library (manifoldc) to be
// installed. Build with: go build -tags=manifold
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/rsiegemit/MorphoStruct-sub001/pkg/kernel"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*ManifoldKernel)(nil)
var _ kernel.BatchUnioner = (*ManifoldKernel)(nil)

// ManifoldKernel implements kernel.Kernel using the Manifold C library.
type ManifoldKernel struct{}

// New creates a new ManifoldKernel.
func New() (kernel.Kernel, error) {
	return &ManifoldKernel{}, nil
}

// toManifold converts a flat-array mesh into a Manifold solid.
func toManifold(m *kernel.Mesh) (*C.ManifoldManifold, error) {
	if m.IsEmpty() {
		return nil, fmt.Errorf("manifold: empty mesh")
	}
	meshAlloc := C.manifold_alloc_meshgl()
	meshGL := C.manifold_meshgl(meshAlloc,
		(*C.float)(unsafe.Pointer(&m.Vertices[0])),
		C.size_t(m.VertexCount()),
		C.size_t(3),
		(*C.uint32_t)(unsafe.Pointer(&m.Indices[0])),
		C.size_t(m.TriangleCount()),
	)
	defer C.manifold_delete_meshgl(meshGL)

	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_of_meshgl(alloc, meshGL)
	if C.manifold_status(ptr) != C.MANIFOLD_NO_ERROR {
		C.manifold_delete_manifold(ptr)
		return nil, fmt.Errorf("manifold: input mesh is not manifold")
	}
	return ptr, nil
}

// fromManifold extracts a flat-array mesh from a Manifold solid.
func fromManifold(ptr *C.ManifoldManifold) (*kernel.Mesh, error) {
	meshAlloc := C.manifold_alloc_meshgl()
	meshGL := C.manifold_get_meshgl(meshAlloc, ptr)
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))
	if numVert == 0 || numTri == 0 {
		return &kernel.Mesh{}, nil
	}

	numProp := int(C.manifold_meshgl_num_prop(meshGL))
	propData := make([]float32, numVert*numProp)
	C.manifold_meshgl_vert_properties(
		(*C.float)(unsafe.Pointer(&propData[0])),
		meshGL,
	)

	indices := make([]uint32, numTri*3)
	C.manifold_meshgl_tri_verts(
		(*C.uint32_t)(unsafe.Pointer(&indices[0])),
		meshGL,
	)

	vertices := make([]float32, numVert*3)
	for i := 0; i < numVert; i++ {
		base := i * numProp
		vertices[i*3+0] = propData[base+0]
		vertices[i*3+1] = propData[base+1]
		vertices[i*3+2] = propData[base+2]
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  kernel.ComputeVertexNormals(vertices, indices),
		Indices:  indices,
	}, nil
}

// Union returns the boolean union of two meshes.
func (k *ManifoldKernel) Union(a, b *kernel.Mesh) (*kernel.Mesh, error) {
	ma, err := toManifold(a)
	if err != nil {
		return nil, err
	}
	defer C.manifold_delete_manifold(ma)
	mb, err := toManifold(b)
	if err != nil {
		return nil, err
	}
	defer C.manifold_delete_manifold(mb)

	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_union(alloc, ma, mb)
	defer C.manifold_delete_manifold(ptr)
	if C.manifold_status(ptr) != C.MANIFOLD_NO_ERROR {
		return nil, fmt.Errorf("manifold: union failed")
	}
	return fromManifold(ptr)
}

// BatchUnion unions many meshes in a single batched boolean, which is
// faster than chaining pairwise unions.
func (k *ManifoldKernel) BatchUnion(meshes []*kernel.Mesh) (*kernel.Mesh, error) {
	if len(meshes) == 0 {
		return nil, fmt.Errorf("manifold: batch union of zero meshes")
	}
	if len(meshes) == 1 {
		return meshes[0], nil
	}

	vecAlloc := C.manifold_alloc_manifold_vec()
	vec := C.manifold_manifold_vec(vecAlloc, C.size_t(len(meshes)))
	defer C.manifold_delete_manifold_vec(vec)

	for i, m := range meshes {
		ptr, err := toManifold(m)
		if err != nil {
			return nil, fmt.Errorf("manifold: batch input %d: %w", i, err)
		}
		C.manifold_manifold_vec_set(vec, C.size_t(i), ptr)
	}

	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_batch_boolean(alloc, vec, C.MANIFOLD_ADD)
	defer C.manifold_delete_manifold(ptr)
	if C.manifold_status(ptr) != C.MANIFOLD_NO_ERROR {
		return nil, fmt.Errorf("manifold: batch union of %d meshes failed", len(meshes))
	}
	return fromManifold(ptr)
}

// Refine subdivides the mesh until no edge is longer than maxEdge.
func (k *ManifoldKernel) Refine(m *kernel.Mesh, maxEdge float32) (*kernel.Mesh, error) {
	if maxEdge <= 0 {
		return nil, fmt.Errorf("manifold: refine edge length must be positive, got %g", maxEdge)
	}
	ptr, err := toManifold(m)
	if err != nil {
		return nil, err
	}
	defer C.manifold_delete_manifold(ptr)

	alloc := C.manifold_alloc_manifold()
	refined := C.manifold_refine_to_length(alloc, ptr, C.double(maxEdge))
	defer C.manifold_delete_manifold(refined)
	return fromManifold(refined)
}

// Volume returns the enclosed volume of a watertight mesh.
func (k *ManifoldKernel) Volume(m *kernel.Mesh) float64 {
	ptr, err := toManifold(m)
	if err != nil {
		return 0
	}
	defer C.manifold_delete_manifold(ptr)
	props := C.manifold_get_properties(ptr)
	return float64(props.volume)
}
