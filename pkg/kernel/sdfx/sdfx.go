// Package sdfx generates smooth unit-patch meshes with the
// github.com/deadsy/sdfx SDF-based CAD library. The tiling pipeline
// takes any mesh as its unit patch; this package is a convenient source
// of rounded and curved patches that the exact box constructor cannot
// produce.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/rsiegemit/MorphoStruct-sub001/pkg/kernel"
)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 64

// Source produces unit-patch meshes from SDF primitives.
type Source struct {
	// Cells is the marching cubes resolution. Zero means the default.
	Cells int
}

// New returns a Source with the default tessellation resolution.
func New() *Source {
	return &Source{}
}

func (s *Source) cells() int {
	if s.Cells > 0 {
		return s.Cells
	}
	return defaultMeshCells
}

// Box returns a box patch with the given dimensions and rounded edges.
// A zero round produces sharp edges.
func (s *Source) Box(x, y, z, round float64) (*kernel.Mesh, error) {
	solid, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, round)
	if err != nil {
		return nil, fmt.Errorf("sdfx box: %w", err)
	}
	return s.toMesh(solid)
}

// Cylinder returns a cylinder patch along the Z axis.
func (s *Source) Cylinder(height, radius, round float64) (*kernel.Mesh, error) {
	solid, err := sdf.Cylinder3D(height, radius, round)
	if err != nil {
		return nil, fmt.Errorf("sdfx cylinder: %w", err)
	}
	return s.toMesh(solid)
}

// Sphere returns a sphere patch.
func (s *Source) Sphere(radius float64) (*kernel.Mesh, error) {
	solid, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx sphere: %w", err)
	}
	return s.toMesh(solid)
}

// toMesh tessellates an SDF with marching cubes into the flat-array
// mesh layout. Marching cubes emits independent triangles, so each
// triangle contributes its own three vertices with the face normal.
func (s *Source) toMesh(solid sdf.SDF3) (*kernel.Mesh, error) {
	renderer := render.NewMarchingCubesUniform(s.cells())
	triangles := render.ToTriangles(solid, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("sdfx: tessellation produced no triangles at %d cells", s.cells())
	}

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
