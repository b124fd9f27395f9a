// Package tile bends a small repeatable unit patch across an analytic
// target surface, producing a thin shell or a solid fill of concentric
// layers. The pipeline is: replicate the patch on a flat grid, map the
// grid onto the surface's parametric domain, refine within a triangle
// budget, then warp each vertex to position(u,v) plus a thickness
// offset along the local normal.
package tile

import (
	"errors"
	"fmt"

	"github.com/rsiegemit/MorphoStruct-sub001/pkg/kernel"
	"github.com/rsiegemit/MorphoStruct-sub001/pkg/reduce"
	"github.com/rsiegemit/MorphoStruct-sub001/pkg/surface"
)

// Stats summarizes a completed tiling request.
type Stats struct {
	Shape         surface.Shape
	Mode          Mode
	TilesU        int
	TilesV        int
	TotalPatches  int
	Layers        int
	TriangleCount int
	Volume        float64
}

// Pipeline runs tiling requests against an injected mesh kernel.
// All stages construct new mesh values; a Pipeline is safe for
// concurrent use.
type Pipeline struct {
	kernel kernel.Kernel
}

// NewPipeline returns a pipeline backed by the given kernel. A nil
// kernel is a configuration error, caught here rather than on first
// use.
func NewPipeline(k kernel.Kernel) (*Pipeline, error) {
	if k == nil {
		return nil, errors.New("tile: pipeline requires a mesh kernel")
	}
	return &Pipeline{kernel: k}, nil
}

// Tile bends copies of the unit patch onto the target surface.
//
// The unit patch is any mesh whose X/Y footprint defines the tile and
// whose Z extent is the shell thickness. Errors are one of three kinds:
// *ParamError for invalid parameters, *BudgetError when refinement
// would blow the triangle budget, and wrapped kernel failures for
// everything the backend reports.
func (p *Pipeline) Tile(unit *kernel.Mesh, params Params) (*kernel.Mesh, Stats, error) {
	var stats Stats
	if err := params.Validate(); err != nil {
		return nil, stats, err
	}
	if unit == nil || unit.IsEmpty() {
		return nil, stats, &ParamError{Field: "unit_patch", Message: "mesh is empty"}
	}

	cfg := params.surfaceConfig()
	bounds := cfg.Bounds(params.NumTilesV)

	flat, err := layoutGrid(unit, params.NumTilesU, params.NumTilesV, p.kernel)
	if err != nil {
		return nil, stats, err
	}
	flat = normalizeUV(flat, bounds)

	budget := params.TriangleBudget
	if budget <= 0 {
		budget = DefaultTriangleBudget
	}
	flat, err = p.refineWithinBudget(flat, float32(params.RefineEdgeLength), budget)
	if err != nil {
		return nil, stats, err
	}

	layers := params.resolvedLayers()
	var result *kernel.Mesh
	if layers == 1 {
		result = warpMesh(cfg, flat, 0)
	} else {
		warped := make([]*kernel.Mesh, 0, layers)
		for _, offset := range layerOffsets(layers, float32(params.LayerSpacing)) {
			warped = append(warped, warpMesh(cfg, flat, offset))
		}
		result, err = reduce.TreeUnionParallel(warped, p.kernel, 0)
		if err != nil {
			return nil, stats, fmt.Errorf("merging %d volume layers: %w", layers, err)
		}
	}

	stats = Stats{
		Shape:         params.Shape,
		Mode:          params.resolvedMode(),
		TilesU:        params.NumTilesU,
		TilesV:        params.NumTilesV,
		TotalPatches:  params.NumTilesU * params.NumTilesV,
		Layers:        layers,
		TriangleCount: result.TriangleCount(),
		Volume:        p.kernel.Volume(result),
	}
	return result, stats, nil
}

// warpMesh applies the batched surface warp to a normalized flat mesh
// and rebuilds vertex normals for the curved result.
func warpMesh(cfg surface.Config, m *kernel.Mesh, layerOffset float32) *kernel.Mesh {
	vertices := cfg.Warp(m.Vertices, layerOffset)
	indices := append([]uint32(nil), m.Indices...)
	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  kernel.ComputeVertexNormals(vertices, indices),
		Indices:  indices,
	}
}
