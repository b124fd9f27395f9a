package tile

import (
	"fmt"

	"github.com/rsiegemit/MorphoStruct-sub001/pkg/kernel"
	"github.com/rsiegemit/MorphoStruct-sub001/pkg/reduce"
)

// layoutGrid replicates the unit patch in an nu x nv grid on the flat
// plane, centered at the origin. Copies are spaced by exactly the
// patch's X/Y extent so adjacent copies share edges with zero gap or
// overlap; anything else would leave the later union with separate
// islands instead of one connected shell.
func layoutGrid(unit *kernel.Mesh, nu, nv int, k kernel.Kernel) (*kernel.Mesh, error) {
	bb := unit.BoundingBox()
	size := bb.Size()
	center := bb.Center()
	centered := unit.Translate(-center.X, -center.Y, -center.Z)

	if nu*nv == 1 {
		// Single tile: no merge needed.
		return centered, nil
	}

	copies := make([]*kernel.Mesh, 0, nu*nv)
	for i := 0; i < nu; i++ {
		dx := (float32(i) - float32(nu-1)/2) * size.X
		for j := 0; j < nv; j++ {
			dy := (float32(j) - float32(nv-1)/2) * size.Y
			copies = append(copies, centered.Translate(dx, dy, 0))
		}
	}

	merged, err := reduce.BatchUnion(copies, k, 0)
	if err != nil {
		return nil, fmt.Errorf("merging %d tile copies: %w", len(copies), err)
	}
	return merged, nil
}
