package tile

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/rsiegemit/MorphoStruct-sub001/pkg/kernel"
)

// DefaultTriangleBudget is the hard ceiling on the estimated
// post-refinement triangle count. Empirically chosen; override through
// Params.TriangleBudget.
const DefaultTriangleBudget = 5_000_000

// estimateAvgEdge approximates the mesh's mean edge length from its
// bounding-box surface area and triangle count, without touching
// individual triangles.
func estimateAvgEdge(m *kernel.Mesh) float32 {
	tris := m.TriangleCount()
	if tris == 0 {
		return 0
	}
	size := m.BoundingBox().Size()
	area := 2 * (size.X*size.Y + size.X*size.Z + size.Y*size.Z)
	return math32.Sqrt(2 * area / float32(tris))
}

// refineWithinBudget refines the mesh to the target edge length after a
// mandatory pre-flight estimate of the resulting triangle count. The
// check happens before the kernel call because the refinement itself is
// the step that can exhaust memory; failing afterwards would be too
// late. edge <= 0 disables refinement.
func (p *Pipeline) refineWithinBudget(m *kernel.Mesh, edge float32, budget int) (*kernel.Mesh, error) {
	if edge <= 0 {
		return m, nil
	}
	if avg := estimateAvgEdge(m); avg > 0 {
		subdivisions := float64(avg / edge)
		estimated := float64(m.TriangleCount()) * subdivisions * subdivisions
		if estimated > float64(budget) {
			return nil, &BudgetError{Estimated: int(estimated), Budget: budget}
		}
	}
	out, err := p.kernel.Refine(m, edge)
	if err != nil {
		return nil, fmt.Errorf("refining to %g mm edges: %w", edge, err)
	}
	return out, nil
}
