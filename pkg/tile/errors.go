package tile

import "fmt"

// ParamError reports structurally invalid tiling parameters. It is
// surfaced immediately and never retried.
type ParamError struct {
	Field   string
	Message string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Message)
}

// BudgetError reports that the pre-flight refinement estimate exceeds
// the triangle budget. The refinement itself was not attempted.
type BudgetError struct {
	Estimated int
	Budget    int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf(
		"refinement would produce an estimated %d triangles, above the %d budget; increase refine_edge_length_mm or reduce tile counts",
		e.Estimated, e.Budget)
}
