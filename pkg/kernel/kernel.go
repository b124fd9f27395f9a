// Package kernel defines the mesh value type and the abstract boolean
// mesh kernel interface. Implementations (stitch, manifold) provide
// merging and refinement behind this interface. The kernel abstraction
// allows swapping backends without changing the rest of the system;
// callers receive a Kernel at construction time, so a missing backend
// is a configuration error rather than a runtime branch.
package kernel

// Kernel is the abstract mesh kernel interface. Inputs participating
// in Union must be watertight; open meshes are fine everywhere else.
// Implementations must treat input meshes as read-only and return new
// values.
type Kernel interface {
	// Union merges two non-overlapping watertight meshes into one.
	Union(a, b *Mesh) (*Mesh, error)

	// Refine subdivides triangles until no edge is longer than maxEdge.
	// Connectivity changes; geometry does not.
	Refine(m *Mesh, maxEdge float32) (*Mesh, error)

	// Volume returns the volume enclosed by a watertight mesh.
	Volume(m *Mesh) float64
}

// BatchUnioner is an optional fast path for kernels that can merge many
// meshes in a single call, which is typically cheaper than chaining
// pairwise unions. Callers type-assert for it and fall back to pairwise
// Union when absent.
type BatchUnioner interface {
	BatchUnion(meshes []*Mesh) (*Mesh, error)
}
