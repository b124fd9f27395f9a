package stitch

import (
	"math"
	"testing"

	"github.com/rsiegemit/MorphoStruct-sub001/pkg/kernel"
)

func TestBox(t *testing.T) {
	m := Box(2, 3, 4)
	if m.VertexCount() != 8 {
		t.Errorf("box vertex count = %d, want 8", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("box triangle count = %d, want 12", m.TriangleCount())
	}
	bb := m.BoundingBox()
	size := bb.Size()
	if size.X != 2 || size.Y != 3 || size.Z != 4 {
		t.Errorf("box size = %v, want (2, 3, 4)", size)
	}
	center := bb.Center()
	if center.X != 0 || center.Y != 0 || center.Z != 0 {
		t.Errorf("box center = %v, want origin", center)
	}
}

func TestVolume(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float32
		want    float64
	}{
		{"unit cube", 1, 1, 1, 1},
		{"slab", 1, 1, 0.1, 0.1},
		{"brick", 2, 3, 4, 24},
	}
	k := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := k.Volume(Box(tt.x, tt.y, tt.z))
			if math.Abs(got-tt.want) > 1e-5*tt.want {
				t.Errorf("Volume() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestUnionDisjointVolumes(t *testing.T) {
	k := New()
	a := Box(1, 1, 1)
	b := Box(1, 1, 1).Translate(5, 0, 0)

	merged, err := k.Union(a, b)
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}
	got := k.Volume(merged)
	if math.Abs(got-2) > 1e-5 {
		t.Errorf("union volume = %g, want 2", got)
	}
	if merged.TriangleCount() != 24 {
		t.Errorf("union triangle count = %d, want 24", merged.TriangleCount())
	}
}

func TestUnionWeldsSharedVertices(t *testing.T) {
	k := New()
	a := Box(1, 1, 1)
	// Exactly adjacent along X: the four corners of the shared face
	// coincide and must weld.
	b := Box(1, 1, 1).Translate(1, 0, 0)

	merged, err := k.Union(a, b)
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}
	if merged.VertexCount() != 12 {
		t.Errorf("welded vertex count = %d, want 12 (8 + 8 - 4 shared)", merged.VertexCount())
	}
	// The interior face triangles of the two halves have opposite
	// orientation, so the signed volume still adds up.
	got := k.Volume(merged)
	if math.Abs(got-2) > 1e-5 {
		t.Errorf("welded union volume = %g, want 2", got)
	}
}

func TestBatchUnionMatchesPairwise(t *testing.T) {
	k := New()
	meshes := []*kernel.Mesh{
		Box(1, 1, 1),
		Box(1, 1, 1).Translate(3, 0, 0),
		Box(1, 1, 1).Translate(6, 0, 0),
		Box(1, 1, 1).Translate(9, 0, 0),
	}

	batched, err := k.BatchUnion(meshes)
	if err != nil {
		t.Fatalf("BatchUnion failed: %v", err)
	}
	ab, err := k.Union(meshes[0], meshes[1])
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}
	cd, err := k.Union(meshes[2], meshes[3])
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}
	pairwise, err := k.Union(ab, cd)
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}

	if math.Abs(k.Volume(batched)-k.Volume(pairwise)) > 1e-6 {
		t.Errorf("batched volume %g != pairwise volume %g", k.Volume(batched), k.Volume(pairwise))
	}
	if batched.TriangleCount() != pairwise.TriangleCount() {
		t.Errorf("batched triangles %d != pairwise triangles %d",
			batched.TriangleCount(), pairwise.TriangleCount())
	}
}

func TestBatchUnionSingleMesh(t *testing.T) {
	k := New()
	m := Box(1, 1, 1)
	got, err := k.BatchUnion([]*kernel.Mesh{m})
	if err != nil {
		t.Fatalf("BatchUnion failed: %v", err)
	}
	if got != m {
		t.Error("single-mesh batch union should return the input unchanged")
	}
}

func TestRefine(t *testing.T) {
	k := New()
	m := Box(2, 2, 2)

	refined, err := k.Refine(m, 0.5)
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}
	if got := longestEdge(refined); got > 0.5+1e-6 {
		t.Errorf("longest edge after refine = %g, want <= 0.5", got)
	}
	// Midpoint subdivision of planar faces preserves geometry exactly.
	if got := k.Volume(refined); math.Abs(got-8) > 1e-4 {
		t.Errorf("refined volume = %g, want 8", got)
	}
	if refined.TriangleCount() <= m.TriangleCount() {
		t.Errorf("refine did not subdivide: %d triangles", refined.TriangleCount())
	}
	t.Logf("refined box: %d triangles", refined.TriangleCount())
}

func TestRefineAlreadyFine(t *testing.T) {
	k := New()
	m := Box(0.1, 0.1, 0.1)
	refined, err := k.Refine(m, 10)
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}
	if refined.TriangleCount() != m.TriangleCount() {
		t.Errorf("refine subdivided an already fine mesh: %d triangles", refined.TriangleCount())
	}
	if refined == m {
		t.Error("Refine should return a new value, not the input")
	}
}

func TestRefineRejectsBadEdge(t *testing.T) {
	k := New()
	if _, err := k.Refine(Box(1, 1, 1), 0); err == nil {
		t.Error("Refine(.., 0) should fail")
	}
	if _, err := k.Refine(Box(1, 1, 1), -1); err == nil {
		t.Error("Refine(.., -1) should fail")
	}
}
