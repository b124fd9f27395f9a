package sdfx

import (
	"math"
	"testing"
)

func TestBox(t *testing.T) {
	src := New()
	mesh, err := src.Box(10, 5, 2.5, 0)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
	// Marching cubes overshoots slightly; the bounds should still be
	// close to the requested dimensions.
	size := mesh.BoundingBox().Size()
	if math.Abs(float64(size.X)-10) > 1 || math.Abs(float64(size.Y)-5) > 1 || math.Abs(float64(size.Z)-2.5) > 1 {
		t.Errorf("box size = %v, want about (10, 5, 2.5)", size)
	}
	t.Logf("box triangle count: %d", mesh.TriangleCount())
}

func TestSphere(t *testing.T) {
	src := New()
	mesh, err := src.Sphere(8)
	if err != nil {
		t.Fatalf("Sphere failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}

	// Every vertex should sit near the requested radius.
	for i := 0; i < mesh.VertexCount(); i++ {
		v := mesh.Vertex(i)
		r := math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z))
		if math.Abs(r-8) > 0.5 {
			t.Fatalf("vertex %d at radius %g, want about 8", i, r)
		}
	}
}

func TestCylinder(t *testing.T) {
	src := New()
	mesh, err := src.Cylinder(20, 4, 0)
	if err != nil {
		t.Fatalf("Cylinder failed: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	t.Logf("cylinder triangle count: %d", mesh.TriangleCount())
}

func TestCellsOverride(t *testing.T) {
	coarse := &Source{Cells: 16}
	fine := &Source{Cells: 48}
	cm, err := coarse.Sphere(5)
	if err != nil {
		t.Fatalf("coarse sphere failed: %v", err)
	}
	fm, err := fine.Sphere(5)
	if err != nil {
		t.Fatalf("fine sphere failed: %v", err)
	}
	if fm.TriangleCount() <= cm.TriangleCount() {
		t.Errorf("finer resolution should produce more triangles: %d vs %d",
			fm.TriangleCount(), cm.TriangleCount())
	}
}
