package surface

import (
	"math"
	"testing"

	"github.com/soypat/geometry/ms3"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		name    string
		want    Shape
		wantErr bool
	}{
		{"sphere", Sphere, false},
		{"ellipsoid", Ellipsoid, false},
		{"torus", Torus, false},
		{"cylinder", Cylinder, false},
		{"superellipsoid", Superellipsoid, false},
		{"cube", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShape(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseShape(%q) succeeded, want error", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseShape(%q) failed: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseShape(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestPoleEpsilon(t *testing.T) {
	cfg := Config{Shape: Sphere, Radius: 1}
	tests := []struct {
		tilesV int
		want   float32
	}{
		{1, 0.15},
		{3, 0.05},
		{15, 0.01}, // falloff hits the floor exactly
		{100, 0.01},
	}
	for _, tt := range tests {
		b := cfg.Bounds(tt.tilesV)
		if math.Abs(float64(b.VMin-tt.want)) > 1e-7 {
			t.Errorf("tilesV=%d: VMin = %g, want %g", tt.tilesV, b.VMin, tt.want)
		}
		if math.Abs(float64(b.VMax)-(math.Pi-float64(tt.want))) > 1e-6 {
			t.Errorf("tilesV=%d: VMax = %g, want pi-%g", tt.tilesV, b.VMax, tt.want)
		}
	}
}

func TestBoundsTorusAndCylinder(t *testing.T) {
	torus := Config{Shape: Torus, Major: 10, Minor: 2}
	b := torus.Bounds(1)
	if b.VMin != 0 || math.Abs(float64(b.VMax)-2*math.Pi) > 1e-6 {
		t.Errorf("torus v range = [%g, %g], want [0, 2pi]", b.VMin, b.VMax)
	}

	cyl := Config{Shape: Cylinder, Radius: 5, Height: 20}
	b = cyl.Bounds(4)
	if b.VMin != 0 || b.VMax != 20 {
		t.Errorf("cylinder v range = [%g, %g], want [0, 20]", b.VMin, b.VMax)
	}
	if b.UMin != 0 || math.Abs(float64(b.UMax)-2*math.Pi) > 1e-6 {
		t.Errorf("cylinder u range = [%g, %g], want [0, 2pi]", b.UMin, b.UMax)
	}
}

// sampleDomain returns a grid of (u, v) samples across the bounds,
// including the exact boundary values.
func sampleDomain(b Bounds, n int) [][2]float32 {
	var samples [][2]float32
	for i := 0; i <= n; i++ {
		u := b.UMin + (b.UMax-b.UMin)*float32(i)/float32(n)
		for j := 0; j <= n; j++ {
			v := b.VMin + (b.VMax-b.VMin)*float32(j)/float32(n)
			samples = append(samples, [2]float32{u, v})
		}
	}
	return samples
}

func TestSpherePositionAndNormal(t *testing.T) {
	const radius = 7
	cfg := Config{Shape: Sphere, Radius: radius}
	for _, uv := range sampleDomain(cfg.Bounds(4), 8) {
		p := cfg.Position(uv[0], uv[1])
		if r := ms3.Norm(p); math.Abs(float64(r-radius)) > 1e-4 {
			t.Fatalf("position at (%g, %g) has radius %g, want %d", uv[0], uv[1], r, radius)
		}
		n := cfg.Normal(uv[0], uv[1])
		if l := ms3.Norm(n); math.Abs(float64(l)-1) > 1e-5 {
			t.Fatalf("normal at (%g, %g) has length %g, want 1", uv[0], uv[1], l)
		}
		// Outward normal is radially aligned with the position.
		if d := ms3.Dot(n, p); d < radius*0.999 {
			t.Fatalf("normal at (%g, %g) not outward: dot = %g", uv[0], uv[1], d)
		}
	}
}

func TestEllipsoidNormalOutward(t *testing.T) {
	cfg := Config{Shape: Ellipsoid, SemiX: 3, SemiY: 5, SemiZ: 8}
	for _, uv := range sampleDomain(cfg.Bounds(2), 6) {
		p := cfg.Position(uv[0], uv[1])
		n := cfg.Normal(uv[0], uv[1])
		if l := ms3.Norm(n); math.Abs(float64(l)-1) > 1e-5 {
			t.Fatalf("normal length %g at (%g, %g), want 1", l, uv[0], uv[1])
		}
		if ms3.Dot(n, p) <= 0 {
			t.Fatalf("normal at (%g, %g) points inward", uv[0], uv[1])
		}
	}
}

func TestTorusPosition(t *testing.T) {
	cfg := Config{Shape: Torus, Major: 10, Minor: 2}
	for _, uv := range sampleDomain(cfg.Bounds(1), 8) {
		p := cfg.Position(uv[0], uv[1])
		// Distance from the tube's center circle equals the minor
		// radius everywhere.
		ringRadius := math.Sqrt(float64(p.X*p.X + p.Y*p.Y))
		tube := math.Sqrt((ringRadius-10)*(ringRadius-10) + float64(p.Z*p.Z))
		if math.Abs(tube-2) > 1e-4 {
			t.Fatalf("tube distance %g at (%g, %g), want 2", tube, uv[0], uv[1])
		}
	}
}

func TestCylinderPosition(t *testing.T) {
	cfg := Config{Shape: Cylinder, Radius: 5, Height: 20}
	for _, uv := range sampleDomain(cfg.Bounds(1), 6) {
		p := cfg.Position(uv[0], uv[1])
		radial := math.Sqrt(float64(p.X*p.X + p.Y*p.Y))
		if math.Abs(radial-5) > 1e-4 {
			t.Fatalf("radial distance %g at (%g, %g), want 5", radial, uv[0], uv[1])
		}
		if p.Z != uv[1] {
			t.Fatalf("z = %g at v = %g, want equality", p.Z, uv[1])
		}
		n := cfg.Normal(uv[0], uv[1])
		if n.Z != 0 {
			t.Fatalf("cylinder normal has z component %g", n.Z)
		}
	}
}

func TestSuperellipsoidReducesToEllipsoid(t *testing.T) {
	super := Config{Shape: Superellipsoid, SemiX: 3, SemiY: 4, SemiZ: 5, N: 1, E: 1}
	ellip := Config{Shape: Ellipsoid, SemiX: 3, SemiY: 4, SemiZ: 5}
	for _, uv := range sampleDomain(super.Bounds(2), 6) {
		ps := super.Position(uv[0], uv[1])
		pe := ellip.Position(uv[0], uv[1])
		if ms3.Norm(ms3.Sub(ps, pe)) > 1e-4 {
			t.Fatalf("positions diverge at (%g, %g): %v vs %v", uv[0], uv[1], ps, pe)
		}
	}
}

func TestSignedPow(t *testing.T) {
	tests := []struct {
		x, p, want float32
	}{
		{0, 0.5, 0},
		{4, 0.5, 2},
		{-4, 0.5, -2}, // defined for negative bases
		{-2, 3, -8},
		{1, 7, 1},
	}
	for _, tt := range tests {
		if got := signedPow(tt.x, tt.p); math.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("signedPow(%g, %g) = %g, want %g", tt.x, tt.p, got, tt.want)
		}
	}
}

func TestSuperellipsoidNormalFinite(t *testing.T) {
	// Fractional exponents stress the signed-power gradient; no sample
	// may produce NaN or a non-unit normal.
	cfg := Config{Shape: Superellipsoid, SemiX: 5, SemiY: 5, SemiZ: 5, N: 0.5, E: 1.5}
	for _, uv := range sampleDomain(cfg.Bounds(4), 10) {
		n := cfg.Normal(uv[0], uv[1])
		l := float64(ms3.Norm(n))
		if math.IsNaN(l) || math.Abs(l-1) > 1e-4 {
			t.Fatalf("normal length %g at (%g, %g)", l, uv[0], uv[1])
		}
	}
}

func TestWarpZeroThicknessOntoSphere(t *testing.T) {
	const radius = 10
	cfg := Config{Shape: Sphere, Radius: radius}
	b := cfg.Bounds(4)

	// Flat (u, v, 0) vertices across the domain.
	var flat []float32
	for _, uv := range sampleDomain(b, 5) {
		flat = append(flat, uv[0], uv[1], 0)
	}
	warped := cfg.Warp(flat, 0)

	if len(warped) != len(flat) {
		t.Fatalf("warped length %d, want %d", len(warped), len(flat))
	}
	for i := 0; i+2 < len(warped); i += 3 {
		r := math.Sqrt(float64(warped[i]*warped[i] + warped[i+1]*warped[i+1] + warped[i+2]*warped[i+2]))
		if math.Abs(r-radius) > 1e-4*radius {
			t.Fatalf("vertex %d at radius %g, want %d", i/3, r, radius)
		}
	}
}

func TestWarpLayerOffset(t *testing.T) {
	const radius = 10
	cfg := Config{Shape: Sphere, Radius: radius}

	flat := []float32{1, 1.5, 0}
	for _, offset := range []float32{-1, -0.5, 0, 0.5, 1} {
		w := cfg.Warp(flat, offset)
		r := math.Sqrt(float64(w[0]*w[0] + w[1]*w[1] + w[2]*w[2]))
		want := float64(radius + offset)
		if math.Abs(r-want) > 1e-4 {
			t.Errorf("offset %g: radius %g, want %g", offset, r, want)
		}
	}
}
