// Package surface is the catalog of analytic target surfaces for
// tiling: sphere, ellipsoid, torus, cylinder and superellipsoid. Each
// shape exposes parametric bounds, a position function and an outward
// unit normal as pure functions of (u, v).
package surface

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Shape identifies one of the supported target surfaces.
type Shape int

const (
	Sphere Shape = iota
	Ellipsoid
	Torus
	Cylinder
	Superellipsoid
)

var shapeNames = [...]string{
	Sphere:         "sphere",
	Ellipsoid:      "ellipsoid",
	Torus:          "torus",
	Cylinder:       "cylinder",
	Superellipsoid: "superellipsoid",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// ParseShape converts a shape name to its Shape value.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown target shape %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so shapes decode
// directly from configuration files.
func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Pole exclusion defaults. The polar range of the sphere family shrinks
// as tile count grows so finer tiling can approach the poles without
// degenerate triangles. Both constants are empirical.
const (
	DefaultPoleEpsilonMin     = 0.01
	DefaultPoleEpsilonFalloff = 0.15
)

// Config captures a target surface and its dimensions. Only the fields
// relevant to Shape are read; the rest are ignored.
type Config struct {
	Shape Shape

	Radius              float32 // sphere, cylinder
	SemiX, SemiY, SemiZ float32 // ellipsoid, superellipsoid semi-axes
	Major, Minor        float32 // torus radii
	Height              float32 // cylinder

	// Superellipsoid exponents: N controls pole roundness, E equator
	// roundness. 1 reproduces the ellipsoid.
	N, E float32

	// PoleEpsilonMin and PoleEpsilonFalloff override the pole exclusion
	// constants. Zero means the defaults.
	PoleEpsilonMin     float32
	PoleEpsilonFalloff float32
}

// Bounds is the parametric domain of a surface.
type Bounds struct {
	UMin, UMax float32
	VMin, VMax float32
}

// epstol guards against division by badly conditioned norms.
const epstol = 1e-9

// poleEpsilon returns the polar exclusion half-angle for the sphere
// family: max(min, falloff/numTilesV).
func (c Config) poleEpsilon(numTilesV int) float32 {
	em := c.PoleEpsilonMin
	if em <= 0 {
		em = DefaultPoleEpsilonMin
	}
	fall := c.PoleEpsilonFalloff
	if fall <= 0 {
		fall = DefaultPoleEpsilonFalloff
	}
	if numTilesV < 1 {
		numTilesV = 1
	}
	return math32.Max(em, fall/float32(numTilesV))
}

// Bounds returns the parametric domain for the shape. numTilesV sets
// the adaptive pole exclusion for the sphere family; torus and cylinder
// ignore it.
func (c Config) Bounds(numTilesV int) Bounds {
	switch c.Shape {
	case Torus:
		return Bounds{0, 2 * math32.Pi, 0, 2 * math32.Pi}
	case Cylinder:
		return Bounds{0, 2 * math32.Pi, 0, c.Height}
	default:
		eps := c.poleEpsilon(numTilesV)
		return Bounds{0, 2 * math32.Pi, eps, math32.Pi - eps}
	}
}

// signedPow is sign(x)*|x|^p, which stays defined for negative bases
// and fractional exponents.
func signedPow(x, p float32) float32 {
	if x == 0 {
		return 0
	}
	return math32.Copysign(math32.Pow(math32.Abs(x), p), x)
}

// Position evaluates the shape's parametric equations at (u, v).
// For the sphere family v is the polar angle measured from +Z; for the
// cylinder v is literal height.
func (c Config) Position(u, v float32) ms3.Vec {
	su, cu := math32.Sincos(u)
	sv, cv := math32.Sincos(v)
	switch c.Shape {
	case Ellipsoid:
		return ms3.Vec{X: c.SemiX * sv * cu, Y: c.SemiY * sv * su, Z: c.SemiZ * cv}
	case Torus:
		ring := c.Major + c.Minor*cv
		return ms3.Vec{X: ring * cu, Y: ring * su, Z: c.Minor * sv}
	case Cylinder:
		return ms3.Vec{X: c.Radius * cu, Y: c.Radius * su, Z: v}
	case Superellipsoid:
		radial := signedPow(sv, c.N)
		return ms3.Vec{
			X: c.SemiX * radial * signedPow(cu, c.E),
			Y: c.SemiY * radial * signedPow(su, c.E),
			Z: c.SemiZ * signedPow(cv, c.N),
		}
	default: // Sphere
		return ms3.Vec{X: c.Radius * sv * cu, Y: c.Radius * sv * su, Z: c.Radius * cv}
	}
}

// Normal returns the outward unit normal at (u, v). For the implicit
// shapes this is the normalized gradient of the implicit function; the
// superellipsoid gradient uses exponents 2-N and 2-E.
func (c Config) Normal(u, v float32) ms3.Vec {
	su, cu := math32.Sincos(u)
	sv, cv := math32.Sincos(v)
	switch c.Shape {
	case Ellipsoid:
		return unit(ms3.Vec{
			X: sv * cu / c.SemiX,
			Y: sv * su / c.SemiY,
			Z: cv / c.SemiZ,
		})
	case Torus:
		// Direction from the tube center circle, unit by construction.
		return ms3.Vec{X: cv * cu, Y: cv * su, Z: sv}
	case Cylinder:
		return ms3.Vec{X: cu, Y: su, Z: 0}
	case Superellipsoid:
		radial := signedPow(sv, 2-c.N)
		return unit(ms3.Vec{
			X: radial * signedPow(cu, 2-c.E) / c.SemiX,
			Y: radial * signedPow(su, 2-c.E) / c.SemiY,
			Z: signedPow(cv, 2-c.N) / c.SemiZ,
		})
	default: // Sphere
		return ms3.Vec{X: sv * cu, Y: sv * su, Z: cv}
	}
}

// unit normalizes v, guarding the division with epstol so a degenerate
// gradient never produces NaN.
func unit(v ms3.Vec) ms3.Vec {
	return ms3.Scale(1/math32.Max(epstol, ms3.Norm(v)), v)
}
