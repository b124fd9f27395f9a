package tile

import (
	"fmt"

	"github.com/rsiegemit/MorphoStruct-sub001/pkg/surface"
)

// Mode selects between a thin shell conforming to the surface and a
// solid fill built from concentric radial layers.
type Mode string

const (
	ModeSurface Mode = "surface"
	ModeVolume  Mode = "volume"
)

// Params configures one tiling request. It is constructed once,
// validated at entry, and never mutated afterwards. Field names track
// the TOML keys accepted by the CLI.
type Params struct {
	Shape surface.Shape `toml:"target_shape"`
	Mode  Mode          `toml:"mode"`

	Radius    float64 `toml:"radius"`      // sphere, cylinder
	SemiX     float64 `toml:"semi_axis_x"` // ellipsoid, superellipsoid
	SemiY     float64 `toml:"semi_axis_y"`
	SemiZ     float64 `toml:"semi_axis_z"`
	Major     float64 `toml:"major_radius"` // torus
	Minor     float64 `toml:"minor_radius"`
	Height    float64 `toml:"height"`       // cylinder
	Roundness float64 `toml:"roundness_n"`  // superellipsoid pole exponent
	Squarish  float64 `toml:"roundness_e"`  // superellipsoid equator exponent

	NumTilesU int `toml:"num_tiles_u"`
	NumTilesV int `toml:"num_tiles_v"`

	NumLayers    int     `toml:"num_layers"`
	LayerSpacing float64 `toml:"layer_spacing"`

	// RefineEdgeLength is the target edge length in millimeters; zero
	// disables refinement.
	RefineEdgeLength float64 `toml:"refine_edge_length_mm"`

	// TriangleBudget caps the estimated post-refinement triangle count.
	// Zero means DefaultTriangleBudget.
	TriangleBudget int `toml:"triangle_budget"`
}

// Validate checks structural validity. Dimensional plausibility (e.g. a
// torus whose minor radius exceeds its major) is the caller's business;
// only parameters that would make the pipeline itself misbehave are
// rejected.
func (p Params) Validate() error {
	if p.NumTilesU < 1 {
		return &ParamError{Field: "num_tiles_u", Message: fmt.Sprintf("must be at least 1, got %d", p.NumTilesU)}
	}
	if p.NumTilesV < 1 {
		return &ParamError{Field: "num_tiles_v", Message: fmt.Sprintf("must be at least 1, got %d", p.NumTilesV)}
	}
	switch p.Mode {
	case ModeSurface, Mode(""):
	case ModeVolume:
		if p.NumLayers < 1 {
			return &ParamError{Field: "num_layers", Message: fmt.Sprintf("must be at least 1 in volume mode, got %d", p.NumLayers)}
		}
		if p.NumLayers > 1 && p.LayerSpacing <= 0 {
			return &ParamError{Field: "layer_spacing", Message: fmt.Sprintf("must be positive with multiple layers, got %g", p.LayerSpacing)}
		}
	default:
		return &ParamError{Field: "mode", Message: fmt.Sprintf("must be %q or %q, got %q", ModeSurface, ModeVolume, p.Mode)}
	}
	if p.RefineEdgeLength < 0 {
		return &ParamError{Field: "refine_edge_length_mm", Message: fmt.Sprintf("must not be negative, got %g", p.RefineEdgeLength)}
	}
	return nil
}

// resolvedMode maps the empty mode to the surface default.
func (p Params) resolvedMode() Mode {
	if p.Mode == "" {
		return ModeSurface
	}
	return p.Mode
}

// resolvedLayers returns the effective layer count: surface mode is a
// single layer regardless of NumLayers.
func (p Params) resolvedLayers() int {
	if p.resolvedMode() != ModeVolume {
		return 1
	}
	return p.NumLayers
}

// surfaceConfig converts the request dimensions to the surface catalog
// form.
func (p Params) surfaceConfig() surface.Config {
	return surface.Config{
		Shape:  p.Shape,
		Radius: float32(p.Radius),
		SemiX:  float32(p.SemiX),
		SemiY:  float32(p.SemiY),
		SemiZ:  float32(p.SemiZ),
		Major:  float32(p.Major),
		Minor:  float32(p.Minor),
		Height: float32(p.Height),
		N:      float32(p.Roundness),
		E:      float32(p.Squarish),
	}
}
