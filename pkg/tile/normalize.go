package tile

import (
	"github.com/rsiegemit/MorphoStruct-sub001/pkg/kernel"
	"github.com/rsiegemit/MorphoStruct-sub001/pkg/surface"
)

// spanFloor is the XY extent below which normalization skips scaling;
// dividing by a near-zero span would blow the mesh up.
const spanFloor = 1e-9

// normalizeUV affine-maps the flat mesh's XY extent onto the surface's
// parametric domain: after this, X holds u and Y holds v, directly
// consumable by the warp. Z is the thickness axis and passes through
// unchanged, keeping its original minimum.
func normalizeUV(m *kernel.Mesh, b surface.Bounds) *kernel.Mesh {
	bb := m.BoundingBox()
	size := bb.Size()

	su := float32(1)
	if size.X > spanFloor {
		su = (b.UMax - b.UMin) / size.X
	}
	sv := float32(1)
	if size.Y > spanFloor {
		sv = (b.VMax - b.VMin) / size.Y
	}

	out := m.Clone()
	for i := 0; i+2 < len(out.Vertices); i += 3 {
		out.Vertices[i] = b.UMin + (out.Vertices[i]-bb.Min.X)*su
		out.Vertices[i+1] = b.VMin + (out.Vertices[i+1]-bb.Min.Y)*sv
	}
	return out
}
