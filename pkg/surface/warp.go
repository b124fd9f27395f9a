package surface

import "github.com/soypat/geometry/ms3"

// Warp bends a flat vertex array onto the surface in one batched pass.
// Each flat vertex is read as a (u, v, z) triple and mapped to
// position(u,v) + (z+layerOffset)*normal(u,v): the surface point
// displaced along the local outward normal by the original thickness
// coordinate. layerOffset shifts the thickness axis for volume
// layering. The input is not modified; triangle connectivity is
// unaffected by warping.
func (c Config) Warp(vertices []float32, layerOffset float32) []float32 {
	out := make([]float32, len(vertices))
	for i := 0; i+2 < len(vertices); i += 3 {
		u := vertices[i]
		v := vertices[i+1]
		z := vertices[i+2] + layerOffset

		p := ms3.Add(c.Position(u, v), ms3.Scale(z, c.Normal(u, v)))
		out[i] = p.X
		out[i+1] = p.Y
		out[i+2] = p.Z
	}
	return out
}
