package tile

// layerOffsets returns num radial offsets symmetric about zero, spaced
// by spacing. Each offset shifts the thickness coordinate of one warped
// copy, moving that layer inward or outward along the surface normal
// while its angular placement stays identical.
func layerOffsets(num int, spacing float32) []float32 {
	offsets := make([]float32, num)
	mid := float32(num-1) / 2
	for i := range offsets {
		offsets[i] = (float32(i) - mid) * spacing
	}
	return offsets
}
