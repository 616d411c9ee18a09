package csm

// LinearDepth maps a view-space depth (distance along the view
// direction, positive) to the [0, 1] fraction of the shadowed range used
// for cascade selection.
func LinearDepth(viewDepth, cameraNear, shadowFar float32) float32 {
	return (viewDepth - cameraNear) / (shadowFar - cameraNear)
}

// SelectCascade picks the cascade whose depth interval contains the
// given linear depth fraction. Intervals are half-open [lo, hi) and the
// last cascade's interval is open-ended, so every depth maps to exactly
// one cascade and far-plane geometry is never left unshadowed by
// floating-point edge cases. This is the CPU reference for the rule the
// fragment shader applies per pixel.
func SelectCascade(linearDepth float32, boundaries []float32) int {
	last := len(boundaries) - 1
	for i := 0; i < last; i++ {
		if linearDepth < boundaries[i] {
			return i
		}
	}
	return last
}
