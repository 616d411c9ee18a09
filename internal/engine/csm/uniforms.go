package csm

// Uniform packing for GPU upload. Arrays are padded to MaxCascades so
// they map directly onto the fixed-size uniform arrays in the shaders;
// cascade data stays per-material instead of mutating any shared shader
// state.

// ViewProjections returns all cascade view-projection matrices as a
// flat column-major float32 slice, MaxCascades*16 long.
func (c *Controller) ViewProjections() []float32 {
	out := make([]float32, MaxCascades*16)
	for i, l := range c.lights {
		vp := l.ViewProjection()
		copy(out[i*16:], vp[:])
	}
	return out
}

// SplitDepths returns the cascade boundary fractions padded to
// MaxCascades; unused entries hold 1 so out-of-range lookups resolve to
// the last cascade.
func (c *Controller) SplitDepths() []float32 {
	out := make([]float32, MaxCascades)
	for i := range out {
		out[i] = 1
	}
	copy(out, c.boundaries)
	return out
}

// TexelSizes returns each cascade's world-space texel size padded to
// MaxCascades, for bias scaling in the shader.
func (c *Controller) TexelSizes() []float32 {
	out := make([]float32, MaxCascades)
	for i, l := range c.lights {
		out[i] = l.TexelSize()
	}
	return out
}
