// Package shadow provides GL depth-texture shadow maps for the cascade
// controller.
package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/terravista/terravista/internal/engine/csm"
)

// DefaultResolution is the default shadow map resolution.
const DefaultResolution = 2048

// Map is a depth-only framebuffer for one cascade's shadow pass.
type Map struct {
	fbo          uint32
	depthTexture uint32
	resolution   int32
	prevViewport [4]int32
}

// NewMap creates a shadow map with the given resolution (texels per
// side, power of two recommended). The error propagates allocation
// failures; there is no partial state to clean up on the caller's side.
func NewMap(resolution int32) (*Map, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	m := &Map{resolution: resolution}

	gl.GenFramebuffers(1, &m.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.fbo)

	gl.GenTextures(1, &m.depthTexture)
	gl.BindTexture(gl.TEXTURE_2D, m.depthTexture)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.DEPTH_COMPONENT32F,
		resolution,
		resolution,
		0,
		gl.DEPTH_COMPONENT,
		gl.FLOAT,
		nil,
	)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Fragments outside the bound are lit (border depth = 1.0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := []float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])

	// Hardware depth comparison for sampler2DShadow
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, m.depthTexture, 0)

	// Depth only, no color buffer
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteTextures(1, &m.depthTexture)
		gl.DeleteFramebuffers(1, &m.fbo)
		return nil, fmt.Errorf("shadow framebuffer incomplete: status=0x%X", status)
	}

	return m, nil
}

// Resolution returns the shadow map size in texels per side.
func (m *Map) Resolution() int32 {
	return m.resolution
}

// Bind binds the framebuffer for the depth pass, saving the viewport.
func (m *Map) Bind() {
	gl.GetIntegerv(gl.VIEWPORT, &m.prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, m.fbo)
	gl.Viewport(0, 0, m.resolution, m.resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	// Front-face culling reduces shadow acne
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
}

// Unbind restores the default framebuffer, viewport and culling.
func (m *Map) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(m.prevViewport[0], m.prevViewport[1], m.prevViewport[2], m.prevViewport[3])
	gl.CullFace(gl.BACK)
}

// BindTexture binds the depth texture to the given texture unit for
// sampling in the color pass.
func (m *Map) BindTexture(unit uint32) {
	gl.ActiveTexture(unit)
	gl.BindTexture(gl.TEXTURE_2D, m.depthTexture)
}

// Release frees the GPU resources. Safe to call more than once.
func (m *Map) Release() {
	if m.fbo != 0 {
		gl.DeleteFramebuffers(1, &m.fbo)
		m.fbo = 0
	}
	if m.depthTexture != 0 {
		gl.DeleteTextures(1, &m.depthTexture)
		m.depthTexture = 0
	}
}

// Allocator allocates GL shadow maps for the cascade controller.
type Allocator struct{}

// Allocate implements csm.Allocator.
func (Allocator) Allocate(resolution int32) (csm.DepthMap, error) {
	return NewMap(resolution)
}
