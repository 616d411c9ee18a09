// Package renderer drives the OpenGL shadow and color passes.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/terravista/terravista/internal/engine/camera"
	"github.com/terravista/terravista/internal/engine/csm"
	"github.com/terravista/terravista/internal/engine/scene"
	"github.com/terravista/terravista/internal/engine/shader"
	"github.com/terravista/terravista/internal/engine/shadow"
	"github.com/terravista/terravista/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer renders the tile scene: one depth pass per shadow cascade,
// then the color pass that samples the cascade shadow maps.
type Renderer struct {
	config Config

	depthProgram  uint32
	depthLocVP    int32
	depthLocModel int32

	colorProgram uint32
	colorLocs    colorUniforms
}

type colorUniforms struct {
	proj, view, model int32
	cascadeVP         int32
	cascadeSplits     int32
	texelSizes        int32
	cascadeCount      int32
	cameraNear        int32
	shadowFar         int32
	lightDir          int32
	lightIntensity    int32
	ambient           int32
	sunColor          int32
	shadowMaps        [csm.MaxCascades]int32
}

// New creates the renderer. Must be called after the OpenGL context
// exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	gpu := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", gpu),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	var err error
	r.depthProgram, err = shader.CompileProgram(depthVertexSrc, depthFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("depth program: %w", err)
	}
	r.depthLocVP = shader.MustGetUniform(r.depthProgram, "uLightViewProj")
	r.depthLocModel = shader.MustGetUniform(r.depthProgram, "uModel")

	r.colorProgram, err = shader.CompileProgram(colorVertexSrc, colorFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("color program: %w", err)
	}
	r.lookupColorUniforms()

	return r, nil
}

func (r *Renderer) lookupColorUniforms() {
	p := r.colorProgram
	r.colorLocs = colorUniforms{
		proj:           shader.GetUniform(p, "uProj"),
		view:           shader.GetUniform(p, "uView"),
		model:          shader.GetUniform(p, "uModel"),
		cascadeVP:      shader.GetUniform(p, "uCascadeVP"),
		cascadeSplits:  shader.GetUniform(p, "uCascadeSplits"),
		texelSizes:     shader.GetUniform(p, "uTexelSizes"),
		cascadeCount:   shader.GetUniform(p, "uCascadeCount"),
		cameraNear:     shader.GetUniform(p, "uCameraNear"),
		shadowFar:      shader.GetUniform(p, "uShadowFar"),
		lightDir:       shader.GetUniform(p, "uLightDir"),
		lightIntensity: shader.GetUniform(p, "uLightIntensity"),
		ambient:        shader.GetUniform(p, "uAmbient"),
		sunColor:       shader.GetUniform(p, "uSunColor"),
	}
	for i := 0; i < csm.MaxCascades; i++ {
		r.colorLocs.shadowMaps[i] = shader.GetUniform(p, fmt.Sprintf("uShadowMap%d", i))
	}
}

// Close frees the shader programs.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.depthProgram != 0 {
		gl.DeleteProgram(r.depthProgram)
	}
	if r.colorProgram != 0 {
		gl.DeleteProgram(r.colorProgram)
	}
}

// Resize updates the viewport after a window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Begin clears the frame with the sky color.
func (r *Renderer) Begin(sky [3]float32) {
	gl.ClearColor(sky[0], sky[1], sky[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// RenderShadowPasses renders the scene depth into each cascade's shadow
// map, nearest cascade first.
func (r *Renderer) RenderShadowPasses(ctrl *csm.Controller, s *scene.Scene) {
	gl.UseProgram(r.depthProgram)

	for _, light := range ctrl.Lights() {
		m, ok := light.DepthMap().(*shadow.Map)
		if !ok || m == nil {
			continue
		}

		m.Bind()
		vp := light.ViewProjection()
		gl.UniformMatrix4fv(r.depthLocVP, 1, false, vp.Ptr())

		for _, mesh := range s.Meshes() {
			gl.UniformMatrix4fv(r.depthLocModel, 1, false, mesh.Model.Ptr())
			mesh.Draw()
		}
		m.Unbind()
	}
}

// RenderColorPass renders the lit scene, selecting the shadow cascade
// per fragment from linear view depth.
func (r *Renderer) RenderColorPass(cam *camera.MapCamera, ctrl *csm.Controller, s *scene.Scene) {
	gl.UseProgram(r.colorProgram)

	proj := cam.ProjectionMatrix()
	view := cam.ViewMatrix()
	gl.UniformMatrix4fv(r.colorLocs.proj, 1, false, proj.Ptr())
	gl.UniformMatrix4fv(r.colorLocs.view, 1, false, view.Ptr())

	vps := ctrl.ViewProjections()
	splits := ctrl.SplitDepths()
	texels := ctrl.TexelSizes()
	gl.UniformMatrix4fv(r.colorLocs.cascadeVP, csm.MaxCascades, false, &vps[0])
	gl.Uniform1fv(r.colorLocs.cascadeSplits, csm.MaxCascades, &splits[0])
	gl.Uniform1fv(r.colorLocs.texelSizes, csm.MaxCascades, &texels[0])
	gl.Uniform1i(r.colorLocs.cascadeCount, int32(len(ctrl.Lights())))
	gl.Uniform1f(r.colorLocs.cameraNear, ctrl.CameraNear())
	gl.Uniform1f(r.colorLocs.shadowFar, ctrl.ShadowDistance())

	dir := ctrl.Direction()
	gl.Uniform3f(r.colorLocs.lightDir, dir.X, dir.Y, dir.Z)

	intensity := float32(1)
	if lights := ctrl.Lights(); len(lights) > 0 {
		intensity = lights[0].Intensity
	}
	gl.Uniform1f(r.colorLocs.lightIntensity, intensity)

	for i, light := range ctrl.Lights() {
		if m, ok := light.DepthMap().(*shadow.Map); ok && m != nil {
			m.BindTexture(gl.TEXTURE0 + uint32(i))
			gl.Uniform1i(r.colorLocs.shadowMaps[i], int32(i))
		}
	}

	gl.Uniform3f(r.colorLocs.ambient, s.Ambient[0], s.Ambient[1], s.Ambient[2])
	gl.Uniform3f(r.colorLocs.sunColor, s.SunColor[0], s.SunColor[1], s.SunColor[2])

	for _, mesh := range s.Meshes() {
		gl.UniformMatrix4fv(r.colorLocs.model, 1, false, mesh.Model.Ptr())
		mesh.Draw()
	}
}
