// Package scene holds the renderable map content and the lights
// attached to it.
package scene

import (
	"github.com/terravista/terravista/internal/engine/csm"
	"github.com/terravista/terravista/internal/engine/tiles"
)

// Scene is the root node for map tiles and attached shadow lights. The
// cascade controller owns the lights' transforms and shadow cameras;
// the scene only tracks attachment so render passes can enumerate them.
type Scene struct {
	meshes []*tiles.Mesh
	lights []*csm.ShadowLight

	// Ambient lighting for the color pass
	Ambient  [3]float32
	SunColor [3]float32
	SkyColor [3]float32
}

// New creates an empty scene with daylight defaults.
func New() *Scene {
	return &Scene{
		Ambient:  [3]float32{0.25, 0.27, 0.32},
		SunColor: [3]float32{1.0, 0.96, 0.88},
		SkyColor: [3]float32{0.55, 0.72, 0.92},
	}
}

// AddMesh adds a tile mesh to the scene.
func (s *Scene) AddMesh(m *tiles.Mesh) {
	s.meshes = append(s.meshes, m)
}

// Meshes returns the scene's tile meshes.
func (s *Scene) Meshes() []*tiles.Mesh {
	return s.meshes
}

// AttachLight adds a shadow light to the scene. Implements
// csm.LightMount.
func (s *Scene) AttachLight(l *csm.ShadowLight) {
	s.lights = append(s.lights, l)
}

// DetachLight removes a shadow light from the scene. Detaching a light
// that is not attached is a no-op.
func (s *Scene) DetachLight(l *csm.ShadowLight) {
	for i, attached := range s.lights {
		if attached == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

// Lights returns the attached shadow lights in attachment order.
func (s *Scene) Lights() []*csm.ShadowLight {
	return s.lights
}

// Release frees all mesh GPU resources.
func (s *Scene) Release() {
	for _, m := range s.meshes {
		m.Release()
	}
	s.meshes = nil
}
