package csm

import "github.com/terravista/terravista/pkg/math"

// OrthoBounds is the orthographic shadow-camera volume for one cascade.
type OrthoBounds struct {
	Left   float32
	Right  float32
	Bottom float32
	Top    float32
	Near   float32
	Far    float32
}

// Matrix returns the orthographic projection for the bounds.
func (b OrthoBounds) Matrix() math.Mat4 {
	return math.Ortho(b.Left, b.Right, b.Bottom, b.Top, b.Near, b.Far)
}

// Interval is one cascade's depth range as fractions of the shadowed
// view depth. Lo is inclusive; Hi is exclusive except for the last
// cascade, whose interval is open-ended.
type Interval struct {
	Lo float32
	Hi float32
}

// ShadowLight is one cascade's directional shadow caster: a position and
// target on the shared sun axis plus an orthographic bound fitted around
// the cascade's light-space corners.
type ShadowLight struct {
	Position  math.Vec3
	Target    math.Vec3
	Bounds    OrthoBounds
	Intensity float32
	Interval  Interval

	depthMap DepthMap
	viewProj math.Mat4
	up       math.Vec3
	dirty    bool
}

// DepthMap returns the GPU shadow map backing this cascade.
func (l *ShadowLight) DepthMap() DepthMap {
	return l.depthMap
}

// Resolution returns the shadow map's texels per side.
func (l *ShadowLight) Resolution() int32 {
	if l.depthMap == nil {
		return 0
	}
	return l.depthMap.Resolution()
}

// TexelSize returns the world-space size of one shadow-map texel.
func (l *ShadowLight) TexelSize() float32 {
	res := l.Resolution()
	if res <= 0 {
		return 0
	}
	return (l.Bounds.Right - l.Bounds.Left) / float32(res)
}

// ViewProjection returns the light-space view-projection matrix,
// recomputing it if the light transform changed since the last call.
func (l *ShadowLight) ViewProjection() math.Mat4 {
	if l.dirty {
		view := math.LookAt(l.Position, l.Target, l.up)
		l.viewProj = l.Bounds.Matrix().Mul(view)
		l.dirty = false
	}
	return l.viewProj
}

// markDirty flags the cached view-projection as stale. The controller
// calls this after refitting so the renderer picks up fresh matrices
// before the next shadow pass.
func (l *ShadowLight) markDirty(up math.Vec3) {
	l.up = up
	l.dirty = true
}
