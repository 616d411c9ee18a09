package csm

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/terravista/terravista/internal/engine/daylight"
	"github.com/terravista/terravista/internal/logger"
	"github.com/terravista/terravista/pkg/math"
)

// MaxCascades bounds the cascade count; the render shaders carry a
// matching fixed-size uniform array.
const MaxCascades = 4

// DefaultUpdateInterval throttles Update calls from a hot render loop.
const DefaultUpdateInterval = 16 * time.Millisecond

// directionEpsilon is the hysteresis threshold on sun movement. Angular
// changes below it do not propagate to the lights, so imperceptible sun
// drift does not trigger shadow-camera refits.
const directionEpsilon = 0.001

// Camera is the read-only view the controller needs from the scene's
// camera, refreshed externally once per frame.
type Camera interface {
	ProjectionMatrix() math.Mat4
	ViewMatrix() math.Mat4
	Near() float32
	Far() float32
}

// DepthMap is a GPU shadow-map texture owned by the controller.
type DepthMap interface {
	Resolution() int32
	Release()
}

// Allocator creates shadow-map textures. Allocation failures propagate
// out of Initialize; rendering cannot proceed without shadow maps.
type Allocator interface {
	Allocate(resolution int32) (DepthMap, error)
}

// LightMount is the scene-graph attachment point for shadow lights.
type LightMount interface {
	AttachLight(*ShadowLight)
	DetachLight(*ShadowLight)
}

// Options configures the controller at Initialize time.
type Options struct {
	// Cascades is the number of depth slices, clamped to [1, MaxCascades].
	Cascades int
	// Resolution is the shadow-map size per cascade (texels per side).
	Resolution int32
	// Resolutions overrides Resolution per cascade when non-empty.
	Resolutions []int32
	// MaxFar caps the shadowed depth range; 0 uses the camera far plane.
	MaxFar float32
	Scheme Scheme
	// Lambda blends uniform and logarithmic splits for SchemePractical.
	Lambda      float32
	CustomSplit SplitFunc
	// Fade inflates each cascade bound by a depth-based margin so
	// cascade transitions can be blended in the shader.
	Fade bool
	// ShadowNear/ShadowFar fix the shadow cameras' depth range; when 0
	// it is derived per cascade from the light-space bounds.
	ShadowNear float32
	ShadowFar  float32
	// Margin adds caster-catching depth between the light's near plane
	// and the cascade, so geometry outside the camera frustum can still
	// cast shadows into it.
	Margin    float32
	Intensity float32
	// UpdateInterval is the minimum time between effective updates.
	UpdateInterval time.Duration
}

// fadeConstant scales the depth-based bound inflation. Empirical; tuned
// for visuals, not derived.
const fadeConstant = 0.25

type controllerState int

const (
	stateUninitialized controllerState = iota
	stateReady
	stateDisposed
)

// Controller owns one directional shadow light per cascade and refits
// them every update: re-derives the sun direction, re-slices the camera
// frustum, fits an orthographic bound around each cascade in light
// space, and snaps each light to its shadow map's texel grid.
type Controller struct {
	state controllerState
	opts  Options

	camera Camera
	sun    *daylight.Calculator
	alloc  Allocator
	mount  LightMount

	lights     []*ShadowLight
	boundaries []float32
	frustum    Frustum
	cascades   []Frustum

	direction     math.Vec3
	haveDirection bool
	forceNext     bool
	shadowFar     float32
	cameraNear    float32

	lastUpdate time.Time
	now        func() time.Time
}

// NewController creates an uninitialized controller. Call Initialize
// before Update.
func NewController(camera Camera, sun *daylight.Calculator, alloc Allocator, mount LightMount) *Controller {
	return &Controller{
		camera: camera,
		sun:    sun,
		alloc:  alloc,
		mount:  mount,
		now:    time.Now,
	}
}

// Initialize builds the cascade lights and shadow maps and performs a
// full update. Calling it again tears down the prior state first; old
// GPU textures are released before new ones are allocated so the two
// generations never coexist under memory pressure.
func (c *Controller) Initialize(hours float32, opts Options) error {
	if c.state == stateDisposed {
		logger.Warn("csm: initialize called on disposed controller")
		return nil
	}

	if opts.Cascades < 1 {
		opts.Cascades = 1
	}
	if opts.Cascades > MaxCascades {
		logger.Warn("csm: cascade count clamped",
			zap.Int("requested", opts.Cascades),
			zap.Int("max", MaxCascades),
		)
		opts.Cascades = MaxCascades
	}
	if opts.Resolution <= 0 {
		opts.Resolution = 2048
	}
	if opts.Lambda <= 0 || opts.Lambda > 1 {
		opts.Lambda = DefaultLambda
	}
	if opts.Margin <= 0 {
		opts.Margin = 100
	}
	if opts.Intensity <= 0 {
		opts.Intensity = 1
	}
	if opts.UpdateInterval <= 0 {
		opts.UpdateInterval = DefaultUpdateInterval
	}

	// Dispose-before-create: free the previous generation first.
	c.releaseLights()
	c.opts = opts

	lights := make([]*ShadowLight, opts.Cascades)
	for i := range lights {
		res := opts.Resolution
		if i < len(opts.Resolutions) && opts.Resolutions[i] > 0 {
			res = opts.Resolutions[i]
		}
		dm, err := c.alloc.Allocate(res)
		if err != nil {
			for _, l := range lights[:i] {
				l.depthMap.Release()
			}
			return fmt.Errorf("allocating shadow map for cascade %d: %w", i, err)
		}
		lights[i] = &ShadowLight{
			Intensity: opts.Intensity,
			depthMap:  dm,
		}
	}

	c.lights = lights
	if c.mount != nil {
		for _, l := range c.lights {
			c.mount.AttachLight(l)
		}
	}

	c.boundaries = nil
	c.haveDirection = false
	c.lastUpdate = time.Time{}
	c.state = stateReady

	logger.Info("csm: initialized",
		zap.Int("cascades", opts.Cascades),
		zap.Int32("resolution", opts.Resolution),
		zap.String("scheme", opts.Scheme.String()),
	)

	c.forceNext = true
	c.Update(hours)
	return nil
}

// Update refits the cascade lights for the given time of day. It is the
// steady-state per-frame operation: throttled to the configured
// interval, direction changes gated by hysteresis, and a no-op whenever
// the camera is unavailable (shadows keep their last valid fit).
func (c *Controller) Update(hours float32) {
	if c.state != stateReady {
		return
	}

	now := c.now()
	if !c.forceNext && !c.lastUpdate.IsZero() && now.Sub(c.lastUpdate) < c.opts.UpdateInterval {
		return
	}

	dir := c.sun.Direction(hours)
	if c.haveDirection && !c.forceNext {
		if angleBetween(dir, c.direction) <= directionEpsilon {
			dir = c.direction
		}
	}

	if !c.refit(dir) {
		return
	}

	c.direction = dir
	c.haveDirection = true
	c.forceNext = false
	c.lastUpdate = now
}

// ForceNextUpdate makes the next Update bypass the throttle and the
// direction hysteresis, e.g. after an externally forced sun jump.
func (c *Controller) ForceNextUpdate() {
	c.forceNext = true
}

// refit runs the per-cascade fitting pipeline. It reports whether a fit
// was produced; transient unavailability and split errors leave the last
// valid fit in place.
func (c *Controller) refit(dir math.Vec3) bool {
	if c.camera == nil {
		return false
	}

	near := c.camera.Near()
	far := c.camera.Far()
	maxFar := far
	if c.opts.MaxFar > 0 && c.opts.MaxFar < far {
		maxFar = c.opts.MaxFar
	}

	boundaries, err := Split(c.opts.Scheme, c.opts.Cascades, near, maxFar, c.opts.Lambda, c.opts.CustomSplit)
	if err != nil {
		logger.Error("csm: split failed, keeping previous fit", zap.Error(err))
		return false
	}
	c.boundaries = boundaries
	c.shadowFar = maxFar
	c.cameraNear = near

	c.frustum.SetFromProjection(c.camera.ProjectionMatrix(), maxFar)
	c.cascades = c.frustum.Split(boundaries, c.cascades)

	up := upForDirection(dir)
	lightView := math.LookAt(math.Vec3{}, dir, up)
	// Cascade corners are in view space; hop to world, then light space.
	toLight := lightView.Mul(c.camera.ViewMatrix().Inverse())
	lightToWorld := lightView.Inverse()

	for i, light := range c.lights {
		lc := c.cascades[i].Transformed(toLight)
		box := lc.Bounds()

		// Conservative square bound: the larger of the far-ring diagonal
		// and the near-to-far diagonal. Stable under camera rotation,
		// which a tight AABB fit is not.
		d1 := lc.Far[CornerTopRight].Distance(lc.Far[CornerBottomLeft])
		d2 := lc.Near[CornerTopRight].Distance(lc.Far[CornerBottomLeft])
		side := max(d1, d2)

		if c.opts.Fade {
			side += fadeMargin(boundaries[i], near, maxFar)
		}
		half := side / 2

		// Snap the bound center to the texel grid so shadow edges do
		// not shimmer as the camera moves continuously.
		center := box.Center()
		if res := light.Resolution(); res > 0 && side > 0 {
			texel := side / float32(res)
			center.X = math.Floor(center.X/texel) * texel
			center.Y = math.Floor(center.Y/texel) * texel
		}

		pushback := c.opts.Margin
		shadowNear, shadowFar := c.opts.ShadowNear, c.opts.ShadowFar
		if shadowNear <= 0 || shadowFar <= 0 {
			pushback, shadowNear, shadowFar = depthRange(box, c.opts.Margin, side)
		}

		worldCenter := lightToWorld.TransformVec3(center)
		light.Position = worldCenter.Sub(dir.Scale(pushback))
		light.Target = worldCenter.Add(dir)
		light.Bounds = OrthoBounds{
			Left:   -half,
			Right:  half,
			Bottom: -half,
			Top:    half,
			Near:   shadowNear,
			Far:    shadowFar,
		}

		lo := float32(0)
		if i > 0 {
			lo = boundaries[i-1]
		}
		light.Interval = Interval{Lo: lo, Hi: boundaries[i]}
		light.markDirty(up)
	}
	return true
}

// Dispose releases the shadow maps and detaches the lights. It is
// terminal and idempotent; every later call on the controller is a
// no-op.
func (c *Controller) Dispose() {
	if c.state == stateDisposed {
		return
	}
	c.releaseLights()
	c.state = stateDisposed
	logger.Info("csm: disposed")
}

// releaseLights detaches and frees the current light generation.
func (c *Controller) releaseLights() {
	for _, l := range c.lights {
		if c.mount != nil {
			c.mount.DetachLight(l)
		}
		if l.depthMap != nil {
			l.depthMap.Release()
			l.depthMap = nil
		}
	}
	c.lights = nil
}

// Lights returns the per-cascade shadow lights in cascade order.
func (c *Controller) Lights() []*ShadowLight {
	return c.lights
}

// Direction returns the shared sun light direction.
func (c *Controller) Direction() math.Vec3 {
	return c.direction
}

// Boundaries returns the current cascade boundary fractions.
func (c *Controller) Boundaries() []float32 {
	return c.boundaries
}

// Cascades returns the view-space cascade frustums from the last fit.
func (c *Controller) Cascades() []Frustum {
	return c.cascades
}

// ShadowDistance returns the far distance of the shadowed depth range
// from the last fit: min(camera far, configured max far).
func (c *Controller) ShadowDistance() float32 {
	return c.shadowFar
}

// CameraNear returns the camera near distance from the last fit, the
// lower end of the linear-depth range used for cascade selection.
func (c *Controller) CameraNear() float32 {
	return c.cameraNear
}

// fadeMargin is the depth-based bound inflation used when cascade
// fading is enabled: fadeConstant * d^2 * (far - near) for a cascade
// ending at linear depth fraction d.
func fadeMargin(d, near, far float32) float32 {
	return fadeConstant * d * d * (far - near)
}

// depthRange derives the light push-back distance and the shadow camera
// near/far from the light-space box depth. The push-back places the
// light margin+pad beyond the cascade's near edge, so every corner sits
// at positive depth inside [near, far]; the region between the near
// plane and the cascade catches off-screen casters.
func depthRange(box AABB, margin, side float32) (pushback, near, far float32) {
	halfDepth := box.Size().Z / 2
	pad := side * 0.1
	pushback = margin + halfDepth + pad
	near = 0.1
	far = pushback + halfDepth + pad
	return pushback, near, far
}

// upForDirection picks a world-up for the light's look-at, avoiding the
// degenerate case of a near-vertical sun.
func upForDirection(dir math.Vec3) math.Vec3 {
	if math.Abs(dir.Y) > 0.99 {
		return math.Vec3{Z: 1}
	}
	return math.Vec3{Y: 1}
}

// angleBetween returns the angle in radians between two unit vectors.
func angleBetween(a, b math.Vec3) float32 {
	return math.Acos(math.Clamp(a.Dot(b), -1, 1))
}
