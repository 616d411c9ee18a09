// Package main is the Terravista map viewer: a procedural tile scene
// lit by a simulated sun with cascaded shadow maps.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/terravista/terravista/internal/config"
	"github.com/terravista/terravista/internal/engine/camera"
	"github.com/terravista/terravista/internal/engine/csm"
	"github.com/terravista/terravista/internal/engine/daylight"
	"github.com/terravista/terravista/internal/engine/renderer"
	"github.com/terravista/terravista/internal/engine/scene"
	"github.com/terravista/terravista/internal/engine/shadow"
	"github.com/terravista/terravista/internal/engine/tiles"
	"github.com/terravista/terravista/internal/engine/window"
	"github.com/terravista/terravista/internal/logger"
	"github.com/terravista/terravista/pkg/math"
)

const windowTitle = "Terravista"

func init() {
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Terravista viewer ===")

	if err := run(cfg); err != nil {
		logger.Error("fatal", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	drawW, drawH := win.DrawableSize()
	rend, err := renderer.New(renderer.Config{Width: drawW, Height: drawH})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer rend.Close()
	rend.Resize(drawW, drawH)

	// Camera over the tile grid
	cam := camera.New(float32(drawW) / float32(drawH))
	cam.FOV = cfg.Graphics.FOVDegrees * math.Pi / 180
	cam.NearPlane = cfg.Graphics.Near
	cam.FarPlane = cfg.Graphics.Far

	// Procedural tile scene
	world := scene.New()
	defer world.Release()
	const tileGrid, tileSize = 3, 1024
	for row := 0; row < tileGrid; row++ {
		for col := 0; col < tileGrid; col++ {
			ox := float32(col-tileGrid/2) * tileSize
			oz := float32(row-tileGrid/2) * tileSize
			grid := tiles.BuildGrid(64, tileSize, ox, oz, tiles.RollingHills)
			world.AddMesh(tiles.Upload(grid))
		}
	}

	// Sun and shadow cascade controller
	sun := &daylight.Calculator{
		SunriseHour: cfg.Daylight.SunriseHour,
		SunsetHour:  cfg.Daylight.SunsetHour,
		Wobble:      cfg.Daylight.Wobble,
	}
	clock := daylight.NewClock(cfg.Daylight.StartHour, cfg.Daylight.TimeScale)

	scheme, err := csm.ParseScheme(cfg.Shadows.Scheme)
	if err != nil {
		logger.Warn("bad split scheme, using practical", zap.Error(err))
	}

	ctrl := csm.NewController(cam, sun, shadow.Allocator{}, world)
	err = ctrl.Initialize(clock.Hours(), csm.Options{
		Cascades:       cfg.Shadows.Cascades,
		Resolution:     cfg.Shadows.Resolution,
		MaxFar:         cfg.Shadows.MaxFar,
		Scheme:         scheme,
		Lambda:         cfg.Shadows.Lambda,
		Fade:           cfg.Shadows.Fade,
		ShadowNear:     cfg.Shadows.ShadowNear,
		ShadowFar:      cfg.Shadows.ShadowFar,
		Margin:         cfg.Shadows.Margin,
		Intensity:      cfg.Shadows.Intensity,
		UpdateInterval: cfg.Shadows.UpdateInterval,
	})
	if err != nil {
		return fmt.Errorf("initializing shadow cascades: %w", err)
	}
	defer ctrl.Dispose()

	logger.Info("scene ready",
		zap.Int("tiles", tileGrid*tileGrid),
		zap.Float32("hour", clock.Hours()),
	)

	lastFrame := time.Now()
	dragging := false

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					return nil
				}
			case *sdl.MouseButtonEvent:
				if e.Button == sdl.BUTTON_LEFT {
					dragging = e.Type == sdl.MOUSEBUTTONDOWN
				}
			case *sdl.MouseMotionEvent:
				if dragging {
					cam.HandleDrag(float32(e.XRel), float32(e.YRel))
				}
			case *sdl.MouseWheelEvent:
				cam.HandleZoom(float32(e.Y))
			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
					w, h := win.DrawableSize()
					rend.Resize(w, h)
					cam.Resize(w, h)
				}
			}
		}

		now := time.Now()
		clock.Advance(now.Sub(lastFrame))
		lastFrame = now

		ctrl.Update(clock.Hours())

		rend.RenderShadowPasses(ctrl, world)
		rend.Begin(world.SkyColor)
		rend.RenderColorPass(cam, ctrl, world)

		win.SwapBuffers()
	}
}
