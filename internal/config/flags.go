package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagCascades   = flag.Int("cascades", 0, "Shadow cascade count")
	flagResolution = flag.Int("shadow-res", 0, "Shadow map resolution (texels per side)")
	flagScheme     = flag.String("split-scheme", "", "Cascade split scheme (uniform, logarithmic, practical)")
	flagStartHour  = flag.Float64("hour", -1, "Simulated start time of day (fractional hours)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagCascades > 0 {
		cfg.Shadows.Cascades = *flagCascades
	}
	if *flagResolution > 0 {
		cfg.Shadows.Resolution = int32(*flagResolution)
	}
	if *flagScheme != "" {
		cfg.Shadows.Scheme = *flagScheme
	}
	if *flagStartHour >= 0 {
		cfg.Daylight.StartHour = float32(*flagStartHour)
	}
}
