// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Shadows  ShadowsConfig  `yaml:"shadows"`
	Daylight DaylightConfig `yaml:"daylight"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// ShadowsConfig holds cascaded shadow mapping settings.
type ShadowsConfig struct {
	Cascades       int           `yaml:"cascades"`
	Resolution     int32         `yaml:"resolution"`
	Scheme         string        `yaml:"scheme"` // uniform, logarithmic, practical
	Lambda         float32       `yaml:"lambda"`
	MaxFar         float32       `yaml:"max_far"`
	Fade           bool          `yaml:"fade"`
	ShadowNear     float32       `yaml:"shadow_near"`
	ShadowFar      float32       `yaml:"shadow_far"`
	Margin         float32       `yaml:"margin"`
	Intensity      float32       `yaml:"intensity"`
	UpdateInterval time.Duration `yaml:"update_interval"`
}

// DaylightConfig holds simulated time-of-day settings.
type DaylightConfig struct {
	SunriseHour float32 `yaml:"sunrise_hour"`
	SunsetHour  float32 `yaml:"sunset_hour"`
	StartHour   float32 `yaml:"start_hour"`
	// TimeScale is simulated hours per real second.
	TimeScale float32 `yaml:"time_scale"`
	Wobble    float32 `yaml:"wobble"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOVDegrees: 60,
			Near:       1,
			Far:        5000,
		},
		Shadows: ShadowsConfig{
			Cascades:       3,
			Resolution:     2048,
			Scheme:         "practical",
			Lambda:         0.5,
			MaxFar:         2000,
			Fade:           false,
			ShadowNear:     0,
			ShadowFar:      0,
			Margin:         250,
			Intensity:      1.0,
			UpdateInterval: 16 * time.Millisecond,
		},
		Daylight: DaylightConfig{
			SunriseHour: 6,
			SunsetHour:  20,
			StartHour:   10,
			TimeScale:   0.05,
			Wobble:      0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
