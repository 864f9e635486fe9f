// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Camera      CameraConfig     `yaml:"camera"`
	Scene       SceneConfig      `yaml:"scene"`
	Data        DataConfig       `yaml:"data"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the orbit camera pose, limits and projection.
// Angles are radians except FovDeg.
type CameraConfig struct {
	Azimuth    float32    `yaml:"azimuth"`
	Elevation  float32    `yaml:"elevation"`
	Radius     float32    `yaml:"radius"`
	Target     [3]float32 `yaml:"target"`
	MinRadius  float32    `yaml:"min_radius"`
	MaxRadius  float32    `yaml:"max_radius"`
	YawSpeed   float32    `yaml:"yaw_speed"`
	PitchSpeed float32    `yaml:"pitch_speed"`
	ZoomSpeed  float32    `yaml:"zoom_speed"`
	FovDeg     float32    `yaml:"fov_deg"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
}

// SceneConfig describes what is drawn.
type SceneConfig struct {
	ClearColor       [3]float32     `yaml:"clear_color"`
	LightDir         [3]float32     `yaml:"light_dir"`
	Grid             GridConfig     `yaml:"grid"`
	AxesLength       float32        `yaml:"axes_length"`
	AnimationRunning bool           `yaml:"animation_running"`
	Objects          []ObjectConfig `yaml:"objects"`
}

// GridConfig holds the ground grid settings.
type GridConfig struct {
	Size      float32    `yaml:"size"`
	Divisions int        `yaml:"divisions"`
	Y         float32    `yaml:"y"`
	Color     [3]float32 `yaml:"color"`
	Visible   bool       `yaml:"visible"`
}

// ObjectConfig describes one scene object.
//
// Mesh is one of "cube", "sphere", "asset:<path>" (resolved through the
// data paths and the embedded meshes) or a file path ending in .json,
// .gltf or .glb.
type ObjectConfig struct {
	Name      string          `yaml:"name"`
	Mesh      string          `yaml:"mesh"`
	Color     *[3]float32     `yaml:"color,omitempty"`
	Animation AnimationConfig `yaml:"animation"`
}

// AnimationConfig mirrors animation.Policy. A zero Scale means 1.
type AnimationConfig struct {
	Scale     float32     `yaml:"scale"`
	Pulse     PulseConfig `yaml:"pulse"`
	SpinSpeed float32     `yaml:"spin_speed"`
	Orbit     OrbitConfig `yaml:"orbit"`
	Offset    [3]float32  `yaml:"offset"`
}

// PulseConfig holds scale oscillation settings.
type PulseConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Amplitude float32 `yaml:"amplitude"`
	Speed     float32 `yaml:"speed"`
}

// OrbitConfig holds circular motion settings.
type OrbitConfig struct {
	Speed  float32 `yaml:"speed"`
	Radius float32 `yaml:"radius"`
	Phase  float32 `yaml:"phase"`
}

// DataConfig holds geometry data locations.
type DataConfig struct {
	Paths []string `yaml:"paths"` // Directories searched before the embedded meshes
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "orbitview",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			Azimuth:    0.35 * math32.Pi,
			Elevation:  0.35,
			Radius:     4,
			MinRadius:  1.2,
			MaxRadius:  25,
			YawSpeed:   0.005,
			PitchSpeed: 0.005,
			ZoomSpeed:  0.001,
			FovDeg:     60,
			Near:       0.1,
			Far:        100,
		},
		Scene: SceneConfig{
			ClearColor: [3]float32{0.10, 0.10, 0.12},
			LightDir:   [3]float32{0.6, 1.0, 0.8},
			Grid: GridConfig{
				Size:      12,
				Divisions: 12,
				Y:         -0.5,
				Color:     [3]float32{0.35, 0.35, 0.40},
				Visible:   true,
			},
			AxesLength:       2,
			AnimationRunning: true,
			Objects:          DefaultObjects(),
		},
		Data: DataConfig{
			Paths: []string{"data"},
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "orbitview",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// DefaultObjects returns the built-in demo scene: a spinning cube, a
// pulsing sphere and an orbiting gem loaded from the embedded meshes.
func DefaultObjects() []ObjectConfig {
	return []ObjectConfig{
		{
			Name:  "cube",
			Mesh:  "cube",
			Color: &[3]float32{0.2, 0.7, 1.0},
			Animation: AnimationConfig{
				Scale:     1,
				SpinSpeed: 0.6,
				Offset:    [3]float32{-0.9, 0, 0},
			},
		},
		{
			Name:  "sphere",
			Mesh:  "sphere",
			Color: &[3]float32{1.0, 0.55, 0.2},
			Animation: AnimationConfig{
				Scale:  1,
				Pulse:  PulseConfig{Enabled: true, Amplitude: 0.5, Speed: 2},
				Offset: [3]float32{0.9, 0, 0},
			},
		},
		{
			Name: "gem",
			Mesh: "asset:meshes/gem.json",
			Animation: AnimationConfig{
				Scale:     0.35,
				SpinSpeed: 1.5,
				Orbit:     OrbitConfig{Speed: 0.8, Radius: 2.2},
				Offset:    [3]float32{0, 0.6, 0},
			},
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	cam := c.Camera
	if cam.MinRadius <= 0 {
		return fmt.Errorf("camera min_radius must be positive, got %v", cam.MinRadius)
	}
	if cam.MinRadius >= cam.MaxRadius {
		return fmt.Errorf("camera min_radius (%v) must be below max_radius (%v)", cam.MinRadius, cam.MaxRadius)
	}
	if cam.Near <= 0 {
		return fmt.Errorf("camera near must be positive, got %v", cam.Near)
	}
	if cam.Far <= cam.Near {
		return fmt.Errorf("camera far (%v) must be beyond near (%v)", cam.Far, cam.Near)
	}
	if cam.YawSpeed <= 0 || cam.PitchSpeed <= 0 {
		return fmt.Errorf("camera yaw_speed and pitch_speed must be positive, got %v/%v", cam.YawSpeed, cam.PitchSpeed)
	}
	// A negative zoom_speed would reverse the wheel direction.
	if cam.ZoomSpeed <= 0 {
		return fmt.Errorf("camera zoom_speed must be positive, got %v", cam.ZoomSpeed)
	}
	if cam.FovDeg <= 0 || cam.FovDeg >= 180 {
		return fmt.Errorf("camera fov_deg must be in (0, 180), got %v", cam.FovDeg)
	}

	grid := c.Scene.Grid
	if grid.Size <= 0 || grid.Divisions <= 0 {
		return fmt.Errorf("grid size and divisions must be positive, got %v/%d", grid.Size, grid.Divisions)
	}
	if c.Scene.AxesLength <= 0 {
		return fmt.Errorf("axes_length must be positive, got %v", c.Scene.AxesLength)
	}
	return nil
}
