// Package viewer wires the window, renderer, input and scene together.
package viewer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/assets"
	"github.com/Faultbox/orbitview/internal/config"
	"github.com/Faultbox/orbitview/internal/engine/capture"
	"github.com/Faultbox/orbitview/internal/engine/input"
	"github.com/Faultbox/orbitview/internal/engine/renderer"
	"github.com/Faultbox/orbitview/internal/engine/window"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/internal/scene"
)

// Viewer is the running application.
type Viewer struct {
	window   *window.Window
	renderer *renderer.Renderer
	assets   *assets.Manager
	loop     *scene.Loop
}

// New loads the scene, opens the window and prepares the render loop.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	v := &Viewer{
		assets: assets.NewManager(),
	}
	v.assets.AddDirs(cfg.Data.Paths)

	// Geometry does not need a GL context, so load it before the window
	// opens and fail early on a broken scene.
	state, err := scene.Build(cfg, v.assets)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	v.renderer, err = renderer.New(renderer.Config{
		ClearColor: cfg.Scene.ClearColor,
		LightDir:   cfg.Scene.LightDir,
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	shots := capture.New(cfg.Screenshots.Dir, cfg.Screenshots.Prefix)
	v.loop, err = scene.NewLoop(state, v.window, v.renderer, input.New(), shots)
	if err != nil {
		v.Close()
		return nil, err
	}

	logger.Info("viewer initialized",
		zap.Int("objects", len(state.Objects)),
		logger.OnOff("animation", state.Clock.Running()),
		logger.OnOff("grid", state.ShowGrid),
	)
	return v, nil
}

// Run drives the render loop until the window closes or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	return v.loop.Run(ctx)
}

// Close releases GPU, window and asset resources. It only touches what
// New managed to create, so every failure path in New ends here.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
	v.assets.Close()
}
