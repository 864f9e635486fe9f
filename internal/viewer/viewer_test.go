package viewer

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/orbitview/internal/assets"
	"github.com/Faultbox/orbitview/internal/config"
	"github.com/Faultbox/orbitview/internal/logger"
)

func TestNewReleasesOnSceneError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	defer func() { logger.Log = prev }()

	cfg := config.Default()
	cfg.Data.Paths = nil
	cfg.Scene.Grid.Divisions = 0

	v, err := New(cfg)
	if err == nil {
		t.Fatal("expected scene error, got nil")
	}
	if v != nil {
		t.Error("expected nil viewer on error")
	}
	if got := logs.FilterMessage("closing viewer").Len(); got != 1 {
		t.Errorf("Close ran %d times, want 1", got)
	}
	if got := logs.FilterMessage("window created").Len(); got != 0 {
		t.Error("window opened for a scene that failed to build")
	}
}

func TestCloseWithoutWindow(t *testing.T) {
	// Close must cope with a viewer whose window and renderer never opened.
	v := &Viewer{assets: assets.NewManager()}
	v.Close()
}
