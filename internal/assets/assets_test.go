package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestEmbeddedMeshes(t *testing.T) {
	m := NewManager()

	for _, name := range []string{"meshes/gem.json", "meshes/tetra.json"} {
		data, err := m.Load(name)
		if err != nil {
			t.Errorf("Load(%q) failed: %v", name, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("Load(%q) returned no data", name)
		}
	}
}

func TestLoadNotFound(t *testing.T) {
	m := NewManager()

	for _, name := range []string{"meshes/missing.json", "../etc/passwd", "nope"} {
		_, err := m.Load(name)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Load(%q) error = %v, want ErrNotFound", name, err)
		}
	}
}

func TestSourcePriority(t *testing.T) {
	m := NewManager()
	m.AddFS("low", fstest.MapFS{
		"shape.json":      {Data: []byte("low")},
		"only-low.json":   {Data: []byte("only low")},
		"meshes/gem.json": {Data: []byte("override")},
	})
	m.AddFS("high", fstest.MapFS{
		"shape.json": {Data: []byte("high")},
	})

	tests := []struct {
		name string
		want string
	}{
		{"shape.json", "high"},
		{"only-low.json", "only low"},
		{"meshes/gem.json", "override"},
	}
	for _, tt := range tests {
		got, err := m.Load(tt.name)
		if err != nil {
			t.Errorf("Load(%q) failed: %v", tt.name, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("Load(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAddDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cube.json"), []byte(`{"vertices":[]}`), 0644); err != nil {
		t.Fatalf("failed to write asset: %v", err)
	}

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatalf("AddDir failed: %v", err)
	}

	got, err := m.Load("./cube.json")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != `{"vertices":[]}` {
		t.Errorf("Load = %q", got)
	}
}

func TestAddDirMissing(t *testing.T) {
	m := NewManager()
	if err := m.AddDir(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error adding missing dir, got nil")
	}

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := m.AddDir(file); err == nil {
		t.Error("expected error adding a regular file as dir, got nil")
	}

	// AddDirs skips what it cannot add.
	m.AddDirs([]string{file, filepath.Join(t.TempDir(), "absent")})
	if _, err := m.Load("meshes/gem.json"); err != nil {
		t.Errorf("embedded meshes lost after AddDirs: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "mesh.gltf")
	if err := os.WriteFile(file, []byte("gltf"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	m := NewManager()
	data, err := m.LoadFile(file)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if string(data) != "gltf" {
		t.Errorf("LoadFile = %q, want gltf", data)
	}

	// Served from cache even after removal.
	os.Remove(file)
	if _, err := m.LoadFile(file); err != nil {
		t.Errorf("cached LoadFile failed: %v", err)
	}

	if _, err := m.LoadFile(file + ".missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadFile missing error = %v, want ErrNotFound", err)
	}
}

func TestCache(t *testing.T) {
	c := NewCache()

	if _, ok := c.Get("a"); ok {
		t.Error("expected miss on empty cache")
	}
	c.Set("a", []byte("1"))
	if data, ok := c.Get("a"); !ok || string(data) != "1" {
		t.Errorf("Get(a) = %q, %v", data, ok)
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats = %d hits %d misses, want 1/1", hits, misses)
	}

	c.Clear()
	if _, ok := c.Get("a"); ok {
		t.Error("expected miss after Clear")
	}
	if hits, misses := c.Stats(); hits != 0 || misses != 1 {
		t.Errorf("Stats after Clear = %d/%d, want 0/1", hits, misses)
	}
}

func TestManagerCachesLoads(t *testing.T) {
	m := NewManager()
	if _, err := m.Load("meshes/gem.json"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Load("meshes/gem.json"); err != nil {
		t.Fatal(err)
	}
	if hits, _ := m.cache.Stats(); hits != 1 {
		t.Errorf("cache hits = %d, want 1", hits)
	}

	m.Close()
	if hits, misses := m.cache.Stats(); hits != 0 || misses != 0 {
		t.Errorf("Stats after Close = %d/%d, want 0/0", hits, misses)
	}
	if _, err := m.Load("meshes/gem.json"); err != nil {
		t.Errorf("embedded source lost after Close: %v", err)
	}
}
