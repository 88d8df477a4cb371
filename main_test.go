package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

const planeSceneYAML = `
name: floor
camera:
  look_from: [0, 1, 2]
  look_at: [0, 0, -1]
  aspect: 2
materials:
  floor: {type: lambertian, albedo: [0.5, 0.5, 0.5]}
  ball: {type: metal, albedo: [0.8, 0.8, 0.8]}
spheres:
  - {center: [0, 0, -1], radius: 0.5, material: ball}
planes:
  - {point: [0, -0.5, 0], normal: [0, 1, 0], material: floor}
`

// runApp runs the command line app and returns what it wrote
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"pathtracer"}, args...))
	return out.String(), err
}

func TestScenesCommand(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "floor.yaml"), []byte(planeSceneYAML), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "scenes", "--dir", dir)
	if err != nil {
		t.Fatalf("scenes failed: %v", err)
	}
	for _, expected := range []string{"still-life", "grid", "floor.yaml", "yaml"} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected scene list to contain %q:\n%s", expected, out)
		}
	}
}

func TestExportCommand(t *testing.T) {
	tests := []struct {
		name       string
		scene      string
		primitives int
	}{
		{"Still life", "still-life", 5},
		{"Grid", "grid", 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, "export", "--scene", tt.scene)
			if err != nil {
				t.Fatalf("export failed: %v", err)
			}

			s, err := scene.Parse([]byte(out))
			if err != nil {
				t.Fatalf("Exported scene does not parse: %v\n%s", err, out)
			}
			if s.Name != tt.scene {
				t.Errorf("Expected name %q, got %q", tt.scene, s.Name)
			}
			if len(s.Primitives) != tt.primitives {
				t.Errorf("Expected %d primitives, got %d", tt.primitives, len(s.Primitives))
			}
		})
	}
}

func TestExportCommand_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "still-life.yaml")
	if _, err := runApp(t, "export", "--scene", "still-life", "--out", path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	s, err := scene.Load(path)
	if err != nil {
		t.Fatalf("Failed to load exported scene: %v", err)
	}
	if len(s.Primitives) != 5 {
		t.Errorf("Expected 5 primitives, got %d", len(s.Primitives))
	}
}

func TestBVHCommand(t *testing.T) {
	out, err := runApp(t, "bvh", "--scene", "grid")
	if err != nil {
		t.Fatalf("bvh failed: %v", err)
	}

	// 65 leaves need 64 internal nodes
	for _, expected := range []string{"Primitives", "65", "129", "Max depth"} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected BVH table to contain %q:\n%s", expected, out)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "still-life.ppm")
	_, err := runApp(t, "render", "--scene", "still-life",
		"--width", "32", "--spp", "2", "--max-depth", "3", "--workers", "2", "--out", path)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected image file: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n32 ") {
		t.Errorf("Unexpected PPM header %q", strings.SplitN(string(data), "\n", 3))
	}
}

func TestRenderCommand_Planes(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "floor.yaml")
	if err := os.WriteFile(scenePath, []byte(planeSceneYAML), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "floor.png")

	_, err := runApp(t, "render", "--scene", scenePath, "--width", "16", "--spp", "1", "--out", out)
	if err == nil || !strings.Contains(err.Error(), "--no-bvh") {
		t.Fatalf("Expected unbounded primitive error suggesting --no-bvh, got %v", err)
	}

	_, err = runApp(t, "render", "--scene", scenePath, "--width", "16", "--spp", "1", "--no-bvh", "--out", out)
	if err != nil {
		t.Fatalf("render with --no-bvh failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected image file: %v", err)
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "image.png")
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"Unknown scene", []string{"render", "--scene", "no-such-scene", "--out", out}, "unknown scene"},
		{"Unknown format", []string{"render", "--out", "image.jpg"}, "unsupported"},
		{"Negative width", []string{"render", "--width", "-5", "--out", out}, "negative"},
		{"Watch builtin", []string{"render", "--watch", "--out", out}, "--watch requires a scene file"},
		{"Unknown log level", []string{"--log-level", "chatty", "render", "--out", out}, "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("Expected error containing %q, got %v", tt.expected, err)
			}
		})
	}
}
