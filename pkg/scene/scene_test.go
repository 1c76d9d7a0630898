package scene

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// captureLogger records formatted log lines
type captureLogger struct {
	lines []string
}

func (l *captureLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *captureLogger) contains(substr string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestBuild_AllScenes(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Build(name, 1, &captureLogger{})
			if err != nil {
				t.Fatalf("Build(%q) failed: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if s.World == nil {
				t.Fatal("Expected world geometry")
			}
			if s.Objects == 0 {
				t.Error("Expected at least one top-level object")
			}
			if s.Camera.Width <= 0 || s.Camera.SamplesPerPixel <= 0 || s.Camera.MaxDepth <= 0 {
				t.Errorf("Invalid camera defaults: %+v", s.Camera)
			}

			info, err := Lookup(name)
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", name, err)
			}
			if info.Lights != (s.Lights != nil) {
				t.Errorf("Metadata lights=%v but scene lights=%v", info.Lights, s.Lights != nil)
			}
		})
	}
}

func TestBuild_UnknownScene(t *testing.T) {
	_, err := Build("no-such-scene", 1, &captureLogger{})
	if err == nil {
		t.Fatal("Expected error for unknown scene")
	}
	if !strings.Contains(err.Error(), "cornell") {
		t.Errorf("Expected error to list available scenes, got %v", err)
	}

	if _, err := Lookup("no-such-scene"); err == nil {
		t.Error("Expected Lookup error for unknown scene")
	}
}

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(Names()) {
		t.Fatalf("Expected %d scenes, got %d", len(Names()), len(scenes))
	}

	seen := make(map[string]bool)
	for i, info := range scenes {
		if info.ID == "" || info.DisplayName == "" || info.Group == "" {
			t.Errorf("Incomplete metadata: %+v", info)
		}
		if seen[info.ID] {
			t.Errorf("Duplicate scene ID %q", info.ID)
		}
		seen[info.ID] = true

		if i > 0 {
			prev := scenes[i-1]
			if prev.Group > info.Group || (prev.Group == info.Group && prev.ID > info.ID) {
				t.Errorf("Scenes not sorted: %q/%q before %q/%q", prev.Group, prev.ID, info.Group, info.ID)
			}
		}
	}
}

func TestBuild_DeterministicBySeed(t *testing.T) {
	probe := func(s *Scene) []float64 {
		sampler := core.NewSeededSampler(99)
		var ts []float64
		for i := 0; i < 200; i++ {
			d := sampler.Get2D()
			dir := core.NewVec3(-13+4*d.X, -2+2*d.Y, -3).Normalize()
			hit, ok := s.World.Hit(core.NewRay(core.NewVec3(13, 2, 3), dir), core.NewInterval(0.001, 1e9), sampler)
			if ok {
				ts = append(ts, hit.T)
			} else {
				ts = append(ts, -1)
			}
		}
		return ts
	}

	a, _ := Build("spheres", 7, &captureLogger{})
	b, _ := Build("spheres", 7, &captureLogger{})
	c, _ := Build("spheres", 8, &captureLogger{})

	ta, tb, tc := probe(a), probe(b), probe(c)

	differs := false
	for i := range ta {
		if ta[i] != tb[i] {
			t.Fatalf("Same seed produced different hits at probe %d: %v vs %v", i, ta[i], tb[i])
		}
		if ta[i] != tc[i] {
			differs = true
		}
	}
	if !differs {
		t.Error("Expected different seeds to produce different sphere fields")
	}
}

func TestCornellScene_Lights(t *testing.T) {
	s := NewCornellScene()

	lights, ok := s.Lights.(*geometry.HittableList)
	if !ok {
		t.Fatalf("Expected light list, got %T", s.Lights)
	}
	if len(lights.Objects) != 2 {
		t.Errorf("Expected ceiling light and glass sphere, got %d lights", len(lights.Objects))
	}

	// Five walls, the light, the rotated box and the sphere
	if s.Objects != 8 {
		t.Errorf("Expected 8 top-level objects, got %d", s.Objects)
	}

	// Light sampling from the floor must reach the ceiling
	origin := core.NewVec3(278, 1, 278)
	sampler := core.NewSeededSampler(3)
	for i := 0; i < 50; i++ {
		dir := geometry.RandomDirection(s.Lights, origin, sampler)
		if pdf := geometry.PDFValue(s.Lights, origin, dir, sampler); pdf <= 0 {
			t.Fatalf("Expected positive light pdf for sampled direction %v, got %v", dir, pdf)
		}
	}
}

func TestScene_BVHStats(t *testing.T) {
	s := NewFinalScene(core.NewSeededSampler(1), &captureLogger{})

	stats, ok := s.BVHStats()
	if !ok {
		t.Fatal("Expected world to be a BVH")
	}
	if stats.LeafNodes == 0 || stats.TotalNodes < stats.LeafNodes {
		t.Errorf("Unexpected BVH stats: %+v", stats)
	}

	plain := &Scene{World: geometry.NewHittableList()}
	if _, ok := plain.BVHStats(); ok {
		t.Error("Expected no BVH stats for a plain list")
	}
}

func TestEarthScene_MissingTexture(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv(loaders.ImagesEnv, "")

	logger := &captureLogger{}
	s := NewEarthScene(logger)
	if s == nil {
		t.Fatal("Expected scene with placeholder texture")
	}
	if !logger.contains("placeholder") {
		t.Errorf("Expected placeholder warning, got %v", logger.lines)
	}
}

func TestEarthScene_LoadsTexture(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(loaders.ImagesEnv, dir)

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, color.RGBA{R: 0, G: 0, B: 255, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "earthmap.jpg"))
	if err != nil {
		t.Fatalf("Failed to create texture: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode texture: %v", err)
	}
	f.Close()

	logger := &captureLogger{}
	NewEarthScene(logger)
	if logger.contains("placeholder") {
		t.Errorf("Expected texture to load, got warnings %v", logger.lines)
	}
}

func TestScenes_RenderSmoke(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping scene renders in short mode")
	}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Build(name, 1, &captureLogger{})
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			config := s.Camera
			config.Width = 8
			config.SamplesPerPixel = 1
			config.MaxDepth = 4

			rt := renderer.NewRaytracer(s.World, s.Lights, config, renderer.Options{Workers: 2, Seed: 1}, nil)
			fb, _, err := rt.Render(context.Background(), nil)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}

			buf := fb.ColorBuffer()
			for y := 0; y < buf.Height; y++ {
				for x := 0; x < buf.Width; x++ {
					c := buf.Average(x, y)
					if c.HasNaN() || c.X < 0 || c.Y < 0 || c.Z < 0 {
						t.Fatalf("Invalid pixel (%d,%d): %v", x, y, c)
					}
				}
			}
		})
	}
}

// chdirForTest is a Go 1.21-compatible stand-in for testing.T.Chdir (Go 1.24+):
// it changes the working directory and restores it when the test ends.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
