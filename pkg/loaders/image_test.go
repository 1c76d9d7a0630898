package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a 2x2 image with white, red, green and blue pixels
func writeTestPNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
}

// TestLoadImage creates a test PNG and verifies loading through RTW_IMAGES
func TestLoadImage(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestPNG(t, filepath.Join(tmpDir, "test.png"))
	t.Setenv(ImagesEnv, tmpDir)

	img, err := LoadImage("test.png")
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if img.Width() != 2 || img.Height() != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", img.Width(), img.Height())
	}

	tests := []struct {
		name     string
		x, y     int
		expected [3]byte
	}{
		{"top-left white", 0, 0, [3]byte{255, 255, 255}},
		{"top-right red", 1, 0, [3]byte{255, 0, 0}},
		{"bottom-left green", 0, 1, [3]byte{0, 255, 0}},
		{"bottom-right blue", 1, 1, [3]byte{0, 0, 255}},
		{"clamped past right edge", 5, 0, [3]byte{255, 0, 0}},
		{"clamped negative", -3, -1, [3]byte{255, 255, 255}},
		{"clamped past bottom", 0, 9, [3]byte{0, 255, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.PixelData(tt.x, tt.y); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLoadImage_ParentImagesDirectory(t *testing.T) {
	root := t.TempDir()
	writeTestPNG(t, filepath.Join(root, "images", "earth.png"))

	work := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(work, 0755); err != nil {
		t.Fatalf("Failed to create work directory: %v", err)
	}
	chdirForTest(t, work)
	t.Setenv(ImagesEnv, "")

	img, err := LoadImage("earth.png")
	if err != nil {
		t.Fatalf("Expected image found two levels up, got %v", err)
	}
	if img.Width() != 2 {
		t.Errorf("Expected width 2, got %d", img.Width())
	}
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	t.Setenv(ImagesEnv, t.TempDir())
	if _, err := LoadImage("nonexistent.png"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadImage_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	t.Setenv(ImagesEnv, dir)

	if _, err := LoadImage("bad.png"); err == nil {
		t.Error("Expected decode error, got nil")
	}
}

func TestImageSearchPaths(t *testing.T) {
	t.Setenv(ImagesEnv, "textures")
	paths := ImageSearchPaths("earth.jpg")

	expected := []string{
		filepath.Join("textures", "earth.jpg"),
		"earth.jpg",
		filepath.Join("images", "earth.jpg"),
		filepath.Join("..", "images", "earth.jpg"),
	}
	if len(paths) != 3+maxParentLevels {
		t.Fatalf("Expected %d paths, got %d: %v", 3+maxParentLevels, len(paths), paths)
	}
	for i, want := range expected {
		if paths[i] != want {
			t.Errorf("Path %d: expected %q, got %q", i, want, paths[i])
		}
	}
	last := filepath.Join("..", "..", "..", "..", "..", "..", "images", "earth.jpg")
	if paths[len(paths)-1] != last {
		t.Errorf("Expected last path %q, got %q", last, paths[len(paths)-1])
	}
}

func TestEmptyImageIsMagenta(t *testing.T) {
	var img Image
	if img.Width() != 0 || img.Height() != 0 {
		t.Errorf("Expected empty dimensions, got %dx%d", img.Width(), img.Height())
	}
	if got := img.PixelData(3, 4); got != [3]byte{255, 0, 255} {
		t.Errorf("Expected magenta, got %v", got)
	}

	var nilImg *Image
	if got := nilImg.PixelData(0, 0); got != [3]byte{255, 0, 255} {
		t.Errorf("Expected magenta from nil image, got %v", got)
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
