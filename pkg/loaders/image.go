package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ImagesEnv names the environment variable holding the texture directory
const ImagesEnv = "RTW_IMAGES"

// maxParentLevels bounds the ../images search
const maxParentLevels = 6

var magenta = [3]byte{255, 0, 255}

// Image holds 8-bit RGB texture data. The zero value is an empty image whose
// pixels all read as magenta.
type Image struct {
	width  int
	height int
	data   []byte // width*height RGB triplets, top row first
}

// Width returns the image width, zero when no data is loaded
func (img *Image) Width() int {
	if img == nil || len(img.data) == 0 {
		return 0
	}
	return img.width
}

// Height returns the image height, zero when no data is loaded
func (img *Image) Height() int {
	if img == nil || len(img.data) == 0 {
		return 0
	}
	return img.height
}

// PixelData returns the RGB bytes at (x, y), clamping coordinates to the
// image. Empty images return magenta.
func (img *Image) PixelData(x, y int) [3]byte {
	if img == nil || len(img.data) == 0 {
		return magenta
	}
	x = clampIndex(x, img.width)
	y = clampIndex(y, img.height)
	off := 3 * (y*img.width + x)
	return [3]byte{img.data[off], img.data[off+1], img.data[off+2]}
}

func clampIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// DecodeImage decodes a PNG or JPEG stream into RGB bytes
func DecodeImage(r io.Reader) (*Image, error) {
	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	data := make([]byte, 0, 3*width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			data = append(data, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}

	return &Image{width: width, height: height, data: data}, nil
}

// loadImageFile loads a single path
func loadImageFile(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return DecodeImage(file)
}

// ImageSearchPaths lists the locations tried for filename, in order:
// $RTW_IMAGES (default "images"), the name itself, images/, then images/
// directories up to six parent levels.
func ImageSearchPaths(filename string) []string {
	dir, ok := os.LookupEnv(ImagesEnv)
	if !ok {
		dir = "images"
	}

	var paths []string
	if dir != "" {
		paths = append(paths, filepath.Join(dir, filename))
	}
	paths = append(paths, filename, filepath.Join("images", filename))

	parent := ""
	for level := 0; level < maxParentLevels; level++ {
		parent = filepath.Join(parent, "..")
		paths = append(paths, filepath.Join(parent, "images", filename))
	}
	return paths
}

// LoadImage searches the texture directories for filename and loads the
// first path that decodes
func LoadImage(filename string) (*Image, error) {
	paths := ImageSearchPaths(filename)
	var decodeErr error
	for _, path := range paths {
		img, err := loadImageFile(path)
		if err == nil {
			return img, nil
		}
		if !errors.Is(err, os.ErrNotExist) && decodeErr == nil {
			decodeErr = fmt.Errorf("%s: %w", path, err)
		}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("could not load image file %q: %w", filename, decodeErr)
	}
	return nil, fmt.Errorf("could not load image file %q (searched %s)", filename, strings.Join(paths, ", "))
}
