package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageSource is decoded 8-bit RGB image data
type ImageSource interface {
	Width() int
	Height() int
	// PixelData returns the RGB bytes at (x, y), clamping out-of-range coordinates
	PixelData(x, y int) [3]byte
}

// magenta flags a texture whose image never loaded
var magenta = core.NewVec3(1, 0, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	image ImageSource
}

// NewImageTexture creates a new image texture
func NewImageTexture(image ImageSource) *ImageTexture {
	return &ImageTexture{image: image}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.image == nil || t.image.Height() <= 0 {
		return magenta
	}

	unit := core.NewInterval(0, 1)
	u := unit.Clamp(uv.X)
	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	v := 1.0 - unit.Clamp(uv.Y)

	x := int(u * float64(t.image.Width()))
	y := int(v * float64(t.image.Height()))
	pixel := t.image.PixelData(x, y)

	const colorScale = 1.0 / 255.0
	return core.NewVec3(
		colorScale*float64(pixel[0]),
		colorScale*float64(pixel[1]),
		colorScale*float64(pixel[2]),
	)
}
