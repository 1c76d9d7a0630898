package output

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Buffer is a rectangle of accumulated pixel sums ready for encoding.
// Pixels are row-major with row 0 at the top of the image.
type Buffer struct {
	Width   int
	Height  int
	Samples int         // Number of samples summed into each pixel
	Pixels  []core.Vec3 // Width*Height per-pixel sums
}

// NewBuffer creates an empty buffer of the given size
func NewBuffer(width, height, samples int) *Buffer {
	return &Buffer{
		Width:   width,
		Height:  height,
		Samples: samples,
		Pixels:  make([]core.Vec3, width*height),
	}
}

// At returns the raw sum stored for pixel (x, y)
func (b *Buffer) At(x, y int) core.Vec3 {
	return b.Pixels[y*b.Width+x]
}

// Average returns the mean color of pixel (x, y) with NaN components zeroed
// before averaging
func (b *Buffer) Average(x, y int) core.Vec3 {
	sum := zeroNaN(b.At(x, y))
	if b.Samples <= 0 {
		return sum
	}
	return sum.Multiply(1.0 / float64(b.Samples))
}

func zeroNaN(c core.Vec3) core.Vec3 {
	if math.IsNaN(c.X) {
		c.X = 0
	}
	if math.IsNaN(c.Y) {
		c.Y = 0
	}
	if math.IsNaN(c.Z) {
		c.Z = 0
	}
	return c
}

// linearToGamma applies the gamma-2 transform, zero for non-positive input
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

var (
	// byteIntensity keeps 256*c below 256
	byteIntensity = core.NewInterval(0, 0.999)
	// floatIntensity is the linear range written to float images
	floatIntensity = core.NewInterval(0, 1)
)

// toBytes converts a linear color to gamma-encoded 8-bit components
func toBytes(c core.Vec3) (r, g, b uint8) {
	r = uint8(256 * byteIntensity.Clamp(linearToGamma(c.X)))
	g = uint8(256 * byteIntensity.Clamp(linearToGamma(c.Y)))
	b = uint8(256 * byteIntensity.Clamp(linearToGamma(c.Z)))
	return r, g, b
}
