package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// ToRGBA converts the buffer to an 8-bit image using the same gamma and
// clamping as the PPM encoder
func ToRGBA(buf *Buffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := toBytes(buf.Average(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// WritePNG encodes the buffer as a PNG image
func WritePNG(w io.Writer, buf *Buffer) error {
	if err := png.Encode(w, ToRGBA(buf)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
