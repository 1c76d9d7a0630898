package renderer

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/output"
)

// Framebuffer accumulates per-pixel sums for the colour image and the
// auxiliary albedo and normal passes. Rows are written by at most one
// worker each, so no locking is needed.
type Framebuffer struct {
	Width   int
	Height  int
	Samples int // Samples summed into each pixel
	Color   []core.Vec3
	Albedo  []core.Vec3 // nil unless auxiliary passes were requested
	Normal  []core.Vec3 // nil unless auxiliary passes were requested
}

// NewFramebuffer creates a zeroed framebuffer
func NewFramebuffer(width, height, samples int, auxiliary bool) *Framebuffer {
	fb := &Framebuffer{
		Width:   width,
		Height:  height,
		Samples: samples,
		Color:   make([]core.Vec3, width*height),
	}
	if auxiliary {
		fb.Albedo = make([]core.Vec3, width*height)
		fb.Normal = make([]core.Vec3, width*height)
	}
	return fb
}

// HasAuxiliary reports whether albedo and normal sums were collected
func (fb *Framebuffer) HasAuxiliary() bool {
	return fb.Albedo != nil
}

// ColorBuffer returns the colour sums for encoding
func (fb *Framebuffer) ColorBuffer() *output.Buffer {
	return &output.Buffer{Width: fb.Width, Height: fb.Height, Samples: fb.Samples, Pixels: fb.Color}
}

// AlbedoBuffer returns the albedo sums for encoding, nil without auxiliary passes
func (fb *Framebuffer) AlbedoBuffer() *output.Buffer {
	if !fb.HasAuxiliary() {
		return nil
	}
	return &output.Buffer{Width: fb.Width, Height: fb.Height, Samples: fb.Samples, Pixels: fb.Albedo}
}

// NormalBuffer returns the normal sums remapped from [-1,1] to [0,1],
// nil without auxiliary passes
func (fb *Framebuffer) NormalBuffer() *output.Buffer {
	if !fb.HasAuxiliary() {
		return nil
	}

	// 0.5*(avg+1) expressed on sums keeps Samples as the divisor
	offset := core.NewVec3(1, 1, 1).Multiply(float64(fb.Samples))
	pixels := make([]core.Vec3, len(fb.Normal))
	for i, n := range fb.Normal {
		pixels[i] = n.Add(offset).Multiply(0.5)
	}
	return &output.Buffer{Width: fb.Width, Height: fb.Height, Samples: fb.Samples, Pixels: pixels}
}
