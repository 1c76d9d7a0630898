package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	RowsCompleted   int           // Scanlines fully rendered
	SamplesPerPixel int           // Samples actually taken per pixel
	TotalSamples    int64         // Camera rays traced
	Workers         int           // Maximum concurrent row jobs
	Duration        time.Duration // Wall-clock render time
}

// TotalPixels returns the number of pixels in completed rows
func (s RenderStats) TotalPixels() int {
	return s.RowsCompleted * s.Width
}

// SamplesPerSecond returns camera-ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// String summarises the render for logs
func (s RenderStats) String() string {
	return fmt.Sprintf("%dx%d, %d/%d rows, %d spp, %d samples in %v (%.0f samples/s, %d workers)",
		s.Width, s.Height, s.RowsCompleted, s.Height, s.SamplesPerPixel,
		s.TotalSamples, s.Duration.Round(time.Millisecond), s.SamplesPerSecond(), s.Workers)
}
