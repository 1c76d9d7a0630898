package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all the parameters needed to set up a camera
type CameraConfig struct {
	Center          core.Vec3 // Camera position (look from)
	LookAt          core.Vec3 // Point the camera is looking at
	Up              core.Vec3 // Up direction (usually (0,1,0))
	Width           int       // Image width in pixels
	AspectRatio     float64   // Width / height ratio
	VFov            float64   // Vertical field of view in degrees
	DefocusAngle    float64   // Variation angle of rays through each pixel, in degrees
	FocusDistance   float64   // Distance from the camera to the plane of perfect focus
	SamplesPerPixel int       // Random samples per pixel, rounded down to a square grid
	MaxDepth        int       // Maximum number of ray bounces
	Background      core.Vec3 // Radiance for rays that escape the scene
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:          core.NewVec3(0, 0, -1),
		LookAt:          core.NewVec3(0, 0, 0),
		Up:              core.NewVec3(0, 1, 0),
		Width:           100,
		AspectRatio:     1.0,
		VFov:            90,
		DefocusAngle:    0,
		FocusDistance:   10,
		SamplesPerPixel: 10,
		MaxDepth:        10,
	}
}

// Camera generates primary rays for a pinhole or thin-lens camera
type Camera struct {
	config       CameraConfig
	imageHeight  int
	sqrtSpp      int
	recipSqrtSpp float64
	pixel00      core.Vec3 // Location of pixel (0, 0)
	pixelDeltaU  core.Vec3 // Offset to the pixel to the right
	pixelDeltaV  core.Vec3 // Offset to the pixel below
	w            core.Vec3 // Camera backward axis
	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera creates a camera with the given configuration
func NewCamera(config CameraConfig) *Camera {
	imageHeight := int(float64(config.Width) / config.AspectRatio)
	if imageHeight < 1 {
		imageHeight = 1
	}

	sqrtSpp := int(math.Sqrt(float64(config.SamplesPerPixel)))
	if sqrtSpp < 1 {
		sqrtSpp = 1
	}

	// Viewport dimensions at the focus plane
	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * (float64(config.Width) / float64(imageHeight))

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(config.Width))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := config.Center.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:       config,
		imageHeight:  imageHeight,
		sqrtSpp:      sqrtSpp,
		recipSqrtSpp: 1.0 / float64(sqrtSpp),
		pixel00:      pixel00,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		w:            w,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.config.Width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.imageHeight }

// SqrtSPP returns the side of the stratified sample grid
func (c *Camera) SqrtSPP() int { return c.sqrtSpp }

// SamplesPerPixel returns the number of samples actually taken per pixel
func (c *Camera) SamplesPerPixel() int { return c.sqrtSpp * c.sqrtSpp }

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 { return c.w.Negate() }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// GetRay generates a ray for pixel (i, j) in stratum (si, sj).
// Pixel (0, 0) is the top-left corner of the image.
func (c *Camera) GetRay(i, j, si, sj int, sampler core.Sampler) core.Ray {
	pixelCenter := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
	pixelSample := pixelCenter.Add(c.sampleSquare(si, sj, sampler.Get2D()))

	origin := c.config.Center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler.Get2D())
	}

	return core.NewRayWithTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

// sampleSquare returns a jittered offset inside stratum (si, sj) of the pixel square
func (c *Camera) sampleSquare(si, sj int, sample core.Vec2) core.Vec3 {
	px := -0.5 + c.recipSqrtSpp*(float64(si)+sample.X)
	py := -0.5 + c.recipSqrtSpp*(float64(sj)+sample.Y)
	return c.pixelDeltaU.Multiply(px).Add(c.pixelDeltaV.Multiply(py))
}

// defocusDiskSample returns a random point on the lens
func (c *Camera) defocusDiskSample(sample core.Vec2) core.Vec3 {
	p := core.SamplePointInUnitDisk(sample)
	return c.config.Center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}
