package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// PathTracer implements unidirectional path tracing with one-sample MIS
// between light sampling and material sampling
type PathTracer struct {
	Background core.Vec3 // Radiance returned by rays that escape the scene
}

// NewPathTracer creates a path tracer with a constant background
func NewPathTracer(background core.Vec3) *PathTracer {
	return &PathTracer{Background: background}
}

// sceneRayT excludes hits right at the ray origin to avoid self-intersection
var sceneRayT = core.NewInterval(0.001, math.Inf(1))

// RayColor computes the radiance arriving along ray.
// lights may be nil, in which case only the material's own distribution is sampled.
func (pt *PathTracer) RayColor(ray core.Ray, depth int, world, lights geometry.Hittable, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, sceneRayT, sampler)
	if !isHit {
		return pt.Background
	}
	if hit.Material == nil {
		return core.Vec3{}
	}

	colorFromEmission := material.Emitted(ray, *hit)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return colorFromEmission
	}

	// Specular materials follow their deterministic ray
	if scatter.SkipPDF {
		return scatter.Attenuation.MultiplyVec(pt.RayColor(scatter.SkipPDFRay, depth-1, world, lights, sampler))
	}

	samplingPDF := scatter.PDF
	if lights != nil {
		lightPDF := geometry.NewHittablePDF(lights, hit.Point, sampler)
		samplingPDF = material.NewMixturePDF(lightPDF, scatter.PDF)
	}

	scattered := core.NewRayWithTime(hit.Point, samplingPDF.Generate(sampler), ray.Time)
	pdfValue := samplingPDF.Value(scattered.Direction)
	scatteringPDF := hit.Material.ScatteringPDF(ray, *hit, scattered)

	sampleColor := pt.RayColor(scattered, depth-1, world, lights, sampler)

	// A zero pdfValue yields NaN or Inf here; the output stage zeroes NaN
	colorFromScatter := scatter.Attenuation.Multiply(scatteringPDF).MultiplyVec(sampleColor).Divide(pdfValue)

	return colorFromEmission.Add(colorFromScatter)
}

// RayAlbedo returns the first-hit albedo for the auxiliary denoiser pass
func (pt *PathTracer) RayAlbedo(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, sceneRayT, sampler)
	if !isHit {
		return pt.Background
	}
	if hit.Material == nil {
		return core.Vec3{}
	}
	return material.Albedo(ray, *hit)
}

// RayNormal returns the first-hit normal for the auxiliary denoiser pass
func (pt *PathTracer) RayNormal(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, sceneRayT, sampler)
	if !isHit {
		return pt.Background
	}
	if hit.Material == nil {
		return core.Vec3{}
	}
	return material.AuxNormal(ray, *hit)
}
