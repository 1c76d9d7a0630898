package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// HittablePDF samples directions from an origin toward a light-capable hittable
type HittablePDF struct {
	objects Hittable
	origin  core.Vec3
	sampler core.Sampler
}

// NewHittablePDF creates a distribution toward objects as seen from origin.
// The sampler drives any stochastic intersection performed while evaluating densities.
func NewHittablePDF(objects Hittable, origin core.Vec3, sampler core.Sampler) *HittablePDF {
	return &HittablePDF{objects: objects, origin: origin, sampler: sampler}
}

// Value returns the objects' solid-angle density for direction
func (p *HittablePDF) Value(direction core.Vec3) float64 {
	return PDFValue(p.objects, p.origin, direction, p.sampler)
}

// Generate returns a direction toward the objects
func (p *HittablePDF) Generate(sampler core.Sampler) core.Vec3 {
	return RandomDirection(p.objects, p.origin, sampler)
}
