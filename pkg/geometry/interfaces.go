package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays.
// The sampler feeds objects with stochastic intersections such as participating media.
type Hittable interface {
	Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}

// LightSource is implemented by hittables that can be importance sampled
// as explicit lights
type LightSource interface {
	// PDFValue returns the solid-angle density of sampling direction from origin
	PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64
	// Random returns a direction from origin toward the object
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// PDFValue returns h's light density, zero if h cannot act as a light
func PDFValue(h Hittable, origin, direction core.Vec3, sampler core.Sampler) float64 {
	if light, ok := h.(LightSource); ok {
		return light.PDFValue(origin, direction, sampler)
	}
	return 0
}

// RandomDirection samples a direction toward h, or an arbitrary fixed direction
// if h cannot act as a light
func RandomDirection(h Hittable, origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if light, ok := h.(LightSource); ok {
		return light.Random(origin, sampler)
	}
	return core.NewVec3(1, 0, 0)
}
