package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter either absorbs the ray (false) or describes how it continues
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterRecord, bool)

	// ScatteringPDF returns the material's own density for the scattered direction
	ScatteringPDF(rayIn core.Ray, hit HitRecord, scattered core.Ray) float64
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emitted(rayIn core.Ray, hit HitRecord) core.Vec3
}

// AuxProvider is implemented by materials that report their own albedo or
// normal for the auxiliary render passes used by denoisers
type AuxProvider interface {
	Albedo(rayIn core.Ray, hit HitRecord) core.Vec3
	AuxNormal(rayIn core.Ray, hit HitRecord) core.Vec3
}

// ScatterRecord contains the result of material scattering.
// When SkipPDF is set the integrator follows SkipPDFRay with Attenuation only.
type ScatterRecord struct {
	Attenuation core.Vec3 // Color attenuation
	PDF         PDF       // Direction distribution, nil when SkipPDF is set
	SkipPDF     bool      // Deterministic (specular) scattering
	SkipPDFRay  core.Ray  // The ray to follow when SkipPDF is set
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, always against the ray
	Material  Material  // Material of the hit object
	T         float64   // Parameter t along the ray
	U, V      float64   // Surface coordinates for texture lookup
	FrontFace bool      // Whether ray hit the front face
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal is assumed to have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// UV returns the surface coordinates as a Vec2
func (h *HitRecord) UV() core.Vec2 {
	return core.NewVec2(h.U, h.V)
}

// Emitted returns the light emitted by the hit material, black for non-emitters
func Emitted(rayIn core.Ray, hit HitRecord) core.Vec3 {
	if emitter, ok := hit.Material.(Emitter); ok {
		return emitter.Emitted(rayIn, hit)
	}
	return core.Vec3{}
}

// Albedo returns the auxiliary albedo of the hit material, white by default
func Albedo(rayIn core.Ray, hit HitRecord) core.Vec3 {
	if aux, ok := hit.Material.(AuxProvider); ok {
		return aux.Albedo(rayIn, hit)
	}
	return core.NewVec3(1, 1, 1)
}

// AuxNormal returns the auxiliary normal of the hit material, the hit normal by default
func AuxNormal(rayIn core.Ray, hit HitRecord) core.Vec3 {
	if aux, ok := hit.Material.(AuxProvider); ok {
		return aux.AuxNormal(rayIn, hit)
	}
	return hit.Normal
}
