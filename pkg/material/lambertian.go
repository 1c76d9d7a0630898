package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Texture ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Texture: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Texture: albedoTexture}
}

// Scatter returns the texture color and a cosine distribution around the normal
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{
		Attenuation: l.Texture.Evaluate(hit.UV(), hit.Point),
		PDF:         NewCosinePDF(hit.Normal),
	}, true
}

// ScatteringPDF returns cos(θ)/π, zero below the surface
func (l *Lambertian) ScatteringPDF(rayIn core.Ray, hit HitRecord, scattered core.Ray) float64 {
	cosine := hit.Normal.Dot(scattered.Direction.Normalize())
	if cosine < 0 {
		return 0
	}
	return cosine / math.Pi
}

// Albedo returns the texture color at the hit point
func (l *Lambertian) Albedo(rayIn core.Ray, hit HitRecord) core.Vec3 {
	return l.Texture.Evaluate(hit.UV(), hit.Point)
}

// AuxNormal returns the shading normal
func (l *Lambertian) AuxNormal(rayIn core.Ray, hit HitRecord) core.Vec3 {
	return hit.Normal
}
