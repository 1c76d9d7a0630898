package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Isotropic scatters uniformly in every direction; used inside participating media
type Isotropic struct {
	Texture ColorSource
}

// NewIsotropic creates an isotropic phase function with a solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Texture: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic phase function with a texture
func NewTexturedIsotropic(texture ColorSource) *Isotropic {
	return &Isotropic{Texture: texture}
}

// Scatter returns the texture color and the uniform sphere distribution
func (i *Isotropic) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{
		Attenuation: i.Texture.Evaluate(hit.UV(), hit.Point),
		PDF:         SpherePDF{},
	}, true
}

// ScatteringPDF returns 1/(4π)
func (i *Isotropic) ScatteringPDF(rayIn core.Ray, hit HitRecord, scattered core.Ray) float64 {
	return 1.0 / (4.0 * math.Pi)
}

// Albedo returns the texture color
func (i *Isotropic) Albedo(rayIn core.Ray, hit HitRecord) core.Vec3 {
	return i.Texture.Evaluate(hit.UV(), hit.Point)
}

// AuxNormal returns the synthesized medium normal
func (i *Isotropic) AuxNormal(rayIn core.Ray, hit HitRecord) core.Vec3 {
	return hit.Normal
}
