package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// randomRange returns a uniform value in [lo, hi)
func randomRange(sampler core.Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// randomColor returns a vector with components uniform in [lo, hi)
func randomColor(sampler core.Sampler, lo, hi float64) core.Vec3 {
	c := sampler.Get3D()
	return core.NewVec3(
		lo+(hi-lo)*c.X,
		lo+(hi-lo)*c.Y,
		lo+(hi-lo)*c.Z,
	)
}

// NewBouncingSpheresScene creates the random sphere field on a checkered
// ground. Small diffuse spheres move upward during the shutter interval.
func NewBouncingSpheresScene(sampler core.Sampler) *Scene {
	world := geometry.NewHittableList()

	checker := material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// diffuse
				albedo := randomColor(sampler, 0, 1).MultiplyVec(randomColor(sampler, 0, 1))
				center2 := center.Add(core.NewVec3(0, randomRange(sampler, 0, 0.5), 0))
				world.Add(geometry.NewMovingSphere(center, center2, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				// metal
				albedo := randomColor(sampler, 0.5, 1)
				fuzz := randomRange(sampler, 0, 0.5)
				world.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				// glass
				world.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	camera := outdoorCamera(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20)
	camera.DefocusAngle = 0.6
	camera.FocusDistance = 10

	return newScene("spheres", world, nil, camera)
}

// NewCheckeredSpheresScene creates two large spheres sharing a checker texture
func NewCheckeredSpheresScene() *Scene {
	checker := material.NewTexturedLambertian(
		material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	return newScene("checkered-spheres", world, nil, outdoorCamera(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20))
}

// NewPerlinSpheresScene creates a marble ground and sphere from Perlin turbulence
func NewPerlinSpheresScene(sampler core.Sampler) *Scene {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, sampler))

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)

	return newScene("perlin", world, nil, outdoorCamera(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20))
}

// earthTexture loads the earth map, falling back to the magenta placeholder
func earthTexture(logger core.Logger) material.ColorSource {
	img, err := loaders.LoadImage("earthmap.jpg")
	if err != nil {
		logger.Printf("Warning: %v; using placeholder texture\n", err)
		return material.NewImageTexture(&loaders.Image{})
	}
	return material.NewImageTexture(img)
}

// NewEarthScene creates a globe wrapped in an equirectangular image texture
func NewEarthScene(logger core.Logger) *Scene {
	globe := geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earthTexture(logger)))
	world := geometry.NewHittableList(globe)

	return newScene("earth", world, nil, outdoorCamera(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, 0), 20))
}

// NewQuadsScene creates five colored quads facing the camera from all sides
func NewQuadsScene() *Scene {
	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	world := geometry.NewHittableList(
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	)

	camera := outdoorCamera(core.NewVec3(0, 0, 9), core.NewVec3(0, 0, 0), 80)
	camera.AspectRatio = 1.0

	return newScene("quads", world, nil, camera)
}

// NewSimpleLightScene creates marble spheres lit by an emissive quad and sphere
func NewSimpleLightScene(sampler core.Sampler) *Scene {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, sampler))
	diffLight := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	lightQuad := geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), diffLight)
	lightSphere := geometry.NewSphere(core.NewVec3(0, 7, 0), 2, diffLight)

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		lightQuad,
		lightSphere,
	)

	camera := outdoorCamera(core.NewVec3(26, 3, 6), core.NewVec3(0, 2, 0), 20)
	camera.Background = core.NewVec3(0, 0, 0)

	return newScene("simple-light", world, geometry.NewHittableList(lightQuad, lightSphere), camera)
}
