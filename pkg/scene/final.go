package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewFinalScene creates the showcase scene: a field of boxes, moving, glass,
// metal and textured spheres, a sub-surface sphere, global mist and a
// rotated cluster of small spheres, each group under its own BVH.
func NewFinalScene(sampler core.Sampler, logger core.Logger) *Scene {
	boxes := geometry.NewHittableList()
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))

	const boxesPerSide = 20
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := randomRange(sampler, 1, 101)
			boxes.Add(geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}

	world := geometry.NewHittableList()
	world.Add(geometry.NewBVHFromList(boxes))

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	ceilingLight := geometry.NewQuad(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), light)
	world.Add(ceilingLight)

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	world.Add(geometry.NewMovingSphere(center1, center2, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	world.Add(geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)))

	// Glass shell filled with blue haze
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	world.Add(boundary)
	world.Add(geometry.NewConstantMediumColor(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin mist over the whole scene
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	world.Add(geometry.NewConstantMediumColor(mist, 0.0001, core.NewVec3(1, 1, 1)))

	world.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earthTexture(logger))))
	world.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(material.NewNoiseTexture(0.2, sampler))))

	cluster := geometry.NewHittableList()
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	const clusterSize = 1000
	for j := 0; j < clusterSize; j++ {
		cluster.Add(geometry.NewSphere(randomColor(sampler, 0, 165), 10, white))
	}

	var clusterNode geometry.Hittable = geometry.NewBVHFromList(cluster)
	clusterNode = geometry.NewRotateY(clusterNode, 15)
	clusterNode = geometry.NewTranslate(clusterNode, core.NewVec3(-100, 270, 395))
	world.Add(clusterNode)

	camera := cornellCamera()
	camera.Center = core.NewVec3(478, 278, -600)
	camera.SamplesPerPixel = 250
	camera.MaxDepth = 4

	return newScene("final", world, ceilingLight, camera)
}
