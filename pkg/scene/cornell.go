package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewCornellScene creates the Cornell box with a tall rotated box and a glass
// sphere. Both the ceiling light and the sphere are sampled as lights.
func NewCornellScene() *Scene {
	world := geometry.NewHittableList()
	cornellWalls(world)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))
	glass := material.NewDielectric(1.5)

	ceilingLight := geometry.NewQuad(core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105), light)
	world.Add(ceilingLight)

	var box1 geometry.Hittable = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	box1 = geometry.NewRotateY(box1, 15)
	box1 = geometry.NewTranslate(box1, core.NewVec3(265, 0, 295))
	world.Add(box1)

	glassSphere := geometry.NewSphere(core.NewVec3(190, 90, 190), 90, glass)
	world.Add(glassSphere)

	lights := geometry.NewHittableList(ceilingLight, glassSphere)

	return newScene("cornell", world, lights, cornellCamera())
}

// NewCornellSmokeScene creates the Cornell box with two boxes of participating media
func NewCornellSmokeScene() *Scene {
	world := geometry.NewHittableList()
	cornellWalls(world)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))

	ceilingLight := geometry.NewQuad(core.NewVec3(113, 554, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305), light)
	world.Add(ceilingLight)

	var box1 geometry.Hittable = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	box1 = geometry.NewRotateY(box1, 15)
	box1 = geometry.NewTranslate(box1, core.NewVec3(265, 0, 295))

	var box2 geometry.Hittable = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	box2 = geometry.NewRotateY(box2, -18)
	box2 = geometry.NewTranslate(box2, core.NewVec3(130, 0, 65))

	world.Add(geometry.NewConstantMediumColor(box1, 0.01, core.NewVec3(0, 0, 0)))
	world.Add(geometry.NewConstantMediumColor(box2, 0.01, core.NewVec3(1, 1, 1)))

	camera := cornellCamera()
	camera.SamplesPerPixel = 200

	return newScene("cornell-smoke", world, ceilingLight, camera)
}
