package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name    string
	World   geometry.Hittable     // Geometry tested by every ray
	Lights  geometry.Hittable     // Importance-sampled emitters; nil for none
	Camera  renderer.CameraConfig // Camera and sampling defaults
	Objects int                   // Top-level primitives before BVH construction
}

// BVHStats reports the acceleration structure of the world, if it has one
func (s *Scene) BVHStats() (geometry.BVHStats, bool) {
	bvh, ok := s.World.(*geometry.BVHNode)
	if !ok {
		return geometry.BVHStats{}, false
	}
	return bvh.Stats(), true
}

// newScene wraps the world list in a BVH
func newScene(name string, world *geometry.HittableList, lights geometry.Hittable, camera renderer.CameraConfig) *Scene {
	return &Scene{
		Name:    name,
		World:   geometry.NewBVHFromList(world),
		Lights:  lights,
		Camera:  camera,
		Objects: len(world.Objects),
	}
}

// cornellWalls adds the five walls of the 555-unit Cornell box
func cornellWalls(world *geometry.HittableList) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	world.Add(geometry.NewQuad(core.NewVec3(555, 0, 0), core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), green))
	world.Add(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), red))
	world.Add(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(555, 0, 0), core.NewVec3(0, 0, 555), white))
	world.Add(geometry.NewQuad(core.NewVec3(555, 555, 555), core.NewVec3(-555, 0, 0), core.NewVec3(0, 0, -555), white))
	world.Add(geometry.NewQuad(core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 0), core.NewVec3(0, 555, 0), white))
}

// cornellCamera returns the camera looking into the Cornell box
func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:          core.NewVec3(278, 278, -800),
		LookAt:          core.NewVec3(278, 278, 0),
		Up:              core.NewVec3(0, 1, 0),
		Width:           400,
		AspectRatio:     1.0,
		VFov:            40,
		DefocusAngle:    0,
		FocusDistance:   10,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Background:      core.NewVec3(0, 0, 0),
	}
}

// outdoorCamera returns the 16:9 camera used by the sphere scenes
func outdoorCamera(lookFrom, lookAt core.Vec3, vfov float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:          lookFrom,
		LookAt:          lookAt,
		Up:              core.NewVec3(0, 1, 0),
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		VFov:            vfov,
		DefocusAngle:    0,
		FocusDistance:   10,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Background:      core.NewVec3(0.70, 0.80, 1.00),
	}
}
