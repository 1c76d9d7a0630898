package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate offsets a wrapped object by a fixed vector
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so it appears moved by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// Hit moves the ray into object space, intersects, and moves the hit point back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	offsetRay := core.NewRayWithTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, ok := t.Object.Hit(offsetRay, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox returns the translated bounding box
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

// PDFValue forwards to the wrapped object with the origin in object space
func (t *Translate) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	return PDFValue(t.Object, origin.Subtract(t.Offset), direction, sampler)
}

// Random forwards to the wrapped object with the origin in object space
func (t *Translate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return RandomDirection(t.Object, origin.Subtract(t.Offset), sampler)
}

// RotateY rotates a wrapped object about the Y axis
type RotateY struct {
	Object   Hittable
	toWorld  mgl64.Mat3
	toObject mgl64.Mat3
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees about the Y axis
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := core.DegreesToRadians(angle)
	r := &RotateY{
		Object:   object,
		toWorld:  mgl64.Rotate3DY(radians),
		toObject: mgl64.Rotate3DY(-radians),
	}

	// Bound the eight rotated corners of the object's box
	box := object.BoundingBox()
	lo := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				x := float64(i)*box.X.Max + float64(1-i)*box.X.Min
				y := float64(j)*box.Y.Max + float64(1-j)*box.Y.Min
				z := float64(k)*box.Z.Max + float64(1-k)*box.Z.Min

				corner := r.rotate(r.toWorld, core.NewVec3(x, y, z))
				for c := 0; c < 3; c++ {
					lo = lo.WithAxis(c, math.Min(lo.Axis(c), corner.Axis(c)))
					hi = hi.WithAxis(c, math.Max(hi.Axis(c), corner.Axis(c)))
				}
			}
		}
	}

	r.bbox = core.NewAABBFromPoints(lo, hi)
	return r
}

func (r *RotateY) rotate(m mgl64.Mat3, v core.Vec3) core.Vec3 {
	out := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return core.NewVec3(out[0], out[1], out[2])
}

// Hit rotates the ray into object space, intersects, and rotates the hit back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	rotated := core.NewRayWithTime(
		r.rotate(r.toObject, ray.Origin),
		r.rotate(r.toObject, ray.Direction),
		ray.Time,
	)

	hit, ok := r.Object.Hit(rotated, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = r.rotate(r.toWorld, hit.Point)
	hit.Normal = r.rotate(r.toWorld, hit.Normal)
	return hit, true
}

// BoundingBox returns the box around the rotated object
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}

// PDFValue forwards to the wrapped object in object space
func (r *RotateY) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	return PDFValue(r.Object, r.rotate(r.toObject, origin), r.rotate(r.toObject, direction), sampler)
}

// Random samples in object space and rotates the direction back to world space
func (r *RotateY) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return r.rotate(r.toWorld, RandomDirection(r.Object, r.rotate(r.toObject, origin), sampler))
}
