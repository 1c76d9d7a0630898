package core

import "math"

// ONB is an orthonormal basis with W as the primary axis
type ONB struct {
	U, V, W Vec3
}

// NewONB builds a right-handed basis around w, which need not be normalized
func NewONB(w Vec3) ONB {
	unitW := w.Normalize()

	a := NewVec3(1, 0, 0)
	if math.Abs(unitW.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	}

	v := unitW.Cross(a).Normalize()
	u := unitW.Cross(v)
	return ONB{U: u, V: v, W: unitW}
}

// Local transforms local coordinates a into world space: a.X*U + a.Y*V + a.Z*W
func (o ONB) Local(a Vec3) Vec3 {
	return o.U.Multiply(a.X).Add(o.V.Multiply(a.Y)).Add(o.W.Multiply(a.Z))
}
