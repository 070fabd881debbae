package core

import "math"

// ONB is an orthonormal basis with W as its "up" axis
type ONB struct {
	U, V, W Vec3
}

// NewONB builds a basis whose W axis points along w
func NewONB(w Vec3) ONB {
	w = w.Normalize()
	a := NewVec3(1, 0, 0)
	if math.Abs(w.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	}
	v := w.Cross(a).Normalize()
	u := w.Cross(v)
	return ONB{U: u, V: v, W: w}
}

// Local converts local coordinates (a along U, b along V, c along W) to world space
func (o ONB) Local(a Vec3) Vec3 {
	return o.U.Multiply(a.X).Add(o.V.Multiply(a.Y)).Add(o.W.Multiply(a.Z))
}
