package mapview

import "math"

// affine maps a point p to x*p.X + y*p.Y + origin. x and y are the images of
// the unit axes.
type affine struct {
	x, y, origin Vec2
}

// viewTransform builds the world-to-screen mapping of a view centered on
// center, scaled by zoom and rotated by -rot radians, whose center lands on
// the screen point pin.
func viewTransform(center Vec2, zoom, rot float64, pin Vec2) affine {
	sin, cos := math.Sincos(-rot)
	m := affine{
		x: Vec2{cos, sin}.Mul(zoom),
		y: Vec2{-sin, cos}.Mul(zoom),
	}
	m.origin = pin.Sub(m.linear(center))
	return m
}

func (m affine) linear(p Vec2) Vec2 {
	return m.x.Mul(p.X).Add(m.y.Mul(p.Y))
}

func (m affine) apply(p Vec2) Vec2 {
	return m.linear(p).Add(m.origin)
}

// inverse returns the reverse mapping. A degenerate m has no inverse and
// maps to the identity.
func (m affine) inverse() affine {
	det := m.x.X*m.y.Y - m.y.X*m.x.Y
	if math.Abs(det) < 1e-12 {
		return affine{x: Vec2{1, 0}, y: Vec2{0, 1}}
	}
	inv := affine{
		x: Vec2{m.y.Y, -m.x.Y}.Mul(1 / det),
		y: Vec2{-m.y.X, m.x.X}.Mul(1 / det),
	}
	inv.origin = inv.linear(m.origin).Mul(-1)
	return inv
}
