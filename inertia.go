package mapview

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// inertia animates a screen position from one point to another, easing out
// toward zero velocity. The tween runs over the normalized progress [0, 1] so
// positions keep float64 precision.
type inertia struct {
	from, to Vec2
	duration time.Duration
	tween    *gween.Tween
	progress float64
}

func newInertia(from, to Vec2, duration time.Duration) *inertia {
	return &inertia{
		from:     from,
		to:       to,
		duration: duration,
		tween:    gween.New(0, 1, float32(duration.Seconds()), ease.OutQuad),
	}
}

// advance moves the animation forward by dt and reports whether it finished.
func (a *inertia) advance(dt time.Duration) bool {
	p, done := a.tween.Update(float32(dt.Seconds()))
	if done {
		p = 1
	}
	a.progress = float64(p)
	return done
}

// position returns the interpolated position at the current progress.
func (a *inertia) position() Vec2 {
	return a.from.Add(a.to.Sub(a.from).Mul(a.progress))
}
