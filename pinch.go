package mapview

import (
	"log/slog"
	"math"
)

// PinchState is the state of the pinch sub-recognizer.
type PinchState uint8

const (
	PinchInactive PinchState = iota
	PinchActive
)

// String returns the state name.
func (s PinchState) String() string {
	if s == PinchActive {
		return "active"
	}
	return "inactive"
}

// pinchRecognizer holds the baselines captured when a pinch starts. They
// live from pinch start to pinch end.
type pinchRecognizer struct {
	state PinchState

	startDist  float64
	startScale float64
	startAngle float64
	minScale   float64
	maxScale   float64

	scale      float64 // last computed scale
	lastAngle  float64 // last angle delta, degrees
	applied    float64 // rotation already applied to the view this pinch
	lastPoint1 Vec2
	lastPoint2 Vec2
}

func (r *Recognizer) stepPinch() {
	switch r.pinch.state {
	case PinchInactive:
		if r.canStartPinch() {
			r.startPinch()
		}
	case PinchActive:
		if len(r.points) <= 1 {
			r.endPinch()
			return
		}
		r.updatePinch()
	}
}

// canStartPinch checks the entry guard and asks listeners whether the pinch
// may begin.
func (r *Recognizer) canStartPinch() bool {
	if !r.cfg.ZoomEnabled || len(r.points) < 2 {
		return false
	}
	p1, p2 := r.points[0].Pos, r.points[1].Pos
	if !r.beyondDrag(p1, r.startPoint1) && !r.beyondDrag(p2, r.startPoint2) {
		return false
	}
	return r.listeners.fire(GestureEvent{
		Kind:       GesturePinchStarted,
		Center:     r.midpoint,
		Point1:     p1,
		Point2:     p2,
		PointCount: len(r.points),
		Scale:      r.view.Scale(),
	})
}

// beyondDrag reports whether p moved past the drag threshold from start on
// either axis.
func (r *Recognizer) beyondDrag(p, start Vec2) bool {
	return math.Abs(p.X-start.X) > r.cfg.DragThreshold ||
		math.Abs(p.Y-start.Y) > r.cfg.DragThreshold
}

func (r *Recognizer) startPinch() {
	p := &r.pinch
	p.state = PinchActive
	// Baselines are the positions where the two contacts landed.
	p.startDist = r.startPoint1.Dist(r.startPoint2)
	p.startAngle = angleDeg(r.startPoint1, r.startPoint2)
	p.startScale = r.view.Scale()
	p.lastAngle = 0
	p.applied = 0
	p.lastPoint1 = r.points[0].Pos
	p.lastPoint2 = r.points[1].Pos

	lo, hi := r.scaleBounds()
	change := math.Exp2(r.cfg.MaxPinchZoomChange)
	p.minScale = math.Max(lo, p.startScale/change)
	p.maxScale = math.Min(hi, p.startScale*change)
	if p.minScale > p.maxScale {
		p.minScale = p.maxScale
	}
	p.scale = r.pinchScale()
	r.log.Debug("pinch state", slog.String("to", p.state.String()),
		slog.Float64("distance", p.startDist), slog.Float64("scale", p.startScale))
}

func (r *Recognizer) updatePinch() {
	p := &r.pinch
	p1, p2 := r.points[0].Pos, r.points[1].Pos

	p.scale = r.pinchScale()
	p.lastAngle = wrapDegrees(p.startAngle - r.angle)
	p.lastPoint1, p.lastPoint2 = p1, p2

	r.listeners.fire(GestureEvent{
		Kind:       GesturePinchUpdated,
		Center:     r.midpoint,
		Angle:      p.lastAngle,
		Point1:     p1,
		Point2:     p2,
		PointCount: len(r.points),
		Scale:      p.scale,
	})

	pivot := r.pinchPivot()
	r.view.ScaleAt(p.scale, pivot)
	if r.cfg.RotationEnabled {
		if step := wrapDegrees(p.lastAngle - p.applied); step != 0 {
			r.view.RotateAt(step, pivot)
			p.applied = p.lastAngle
		}
	}
	r.view.RequestRedraw()
}

// pinchScale is the baseline scale times the distance ratio, clamped to the
// bounds captured at pinch start.
func (r *Recognizer) pinchScale() float64 {
	p := &r.pinch
	scale := p.startScale
	if p.startDist > 0 {
		scale = p.startScale * r.distance / p.startDist
	}
	return clamp(scale, p.minScale, p.maxScale)
}

// pinchPivot is the gesture center, or the stationary contact when exactly
// one of the two contacts did not move.
func (r *Recognizer) pinchPivot() Vec2 {
	s1 := r.points[0].Phase == TouchStationary
	s2 := r.points[1].Phase == TouchStationary
	switch {
	case s1 && !s2:
		return r.points[0].Pos
	case s2 && !s1:
		return r.points[1].Pos
	default:
		return r.midpoint
	}
}

func (r *Recognizer) endPinch() {
	p := &r.pinch
	p.state = PinchInactive
	r.log.Debug("pinch state", slog.String("to", p.state.String()))
	r.listeners.fire(GestureEvent{
		Kind:   GesturePinchFinished,
		Center: p.lastPoint1.Mid(p.lastPoint2),
		Angle:  p.lastAngle,
		Point1: p.lastPoint1,
		Point2: p.lastPoint2,
		Scale:  p.scale,
	})
	if r.pan.state == PanInactive {
		r.listeners.fire(GestureEvent{Kind: GestureMovementStopped})
	}
}

// PinchScale returns the scale computed at pinch start or by the last update.
func (r *Recognizer) PinchScale() float64 { return r.pinch.scale }

// PinchScaleBounds returns the scale range of the current or last pinch.
func (r *Recognizer) PinchScaleBounds() (lo, hi float64) {
	return r.pinch.minScale, r.pinch.maxScale
}
