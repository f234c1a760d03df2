package mapview

import (
	"log/slog"
	"math"
	"time"
)

// PanState is the state of the pan/flick sub-recognizer.
type PanState uint8

const (
	PanInactive PanState = iota
	PanActive
	PanFlick
)

// String returns the state name.
func (s PanState) String() string {
	switch s {
	case PanInactive:
		return "inactive"
	case PanActive:
		return "active"
	case PanFlick:
		return "flick"
	default:
		return "unknown"
	}
}

// TapState tracks whether the current gesture may still resolve to a tap.
type TapState uint8

const (
	TapNone    TapState = iota // no gesture yet
	TapDown                    // one contact down, not moved past the drag threshold
	TapCleared                 // panning, pinching or a second contact ruled a tap out
	TapUp                      // the contact lifted while still a tap candidate
)

type panRecognizer struct {
	state PanState
	tap   TapState
	flick *inertia
	task  TaskHandle
}

func (r *Recognizer) stepPan() {
	switch r.pan.state {
	case PanInactive:
		if r.canStartPan() {
			r.startPan()
		}
	case PanActive:
		if len(r.points) == 0 {
			r.releasePan()
			return
		}
		r.updatePan()
	case PanFlick:
		if len(r.points) > 0 {
			// Touched again before the flick ended: keep panning from here.
			r.cancelFlick()
			r.startPan()
		}
	}
}

func (r *Recognizer) canStartPan() bool {
	if !r.cfg.PanEnabled || len(r.points) == 0 {
		return false
	}
	return r.beyondDrag(r.points[0].Pos, r.startPoint1)
}

// startPan enters PanActive, anchoring the world point under the current
// midpoint so crossing the drag threshold does not jump the view.
func (r *Recognizer) startPan() {
	r.startWorld = r.view.ScreenToWorld(r.midpoint)
	r.touchCenterWorld = r.startWorld
	r.pan.tap = TapCleared
	r.setPanState(PanActive)
	r.listeners.fire(GestureEvent{Kind: GesturePanStarted, Center: r.midpoint})
}

func (r *Recognizer) updatePan() {
	r.view.PlaceWorldAt(r.startWorld, r.midpoint)
	r.view.RequestRedraw()
}

// releasePan ends an active pan when the last contact lifts, handing over to
// a flick when the release velocity qualifies.
func (r *Recognizer) releasePan() {
	if r.tryStartFlick() {
		r.setPanState(PanFlick)
		r.listeners.fire(GestureEvent{Kind: GesturePanFinished, Center: r.midpoint})
		r.listeners.fire(GestureEvent{Kind: GestureFlickStarted, Center: r.midpoint})
		return
	}
	r.setPanState(PanInactive)
	r.listeners.fire(GestureEvent{Kind: GesturePanFinished, Center: r.midpoint})
	if r.pinch.state == PinchInactive {
		r.listeners.fire(GestureEvent{Kind: GestureMovementStopped})
	}
}

// tryStartFlick schedules the inertial animation. It reports false when
// flicking is disabled or neither axis qualifies.
func (r *Recognizer) tryStartFlick() bool {
	if !r.cfg.FlickEnabled || r.sched == nil {
		return false
	}
	vel := r.velocity.release(r.now)
	duration, dist := computeFlick(vel, r.midpoint.Sub(r.startMid), r.cfg)
	if duration <= 0 {
		return false
	}
	r.log.Debug("flick", slog.Duration("duration", duration),
		slog.Float64("dx", dist.X), slog.Float64("dy", dist.Y))

	r.pan.flick = newInertia(r.midpoint, r.midpoint.Add(dist), duration)
	r.pan.task = r.sched.Schedule(FrameTask{
		Update: r.advanceFlick,
		Done:   r.flickDone,
	})
	return true
}

// computeFlick derives the flick duration and distance from the release
// velocity and the net displacement of the gesture. Each axis qualifies on
// its own; the longer axis duration wins.
func computeFlick(vel, disp Vec2, cfg Config) (time.Duration, Vec2) {
	tx, dx := flickAxis(vel.X, disp.X, cfg)
	ty, dy := flickAxis(vel.Y, disp.Y, cfg)
	ms := math.Max(tx, ty)
	return time.Duration(ms * float64(time.Millisecond)), Vec2{dx, dy}
}

// flickAxis returns the flick time in milliseconds and distance in pixels
// for one axis, or zeros when the axis does not qualify.
func flickAxis(v, disp float64, cfg Config) (ms, dist float64) {
	if math.Abs(v) <= cfg.MinFlickVelocity || math.Abs(disp) <= cfg.FlickThreshold {
		return 0, 0
	}
	decel := math.Abs(cfg.Deceleration)
	if v > 0 {
		decel = -decel
	}
	ms = -1000 * v / decel
	dist = ms * v / 2000
	return ms, dist
}

func (r *Recognizer) advanceFlick(dt time.Duration) bool {
	done := r.pan.flick.advance(dt)
	r.view.PlaceWorldAt(r.startWorld, r.pan.flick.position())
	r.view.RequestRedraw()
	return done
}

func (r *Recognizer) flickDone() {
	r.pan.flick = nil
	r.pan.task = nil
	r.setPanState(PanInactive)
	r.listeners.fire(GestureEvent{Kind: GestureFlickFinished})
	r.listeners.fire(GestureEvent{Kind: GestureMovementStopped})
}

// cancelFlick stops the flick animation synchronously.
func (r *Recognizer) cancelFlick() {
	if r.pan.task != nil {
		r.pan.task.Cancel()
	}
	r.pan.flick = nil
	r.pan.task = nil
	r.listeners.fire(GestureEvent{Kind: GestureFlickFinished})
}

// Stop ends any pan or flick immediately and zeroes the cached velocity.
func (r *Recognizer) Stop() {
	switch r.pan.state {
	case PanFlick:
		r.cancelFlick()
		r.setPanState(PanInactive)
		r.listeners.fire(GestureEvent{Kind: GestureMovementStopped})
	case PanActive:
		r.setPanState(PanInactive)
		r.listeners.fire(GestureEvent{Kind: GesturePanFinished, Center: r.midpoint})
		r.listeners.fire(GestureEvent{Kind: GestureMovementStopped})
	}
	r.velocity.vel = Vec2{}
}

func (r *Recognizer) setPanState(s PanState) {
	if r.pan.state == s {
		return
	}
	r.log.Debug("pan state", slog.String("from", r.pan.state.String()), slog.String("to", s.String()))
	r.pan.state = s
}

// trackTap updates the tap sub-state on contact-count transitions.
func (r *Recognizer) trackTap(from, to ContactState) {
	switch {
	case from == ContactsZero && to == ContactsOne:
		if r.pan.state == PanFlick {
			r.pan.tap = TapCleared
		} else {
			r.pan.tap = TapDown
		}
	case to == ContactsTwo:
		r.pan.tap = TapCleared
	case to == ContactsZero && r.pan.tap == TapDown:
		r.pan.tap = TapUp
		r.listeners.fire(GestureEvent{Kind: GestureTapped, Center: r.midpoint, PointCount: 1})
	}
}
