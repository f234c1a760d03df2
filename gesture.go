package mapview

import (
	"log/slog"
	"math"
	"time"
)

// ContactState is the contact-count state of the recognizer.
type ContactState uint8

const (
	ContactsZero ContactState = iota
	ContactsOne
	ContactsTwo
)

// String returns the state name.
func (s ContactState) String() string {
	switch s {
	case ContactsZero:
		return "zero"
	case ContactsOne:
		return "one"
	case ContactsTwo:
		return "two"
	default:
		return "unknown"
	}
}

// Recognizer turns a stream of TouchSamples into pan, flick and pinch
// gestures and drives a View accordingly. Three state machines are composed:
// contact count, pinch and pan/flick. On every sample the contact-count
// machine runs first; then the pinch and pan machines each either take a
// transition or run their update step, never both.
//
// A Recognizer is not safe for concurrent use. All calls, including the
// Scheduler ticks that advance a flick, must come from one goroutine.
type Recognizer struct {
	view      View
	sched     Scheduler
	cfg       Config
	log       *slog.Logger
	listeners gestureRegistry

	contacts ContactState
	points   ContactSet
	now      time.Duration

	startPoint1 Vec2 // first contact at state entry
	startPoint2 Vec2 // second contact at state entry
	startMid    Vec2 // midpoint at state entry
	midpoint    Vec2 // current midpoint, screen space
	distance    float64
	angle       float64 // degrees

	startWorld       Vec2 // world point kept under the midpoint while panning
	touchCenterWorld Vec2 // world point under the midpoint at the last re-anchor

	velocity velocitySampler
	pinch    pinchRecognizer
	pan      panRecognizer
}

// NewRecognizer creates a Recognizer driving view. Flick animations are run
// on sched. Unset numeric fields of cfg take their defaults.
func NewRecognizer(view View, sched Scheduler, cfg Config) *Recognizer {
	cfg = cfg.normalized()
	return &Recognizer{
		view:  view,
		sched: sched,
		cfg:   cfg,
		log:   componentLogger(cfg.logger(), "gesture"),
		velocity: velocitySampler{
			period: cfg.VelocitySamplePeriod,
			max:    cfg.MaxVelocity,
		},
	}
}

// OnGesture registers a listener for gesture lifecycle notifications.
func (r *Recognizer) OnGesture(fn func(*GestureEvent)) CallbackHandle {
	return r.listeners.add(fn)
}

// Config returns the effective configuration.
func (r *Recognizer) Config() Config { return r.cfg }

// ContactState returns the contact-count state.
func (r *Recognizer) ContactState() ContactState { return r.contacts }

// PinchState returns the pinch sub-recognizer state.
func (r *Recognizer) PinchState() PinchState { return r.pinch.state }

// PanState returns the pan/flick sub-recognizer state.
func (r *Recognizer) PanState() PanState { return r.pan.state }

// TapState returns whether the current gesture could still be a tap.
func (r *Recognizer) TapState() TapState { return r.pan.tap }

// Velocity returns the last sampled midpoint velocity in px/s.
func (r *Recognizer) Velocity() Vec2 { return r.velocity.vel }

// Midpoint returns the tracked screen midpoint of the contacts.
func (r *Recognizer) Midpoint() Vec2 { return r.midpoint }

// StartWorld returns the world coordinate anchored under the midpoint.
func (r *Recognizer) StartWorld() Vec2 { return r.startWorld }

// TouchCenterWorld returns the world coordinate that was under the previous
// midpoint when the contact count last changed between one and two, or when
// panning began.
func (r *Recognizer) TouchCenterWorld() Vec2 { return r.touchCenterWorld }

// Active reports whether any gesture is in progress.
func (r *Recognizer) Active() bool {
	return r.pan.state != PanInactive || r.pinch.state != PinchInactive
}

// HandleTouches feeds one input event. It reports false when no View is
// bound and the event was ignored.
func (r *Recognizer) HandleTouches(sample TouchSample) bool {
	if r.view == nil {
		return false
	}
	r.now = sample.Time
	r.points = sample.Contacts.active(r.points)

	r.stepContacts()
	r.stepPinch()
	r.stepPan()
	return true
}

// stepContacts runs the contact-count transition check, then the update
// step of the resulting state.
func (r *Recognizer) stepContacts() {
	n := len(r.points)
	from := r.contacts

	switch r.contacts {
	case ContactsZero:
		if n == 1 {
			r.startOne()
			r.contacts = ContactsOne
		} else if n >= 2 {
			r.startTwo()
			r.contacts = ContactsTwo
		}
	case ContactsOne:
		if n == 0 {
			r.contacts = ContactsZero
		} else if n >= 2 {
			r.touchCenterWorld = r.view.ScreenToWorld(r.midpoint)
			r.startTwo()
			r.contacts = ContactsTwo
		}
	case ContactsTwo:
		if n == 0 {
			r.contacts = ContactsZero
		} else if n == 1 {
			r.touchCenterWorld = r.view.ScreenToWorld(r.midpoint)
			r.startOne()
			r.contacts = ContactsOne
		}
	}

	if from != r.contacts {
		r.log.Debug("contact state", slog.String("from", from.String()),
			slog.String("to", r.contacts.String()), slog.Int("count", n))
		r.trackTap(from, r.contacts)
	}

	switch r.contacts {
	case ContactsOne:
		r.midpoint = r.points[0].Pos
		r.velocity.sample(r.midpoint, r.now)
	case ContactsTwo:
		p1, p2 := r.points[0].Pos, r.points[1].Pos
		r.distance = p1.Dist(p2)
		r.angle = angleDeg(p1, p2)
		r.midpoint = p1.Mid(p2)
		r.velocity.sample(r.midpoint, r.now)
	}
}

func (r *Recognizer) startOne() {
	p := r.points[0].Pos
	r.startPoint1 = p
	r.startMid = p
	r.midpoint = p
	r.velocity.reset(p, r.now)
	r.startWorld = r.view.ScreenToWorld(p)
}

func (r *Recognizer) startTwo() {
	p1, p2 := r.points[0].Pos, r.points[1].Pos
	r.startPoint1 = p1
	r.startPoint2 = p2
	r.startMid = p1.Mid(p2)
	r.midpoint = r.startMid
	r.distance = p1.Dist(p2)
	r.angle = angleDeg(p1, p2)
	r.velocity.reset(r.startMid, r.now)
	r.startWorld = r.view.ScreenToWorld(r.startMid)
}

// Wheel zooms by notches wheel steps around the screen point pos. Positive
// notches zoom in. It reports false when zooming is disabled or no View is
// bound.
func (r *Recognizer) Wheel(pos Vec2, notches float64) bool {
	if r.view == nil || !r.cfg.ZoomEnabled || notches == 0 {
		return false
	}
	lo, hi := r.scaleBounds()
	scale := clamp(r.view.Scale()*math.Exp2(notches*r.cfg.WheelZoomStep), lo, hi)
	r.view.ScaleAt(scale, pos)
	switch r.pan.state {
	case PanActive:
		r.startWorld = r.view.ScreenToWorld(r.midpoint)
	case PanFlick:
		r.startWorld = r.view.ScreenToWorld(r.pan.flick.position())
	}
	r.view.RequestRedraw()
	r.listeners.fire(GestureEvent{Kind: GestureWheelZoomed, Center: pos, Scale: scale})
	return true
}

// Resize re-anchors an ongoing gesture after the viewport changed size so
// the content under the contacts stays put.
func (r *Recognizer) Resize(oldSize, newSize Vec2) {
	if r.view == nil || oldSize == newSize {
		return
	}
	r.log.Debug("resize", slog.Float64("width", newSize.X), slog.Float64("height", newSize.Y))
	switch r.pan.state {
	case PanActive:
		r.startWorld = r.view.ScreenToWorld(r.midpoint)
		r.touchCenterWorld = r.startWorld
	case PanFlick:
		r.startWorld = r.view.ScreenToWorld(r.pan.flick.position())
	}
}

// scaleBounds returns the scale range covered by the configured zoom levels.
func (r *Recognizer) scaleBounds() (lo, hi float64) {
	return r.view.ZoomLevelToScale(r.cfg.MinZoomLevel), r.view.ZoomLevelToScale(r.cfg.MaxZoomLevel)
}
