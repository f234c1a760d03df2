package mapview

import "time"

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// PointerEvent is a pointer press, move or release routed to a ModeHandler.
// World is filled in by the Arbiter before delivery.
type PointerEvent struct {
	Screen    Vec2
	World     Vec2
	Button    MouseButton
	Modifiers KeyModifiers
	Time      time.Duration

	// Touch is set when the event comes from the primary touch contact. The
	// gesture recognizer pans the view for those, so handlers must not.
	Touch bool
}

// KeyEvent is a key press or release. Code is the host's key code.
type KeyEvent struct {
	Code      int
	Modifiers KeyModifiers
}

// TransformDelta is an incremental change of the view requested by a handler.
type TransformDelta struct {
	Translate Vec2    // screen pixels the content moves by
	Scale     float64 // scale factor; 0 and 1 leave the scale unchanged
	Rotate    float64 // degrees
	Pivot     Vec2    // screen pivot for Scale and Rotate
}

// ModeHandler is the pluggable implementation behind one active mode. The
// Arbiter creates it on activation, calls Start once, routes the pointer
// drag it owns to it, and calls Reject before destroying it.
type ModeHandler interface {
	Start(env *HandlerEnv)
	PointerDown(ev PointerEvent) bool
	PointerMove(ev PointerEvent) bool
	PointerUp(ev PointerEvent) bool
	Reject()
}

// KeyHandler is implemented by handlers that consume key events.
type KeyHandler interface {
	KeyPress(ev KeyEvent) bool
	KeyRelease(ev KeyEvent) bool
}

// HandlerFactory constructs the handler for a single mode.
type HandlerFactory func(mode Mode) ModeHandler

// HitTester finds receiver objects near a world position. Tolerance is in
// world units.
type HitTester interface {
	ObjectsAt(world Vec2, tolerance float64) []Object
	PointAt(world Vec2, tolerance float64) (PointRef, bool)
}

// Receiver is the single external consumer of domain events.
type Receiver interface {
	Receive(ev Event)
}

// ReceiverFunc adapts a function to Receiver.
type ReceiverFunc func(Event)

// Receive calls f(ev).
func (f ReceiverFunc) Receive(ev Event) { f(ev) }

// HandlerEnv connects one handler to the shared transform and event
// channels of its Arbiter. It is detached when the handler is rejected;
// a detached env drops everything.
type HandlerEnv struct {
	mode     Mode
	arbiter  *Arbiter
	detached bool
}

// Mode returns the mode the handler serves.
func (e *HandlerEnv) Mode() Mode { return e.mode }

// View returns the view the arbiter drives.
func (e *HandlerEnv) View() View { return e.arbiter.view }

// HitTester returns the hit tester, or nil.
func (e *HandlerEnv) HitTester() HitTester { return e.arbiter.hits }

// DragThreshold returns the configured drag threshold in pixels.
func (e *HandlerEnv) DragThreshold() float64 { return e.arbiter.cfg.DragThreshold }

// Tolerance converts a screen distance into world units at the current scale.
func (e *HandlerEnv) Tolerance(pixels float64) float64 {
	if s := e.arbiter.view.Scale(); s > 0 {
		return pixels / s
	}
	return pixels
}

// Emit publishes a domain event on the shared channel.
func (e *HandlerEnv) Emit(kind EventKind, payload any) {
	if e.detached {
		return
	}
	e.arbiter.events.Publish(NewEvent(kind, payload))
}

// Ask publishes a capability query and reports whether it stayed allowed.
// Without a bound receiver every query is allowed.
func (e *HandlerEnv) Ask(kind EventKind, q *Query) bool {
	q.Allowed = true
	e.Emit(kind, q)
	return q.Allowed
}

// Transform applies a view change.
func (e *HandlerEnv) Transform(d TransformDelta) {
	if e.detached {
		return
	}
	e.arbiter.applyTransform(d)
}
