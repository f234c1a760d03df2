package mapview

// GestureKind identifies a gesture lifecycle notification.
type GestureKind uint8

const (
	GesturePanStarted      GestureKind = iota // pan drag crossed the drag threshold
	GesturePanFinished                        // pan drag ended (with or without a flick)
	GestureFlickStarted                       // inertial flick animation began
	GestureFlickFinished                      // flick animation ended or was canceled
	GesturePinchStarted                       // cancelable: set Accepted=false to veto
	GesturePinchUpdated                       // pinch moved while active
	GesturePinchFinished                      // pinch ended; PointCount is 0
	GestureMovementStopped                    // the view stopped moving
	GestureTapped                             // a single contact pressed and released without panning
	GestureWheelZoomed                        // the wheel changed the scale
)

var gestureKindNames = [...]string{
	GesturePanStarted:      "pan-started",
	GesturePanFinished:     "pan-finished",
	GestureFlickStarted:    "flick-started",
	GestureFlickFinished:   "flick-finished",
	GesturePinchStarted:    "pinch-started",
	GesturePinchUpdated:    "pinch-updated",
	GesturePinchFinished:   "pinch-finished",
	GestureMovementStopped: "movement-stopped",
	GestureTapped:          "tapped",
	GestureWheelZoomed:     "wheel-zoomed",
}

// String returns the kind name.
func (k GestureKind) String() string {
	if int(k) < len(gestureKindNames) {
		return gestureKindNames[k]
	}
	return "unknown"
}

// GestureEvent carries gesture data to listeners. Pinch fields are valid for
// the pinch kinds, Center for pinch, tap and wheel kinds.
type GestureEvent struct {
	Kind GestureKind

	Center     Vec2    // gesture center in screen coordinates
	Angle      float64 // inter-point angle delta in degrees, in (-180, 180]
	Point1     Vec2
	Point2     Vec2
	PointCount int
	Scale      float64 // resulting view scale (pinch and wheel)

	// Accepted is true when delivered. A listener of GesturePinchStarted may
	// set it to false to keep the pinch from starting.
	Accepted bool
}

type gestureListener struct {
	id uint32
	fn func(*GestureEvent)
}

type gestureRegistry struct {
	listeners []gestureListener
	nextID    uint32
}

// CallbackHandle allows removing a registered gesture listener.
type CallbackHandle struct {
	id  uint32
	reg *gestureRegistry
}

// Remove unregisters this callback so it no longer fires. It may be called
// from inside a listener.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.listeners
	for i := range s {
		if s[i].id == h.id {
			next := make([]gestureListener, 0, len(s)-1)
			next = append(next, s[:i]...)
			h.reg.listeners = append(next, s[i+1:]...)
			return
		}
	}
}

func (r *gestureRegistry) add(fn func(*GestureEvent)) CallbackHandle {
	r.nextID++
	r.listeners = append(r.listeners, gestureListener{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r}
}

// fire delivers ev to every listener and reports whether it stayed accepted.
func (r *gestureRegistry) fire(ev GestureEvent) bool {
	ev.Accepted = true
	for _, l := range r.listeners {
		l.fn(&ev)
	}
	return ev.Accepted
}
