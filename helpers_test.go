package mapview

import (
	"math"
	"time"
)

const epsilon = 1e-6

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func vecNear(a, b Vec2, eps float64) bool {
	return approxEqual(a.X, b.X, eps) && approxEqual(a.Y, b.Y, eps)
}

func rectNear(a, b Rect, eps float64) bool {
	return vecNear(Vec2{a.X, a.Y}, Vec2{b.X, b.Y}, eps) && vecNear(a.Size(), b.Size(), eps)
}

var testViewport = Rect{Width: 800, Height: 600}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func pt(id int, x, y float64, phase TouchPhase) ContactPoint {
	return ContactPoint{ID: id, Pos: Vec2{x, y}, Phase: phase}
}

func touchAt(t int, pts ...ContactPoint) TouchSample {
	return TouchSample{Time: ms(t), Contacts: pts}
}

// gestureLog records every gesture notification a Recognizer fires.
type gestureLog struct {
	events []GestureEvent
}

func (l *gestureLog) kinds() []GestureKind {
	out := make([]GestureKind, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Kind
	}
	return out
}

func (l *gestureLog) count(k GestureKind) int {
	n := 0
	for _, ev := range l.events {
		if ev.Kind == k {
			n++
		}
	}
	return n
}

func (l *gestureLog) reset() { l.events = nil }

type gestureFixture struct {
	cam  *Camera
	loop *FrameLoop
	rec  *Recognizer
	log  *gestureLog
}

func newGestureFixture(cfg Config) *gestureFixture {
	cam := NewCamera(testViewport)
	loop := NewFrameLoop()
	rec := NewRecognizer(cam, loop, cfg)
	log := &gestureLog{}
	rec.OnGesture(func(ev *GestureEvent) { log.events = append(log.events, *ev) })
	return &gestureFixture{cam: cam, loop: loop, rec: rec, log: log}
}

// runFrames ticks the loop until it is idle or max frames ran.
func (f *gestureFixture) runFrames(max int) int {
	n := 0
	for f.loop.Len() > 0 && n < max {
		f.loop.Tick(16 * time.Millisecond)
		n++
	}
	return n
}

// eventLog records every Event published on a channel.
type eventLog struct {
	events []Event
}

func recordEvents(ch *EventChannel) *eventLog {
	l := &eventLog{}
	ch.Subscribe(func(ev Event) { l.events = append(l.events, ev) })
	return l
}

func (l *eventLog) kinds() []EventKind {
	out := make([]EventKind, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Kind()
	}
	return out
}

func (l *eventLog) count(k EventKind) int {
	n := 0
	for _, ev := range l.events {
		if ev.Kind() == k {
			n++
		}
	}
	return n
}

func (l *eventLog) last(k EventKind) (Event, bool) {
	for i := len(l.events) - 1; i >= 0; i-- {
		if l.events[i].Kind() == k {
			return l.events[i], true
		}
	}
	return Event{}, false
}

func (l *eventLog) reset() { l.events = nil }
