package mapview

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestComputeFlick(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name     string
		vel      Vec2
		disp     Vec2
		wantDur  time.Duration
		wantDist Vec2
	}{
		{"x axis", Vec2{500, 0}, Vec2{40, 0}, 200 * time.Millisecond, Vec2{50, 0}},
		{"negative x", Vec2{-500, 0}, Vec2{-40, 0}, 200 * time.Millisecond, Vec2{-50, 0}},
		{"slow", Vec2{70, 70}, Vec2{100, 100}, 0, Vec2{}},
		{"short", Vec2{500, 500}, Vec2{10, 20}, 0, Vec2{}},
		{"longer axis wins", Vec2{500, 1000}, Vec2{40, 40}, 400 * time.Millisecond, Vec2{50, 200}},
		{"one axis qualifies", Vec2{60, -1000}, Vec2{100, -100}, 400 * time.Millisecond, Vec2{0, -200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dur, dist := computeFlick(tt.vel, tt.disp, cfg)
			if dur != tt.wantDur {
				t.Errorf("duration = %v, want %v", dur, tt.wantDur)
			}
			if !vecNear(dist, tt.wantDist, epsilon) {
				t.Errorf("distance = %v, want %v", dist, tt.wantDist)
			}
		})
	}
}

func TestComputeFlickDeceleration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Deceleration = 5000
	dur, dist := computeFlick(Vec2{500, 0}, Vec2{40, 0}, cfg)
	if dur != 100*time.Millisecond || !approxEqual(dist.X, 25, epsilon) {
		t.Errorf("computeFlick = %v, %v, want 100ms, 25px", dur, dist)
	}
}

// startFlick pans down 60px with a fresh 909 px/s sample and lifts off.
func startFlick(f *gestureFixture) {
	f.rec.HandleTouches(touchAt(0, pt(0, 100, 100, TouchPressed)))
	f.rec.HandleTouches(touchAt(16, pt(0, 100, 130, TouchMoved)))
	f.rec.HandleTouches(touchAt(66, pt(0, 100, 160, TouchMoved)))
	f.rec.HandleTouches(touchAt(82, pt(0, 100, 160, TouchReleased)))
}

func TestFlick(t *testing.T) {
	f := newGestureFixture(DefaultConfig())
	startFlick(f)

	if f.rec.PanState() != PanFlick {
		t.Fatalf("PanState = %v, want flick", f.rec.PanState())
	}
	want := []GestureKind{GesturePanStarted, GesturePanFinished, GestureFlickStarted}
	if diff := cmp.Diff(want, f.log.kinds()); diff != "" {
		t.Fatalf("gestures mismatch (-want +got):\n%s", diff)
	}
	if f.loop.Len() != 1 {
		t.Fatalf("scheduled tasks = %d, want 1", f.loop.Len())
	}

	anchor := f.rec.StartWorld()
	_, dist := computeFlick(f.rec.Velocity(), Vec2{0, 60}, f.rec.Config())
	if dist.Y <= 0 {
		t.Fatalf("flick distance = %v, want positive y", dist)
	}

	f.loop.Tick(16 * time.Millisecond)
	if got := f.cam.WorldToScreen(anchor); got.Y <= 160 {
		t.Errorf("flick did not advance: anchor at %v", got)
	}

	f.runFrames(100)
	if f.rec.PanState() != PanInactive {
		t.Fatalf("PanState = %v, want inactive after flick", f.rec.PanState())
	}
	want = append(want, GestureFlickFinished, GestureMovementStopped)
	if diff := cmp.Diff(want, f.log.kinds()); diff != "" {
		t.Errorf("gestures mismatch (-want +got):\n%s", diff)
	}
	end := Vec2{100, 160}.Add(dist)
	if got := f.cam.WorldToScreen(anchor); !vecNear(got, end, 1e-3) {
		t.Errorf("anchor ended at %v, want %v", got, end)
	}
}

func TestWheelDuringFlickKeepsPivot(t *testing.T) {
	f := newGestureFixture(DefaultConfig())
	startFlick(f)
	f.loop.Tick(16 * time.Millisecond)

	pivot := Vec2{400, 300}
	f.rec.Wheel(pivot, 2)
	if !approxEqual(f.cam.Scale(), 2, epsilon) {
		t.Fatalf("Scale = %v, want 2", f.cam.Scale())
	}
	from := f.rec.pan.flick.position()
	if got := f.cam.ScreenToWorld(from); !vecNear(f.rec.StartWorld(), got, epsilon) {
		t.Errorf("StartWorld = %v, want %v under the flick position", f.rec.StartWorld(), got)
	}
	pivotWorld := f.cam.ScreenToWorld(pivot)

	f.loop.Tick(16 * time.Millisecond)
	step := f.rec.pan.flick.position().Sub(from)
	if got := f.cam.WorldToScreen(pivotWorld); !vecNear(got, pivot.Add(step), 1e-6) {
		t.Errorf("pivot content at %v, want %v", got, pivot.Add(step))
	}
}

func TestFlickSuppressedBelowMinVelocity(t *testing.T) {
	f := newGestureFixture(DefaultConfig())
	f.rec.HandleTouches(touchAt(0, pt(0, 100, 100, TouchPressed)))
	f.rec.HandleTouches(touchAt(16, pt(0, 100, 130, TouchMoved)))
	f.rec.HandleTouches(touchAt(66, pt(0, 100, 160, TouchMoved)))
	// Holding still long enough resamples the velocity to zero.
	f.rec.HandleTouches(touchAt(200, pt(0, 100, 160, TouchStationary)))
	f.rec.HandleTouches(touchAt(216, pt(0, 100, 160, TouchReleased)))

	if f.rec.PanState() != PanInactive {
		t.Fatalf("PanState = %v, want inactive", f.rec.PanState())
	}
	want := []GestureKind{GesturePanStarted, GesturePanFinished, GestureMovementStopped}
	if diff := cmp.Diff(want, f.log.kinds()); diff != "" {
		t.Errorf("gestures mismatch (-want +got):\n%s", diff)
	}
	if f.loop.Len() != 0 {
		t.Errorf("scheduled tasks = %d, want 0", f.loop.Len())
	}
}

func TestFlickSuppressedWhenVelocityStale(t *testing.T) {
	f := newGestureFixture(DefaultConfig())
	f.rec.HandleTouches(touchAt(0, pt(0, 100, 100, TouchPressed)))
	f.rec.HandleTouches(touchAt(16, pt(0, 100, 130, TouchMoved)))
	f.rec.HandleTouches(touchAt(66, pt(0, 100, 160, TouchMoved)))
	f.rec.HandleTouches(touchAt(300, pt(0, 100, 160, TouchReleased)))

	if f.rec.PanState() != PanInactive {
		t.Errorf("PanState = %v, want inactive", f.rec.PanState())
	}
	if got := f.log.count(GestureFlickStarted); got != 0 {
		t.Errorf("flick-started fired %d times, want 0", got)
	}
}

func TestFlickDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FlickEnabled = false
	f := newGestureFixture(cfg)
	startFlick(f)
	want := []GestureKind{GesturePanStarted, GesturePanFinished, GestureMovementStopped}
	if diff := cmp.Diff(want, f.log.kinds()); diff != "" {
		t.Errorf("gestures mismatch (-want +got):\n%s", diff)
	}
}

func TestFlickWithoutScheduler(t *testing.T) {
	cam := NewCamera(testViewport)
	rec := NewRecognizer(cam, nil, DefaultConfig())
	f := &gestureFixture{cam: cam, loop: NewFrameLoop(), rec: rec, log: &gestureLog{}}
	startFlick(f)
	if rec.PanState() != PanInactive {
		t.Errorf("PanState = %v, want inactive without a scheduler", rec.PanState())
	}
}

func TestFlickCanceledByNewContact(t *testing.T) {
	f := newGestureFixture(DefaultConfig())
	startFlick(f)
	f.loop.Tick(16 * time.Millisecond)

	f.rec.HandleTouches(touchAt(120, pt(0, 300, 300, TouchPressed)))
	if f.rec.PanState() != PanActive {
		t.Fatalf("PanState = %v, want active after re-contact", f.rec.PanState())
	}
	want := []GestureKind{
		GesturePanStarted, GesturePanFinished, GestureFlickStarted,
		GestureFlickFinished, GesturePanStarted,
	}
	if diff := cmp.Diff(want, f.log.kinds()); diff != "" {
		t.Errorf("gestures mismatch (-want +got):\n%s", diff)
	}
	if f.rec.TapState() != TapCleared {
		t.Errorf("TapState = %v, want cleared", f.rec.TapState())
	}

	// The canceled flick no longer moves the view.
	anchor := f.rec.StartWorld()
	f.loop.Tick(16 * time.Millisecond)
	if f.loop.Len() != 0 {
		t.Errorf("scheduled tasks = %d, want 0", f.loop.Len())
	}
	if got := f.cam.ScreenToWorld(Vec2{300, 300}); !vecNear(got, anchor, epsilon) {
		t.Errorf("world under contact = %v, want %v", got, anchor)
	}
}

func TestStop(t *testing.T) {
	t.Run("active", func(t *testing.T) {
		f := newGestureFixture(DefaultConfig())
		f.rec.HandleTouches(touchAt(0, pt(0, 100, 100, TouchPressed)))
		f.rec.HandleTouches(touchAt(60, pt(0, 100, 160, TouchMoved)))
		f.rec.Stop()
		want := []GestureKind{GesturePanStarted, GesturePanFinished, GestureMovementStopped}
		if diff := cmp.Diff(want, f.log.kinds()); diff != "" {
			t.Errorf("gestures mismatch (-want +got):\n%s", diff)
		}
		if f.rec.Velocity() != (Vec2{}) {
			t.Errorf("Velocity = %v, want zero", f.rec.Velocity())
		}
	})
	t.Run("flick", func(t *testing.T) {
		f := newGestureFixture(DefaultConfig())
		startFlick(f)
		f.log.reset()
		f.rec.Stop()
		want := []GestureKind{GestureFlickFinished, GestureMovementStopped}
		if diff := cmp.Diff(want, f.log.kinds()); diff != "" {
			t.Errorf("gestures mismatch (-want +got):\n%s", diff)
		}
		f.loop.Tick(16 * time.Millisecond)
		if f.loop.Len() != 0 {
			t.Errorf("scheduled tasks = %d, want 0", f.loop.Len())
		}
		if f.rec.PanState() != PanInactive {
			t.Errorf("PanState = %v, want inactive", f.rec.PanState())
		}
	})
	t.Run("inactive", func(t *testing.T) {
		f := newGestureFixture(DefaultConfig())
		f.rec.Stop()
		if len(f.log.events) != 0 {
			t.Errorf("Stop on an idle recognizer fired %v", f.log.kinds())
		}
	})
}
