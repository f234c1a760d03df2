package mapview

import "testing"

func TestInjectClick(t *testing.T) {
	c := NewController(testViewport, DefaultConfig())
	c.InjectClick(100, 200)
	if c.Pending() != 2 {
		t.Fatalf("expected 2 queued frames, got %d", c.Pending())
	}
	press, release := c.queue[0], c.queue[1]
	if !press.Pressed || press.Cursor != (Vec2{100, 200}) || press.Button != MouseButtonLeft {
		t.Errorf("press = %+v", press)
	}
	if release.Pressed || release.Cursor != (Vec2{100, 200}) {
		t.Errorf("release = %+v", release)
	}
}

func TestInjectDrag(t *testing.T) {
	c := NewController(testViewport, DefaultConfig())
	c.InjectDrag(0, 0, 100, 50, 5)
	if c.Pending() != 5 {
		t.Fatalf("expected 5 queued frames, got %d", c.Pending())
	}
	if !c.queue[0].Pressed || c.queue[0].Cursor != (Vec2{0, 0}) {
		t.Errorf("first frame = %+v, want press at origin", c.queue[0])
	}
	if got := c.queue[2].Cursor; !vecNear(got, Vec2{50, 25}, epsilon) {
		t.Errorf("middle move = %v, want (50,25)", got)
	}
	last := c.queue[4]
	if last.Pressed || last.Cursor != (Vec2{100, 50}) {
		t.Errorf("last frame = %+v, want release at (100,50)", last)
	}
}

func TestInjectDragMinFrames(t *testing.T) {
	c := NewController(testViewport, DefaultConfig())
	c.InjectDrag(0, 0, 10, 10, 0)
	if c.Pending() != 2 {
		t.Errorf("expected 2 queued frames, got %d", c.Pending())
	}
}

func TestInjectSwipe(t *testing.T) {
	c := NewController(testViewport, DefaultConfig())
	c.InjectSwipe(Vec2{0, 0}, Vec2{0, 90}, 4)
	if c.Pending() != 5 {
		t.Fatalf("expected 5 queued frames, got %d", c.Pending())
	}
	for i, y := range []float64{0, 30, 60, 90} {
		in := c.queue[i]
		if len(in.Touches) != 1 || in.Touches[0].ID != 1 || !vecNear(in.Touches[0].Pos, Vec2{0, y}, epsilon) {
			t.Errorf("frame %d touches = %+v, want one at (0,%v)", i, in.Touches, y)
		}
	}
	if len(c.queue[4].Touches) != 0 {
		t.Error("last frame should lift every contact")
	}
}

func TestInjectPinch(t *testing.T) {
	c := NewController(testViewport, DefaultConfig())
	c.InjectPinch(Vec2{100, 100}, 20, 60, 3)
	if c.Pending() != 4 {
		t.Fatalf("expected 4 queued frames, got %d", c.Pending())
	}
	mid := c.queue[1].Touches
	if len(mid) != 2 || mid[0].Pos != (Vec2{80, 100}) || mid[1].Pos != (Vec2{120, 100}) {
		t.Errorf("middle frame touches = %+v", mid)
	}
}

func TestInjectQueueOrder(t *testing.T) {
	c := NewController(testViewport, DefaultConfig())
	c.InjectWheel(5, 5, 1)
	c.InjectPress(10, 10)
	c.Step(frame, FrameInput{})
	if c.Pending() != 1 || !c.queue[0].Pressed {
		t.Fatalf("queue after one step = %+v", c.queue)
	}
	c.Step(frame, FrameInput{})
	if c.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", c.Pending())
	}
}

func TestInjectedFrameReplacesPolled(t *testing.T) {
	c := NewController(testViewport, DefaultConfig())
	c.InjectFrame(FrameInput{})
	// The polled press is ignored while injected input is queued.
	c.Step(frame, FrameInput{Pressed: true, Cursor: Vec2{1, 1}})
	if c.Modes().DragOwner() != ModeNone {
		t.Error("polled input used while an injected frame was queued")
	}
}
