package mapview

// Injected input is queued as whole frames in screen coordinates and
// replaces polled input, one frame per Step. Scripted tests and automation
// drive the controller exactly like real input.

// InjectFrame queues a raw input frame.
func (c *Controller) InjectFrame(in FrameInput) {
	c.queue = append(c.queue, in)
}

// InjectPress queues a left-button press at the given screen coordinates.
func (c *Controller) InjectPress(x, y float64) {
	c.InjectFrame(FrameInput{Cursor: Vec2{x, y}, Pressed: true, Button: MouseButtonLeft})
}

// InjectMove queues a pointer move with the button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (c *Controller) InjectMove(x, y float64) {
	c.InjectFrame(FrameInput{Cursor: Vec2{x, y}, Pressed: true, Button: MouseButtonLeft})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (c *Controller) InjectRelease(x, y float64) {
	c.InjectFrame(FrameInput{Cursor: Vec2{x, y}})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (c *Controller) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a mouse drag from (fromX, fromY) to (toX, toY): a press,
// frames-2 interpolated moves and a release. Minimum frames is 2.
func (c *Controller) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// InjectTouches queues a frame with one touch per point. Touch IDs are the
// point indexes plus one, so consecutive frames continue the same contacts.
func (c *Controller) InjectTouches(points ...Vec2) {
	touches := make([]TouchInput, len(points))
	for i, p := range points {
		touches[i] = TouchInput{ID: i + 1, Pos: p}
	}
	c.InjectFrame(FrameInput{Touches: touches})
}

// InjectSwipe queues a one-finger touch drag over frames frames followed by
// a lift-off frame. Minimum frames is 2.
func (c *Controller) InjectSwipe(from, to Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		c.InjectTouches(from.Add(to.Sub(from).Mul(t)))
	}
	c.InjectTouches()
}

// InjectPinch queues a two-finger pinch around center, spreading the
// fingers horizontally from fromDist to toDist apart, followed by a lift-off
// frame. Minimum frames is 2.
func (c *Controller) InjectPinch(center Vec2, fromDist, toDist float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		half := (fromDist + (toDist-fromDist)*t) / 2
		c.InjectTouches(Vec2{center.X - half, center.Y}, Vec2{center.X + half, center.Y})
	}
	c.InjectTouches()
}

// InjectWheel queues a wheel turn of notches at the given screen point.
func (c *Controller) InjectWheel(x, y, notches float64) {
	c.InjectFrame(FrameInput{Cursor: Vec2{x, y}, Wheel: notches})
}
