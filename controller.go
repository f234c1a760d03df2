package mapview

import (
	"context"
	"log/slog"
	"time"
)

// Controller wires the interaction layer for one map widget: a Camera as the
// View, a Recognizer for touch and wheel gestures, an Arbiter for mouse and
// key input, and the FrameLoop that runs flick animations.
//
// Call Update once per frame from ebiten.Game.Update, or Step when the host
// polls input itself.
type Controller struct {
	camera   *Camera
	gestures *Recognizer
	modes    *Arbiter
	frames   *FrameLoop
	log      *slog.Logger

	clock  time.Duration
	input  inputState
	queue  []FrameInput
	script *ScriptRunner
}

// NewController creates a controller for a viewport. Move mode is active.
func NewController(viewport Rect, cfg Config) *Controller {
	cfg = cfg.normalized()
	cam := NewCamera(viewport)
	frames := NewFrameLoop()
	c := &Controller{
		camera:   cam,
		gestures: NewRecognizer(cam, frames, cfg),
		modes:    NewArbiter(cam, cfg),
		frames:   frames,
		log:      componentLogger(cfg.logger(), "controller"),
	}
	c.modes.Activate(ModeMove)
	return c
}

// Camera returns the camera the controller drives.
func (c *Controller) Camera() *Camera { return c.camera }

// Gestures returns the touch gesture recognizer.
func (c *Controller) Gestures() *Recognizer { return c.gestures }

// Modes returns the mode arbiter.
func (c *Controller) Modes() *Arbiter { return c.modes }

// Frames returns the frame loop running animations.
func (c *Controller) Frames() *FrameLoop { return c.frames }

// Clock returns the time accumulated by Step.
func (c *Controller) Clock() time.Duration { return c.clock }

// HandleTouches feeds a touch sample to the gesture recognizer.
func (c *Controller) HandleTouches(sample TouchSample) bool {
	return c.gestures.HandleTouches(sample)
}

// PointerDown feeds a mouse press to the active mode handlers.
func (c *Controller) PointerDown(ev PointerEvent) bool { return c.modes.PointerDown(ev) }

// PointerMove feeds a mouse move to the drag owner.
func (c *Controller) PointerMove(ev PointerEvent) bool { return c.modes.PointerMove(ev) }

// PointerUp feeds a mouse release to the drag owner.
func (c *Controller) PointerUp(ev PointerEvent) bool { return c.modes.PointerUp(ev) }

// KeyPress feeds a key press to the mode handlers.
func (c *Controller) KeyPress(ev KeyEvent) bool { return c.modes.KeyPress(ev) }

// KeyRelease feeds a key release to the mode handlers.
func (c *Controller) KeyRelease(ev KeyEvent) bool { return c.modes.KeyRelease(ev) }

// Wheel zooms around pos by notches wheel steps.
func (c *Controller) Wheel(pos Vec2, notches float64) bool {
	return c.gestures.Wheel(pos, notches)
}

// Resize changes the viewport size and re-anchors any ongoing gesture.
func (c *Controller) Resize(width, height float64) {
	old := c.camera.Viewport.Size()
	c.camera.Resize(width, height)
	c.gestures.Resize(old, Vec2{width, height})
	c.camera.RequestRedraw()
}

// Bind connects r as the domain-event receiver until ctx is done.
func (c *Controller) Bind(ctx context.Context, r Receiver) bool {
	return c.modes.Bind(ctx, r)
}

// Finish ends the current editing session; see Arbiter.Finish.
func (c *Controller) Finish() { c.modes.Finish() }

// Stop halts any pan or flick immediately.
func (c *Controller) Stop() { c.gestures.Stop() }

// TakeRedraw reports whether the view changed since the previous call.
func (c *Controller) TakeRedraw() bool { return c.camera.TakeRedraw() }

// SetScript attaches a ScriptRunner stepped at the start of every frame.
// Nil detaches it.
func (c *Controller) SetScript(r *ScriptRunner) { c.script = r }

// Step advances one frame of dt using in as the polled input. Queued
// injected input replaces in, one frame per Step. Animations are ticked
// after input is handled.
func (c *Controller) Step(dt time.Duration, in FrameInput) {
	if c.script != nil {
		c.script.step(c)
	}
	if len(c.queue) > 0 {
		in = c.queue[0]
		copy(c.queue, c.queue[1:])
		c.queue = c.queue[:len(c.queue)-1]
	}
	c.clock += dt
	c.process(in)
	c.frames.Tick(dt)
}

// Pending returns the number of queued injected frames.
func (c *Controller) Pending() int { return len(c.queue) }
