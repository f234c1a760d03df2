package mapview

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TouchInput is one raw touch reported by the host for a frame.
type TouchInput struct {
	ID  int
	Pos Vec2
}

// FrameInput is the raw input state polled once per frame.
type FrameInput struct {
	Cursor    Vec2
	Pressed   bool        // a mouse button is held
	Button    MouseButton // held button, lowest first
	Wheel     float64     // vertical wheel notches, positive away from the user
	Modifiers KeyModifiers
	Touches   []TouchInput
	KeysDown  []int // keys pressed this frame
	KeysUp    []int // keys released this frame
}

// inputState keeps the previous frame's pointer and touch state so frames
// can be turned into press/move/release transitions.
type inputState struct {
	mouseDown   bool
	mouseButton MouseButton // button captured at press time
	lastCursor  Vec2

	touches []ContactPoint // down contacts in press order
	sample  ContactSet

	primary     int // touch ID mirrored to the arbiter as a pointer
	primaryDown bool

	keyBuf [16]ebiten.Key
}

// Update advances one frame using live ebiten input. Call it from
// ebiten.Game.Update.
func (c *Controller) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	c.Step(dt, PollEbiten(c.input.keyBuf[:0]))
	return nil
}

// PollEbiten reads the current ebiten input state into a FrameInput. keys
// is reused for the pressed and released key lists.
func PollEbiten(keys []ebiten.Key) FrameInput {
	mx, my := ebiten.CursorPosition()
	in := FrameInput{
		Cursor:    Vec2{float64(mx), float64(my)},
		Modifiers: readModifiers(),
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		in.Pressed = true
		if left {
			in.Button = MouseButtonLeft
		} else if right {
			in.Button = MouseButtonRight
		} else {
			in.Button = MouseButtonMiddle
		}
	}

	_, wy := ebiten.Wheel()
	in.Wheel = wy

	for _, tid := range ebiten.AppendTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(tid)
		in.Touches = append(in.Touches, TouchInput{ID: int(tid), Pos: Vec2{float64(tx), float64(ty)}})
	}

	keys = inpututil.AppendJustPressedKeys(keys[:0])
	for _, k := range keys {
		in.KeysDown = append(in.KeysDown, int(k))
	}
	keys = inpututil.AppendJustReleasedKeys(keys[:0])
	for _, k := range keys {
		in.KeysUp = append(in.KeysUp, int(k))
	}
	return in
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// process routes one frame of input. Keys and the mouse go to the arbiter.
// Touches go to the gesture recognizer, and the primary contact is also
// mirrored to the arbiter. The wheel goes to the recognizer.
func (c *Controller) process(in FrameInput) {
	for _, k := range in.KeysDown {
		c.modes.KeyPress(KeyEvent{Code: k, Modifiers: in.Modifiers})
	}
	for _, k := range in.KeysUp {
		c.modes.KeyRelease(KeyEvent{Code: k, Modifiers: in.Modifiers})
	}
	c.processMouse(in)
	c.processTouches(in)
	if in.Wheel != 0 {
		c.gestures.Wheel(in.Cursor, in.Wheel)
	}
}

// processMouse runs the press/move/release state machine for the mouse.
func (c *Controller) processMouse(in FrameInput) {
	st := &c.input
	ev := PointerEvent{Screen: in.Cursor, Modifiers: in.Modifiers, Time: c.clock}

	switch {
	case in.Pressed && !st.mouseDown:
		st.mouseDown = true
		st.mouseButton = in.Button
		ev.Button = in.Button
		c.modes.PointerDown(ev)
	case !in.Pressed && st.mouseDown:
		st.mouseDown = false
		ev.Button = st.mouseButton
		if in.Cursor != st.lastCursor {
			c.modes.PointerMove(ev)
		}
		c.modes.PointerUp(ev)
	case in.Pressed && st.mouseDown && in.Cursor != st.lastCursor:
		ev.Button = st.mouseButton
		c.modes.PointerMove(ev)
	}
	st.lastCursor = in.Cursor
}

// processTouches diffs the frame's touches against the previous frame and
// feeds a TouchSample whenever any contact is down or was just released.
// Contacts keep their press order.
func (c *Controller) processTouches(in FrameInput) {
	st := &c.input
	if len(in.Touches) == 0 && len(st.touches) == 0 {
		return
	}
	fresh := len(st.touches) == 0

	sample := st.sample[:0]
	kept := st.touches[:0]
	for _, prev := range st.touches {
		cur, ok := findTouch(in.Touches, prev.ID)
		if !ok {
			sample = append(sample, ContactPoint{ID: prev.ID, Pos: prev.Pos, Phase: TouchReleased})
			continue
		}
		phase := TouchStationary
		if cur.Pos != prev.Pos {
			phase = TouchMoved
		}
		p := ContactPoint{ID: prev.ID, Pos: cur.Pos, Phase: phase}
		sample = append(sample, p)
		kept = append(kept, p)
	}
	for _, t := range in.Touches {
		if _, ok := findContact(kept, t.ID); ok {
			continue
		}
		p := ContactPoint{ID: t.ID, Pos: t.Pos, Phase: TouchPressed}
		sample = append(sample, p)
		kept = append(kept, p)
	}
	st.touches = kept
	st.sample = sample

	c.gestures.HandleTouches(TouchSample{Time: c.clock, Contacts: sample})
	c.routePrimary(sample, fresh, in.Modifiers)
}

// routePrimary feeds the first contact of a touch sequence to the arbiter as
// a left-button pointer. A contact becomes primary only when it lands on an
// empty screen, so lifting the first finger of a pinch does not hand the
// drag to the second one.
func (c *Controller) routePrimary(sample ContactSet, fresh bool, mods KeyModifiers) {
	st := &c.input
	for _, p := range sample {
		if st.primaryDown && p.ID != st.primary {
			continue
		}
		ev := PointerEvent{Screen: p.Pos, Button: MouseButtonLeft, Modifiers: mods, Time: c.clock, Touch: true}
		switch {
		case p.Phase == TouchPressed && !st.primaryDown && fresh:
			st.primary, st.primaryDown = p.ID, true
			c.modes.PointerDown(ev)
		case p.Phase == TouchMoved && st.primaryDown:
			c.modes.PointerMove(ev)
		case p.Phase == TouchReleased && st.primaryDown:
			st.primaryDown = false
			c.modes.PointerUp(ev)
		}
	}
}

func findTouch(ts []TouchInput, id int) (TouchInput, bool) {
	for _, t := range ts {
		if t.ID == id {
			return t, true
		}
	}
	return TouchInput{}, false
}

func findContact(ps []ContactPoint, id int) (ContactPoint, bool) {
	for _, p := range ps {
		if p.ID == id {
			return p, true
		}
	}
	return ContactPoint{}, false
}
