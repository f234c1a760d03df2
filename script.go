package mapview

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidScript is wrapped by LoadScript failures other than JSON syntax.
var ErrInvalidScript = errors.New("invalid script")

// scriptStep is a single action in an interaction script.
type scriptStep struct {
	Action  string  `json:"action"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	From    float64 `json:"from,omitempty"` // pinch start distance
	To      float64 `json:"to,omitempty"`   // pinch end distance
	Notches float64 `json:"notches,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Mode    string  `json:"mode,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input and mode changes across frames.
// Attach it to a Controller with SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	modes     []Mode // parsed Mode per step
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON interaction script. Actions:
//
//	click    {x, y}
//	drag     {fromX, fromY, toX, toY, frames}
//	swipe    {fromX, fromY, toX, toY, frames}   one-finger touch drag
//	pinch    {x, y, from, to, frames}           two-finger pinch around (x, y)
//	wheel    {x, y, notches}
//	wait     {frames}
//	activate {mode}
//	reject   {mode}
//	finish   {}
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w: no steps", ErrInvalidScript)
	}
	r := &ScriptRunner{steps: s.Steps, modes: make([]Mode, len(s.Steps))}
	for i, st := range s.Steps {
		switch st.Action {
		case "click", "drag", "swipe", "pinch", "wheel", "wait", "finish":
		case "activate", "reject":
			m, err := ParseMode(st.Mode)
			if err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
			if st.Action == "activate" && !m.Single() {
				return nil, fmt.Errorf("parse script: %w: step %d activates %q, need one mode", ErrInvalidScript, i, st.Mode)
			}
			r.modes[i] = m
		default:
			return nil, fmt.Errorf("parse script: %w: step %d: unknown action %q", ErrInvalidScript, i, st.Action)
		}
	}
	return r, nil
}

// Done reports whether every step has run and its input was consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(c *Controller) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.queue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	i := r.cursor
	st := r.steps[i]
	r.cursor++

	switch st.Action {
	case "click":
		c.InjectClick(st.X, st.Y)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "swipe":
		c.InjectSwipe(Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, st.Frames)
	case "pinch":
		c.InjectPinch(Vec2{st.X, st.Y}, st.From, st.To, st.Frames)
	case "wheel":
		c.InjectWheel(st.X, st.Y, st.Notches)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "activate":
		c.modes.Activate(r.modes[i])
	case "reject":
		c.modes.Reject(r.modes[i])
	case "finish":
		c.modes.Finish()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.queue) == 0 {
		r.done = true
	}
}
