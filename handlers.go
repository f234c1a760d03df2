package mapview

import "math"

const (
	rotateDegreesPerPixel = 0.5
	scalePixelsPerDouble  = 100.0
	hitTolerancePixels    = 8.0
)

// DefaultHandlerFactory returns the built-in handler for mode.
func DefaultHandlerFactory(mode Mode) ModeHandler {
	switch mode {
	case ModeMove:
		return &moveHandler{}
	case ModeRotate:
		return &rotateHandler{}
	case ModeScale:
		return &scaleHandler{}
	case ModeSelect:
		return &selectHandler{}
	case ModeCreate:
		return &createHandler{}
	case ModeEdit:
		return &editHandler{}
	default:
		return nil
	}
}

// dragTracker is shared press/drag bookkeeping for the built-in handlers.
type dragTracker struct {
	env      *HandlerEnv
	down     bool
	dragging bool
	start    Vec2
	last     Vec2
}

func (d *dragTracker) press(ev PointerEvent) {
	d.down = true
	d.dragging = false
	d.start = ev.Screen
	d.last = ev.Screen
}

// move updates the tracker and reports the screen delta since the previous
// event. dragging turns true once the pointer leaves the drag threshold.
func (d *dragTracker) move(ev PointerEvent) Vec2 {
	delta := ev.Screen.Sub(d.last)
	d.last = ev.Screen
	if !d.dragging && ev.Screen.Dist(d.start) > d.env.DragThreshold() {
		d.dragging = true
	}
	return delta
}

func (d *dragTracker) release() (wasDrag bool) {
	wasDrag = d.dragging
	d.down = false
	d.dragging = false
	return wasDrag
}

func pointerPayload(ev PointerEvent) PointerPayload {
	return PointerPayload{Screen: ev.Screen, World: ev.World, Button: ev.Button}
}

// moveHandler pans the view with the pointer.
type moveHandler struct{ dragTracker }

func (h *moveHandler) Start(env *HandlerEnv) { h.env = env }

func (h *moveHandler) PointerDown(ev PointerEvent) bool {
	h.press(ev)
	h.env.Emit(EventPress, pointerPayload(ev))
	return true
}

func (h *moveHandler) PointerMove(ev PointerEvent) bool {
	if !h.down {
		return false
	}
	d := h.move(ev)
	if !ev.Touch {
		h.env.Transform(TransformDelta{Translate: d})
	}
	return true
}

func (h *moveHandler) PointerUp(ev PointerEvent) bool {
	if !h.down {
		return false
	}
	h.release()
	h.env.Emit(EventRelease, pointerPayload(ev))
	return true
}

func (h *moveHandler) Reject() { h.release() }

// rotateHandler turns horizontal drag into rotation around the press point.
type rotateHandler struct{ dragTracker }

func (h *rotateHandler) Start(env *HandlerEnv) { h.env = env }

func (h *rotateHandler) PointerDown(ev PointerEvent) bool {
	h.press(ev)
	return true
}

func (h *rotateHandler) PointerMove(ev PointerEvent) bool {
	if !h.down {
		return false
	}
	d := h.move(ev)
	h.env.Transform(TransformDelta{Rotate: d.X * rotateDegreesPerPixel, Pivot: h.start})
	return true
}

func (h *rotateHandler) PointerUp(PointerEvent) bool {
	if !h.down {
		return false
	}
	h.release()
	return true
}

func (h *rotateHandler) Reject() { h.release() }

// scaleHandler zooms around the press point; dragging up zooms in.
type scaleHandler struct{ dragTracker }

func (h *scaleHandler) Start(env *HandlerEnv) { h.env = env }

func (h *scaleHandler) PointerDown(ev PointerEvent) bool {
	h.press(ev)
	return true
}

func (h *scaleHandler) PointerMove(ev PointerEvent) bool {
	if !h.down {
		return false
	}
	d := h.move(ev)
	h.env.Transform(TransformDelta{Scale: math.Exp2(-d.Y / scalePixelsPerDouble), Pivot: h.start})
	return true
}

func (h *scaleHandler) PointerUp(PointerEvent) bool {
	if !h.down {
		return false
	}
	h.release()
	return true
}

func (h *scaleHandler) Reject() { h.release() }

// selectHandler reports taps with the objects under them and the subset the
// receiver allows to be selected.
type selectHandler struct {
	dragTracker
	scope *ScopeQuery
}

func (h *selectHandler) Start(env *HandlerEnv) {
	h.env = env
	if vb, ok := env.View().(interface{ VisibleBounds() Rect }); ok {
		h.scope = &ScopeQuery{Bounds: vb.VisibleBounds()}
		env.Emit(EventScope, h.scope)
	}
}

func (h *selectHandler) PointerDown(ev PointerEvent) bool {
	h.press(ev)
	h.env.Emit(EventPress, pointerPayload(ev))
	return true
}

func (h *selectHandler) PointerMove(ev PointerEvent) bool {
	if !h.down {
		return false
	}
	h.move(ev)
	return true
}

func (h *selectHandler) PointerUp(ev PointerEvent) bool {
	if !h.down {
		return false
	}
	h.env.Emit(EventRelease, pointerPayload(ev))
	if h.release() {
		return true
	}
	if h.scope != nil && !h.scope.Bounds.Contains(ev.World) {
		return true
	}
	var hits []Object
	if ht := h.env.HitTester(); ht != nil {
		hits = ht.ObjectsAt(ev.World, h.env.Tolerance(hitTolerancePixels))
	}
	h.env.Emit(EventTap, TapPayload{Screen: ev.Screen, World: ev.World, Hits: hits})

	var selected []Object
	for _, obj := range hits {
		if h.env.Ask(EventCanSelect, &Query{Object: obj, Pos: ev.World}) {
			selected = append(selected, obj)
		}
	}
	h.env.Emit(EventSelected, ObjectList{Objects: selected})
	return true
}

func (h *selectHandler) Reject() { h.release() }

// createHandler collects tapped world points for a new object.
type createHandler struct {
	dragTracker
	points []Vec2
	cached ModeQuery
}

func (h *createHandler) Start(env *HandlerEnv) {
	h.env = env
	env.Emit(EventCachedMode, &h.cached)
}

func (h *createHandler) PointerDown(ev PointerEvent) bool {
	h.press(ev)
	return true
}

func (h *createHandler) PointerMove(ev PointerEvent) bool {
	if !h.down {
		return false
	}
	h.move(ev)
	return true
}

func (h *createHandler) PointerUp(ev PointerEvent) bool {
	if !h.down {
		return false
	}
	if h.release() {
		return true
	}
	if !h.env.Ask(EventCanAddPoint, &Query{Pos: ev.World, PointIndex: len(h.points)}) {
		return true
	}
	h.points = append(h.points, ev.World)
	h.env.Emit(EventClickedPoints, PointList{Points: []Vec2{ev.World}})
	return true
}

// Reject hands every collected point to the receiver before teardown.
func (h *createHandler) Reject() {
	h.release()
	if len(h.points) > 0 {
		h.env.Emit(EventAllClickedPoints, PointList{Points: h.points})
		h.points = nil
	}
}

// editHandler drags existing vertices; a secondary-button tap removes one.
type editHandler struct {
	dragTracker
	mark   ModeQuery
	target PointRef
	held   bool
}

func (h *editHandler) Start(env *HandlerEnv) {
	h.env = env
	env.Emit(EventMarkMode, &h.mark)
}

func (h *editHandler) pointAt(world Vec2) (PointRef, bool) {
	ht := h.env.HitTester()
	if ht == nil {
		return PointRef{}, false
	}
	return ht.PointAt(world, h.env.Tolerance(hitTolerancePixels))
}

func (h *editHandler) PointerDown(ev PointerEvent) bool {
	h.press(ev)
	h.held = false
	if ref, ok := h.pointAt(ev.World); ok && ev.Button == MouseButtonLeft {
		q := &Query{Object: ref.Object, MetricIndex: ref.MetricIndex, PointIndex: ref.PointIndex, Pos: ref.Pos}
		if h.env.Ask(EventCanChangePoint, q) {
			h.target = ref
			h.held = true
		}
	}
	h.env.Emit(EventPress, pointerPayload(ev))
	return true
}

func (h *editHandler) PointerMove(ev PointerEvent) bool {
	if !h.down {
		return false
	}
	h.move(ev)
	if h.held && h.dragging {
		h.target.Pos = ev.World
		h.env.Emit(EventPointDragged, h.target)
	}
	return true
}

func (h *editHandler) PointerUp(ev PointerEvent) bool {
	if !h.down {
		return false
	}
	wasDrag := h.release()
	switch {
	case h.held && wasDrag:
		h.target.Pos = ev.World
		h.env.Emit(EventPointDropped, h.target)
		h.env.Emit(EventPointChanged, h.target)
		h.env.Emit(EventEdited, ObjectList{Objects: []Object{h.target.Object}})
	case !wasDrag && ev.Button == MouseButtonRight:
		if ref, ok := h.pointAt(ev.World); ok {
			q := &Query{Object: ref.Object, MetricIndex: ref.MetricIndex, PointIndex: ref.PointIndex, Pos: ref.Pos}
			if h.env.Ask(EventCanRemovePoint, q) {
				h.env.Emit(EventPointRemoved, ref)
				h.env.Emit(EventEdited, ObjectList{Objects: []Object{ref.Object}})
			}
		}
	}
	h.held = false
	h.env.Emit(EventRelease, pointerPayload(ev))
	return true
}

func (h *editHandler) Reject() {
	h.release()
	h.held = false
}
