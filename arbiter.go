package mapview

import (
	"context"
	"log/slog"
	"slices"
)

// Arbiter owns the set of active interaction modes, one ModeHandler per
// active mode, and routes pointer and key events to them. Move, Rotate and
// Scale combine freely; Select, Create and Edit exclude each other.
//
// Handlers emit domain events on a shared EventChannel. At most one external
// Receiver is bound to that channel at a time.
//
// An Arbiter is not safe for concurrent use.
type Arbiter struct {
	view View
	cfg  Config
	log  *slog.Logger
	hits HitTester

	events    *EventChannel
	factories [modeCount]HandlerFactory
	slots     [modeCount]*handlerSlot
	order     []Mode // active modes in activation order
	active    Mode
	owner     Mode // mode owning the current pointer drag, or ModeNone

	receiver Receiver
	recvCtx  context.Context
	recvSub  Subscription
}

type handlerSlot struct {
	handler ModeHandler
	env     *HandlerEnv
}

// NewArbiter creates an Arbiter driving view with no active modes. Handlers
// come from DefaultHandlerFactory unless replaced with SetFactory.
func NewArbiter(view View, cfg Config) *Arbiter {
	cfg = cfg.normalized()
	return &Arbiter{
		view:   view,
		cfg:    cfg,
		log:    componentLogger(cfg.logger(), "arbiter"),
		events: NewEventChannel(),
	}
}

// SetFactory replaces the handler factory for mode. A nil factory restores
// the built-in handler. Active handlers are not rebuilt.
func (a *Arbiter) SetFactory(mode Mode, f HandlerFactory) {
	invariant(mode.Single(), "SetFactory needs a single mode, got %v", mode)
	a.factories[mode.index()] = f
}

// SetHitTester sets the object lookup used by the select and edit handlers.
func (a *Arbiter) SetHitTester(h HitTester) { a.hits = h }

// Events returns the shared domain-event channel.
func (a *Arbiter) Events() *EventChannel { return a.events }

// Active returns the set of active modes.
func (a *Arbiter) Active() Mode { return a.active }

// Order returns the active modes in activation order.
func (a *Arbiter) Order() []Mode { return slices.Clone(a.order) }

// Handler returns the handler of an active mode, or nil.
func (a *Arbiter) Handler(mode Mode) ModeHandler {
	if !mode.Single() {
		return nil
	}
	if s := a.slots[mode.index()]; s != nil {
		return s.handler
	}
	return nil
}

// DragOwner returns the mode owning the current drag, or ModeNone.
func (a *Arbiter) DragOwner() Mode { return a.owner }

// Receiver returns the bound receiver, or nil.
func (a *Arbiter) Receiver() Receiver { return a.receiver }

// Activate makes mode active. Activating an active mode is a no-op that
// reports false. Activating an exclusive mode first rejects the other
// active exclusive mode.
func (a *Arbiter) Activate(mode Mode) bool {
	invariant(mode.Single(), "Activate needs a single mode, got %v", mode)
	a.checkReceiver()
	if a.active.Has(mode) {
		return false
	}
	if ModeExclusive.Has(mode) {
		a.Reject(ModeExclusive &^ mode)
	}

	factory := a.factories[mode.index()]
	if factory == nil {
		factory = DefaultHandlerFactory
	}
	h := factory(mode)
	invariant(h != nil, "no handler for mode %v", mode)

	env := &HandlerEnv{mode: mode, arbiter: a}
	a.slots[mode.index()] = &handlerSlot{handler: h, env: env}
	a.order = append(a.order, mode)
	a.active |= mode
	h.Start(env)

	a.log.Debug("mode activated", slog.String("mode", mode.String()),
		slog.String("active", a.active.String()))
	a.events.Publish(NewEvent(EventModeActivated, ModePayload{Modes: mode}))
	a.events.Publish(NewEvent(EventModeChanged, ModePayload{Modes: a.active}))
	return true
}

// Deactivate rejects a single active mode.
func (a *Arbiter) Deactivate(mode Mode) bool {
	invariant(mode.Single(), "Deactivate needs a single mode, got %v", mode)
	return a.Reject(mode)
}

// Reject destroys the handlers of every active mode in modes, in increasing
// bit order, and broadcasts one modes-rejected notification. Inactive modes
// are ignored. It reports false when nothing was active.
func (a *Arbiter) Reject(modes Mode) bool {
	a.checkReceiver()
	rejected := modes & a.active
	if rejected == ModeNone {
		return false
	}
	rejected.Each(func(m Mode) {
		if a.owner == m {
			a.owner = ModeNone
		}
		s := a.slots[m.index()]
		s.handler.Reject()
		s.env.detached = true
		a.slots[m.index()] = nil
		a.order = slices.DeleteFunc(a.order, func(o Mode) bool { return o == m })
		a.active &^= m
	})

	a.log.Debug("modes rejected", slog.String("modes", rejected.String()),
		slog.String("active", a.active.String()))
	a.events.Publish(NewEvent(EventModesRejected, ModePayload{Modes: rejected}))
	a.events.Publish(NewEvent(EventModeChanged, ModePayload{Modes: a.active}))
	return true
}

// Finish rejects every mode, disconnects the receiver, broadcasts finished
// and reactivates Move. Afterwards the active set is exactly Move.
func (a *Arbiter) Finish() {
	a.Reject(a.active)
	recv := a.receiver
	a.unbind()
	a.log.Debug("finished", slog.Bool("receiver", recv != nil))
	a.events.Publish(NewEvent(EventFinished, FinishedPayload{Receiver: recv}))
	a.Activate(ModeMove)
}

// Bind connects r as the single receiver of domain events until ctx is done
// or Finish runs. A previous receiver is replaced unless it is live, that is
// an exclusive mode is active on its behalf; then Bind reports false.
func (a *Arbiter) Bind(ctx context.Context, r Receiver) bool {
	a.checkReceiver()
	if r == nil {
		return false
	}
	if a.receiver != nil && a.active&ModeExclusive != 0 {
		a.log.Debug("bind refused", slog.String("active", a.active.String()))
		return false
	}
	a.unbind()
	if ctx == nil {
		ctx = context.Background()
	}
	a.receiver = r
	a.recvCtx = ctx
	a.recvSub = a.events.Subscribe(r.Receive)
	return true
}

func (a *Arbiter) unbind() {
	a.recvSub.Cancel()
	a.recvSub = Subscription{}
	a.receiver = nil
	a.recvCtx = nil
}

// checkReceiver finishes the session when the receiver's context is done.
func (a *Arbiter) checkReceiver() {
	if a.recvCtx == nil {
		return
	}
	select {
	case <-a.recvCtx.Done():
		a.log.Debug("receiver gone", slog.Any("cause", context.Cause(a.recvCtx)))
		a.recvCtx = nil
		a.Finish()
	default:
	}
}

// PointerDown starts a drag session owned by the first active handler in
// activation order. It reports false when no handler is active.
func (a *Arbiter) PointerDown(ev PointerEvent) bool {
	a.checkReceiver()
	if a.view == nil || len(a.order) == 0 {
		return false
	}
	a.owner = a.order[0]
	ev.World = a.view.ScreenToWorld(ev.Screen)
	return a.slots[a.owner.index()].handler.PointerDown(ev)
}

// PointerMove routes to the drag owner only.
func (a *Arbiter) PointerMove(ev PointerEvent) bool {
	a.checkReceiver()
	if a.view == nil || a.owner == ModeNone {
		return false
	}
	ev.World = a.view.ScreenToWorld(ev.Screen)
	return a.slots[a.owner.index()].handler.PointerMove(ev)
}

// PointerUp routes to the drag owner and ends the drag session.
func (a *Arbiter) PointerUp(ev PointerEvent) bool {
	a.checkReceiver()
	owner := a.owner
	a.owner = ModeNone
	if a.view == nil || owner == ModeNone {
		return false
	}
	ev.World = a.view.ScreenToWorld(ev.Screen)
	return a.slots[owner.index()].handler.PointerUp(ev)
}

// KeyPress routes to the drag owner when it handles keys, else to the first
// active handler that does.
func (a *Arbiter) KeyPress(ev KeyEvent) bool {
	a.checkReceiver()
	if kh := a.keyHandler(); kh != nil {
		return kh.KeyPress(ev)
	}
	return false
}

// KeyRelease routes like KeyPress.
func (a *Arbiter) KeyRelease(ev KeyEvent) bool {
	a.checkReceiver()
	if kh := a.keyHandler(); kh != nil {
		return kh.KeyRelease(ev)
	}
	return false
}

func (a *Arbiter) keyHandler() KeyHandler {
	if a.owner != ModeNone {
		if kh, ok := a.slots[a.owner.index()].handler.(KeyHandler); ok {
			return kh
		}
	}
	for _, m := range a.order {
		if kh, ok := a.slots[m.index()].handler.(KeyHandler); ok {
			return kh
		}
	}
	return nil
}

// applyTransform moves the view by a handler-requested delta. Scale changes
// stay within the configured zoom levels.
func (a *Arbiter) applyTransform(d TransformDelta) {
	if a.view == nil {
		return
	}
	if d.Translate != (Vec2{}) {
		var origin Vec2
		a.view.PlaceWorldAt(a.view.ScreenToWorld(origin), origin.Add(d.Translate))
	}
	if d.Scale > 0 && d.Scale != 1 && a.cfg.ZoomEnabled {
		lo := a.view.ZoomLevelToScale(a.cfg.MinZoomLevel)
		hi := a.view.ZoomLevelToScale(a.cfg.MaxZoomLevel)
		a.view.ScaleAt(clamp(a.view.Scale()*d.Scale, lo, hi), d.Pivot)
	}
	if d.Rotate != 0 && a.cfg.RotationEnabled {
		a.view.RotateAt(d.Rotate, d.Pivot)
	}
	a.view.RequestRedraw()
}
