// Package mapview is the interaction layer of a map widget for [Ebitengine]:
// touch gestures with flick physics, mutually exclusive editing modes and a
// typed domain-event channel.
//
// # Quick start
//
// [Controller] wires everything for one widget. Call [Controller.Update]
// from your [ebiten.Game] and draw with the [Camera] it drives:
//
//	ctrl := mapview.NewController(mapview.Rect{Width: 800, Height: 600}, mapview.DefaultConfig())
//
//	func (g *Game) Update() error { return g.ctrl.Update() }
//
// # Gestures
//
// [Recognizer] turns [TouchSample] values into pan, flick and pinch gestures.
// Three state machines are composed: contact count (zero, one, two), pinch
// (inactive, active) and pan (inactive, active, flick). A pan starts once the
// first contact moves past the drag threshold; on release a fast enough
// gesture continues as a flick that decelerates to rest. A pinch needs two
// contacts and may be vetoed by a listener:
//
//	rec.OnGesture(func(ev *mapview.GestureEvent) {
//		if ev.Kind == mapview.GesturePinchStarted && locked {
//			ev.Accepted = false
//		}
//	})
//
// Flicks are animated by a [Scheduler]; [FrameLoop] is ticked by the
// Controller once per frame.
//
// # Modes
//
// [Arbiter] keeps the active [Mode] set. Move, Rotate and Scale combine
// freely; Select, Create and Edit exclude each other. Each active mode is
// served by a [ModeHandler]; the first active handler owns a pointer drag
// until release. [Arbiter.Finish] tears everything down and leaves exactly
// Move active.
//
// # Domain events
//
// Handlers publish [Event] values on the arbiter's [EventChannel]. Every
// event carries an [EventKind] and a payload of the type fixed by the kind;
// read it with [PayloadOf] or [MustPayload]. One [Receiver] at a time is
// bound with [Arbiter.Bind] and answers capability queries by clearing
// [Query.Allowed].
//
// # Configuration
//
// [Config] holds the tuning values. [ParseConfig] reads TOML or YAML:
//
//	max_velocity = 2500
//	deceleration = 2500
//	velocity_sample_period = "50ms"
//
// # Scripted input
//
// [Controller.InjectClick], [Controller.InjectSwipe] and friends queue
// synthetic input frames; [LoadScript] reads a JSON sequence of them for
// automated runs.
//
// [Ebitengine]: https://ebitengine.org
package mapview
