package mapview

import "fmt"

// EventKind tags a domain Event. The set is closed.
type EventKind uint8

const (
	EventPress            EventKind = iota // PointerPayload
	EventRelease                           // PointerPayload
	EventTap                               // TapPayload
	EventScope                             // *ScopeQuery
	EventCanSelect                         // *Query
	EventCanAddPoint                       // *Query
	EventCanRemovePoint                    // *Query
	EventCanChangePoint                    // *Query
	EventMarkMode                          // *ModeQuery
	EventCachedMode                        // *ModeQuery
	EventSelected                          // ObjectList
	EventEdited                            // ObjectList
	EventObjectList                        // ObjectList
	EventClickedPoints                     // PointList
	EventAllClickedPoints                  // PointList
	EventPointChanged                      // PointRef
	EventPointRemoved                      // PointRef
	EventPointInserted                     // PointRef
	EventPointDragged                      // PointRef
	EventPointDropped                      // PointRef
	EventCustom                            // CustomPayload
	EventModesRejected                     // ModePayload
	EventFinished                          // FinishedPayload
	EventModeActivated                     // ModePayload
	EventModeChanged                       // ModePayload
)

var eventKindNames = [...]string{
	EventPress:            "press",
	EventRelease:          "release",
	EventTap:              "tap",
	EventScope:            "scope",
	EventCanSelect:        "can-select",
	EventCanAddPoint:      "can-add-point",
	EventCanRemovePoint:   "can-remove-point",
	EventCanChangePoint:   "can-change-point",
	EventMarkMode:         "mark-mode",
	EventCachedMode:       "cached-mode",
	EventSelected:         "selected",
	EventEdited:           "edited",
	EventObjectList:       "object-list",
	EventClickedPoints:    "clicked-points",
	EventAllClickedPoints: "all-clicked-points",
	EventPointChanged:     "point-changed",
	EventPointRemoved:     "point-removed",
	EventPointInserted:    "point-inserted",
	EventPointDragged:     "point-dragged",
	EventPointDropped:     "point-dropped",
	EventCustom:           "custom",
	EventModesRejected:    "modes-rejected",
	EventFinished:         "finished",
	EventModeActivated:    "mode-activated",
	EventModeChanged:      "mode-changed",
}

// String returns the kind name.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Object is an opaque map object owned by the receiver, for example a
// polyline or a marker.
type Object any

// PointerPayload carries a press or release.
type PointerPayload struct {
	Screen Vec2
	World  Vec2
	Button MouseButton
}

// TapPayload carries a tap and the objects hit under it.
type TapPayload struct {
	Screen Vec2
	World  Vec2
	Hits   []Object
}

// ScopeQuery asks the receiver which world area a handler may operate on.
// Bounds starts as the visible area; the receiver may narrow it.
type ScopeQuery struct {
	Bounds Rect
}

// Query asks the receiver whether an operation on an object is allowed.
// Allowed starts true; the receiver may refuse by clearing it.
type Query struct {
	Object      Object
	MetricIndex int
	PointIndex  int
	Pos         Vec2
	Allowed     bool
}

// ModeQuery asks the receiver for a handler-specific mode value.
type ModeQuery struct {
	Value int
}

// ObjectList carries selected, edited or listed objects.
type ObjectList struct {
	Objects []Object
}

// PointList carries clicked world points.
type PointList struct {
	Points []Vec2
}

// PointRef identifies one vertex of an object and its position. MetricIndex
// selects the part of a multi-part object, PointIndex the vertex inside it.
type PointRef struct {
	Object      Object
	MetricIndex int
	PointIndex  int
	Pos         Vec2
}

// CustomPayload carries handler-specific data.
type CustomPayload struct {
	Name  string
	Value any
}

// ModePayload carries a mode set.
type ModePayload struct {
	Modes Mode
}

// FinishedPayload carries the receiver that was bound when the arbiter
// finished, or nil.
type FinishedPayload struct {
	Receiver Receiver
}

// Event is a single tagged domain event. The payload type is fixed by the
// kind; construct events with NewEvent.
type Event struct {
	kind    EventKind
	payload any
}

// NewEvent builds an event, panicking when payload does not match kind.
func NewEvent(kind EventKind, payload any) Event {
	invariant(payloadMatches(kind, payload), "payload %T does not match event kind %v", payload, kind)
	return Event{kind: kind, payload: payload}
}

// Kind returns the event tag.
func (e Event) Kind() EventKind { return e.kind }

// Payload returns the raw payload.
func (e Event) Payload() any { return e.payload }

// String returns a short description for logs.
func (e Event) String() string {
	return fmt.Sprintf("%v %+v", e.kind, e.payload)
}

// PayloadOf returns the payload as T, or false when the event carries a
// different payload type.
func PayloadOf[T any](e Event) (T, bool) {
	p, ok := e.payload.(T)
	return p, ok
}

// MustPayload returns the payload as T. A mismatch is a programming error
// and panics.
func MustPayload[T any](e Event) T {
	p, ok := e.payload.(T)
	if !ok {
		var zero T
		invariant(false, "event %v carries %T, not %T", e.kind, e.payload, zero)
	}
	return p
}

func payloadMatches(kind EventKind, payload any) bool {
	switch kind {
	case EventPress, EventRelease:
		_, ok := payload.(PointerPayload)
		return ok
	case EventTap:
		_, ok := payload.(TapPayload)
		return ok
	case EventScope:
		p, ok := payload.(*ScopeQuery)
		return ok && p != nil
	case EventCanSelect, EventCanAddPoint, EventCanRemovePoint, EventCanChangePoint:
		p, ok := payload.(*Query)
		return ok && p != nil
	case EventMarkMode, EventCachedMode:
		p, ok := payload.(*ModeQuery)
		return ok && p != nil
	case EventSelected, EventEdited, EventObjectList:
		_, ok := payload.(ObjectList)
		return ok
	case EventClickedPoints, EventAllClickedPoints:
		_, ok := payload.(PointList)
		return ok
	case EventPointChanged, EventPointRemoved, EventPointInserted, EventPointDragged, EventPointDropped:
		_, ok := payload.(PointRef)
		return ok
	case EventCustom:
		_, ok := payload.(CustomPayload)
		return ok
	case EventModesRejected, EventModeActivated, EventModeChanged:
		_, ok := payload.(ModePayload)
		return ok
	case EventFinished:
		_, ok := payload.(FinishedPayload)
		return ok
	default:
		return false
	}
}
