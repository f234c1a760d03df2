package ecs

import (
	"github.com/phanxgames/mapview"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for gesture notifications.
var GestureEventType = events.NewEventType[mapview.GestureEvent]()

// DomainEventType is the Donburi event type for mode handler domain events.
var DomainEventType = events.NewEventType[mapview.Event]()

// Sink publishes mapview events into a Donburi world.
type Sink struct {
	world donburi.World
}

// NewDonburiSink creates a Sink for world.
func NewDonburiSink(world donburi.World) *Sink {
	return &Sink{world: world}
}

// Gesture queues a copy of a gesture notification. It never vetoes a pinch.
func (s *Sink) Gesture(ev *mapview.GestureEvent) {
	GestureEventType.Publish(s.world, *ev)
}

// Receive queues a domain event. A Sink can be bound as the receiver, but
// capability queries it receives are answered before systems see them, so
// it always allows them.
func (s *Sink) Receive(ev mapview.Event) {
	DomainEventType.Publish(s.world, ev)
}

// Attach subscribes the sink to a controller's gesture notifications and
// domain-event channel. The returned function detaches it.
func (s *Sink) Attach(c *mapview.Controller) (detach func()) {
	gh := c.Gestures().OnGesture(s.Gesture)
	sub := c.Modes().Events().Subscribe(s.Receive)
	return func() {
		gh.Remove()
		sub.Cancel()
	}
}
