// Package ecs bridges mapview interaction events into a [Donburi] world.
//
// [NewDonburiSink] republishes gesture lifecycle notifications as
// [GestureEventType] and domain events as [DomainEventType]. Events are
// queued by Donburi; systems consume them with ProcessEvents.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	detach := sink.Attach(controller)
//	defer detach()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
