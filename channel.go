package mapview

// EventChannel is a one-to-many bus for domain Events. Subscribers run
// synchronously in subscription order on the publishing goroutine.
type EventChannel struct {
	subs   []subscriber
	nextID uint32
	closed bool
}

type subscriber struct {
	id uint32
	fn func(Event)
}

// Subscription allows removing a subscriber from an EventChannel.
type Subscription struct {
	id uint32
	ch *EventChannel
}

// NewEventChannel creates an empty channel.
func NewEventChannel() *EventChannel {
	return &EventChannel{}
}

// Subscribe registers fn for every published event. Subscribing to a closed
// channel returns an inert Subscription.
func (c *EventChannel) Subscribe(fn func(Event)) Subscription {
	if c.closed {
		return Subscription{}
	}
	c.nextID++
	c.subs = append(c.subs, subscriber{id: c.nextID, fn: fn})
	return Subscription{id: c.nextID, ch: c}
}

// Cancel removes the subscriber. It is safe to call more than once and from
// inside a delivery.
func (s Subscription) Cancel() {
	if s.ch == nil {
		return
	}
	subs := s.ch.subs
	for i := range subs {
		if subs[i].id == s.id {
			// Copy instead of shifting in place so a delivery loop holding
			// the old slice is not disturbed.
			next := make([]subscriber, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			s.ch.subs = next
			return
		}
	}
}

// Active reports whether the subscription is still registered.
func (s Subscription) Active() bool {
	if s.ch == nil {
		return false
	}
	for _, sub := range s.ch.subs {
		if sub.id == s.id {
			return true
		}
	}
	return false
}

// Publish delivers ev to every subscriber registered when Publish was called.
func (c *EventChannel) Publish(ev Event) {
	for _, sub := range c.subs {
		sub.fn(ev)
	}
}

// Len returns the number of subscribers.
func (c *EventChannel) Len() int {
	return len(c.subs)
}

// Close drops every subscriber. Later Publish calls deliver nothing.
func (c *EventChannel) Close() {
	c.subs = nil
	c.closed = true
}
