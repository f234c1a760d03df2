package mapview

import "time"

// TouchPhase is the lifecycle phase of a contact point as reported by the
// input source.
type TouchPhase uint8

const (
	TouchPressed    TouchPhase = iota // contact began this event
	TouchMoved                        // contact moved since the previous event
	TouchStationary                   // contact is down but did not move
	TouchReleased                     // contact ended this event
)

// String returns the phase name.
func (p TouchPhase) String() string {
	switch p {
	case TouchPressed:
		return "pressed"
	case TouchMoved:
		return "moved"
	case TouchStationary:
		return "stationary"
	case TouchReleased:
		return "released"
	default:
		return "unknown"
	}
}

// ContactPoint is one finger or pointer sample in screen coordinates.
type ContactPoint struct {
	ID    int
	Pos   Vec2
	Phase TouchPhase
}

// ContactSet is the ordered list of contacts for one input event.
type ContactSet []ContactPoint

// active returns the contacts that are still down, reusing buf.
func (s ContactSet) active(buf ContactSet) ContactSet {
	buf = buf[:0]
	for _, p := range s {
		if p.Phase != TouchReleased {
			buf = append(buf, p)
		}
	}
	return buf
}

// TouchSample is a normalized snapshot of the contacts for one input event.
// Time is measured from an arbitrary epoch chosen by the input source and
// must not decrease between samples.
type TouchSample struct {
	Time     time.Duration
	Contacts ContactSet
}
