package mapview

import (
	"fmt"
	"math/bits"
	"strings"
)

// Mode is a bit-set over the six interaction modes. A single bit names one
// mode; several bits name a set of modes.
type Mode uint8

const (
	ModeMove   Mode = 1 << iota // drag pans the view
	ModeRotate                  // drag rotates the view
	ModeScale                   // drag zooms the view
	ModeSelect                  // tap selects objects
	ModeCreate                  // taps collect points for a new object
	ModeEdit                    // drag moves points of existing objects

	// ModeNone is the empty set.
	ModeNone Mode = 0
	// ModeAll contains every mode.
	ModeAll = ModeMove | ModeRotate | ModeScale | ModeSelect | ModeCreate | ModeEdit
	// ModeExclusive holds the modes that are pairwise mutually exclusive.
	ModeExclusive = ModeSelect | ModeCreate | ModeEdit
	// ModeOrthogonal holds the modes that combine freely with any other.
	ModeOrthogonal = ModeMove | ModeRotate | ModeScale
)

const modeCount = 6

var modeNames = [modeCount]string{"move", "rotate", "scale", "select", "create", "edit"}

// Has reports whether every bit of m2 is set in m.
func (m Mode) Has(m2 Mode) bool { return m&m2 == m2 }

// Single reports whether m names exactly one mode.
func (m Mode) Single() bool { return m != 0 && m&ModeAll == m && bits.OnesCount8(uint8(m)) == 1 }

// Each calls fn for every mode in m in increasing bit order.
func (m Mode) Each(fn func(Mode)) {
	for i := 0; i < modeCount; i++ {
		if bit := Mode(1) << i; m&bit != 0 {
			fn(bit)
		}
	}
}

// index returns the bit position of a single mode.
func (m Mode) index() int {
	return bits.TrailingZeros8(uint8(m))
}

// String returns the mode names joined by "|", or "none".
func (m Mode) String() string {
	if m == ModeNone {
		return "none"
	}
	var names []string
	m.Each(func(b Mode) { names = append(names, modeNames[b.index()]) })
	if extra := m &^ ModeAll; extra != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint8(extra)))
	}
	return strings.Join(names, "|")
}

// ParseMode parses a mode set written as names joined by "|".
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return ModeNone, nil
	}
	var m Mode
	for _, part := range strings.Split(s, "|") {
		part = strings.ToLower(strings.TrimSpace(part))
		found := false
		for i, name := range modeNames {
			if part == name {
				m |= Mode(1) << i
				found = true
				break
			}
		}
		if !found {
			return ModeNone, fmt.Errorf("unknown mode %q", part)
		}
	}
	return m, nil
}
