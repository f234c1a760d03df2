package mapview

import (
	"testing"
	"time"
)

func TestInertiaEasesOut(t *testing.T) {
	a := newInertia(Vec2{0, 0}, Vec2{100, -40}, 200*time.Millisecond)

	if a.advance(100 * time.Millisecond) {
		t.Fatal("finished halfway")
	}
	// Ease-out covers three quarters of the distance in half the time.
	if got := a.position(); !vecNear(got, Vec2{75, -30}, 0.01) {
		t.Errorf("position at half time = %v, want (75,-30)", got)
	}

	if !a.advance(150 * time.Millisecond) {
		t.Fatal("not finished after the full duration")
	}
	if got := a.position(); got != (Vec2{100, -40}) {
		t.Errorf("final position = %v, want (100,-40)", got)
	}
}
