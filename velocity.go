package mapview

import "time"

// velocitySampler estimates the screen velocity of the gesture midpoint.
// Only the last sampled position and time are kept; a new estimate is taken
// once at least period has elapsed since the previous one so bursty input
// does not amplify jitter.
type velocitySampler struct {
	period  time.Duration
	max     float64
	lastPos Vec2
	last    time.Duration
	vel     Vec2
}

// reset starts sampling from pos at now with zero velocity.
func (v *velocitySampler) reset(pos Vec2, now time.Duration) {
	v.lastPos = pos
	v.last = now
	v.vel = Vec2{}
}

// sample feeds the current position. The previous velocity is retained when
// less than period has elapsed since the last sample.
func (v *velocitySampler) sample(pos Vec2, now time.Duration) {
	elapsed := now - v.last
	if elapsed < v.period || elapsed <= 0 {
		return
	}
	secs := elapsed.Seconds()
	v.vel = Vec2{
		X: clamp((pos.X-v.lastPos.X)/secs, -v.max, v.max),
		Y: clamp((pos.Y-v.lastPos.Y)/secs, -v.max, v.max),
	}
	v.lastPos = pos
	v.last = now
}

// release returns the velocity to use for a flick at now. A stale estimate,
// one not refreshed within period, reports zero.
func (v *velocitySampler) release(now time.Duration) Vec2 {
	if now-v.last < v.period {
		return v.vel
	}
	return Vec2{}
}

