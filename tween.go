package grove

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween interpolates one or more float64 fields from their value at
// creation time to target values over a fixed duration, shaped by a gween
// easing function.
//
// Tweens are driven by absolute timestamps, not frame deltas: Update takes
// the driver's current time in seconds and derives the elapsed progress
// internally. This is deliberate — tweens are wall-clock animations, while
// entity physics is frame-stepped.
//
// The tween holds plain pointers into the target; it does not own the
// target and must not outlive it. There is no pause, resume, or seek: a
// tween is created, updated until done, and dropped.
type Tween struct {
	tweens   []*gween.Tween
	fields   []*float64
	duration float32
	easing   ease.TweenFunc
	last     float64 // timestamp of the previous Update (starts at startTime)
	elapsed  float32 // progress accumulated so far, in seconds
	done     bool
}

// NewTween creates a tween starting at the absolute time startTime (seconds)
// with the given duration (seconds) and easing function.
// Panics if duration <= 0.
func NewTween(startTime, duration float64, fn ease.TweenFunc) *Tween {
	if duration <= 0 {
		panic("grove: tween duration must be positive")
	}
	return &Tween{
		duration: float32(duration),
		last:     startTime,
		easing:   fn,
	}
}

// Animate adds a field to the tween, interpolating from the field's current
// value (captured now, at registration — not at first update) to the given
// target. Returns the tween for chaining.
func (t *Tween) Animate(field *float64, to float64) *Tween {
	t.fields = append(t.fields, field)
	t.tweens = append(t.tweens, gween.New(float32(*field), float32(to), t.duration, t.easing))
	return t
}

// Update advances the tween to the absolute time now and writes the eased
// values into the tracked fields. Returns true while the tween is still
// active; once elapsed time reaches the duration the final values are set
// exactly and Update returns false. Timestamps before the start time leave
// the fields at their eased t=0 values.
func (t *Tween) Update(now float64) bool {
	if t.done {
		return false
	}
	// Timestamps at or before the previous update (including anything
	// before the start time) contribute no progress and leave the time
	// base untouched.
	dt := now - t.last
	if dt > 0 {
		t.last = now
	} else {
		dt = 0
	}
	t.elapsed += float32(dt)

	// A tween with no fields still runs out its duration, so the set
	// drops it instead of retaining it forever.
	if len(t.tweens) == 0 {
		t.done = t.elapsed >= t.duration
		return !t.done
	}

	allDone := true
	for i, tw := range t.tweens {
		val, finished := tw.Update(float32(dt))
		*t.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	t.done = allDone
	return !t.done
}

// Done reports whether the tween has completed.
func (t *Tween) Done() bool {
	return t.done
}

// TweenPosition creates a tween animating node.X and node.Y to the given
// coordinates. Convenience for the common case.
func TweenPosition(node *Node, toX, toY, startTime, duration float64, fn ease.TweenFunc) *Tween {
	t := NewTween(startTime, duration, fn)
	t.Animate(&node.X, toX)
	t.Animate(&node.Y, toY)
	return t
}

// TweenSet owns the active tweens for a world. Completed tweens are removed
// on the advance that finishes them; there is no external cancellation.
type TweenSet struct {
	active []*Tween
}

// Add registers a tween with the set and returns it.
func (ts *TweenSet) Add(t *Tween) *Tween {
	ts.active = append(ts.active, t)
	return t
}

// Advance updates every active tween with the absolute time now and drops
// the ones that completed. Active tweens keep their relative order.
func (ts *TweenSet) Advance(now float64) {
	kept := ts.active[:0]
	for _, t := range ts.active {
		if t.Update(now) {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(ts.active); i++ {
		ts.active[i] = nil
	}
	ts.active = kept
}

// Len returns the number of active tweens.
func (ts *TweenSet) Len() int {
	return len(ts.active)
}
