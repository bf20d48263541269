package core

import "math"

// SeededRandom is the counter-based generator every planet derives its
// per-instance randomness from. Each draw reads sin(counter) and advances the
// counter by exactly one, so the value of a draw depends on how many draws
// preceded it.
type SeededRandom struct {
	counter float64
}

// NewSeededRandom creates a generator whose counter starts at seed.
func NewSeededRandom(seed int64) *SeededRandom {
	return &SeededRandom{counter: float64(seed)}
}

// Draw returns the next value in [0, 1).
func (r *SeededRandom) Draw() float64 {
	x := math.Sin(r.counter) * 10000
	r.counter++
	v := x - math.Floor(x)
	// x - floor(x) can round up to 1 for tiny negative x.
	if v >= 1 {
		return 0
	}
	return v
}

// Range returns a value in [min, max).
func (r *SeededRandom) Range(min, max float64) float64 {
	return min + r.Draw()*(max-min)
}

// Counter exposes the current counter so callers can snapshot a sequence.
func (r *SeededRandom) Counter() float64 { return r.counter }

// Restore rewinds (or fast-forwards) the generator to a saved counter.
func (r *SeededRandom) Restore(counter float64) { r.counter = counter }
