// Package dice provides the randomness abstraction consumed by the battle
// formula engine, together with the production, seeded, scripted and logged
// implementations of it.
package dice

// Source is the randomness provider for every battle formula.
//
// The bounds are half-open: a source draws from [min, max). This is what makes
// Next(0, len(xs)) a valid index and Next(1, 2) always 1.
type Source interface {
	// Next returns an int in [min, max).
	//
	// Postcondition: when max <= min the result is min.
	Next(min, max int) int
}
