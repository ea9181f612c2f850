package dice

import "sync"

// StackSource replays pre-programmed values last-in-first-out, ignoring the
// requested bounds. The most recently pushed value is drawn first, so a
// formula that draws a, then b, then c is forced with NewStackSource(c, b, a).
type StackSource struct {
	mu     sync.Mutex
	values []int
}

// NewStackSource creates a StackSource holding values; the last one is drawn first.
func NewStackSource(values ...int) *StackSource {
	vs := make([]int, len(values))
	copy(vs, values)
	return &StackSource{values: vs}
}

// Push places v on top of the stack so it is the next value drawn.
func (s *StackSource) Push(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, v)
}

// Remaining reports how many values are left.
func (s *StackSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// Next pops and returns the top value.
//
// Precondition: at least one value remains. Panics with
// "dice: StackSource exhausted" otherwise.
func (s *StackSource) Next(_, _ int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		panic("dice: StackSource exhausted")
	}
	last := len(s.values) - 1
	v := s.values[last]
	s.values = s.values[:last]
	return v
}
