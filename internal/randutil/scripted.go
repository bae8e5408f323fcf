package randutil

import "fmt"

// Scripted is a Source that replays fixed values, for tests that need to
// force a particular die face, shuffle or coin flip. Once a queue is drained
// it returns zero.
type Scripted struct {
	Ints   []int
	Floats []float64
}

// NewScripted returns a Scripted source that yields ints from IntN in order.
func NewScripted(ints ...int) *Scripted {
	return &Scripted{Ints: ints}
}

// WithFloats queues values for Float64 and returns the receiver.
func (s *Scripted) WithFloats(floats ...float64) *Scripted {
	s.Floats = append(s.Floats, floats...)
	return s
}

// IntN pops the next scripted int. A value outside [0, n) is a broken test
// script and panics.
func (s *Scripted) IntN(n int) int {
	if n <= 0 {
		panic("randutil: IntN called with n <= 0")
	}
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("randutil: scripted value %d out of range [0,%d)", v, n))
	}
	return v
}

// Float64 pops the next scripted float.
func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}
