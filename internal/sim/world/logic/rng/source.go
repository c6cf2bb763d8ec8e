package rng

import (
	"math"
	"math/rand"
)

// Source yields uniform reals in [0,1).
type Source interface {
	Float64() float64
}

type Seeded struct {
	r *rand.Rand
}

func NewSeeded(seed int64) *Seeded {
	return &Seeded{r: rand.New(rand.NewSource(seed))}
}

func (s *Seeded) Float64() float64 { return s.r.Float64() }

// Sequence replays fixed values in order and wraps around.
// Values outside [0,1) are clamped into range.
type Sequence struct {
	vals []float64
	next int
}

func NewSequence(vals ...float64) *Sequence {
	return &Sequence{vals: append([]float64(nil), vals...)}
}

func (s *Sequence) Float64() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.next%len(s.vals)]
	s.next++
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v >= 1:
		return math.Nextafter(1, 0)
	}
	return v
}
