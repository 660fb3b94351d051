package contfrac

import (
	"fmt"
	"math"
	"slices"

	"github.com/samcharles93/contfrac/internal/tensor"
)

// state is the recurrence state of a whole batch, one entry per active
// element in each slice. It implements elementwise.Work.
type state[T tensor.Number] struct {
	ad  *adapter[T]
	log bool

	n    int // current term index, shared by the batch
	fn   []T // running convergent (or its log)
	cnm1 []T // C_{n-1}
	dnm1 []T // D_{n-1}
	cndn []T // last correction C_n D_n

	ab tensor.Array[T] // coefficient pairs of the current term

	eps  float64 // compared against real residuals
	tiny T       // substitute for a vanished denominator

	f []T // retired convergents, by original slot
}

// initialize evaluates the leading terms, broadcasts everything to a common
// shape and builds the starting state. It returns the state, the broadcast
// shape and the number of elements.
func initialize[T tensor.Number](ad *adapter[T], args []tensor.Array[T], r resolved) (*state[T], []int, error) {
	a0, err := ad.a(0, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("a(0): %w", err)
	}
	b0, err := ad.b(0, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("b(0): %w", err)
	}

	shapes := make([][]int, 0, len(args)+2)
	shapes = append(shapes, a0.Shape, b0.Shape)
	for _, arg := range args {
		shapes = append(shapes, arg.Shape)
	}
	shape, err := tensor.BroadcastShapes(shapes...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrShape, err)
	}
	size := tensor.ShapeSize(shape)

	// a(0) only fixes the shape; its value is not part of the fraction.
	if _, err := tensor.BroadcastTo(a0, shape); err != nil {
		return nil, nil, fmt.Errorf("%w: a(0): %w", ErrShape, err)
	}
	bn, err := tensor.BroadcastTo(b0, shape)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: b(0): %w", ErrShape, err)
	}

	flat := make([]tensor.Array[T], len(args))
	for i, arg := range args {
		full, err := tensor.BroadcastTo(arg, shape)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: args[%d]: %w", ErrShape, i, err)
		}
		flat[i] = tensor.Vector(full.Data)
	}
	ad.bind(flat, size)

	s := &state[T]{
		ad:   ad,
		log:  r.log,
		eps:  r.eps,
		tiny: tensor.FromFloat[T](r.tiny),
		f:    make([]T, size),
	}

	// f_0 = C_0 = b_0, or tiny if b_0 vanishes; D_0 = 0.
	s.fn = bn.Data
	for i, v := range s.fn {
		if s.isZero(v) {
			s.fn[i] = s.tiny
		}
	}
	s.cnm1 = slices.Clone(s.fn)
	s.dnm1 = make([]T, size)
	s.cndn = make([]T, size)
	if r.log {
		tensor.Fill(s.dnm1, tensor.FromFloat[T](math.Inf(-1)))
	}
	// +Inf makes the first termination check fail in both domains.
	tensor.Fill(s.cndn, tensor.FromFloat[T](math.Inf(1)))
	return s, shape, nil
}

// isZero reports whether v is the additive identity of the active domain.
func (s *state[T]) isZero(v T) bool {
	if s.log {
		return tensor.IsNegInf(v)
	}
	return v == 0
}

func (s *state[T]) Advance() int {
	s.n++
	return s.n
}

func (s *state[T]) Evaluate(n int) error {
	ab, err := s.ad.evaluate(n)
	if err != nil {
		return err
	}
	s.ab = ab
	return nil
}

func (s *state[T]) Retire(pos, slot int) {
	s.f[slot] = s.fn[pos]
}

func (s *state[T]) Compact(keep []int) {
	s.fn = tensor.Take(s.fn, s.fn, keep)
	s.cnm1 = tensor.Take(s.cnm1, s.cnm1, keep)
	s.dnm1 = tensor.Take(s.dnm1, s.dnm1, keep)
	s.cndn = tensor.Take(s.cndn, s.cndn, keep)
	s.ad.compact(keep)
}
