package tensor

import (
	"errors"
	"fmt"
	"slices"
)

// ErrBroadcast is returned when shapes cannot be broadcast together.
var ErrBroadcast = errors.New("shapes cannot be broadcast together")

// Array is a dense row-major n-dimensional array.
//
// Shape lists the extent of every axis; an empty Shape is a scalar holding a
// single element. Data holds the flattened values and always has
// ShapeSize(Shape) elements.
type Array[T Number] struct {
	Shape []int
	Data  []T
}

// NewArray allocates a zero-filled array with the given shape.
func NewArray[T Number](shape ...int) Array[T] {
	for _, d := range shape {
		if d < 0 {
			panic("negative dimension for array")
		}
	}
	return Array[T]{
		Shape: slices.Clone(shape),
		Data:  make([]T, ShapeSize(shape)),
	}
}

// Scalar wraps a single value as a zero-dimensional array.
func Scalar[T Number](v T) Array[T] {
	return Array[T]{Shape: []int{}, Data: []T{v}}
}

// Vector wraps data as a one-dimensional array without copying.
func Vector[T Number](data []T) Array[T] {
	return Array[T]{Shape: []int{len(data)}, Data: data}
}

// FromData creates an array from existing data, checking the length.
func FromData[T Number](data []T, shape ...int) Array[T] {
	if ShapeSize(shape) != len(data) {
		panic("data length mismatch")
	}
	return Array[T]{Shape: slices.Clone(shape), Data: data}
}

// Size returns the number of elements.
func (a Array[T]) Size() int { return len(a.Data) }

// Clone returns a deep copy.
func (a Array[T]) Clone() Array[T] {
	return Array[T]{Shape: slices.Clone(a.Shape), Data: slices.Clone(a.Data)}
}

// ShapeSize returns the element count of shape.
func ShapeSize(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// BroadcastShapes combines shapes with the usual trailing-axis rules: axes
// are aligned from the right and each pair must be equal or contain a 1.
func BroadcastShapes(shapes ...[]int) ([]int, error) {
	ndim := 0
	for _, s := range shapes {
		ndim = max(ndim, len(s))
	}
	out := make([]int, ndim)
	for i := range out {
		out[i] = 1
	}
	for _, s := range shapes {
		off := ndim - len(s)
		for i, d := range s {
			switch {
			case d == out[off+i] || d == 1:
			case out[off+i] == 1:
				out[off+i] = d
			default:
				return nil, fmt.Errorf("%w: %v", ErrBroadcast, shapes)
			}
		}
	}
	return out, nil
}

// BroadcastTo materializes a in the target shape. The result never aliases
// a.Data, so callers own it.
func BroadcastTo[T Number](a Array[T], shape []int) (Array[T], error) {
	got, err := BroadcastShapes(a.Shape, shape)
	if err != nil {
		return Array[T]{}, err
	}
	if !slices.Equal(got, shape) {
		return Array[T]{}, fmt.Errorf("%w: %v to %v", ErrBroadcast, a.Shape, shape)
	}
	out := NewArray[T](shape...)
	if len(out.Data) == 0 {
		return out, nil
	}
	if len(a.Data) == 1 {
		Fill(out.Data, a.Data[0])
		return out, nil
	}

	// Source strides, zero on broadcast axes.
	ndim := len(shape)
	off := ndim - len(a.Shape)
	strides := make([]int, ndim)
	stride := 1
	for i := len(a.Shape) - 1; i >= 0; i-- {
		if a.Shape[i] != 1 {
			strides[off+i] = stride
		}
		stride *= a.Shape[i]
	}

	idx := make([]int, ndim)
	src := 0
	for dst := range out.Data {
		out.Data[dst] = a.Data[src]
		for ax := ndim - 1; ax >= 0; ax-- {
			idx[ax]++
			src += strides[ax]
			if idx[ax] < shape[ax] {
				break
			}
			src -= strides[ax] * idx[ax]
			idx[ax] = 0
		}
	}
	return out, nil
}
