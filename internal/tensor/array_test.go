package tensor

import (
	"errors"
	"slices"
	"testing"
)

func TestBroadcastShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		shapes [][]int
		want   []int
	}{
		{"scalars", [][]int{{}, {}}, []int{}},
		{"scalar and vector", [][]int{{}, {3}}, []int{3}},
		{"column and row", [][]int{{2, 1}, {1, 3}}, []int{2, 3}},
		{"trailing alignment", [][]int{{4, 2, 3}, {3}}, []int{4, 2, 3}},
		{"ones", [][]int{{1}, {1, 1}}, []int{1, 1}},
	}
	for _, tc := range tests {
		got, err := BroadcastShapes(tc.shapes...)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if !slices.Equal(got, tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestBroadcastShapesMismatch(t *testing.T) {
	t.Parallel()
	_, err := BroadcastShapes([]int{2}, []int{3})
	if !errors.Is(err, ErrBroadcast) {
		t.Fatalf("expected ErrBroadcast, got %v", err)
	}
}

func TestBroadcastToColumnRow(t *testing.T) {
	t.Parallel()

	col := FromData([]float64{1, 2}, 2, 1)
	got, err := BroadcastTo(col, []int{2, 3})
	if err != nil {
		t.Fatalf("broadcast column: %v", err)
	}
	want := []float64{1, 1, 1, 2, 2, 2}
	if !slices.Equal(got.Data, want) {
		t.Fatalf("column: got %v want %v", got.Data, want)
	}

	row := Vector([]float64{7, 8, 9})
	got, err = BroadcastTo(row, []int{2, 3})
	if err != nil {
		t.Fatalf("broadcast row: %v", err)
	}
	want = []float64{7, 8, 9, 7, 8, 9}
	if !slices.Equal(got.Data, want) {
		t.Fatalf("row: got %v want %v", got.Data, want)
	}
}

func TestBroadcastToDoesNotAlias(t *testing.T) {
	t.Parallel()

	src := Vector([]float64{1, 2, 3})
	out, err := BroadcastTo(src, []int{3})
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	out.Data[0] = 42
	if src.Data[0] != 1 {
		t.Fatalf("broadcast result aliases its input")
	}
}

func TestBroadcastToRejectsShrink(t *testing.T) {
	t.Parallel()
	_, err := BroadcastTo(Vector([]float64{1, 2, 3}), []int{1})
	if !errors.Is(err, ErrBroadcast) {
		t.Fatalf("expected ErrBroadcast, got %v", err)
	}
}

func TestTakeCompactsInPlace(t *testing.T) {
	t.Parallel()

	data := []int{10, 11, 12, 13, 14}
	got := Take(data, data, []int{1, 3, 4})
	if !slices.Equal(got, []int{11, 13, 14}) {
		t.Fatalf("got %v", got)
	}
}

func TestResultType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   []DType
		want DType
	}{
		{[]DType{Int, Int}, Float64},
		{[]DType{Int, Float32}, Float64},
		{[]DType{Float32, Float32}, Float32},
		{[]DType{Float32, Float64}, Float64},
		{[]DType{Float32, Complex64}, Complex64},
		{[]DType{Float64, Complex64}, Complex128},
		{[]DType{Int, Complex128}, Complex128},
	}
	for _, tc := range tests {
		if got := ResultType(tc.in...); got != tc.want {
			t.Errorf("ResultType(%v): got %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestEps(t *testing.T) {
	t.Parallel()
	if got := Eps[float64](); got != 2.220446049250313e-16 {
		t.Fatalf("float64 eps: got %g", got)
	}
	if got := Eps[complex64](); got != float64(float32(1.1920929e-07)) {
		t.Fatalf("complex64 eps: got %g", got)
	}
}
