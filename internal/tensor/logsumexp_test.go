package tensor

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestLogAddExpReal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x, y, want float64
	}{
		{0, 0, math.Ln2},
		{math.Log(2), math.Log(3), math.Log(5)},
		{1000, 1000, 1000 + math.Ln2},
		{-1000, 0, 0},
		{math.Inf(-1), 2, 2},
		{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
		{math.Inf(1), 3, math.Inf(1)},
	}
	for _, tc := range tests {
		got := LogAddExp(tc.x, tc.y)
		if math.IsInf(tc.want, 0) {
			if got != tc.want {
				t.Errorf("LogAddExp(%g, %g): got %g want %g", tc.x, tc.y, got, tc.want)
			}
			continue
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("LogAddExp(%g, %g): got %.17g want %.17g", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestLogAddExpFloat32(t *testing.T) {
	t.Parallel()
	got := LogAddExp(float32(0), float32(0))
	if math.Abs(float64(got)-math.Ln2) > 1e-6 {
		t.Fatalf("got %g", got)
	}
}

func TestLogAddExpComplexCarriesSign(t *testing.T) {
	t.Parallel()

	// log(5) + log(-3) in the linear domain is 5 - 3 = 2.
	x := complex(math.Log(5), 0)
	y := cmplx.Log(-3)
	got := LogAddExp(x, y)
	if d := cmplx.Abs(cmplx.Exp(got) - 2); d > 1e-12 {
		t.Fatalf("exp(result) = %v, want 2", cmplx.Exp(got))
	}

	// Exact cancellation is the log-domain zero.
	got = LogAddExp(complex(math.Log(3), 0), cmplx.Log(-3))
	if !IsNegInf(got) && real(got) > -30 {
		t.Fatalf("expected log-domain zero, got %v", got)
	}
}

func TestLogAddExpResidualForm(t *testing.T) {
	t.Parallel()

	// Re(logaddexp(x, iπ)) = log|exp(x) - 1|.
	ipi := complex(0, math.Pi)
	for _, x := range []float64{-3, -0.5, 0.25, 2} {
		got := real(LogAddExp(complex(x, 0), ipi))
		want := math.Log(math.Abs(math.Expm1(x)))
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("x=%g: got %.17g want %.17g", x, got, want)
		}
	}
	if got := real(LogAddExp(complex(0, 0), ipi)); !math.IsInf(got, -1) && got > -30 {
		t.Fatalf("x=0 should be (close to) log 0, got %g", got)
	}
	if got := real(LogAddExp(complex(math.Inf(1), 0), ipi)); !math.IsInf(got, 1) {
		t.Fatalf("x=+Inf should stay +Inf, got %g", got)
	}
}

func TestIsFiniteAndNegInf(t *testing.T) {
	t.Parallel()

	if IsFinite(math.Inf(1)) || IsFinite(math.NaN()) || !IsFinite(1.5) {
		t.Fatal("IsFinite float64 mismatch")
	}
	if IsFinite(complex(1, math.Inf(1))) {
		t.Fatal("complex with infinite imaginary part reported finite")
	}
	if !IsNegInf(complex(math.Inf(-1), math.Pi)) {
		t.Fatal("(-Inf + iπ) is a log-domain zero")
	}
	if IsNegInf(float32(0)) {
		t.Fatal("0 is not -Inf")
	}
}
