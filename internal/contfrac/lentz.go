package contfrac

import "github.com/samcharles93/contfrac/internal/tensor"

// Step advances every active element by one term of the modified Lentz
// recurrence (Press & Teukolsky 1988):
//
//	D_n = 1 / (b_n + a_n D_{n-1})
//	C_n = b_n + a_n / C_{n-1}
//	f_n = f_{n-1} C_n D_n
//
// with a vanishing denominator or C_n replaced by tiny. In log mode the
// products become sums and the sums become LogAddExp.
func (s *state[T]) Step() {
	if s.log {
		s.stepLog()
		return
	}
	s.stepLinear()
}

func (s *state[T]) stepLinear() {
	ab := s.ab.Data
	for i := range s.fn {
		an, bn := ab[2*i], ab[2*i+1]

		denom := bn + an*s.dnm1[i]
		if denom == 0 {
			denom = s.tiny
		}
		dn := 1 / denom

		cn := bn + an/s.cnm1[i]
		if cn == 0 {
			cn = s.tiny
		}

		s.cndn[i] = cn * dn
		s.fn[i] *= s.cndn[i]
		s.cnm1[i], s.dnm1[i] = cn, dn
	}
}

func (s *state[T]) stepLog() {
	ab := s.ab.Data
	for i := range s.fn {
		an, bn := ab[2*i], ab[2*i+1]

		denom := tensor.LogAddExp(bn, an+s.dnm1[i])
		if tensor.IsNegInf(denom) {
			denom = s.tiny
		}
		dn := -denom

		cn := tensor.LogAddExp(bn, an-s.cnm1[i])
		if tensor.IsNegInf(cn) {
			cn = s.tiny
		}

		s.cndn[i] = cn + dn
		s.fn[i] += s.cndn[i]
		s.cnm1[i], s.dnm1[i] = cn, dn
	}
}
