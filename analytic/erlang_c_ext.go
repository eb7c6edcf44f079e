package analytic

import (
	"gonum.org/v1/gonum/mathext"
)

// ErlangCExt is the M/M/c/K queue with exponentially impatient clients:
// arrival rate Lambda, service rate Mu, abandonment rate Nu, C servers and
// room for K clients in total. With Nu near zero and K large it degenerates
// to plain Erlang C.
type ErlangCExt struct {
	Lambda float64
	Mu     float64
	Nu     float64
	C      int
	K      int
}

// NewErlangCExt returns the finite-capacity impatience queue.
func NewErlangCExt(lambda, mu, nu float64, c, k int) *ErlangCExt {
	return &ErlangCExt{Lambda: lambda, Mu: mu, Nu: nu, C: c, K: k}
}

// cn returns the unnormalised state weight for n clients in the system.
func (e *ErlangCExt) cn(n int) float64 {
	if n <= e.C {
		return powerFactorial(e.Lambda/e.Mu, n)
	}
	out := powerFactorial(e.Lambda/e.Mu, e.C)
	for i := 1; i <= n-e.C; i++ {
		out *= e.Lambda / (float64(e.C)*e.Mu + float64(i)*e.Nu)
	}
	return out
}

// P0 returns the probability of an empty system.
func (e *ErlangCExt) P0() float64 {
	sum := 0.0
	for n := 0; n <= e.K; n++ {
		sum += e.cn(n)
	}
	return 1 / sum
}

// Pn returns the stationary probability of n clients in the system.
func (e *ErlangCExt) Pn(n int) float64 {
	return e.P0() * e.cn(n)
}

// PBlocked returns the probability that an arrival finds the system full.
func (e *ErlangCExt) PBlocked() float64 {
	return e.Pn(e.K)
}

// PA returns the probability that an admitted client abandons before
// reaching a server.
func (e *ErlangCExt) PA() float64 {
	p0 := e.P0()
	factor := e.Nu / (e.Lambda * (1 - e.Pn(e.K)))
	sum := 0.0
	for n := e.C + 1; n <= e.K; n++ {
		sum += factor * float64(n-e.C) * p0 * e.cn(n)
	}
	return sum
}

// Pt returns the probability that an arrival is admitted and waits at most
// t, via the regularized lower incomplete gamma function. Blocked arrivals
// never count, so for large t it tends to 1 - PBlocked.
func (e *ErlangCExt) Pt(t float64) float64 {
	p0 := e.P0()
	p := 1 - p0*e.cn(e.K)
	rate := float64(e.C)*e.Mu + e.Nu
	for n := e.C; n < e.K; n++ {
		p -= p0 * e.cn(n) * (1 - mathext.GammaIncReg(float64(n-e.C+1), rate*t))
	}
	return p
}

// ENQ returns the expected queue length.
func (e *ErlangCExt) ENQ() float64 {
	p0 := e.P0()
	sum := 0.0
	for n := e.C + 1; n <= e.K; n++ {
		sum += p0 * float64(n-e.C) * e.cn(n)
	}
	return sum
}

// EN returns the expected number of clients in the system.
func (e *ErlangCExt) EN() float64 {
	p0 := e.P0()
	sum := 0.0
	for n := 1; n <= e.K; n++ {
		sum += p0 * float64(n) * e.cn(n)
	}
	return sum
}

// EW returns the expected waiting time, ENQ divided by the full arrival rate
// Lambda, so blocked arrivals count with zero waiting time.
func (e *ErlangCExt) EW() float64 {
	return e.ENQ() / e.Lambda
}

// EV returns the expected residence time, EN divided by the full arrival
// rate Lambda, so blocked arrivals count with zero residence time.
func (e *ErlangCExt) EV() float64 {
	return e.EN() / e.Lambda
}

// Utilization returns the realised per-server utilization.
func (e *ErlangCExt) Utilization() float64 {
	return (e.EN() - e.ENQ()) / float64(e.C)
}
