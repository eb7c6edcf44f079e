package analytic

// AllenCunneen approximates the G/G/c queue by scaling Erlang C figures with
// the squared coefficients of variation of the inter-arrival and service
// processes. With both SCVs at one it reproduces Erlang C exactly.
type AllenCunneen struct {
	Lambda float64
	Mu     float64
	C      int
	SCVI   float64
	SCVS   float64

	erlangC *ErlangC
}

// NewAllenCunneen returns the approximation for the given rates and squared
// coefficients of variation.
func NewAllenCunneen(lambda, mu float64, c int, scvI, scvS float64) *AllenCunneen {
	return &AllenCunneen{
		Lambda:  lambda,
		Mu:      mu,
		C:       c,
		SCVI:    scvI,
		SCVS:    scvS,
		erlangC: NewErlangC(lambda, mu, c),
	}
}

func (e *AllenCunneen) scale() float64 { return (e.SCVI + e.SCVS) / 2 }

// ENQ returns the approximate expected queue length.
func (e *AllenCunneen) ENQ() float64 {
	return e.erlangC.ENQ() * e.scale()
}

// EN returns the approximate expected number in system.
func (e *AllenCunneen) EN() float64 {
	if e.erlangC.ENQ() == 0 {
		return 0
	}
	return e.ENQ() + e.Lambda/e.Mu
}

// EW returns the approximate expected waiting time.
func (e *AllenCunneen) EW() float64 {
	return e.erlangC.EW() * e.scale()
}

// EV returns the approximate expected residence time.
func (e *AllenCunneen) EV() float64 {
	if e.erlangC.EW() == 0 {
		return 0
	}
	return e.EW() + 1/e.Mu
}
