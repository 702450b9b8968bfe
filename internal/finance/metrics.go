// Package finance computes per-project cash-flow metrics: NPV, IRR, the MIRR
// approximation and the payback period. All functions are pure; rates cross
// the package boundary as percentages (10 means 10% per period).
package finance

import (
	"errors"
	"math"
	"sort"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// ErrNoConvergence is returned when the IRR root-finder cannot produce a
// rate: the series has no sign change, or the iteration budget ran out.
// Callers must treat the IRR as undefined, never as zero.
var ErrNoConvergence = errors.New("irr did not converge")

const (
	// Search bounds for the IRR root, as fractional rates.
	irrLowerBound = -0.99
	irrUpperBound = 10.0

	maxBisectIterations = 128
	maxNewtonIterations = 24
	npvTolerance        = 1e-9
)

// Config carries the explicit inputs the calculator refuses to assume.
type Config struct {
	DiscountRate float64 // percent per period
}

// Metrics is the derived snapshot for one cash-flow series. The four fields
// are always computed together; IRR and MIRR are nil when undefined.
type Metrics struct {
	NPV          float64
	IRR          *float64 // percent
	MIRR         *float64 // percent
	PaybackYears float64
}

// Compute derives all four metrics from one cash-flow snapshot. An IRR that
// fails to converge leaves IRR and MIRR nil; this is not an error at the
// Compute level since the other metrics remain well-defined.
func Compute(flows []domain.CashFlow, cfg Config) Metrics {
	m := Metrics{
		NPV:          NPV(flows, cfg.DiscountRate),
		PaybackYears: PaybackPeriod(flows),
	}
	irr, err := IRR(flows)
	if err != nil {
		return m
	}
	mirr := MIRRApprox(irr)
	m.IRR = &irr
	m.MIRR = &mirr
	return m
}

// NPV discounts the series at the given rate (percent per period) and sums.
// Flows are sorted by period index before use; the input is not mutated.
func NPV(flows []domain.CashFlow, ratePercent float64) float64 {
	rate := ratePercent / 100
	var npv float64
	for _, cf := range sortedByPeriod(flows) {
		npv += cf.Amount / math.Pow(1+rate, float64(cf.Period))
	}
	return npv
}

// IRR finds the rate (percent) at which the series' NPV is zero. It brackets
// a sign change of the NPV function over [-99%, 1000%] and bisects, then
// polishes the root with a few Newton steps. Both phases are bounded, so IRR
// terminates on pathological series.
func IRR(flows []domain.CashFlow) (float64, error) {
	sorted := sortedByPeriod(flows)
	if !hasSignChange(sorted) {
		return 0, ErrNoConvergence
	}

	f := func(rate float64) float64 {
		var npv float64
		for _, cf := range sorted {
			npv += cf.Amount / math.Pow(1+rate, float64(cf.Period))
		}
		return npv
	}

	lo, hi, ok := bracketRoot(f)
	if !ok {
		return 0, ErrNoConvergence
	}

	flo := f(lo)
	for i := 0; i < maxBisectIterations; i++ {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if math.Abs(fmid) < npvTolerance {
			lo, hi = mid, mid
			break
		}
		if (flo < 0) == (fmid < 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	root := (lo + hi) / 2

	root = newtonRefine(f, root, lo, hi)
	if math.IsNaN(root) || math.IsInf(root, 0) {
		return 0, ErrNoConvergence
	}
	return root * 100, nil
}

// MIRRApprox scales IRR by a fixed 0.8 factor. This is a deliberate
// simplification carried over from the planning model, not a true modified
// IRR; downstream thresholds are calibrated to this scale.
func MIRRApprox(irrPercent float64) float64 {
	return 0.8 * irrPercent
}

// PaybackPeriod returns the first period index at which the running
// cumulative sum turns strictly positive. If the investment is never
// recovered within the series, it returns the series length.
func PaybackPeriod(flows []domain.CashFlow) float64 {
	sorted := sortedByPeriod(flows)
	var cumulative float64
	for _, cf := range sorted {
		cumulative += cf.Amount
		if cumulative > 0 {
			return float64(cf.Period)
		}
	}
	return float64(len(sorted))
}

// bracketRoot scans the search domain for an interval where f changes sign.
func bracketRoot(f func(float64) float64) (lo, hi float64, ok bool) {
	steps := []float64{
		irrLowerBound, -0.9, -0.75, -0.5, -0.25, -0.1,
		0, 0.1, 0.25, 0.5, 1, 2, 4, 7, irrUpperBound,
	}
	prev := steps[0]
	fprev := f(prev)
	for _, r := range steps[1:] {
		fr := f(r)
		if (fprev < 0) != (fr < 0) {
			return prev, r, true
		}
		prev, fprev = r, fr
	}
	return 0, 0, false
}

// newtonRefine polishes a bisection root with bounded Newton steps, falling
// back to the bisection result when a step leaves the bracket or stalls.
func newtonRefine(f func(float64) float64, root, lo, hi float64) float64 {
	const h = 1e-7
	x := root
	for i := 0; i < maxNewtonIterations; i++ {
		fx := f(x)
		if math.Abs(fx) < npvTolerance {
			return x
		}
		deriv := (f(x+h) - f(x-h)) / (2 * h)
		if deriv == 0 {
			return x
		}
		next := x - fx/deriv
		if next < lo-1 || next > hi+1 || math.IsNaN(next) {
			return x
		}
		if math.Abs(next-x) < 1e-12 {
			return next
		}
		x = next
	}
	return x
}

func hasSignChange(flows []domain.CashFlow) bool {
	var hasNeg, hasPos bool
	for _, cf := range flows {
		if cf.Amount < 0 {
			hasNeg = true
		}
		if cf.Amount > 0 {
			hasPos = true
		}
	}
	return hasNeg && hasPos
}

func sortedByPeriod(flows []domain.CashFlow) []domain.CashFlow {
	out := make([]domain.CashFlow, len(flows))
	copy(out, flows)
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
