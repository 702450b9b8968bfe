// Package allocation turns a total amount into an ordered sequence of
// per-period amounts under a named distribution shape.
package allocation

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrUnknownPattern is returned for an unrecognized distribution name.
var ErrUnknownPattern = errors.New("unknown allocation pattern")

// Pattern names a distribution shape.
type Pattern string

const (
	EvenSpread  Pattern = "even_spread"
	FrontLoaded Pattern = "front_loaded"
	BackLoaded  Pattern = "back_loaded"
	SCurve      Pattern = "s_curve"
)

// AllPatterns lists the supported shapes in display order.
var AllPatterns = []Pattern{EvenSpread, FrontLoaded, BackLoaded, SCurve}

// ParsePattern validates a user-supplied pattern name.
func ParsePattern(s string) (Pattern, error) {
	switch Pattern(s) {
	case EvenSpread, FrontLoaded, BackLoaded, SCurve:
		return Pattern(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPattern, s)
}

// Apply distributes total over the given number of periods according to the
// pattern. Amounts are rounded to cents and the accumulated rounding residual
// is folded into the final period, so the returned amounts sum to total
// exactly. Pure function of (pattern, total, periods).
func Apply(p Pattern, total float64, periods int) ([]float64, error) {
	if periods < 1 {
		return nil, fmt.Errorf("periods must be >= 1, got %d", periods)
	}
	weights, err := weightsFor(p, periods)
	if err != nil {
		return nil, err
	}

	totalDec := decimal.NewFromFloat(total)
	amounts := make([]float64, periods)
	allocated := decimal.Zero
	for i := 0; i < periods-1; i++ {
		amt := totalDec.Mul(decimal.NewFromFloat(weights[i])).Round(2)
		amounts[i] = amt.InexactFloat64()
		allocated = allocated.Add(amt)
	}
	// Final period absorbs the rounding residual.
	amounts[periods-1] = totalDec.Sub(allocated).Round(2).InexactFloat64()
	return amounts, nil
}

// weightsFor builds the normalized weight vector for a pattern. The canonical
// shapes are defined for 4 periods (e.g. front-loaded 0.40/0.30/0.20/0.10);
// other lengths generalize the same intent: a linear ramp for front/back
// loading and a logistic ramp for the s-curve.
func weightsFor(p Pattern, periods int) ([]float64, error) {
	raw := make([]float64, periods)
	switch p {
	case EvenSpread:
		for i := range raw {
			raw[i] = 1
		}
	case FrontLoaded:
		// Descending ramp: n, n-1, ..., 1.
		for i := range raw {
			raw[i] = float64(periods - i)
		}
	case BackLoaded:
		// Ascending ramp, mirror of front-loaded.
		for i := range raw {
			raw[i] = float64(i + 1)
		}
	case SCurve:
		// Increments of a logistic ramp: slow start, fast middle, slow end.
		for i := range raw {
			raw[i] = logisticStep(i, periods)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, p)
	}
	return normalize(raw), nil
}

// logisticStep is the mass the logistic CDF assigns to period i of n.
func logisticStep(i, n int) float64 {
	const steepness = 6.0
	cdf := func(x float64) float64 {
		return 1 / (1 + math.Exp(-steepness*(x-0.5)))
	}
	lo := float64(i) / float64(n)
	hi := float64(i+1) / float64(n)
	return cdf(hi) - cdf(lo)
}

func normalize(weights []float64) []float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return weights
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / sum
	}
	return out
}
