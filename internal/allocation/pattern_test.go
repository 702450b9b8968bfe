package allocation

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_FrontLoadedCanonicalShape(t *testing.T) {
	amounts, err := Apply(FrontLoaded, 1000, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{400, 300, 200, 100}, amounts)
}

func TestApply_BackLoadedMirrorsFrontLoaded(t *testing.T) {
	amounts, err := Apply(BackLoaded, 1000, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200, 300, 400}, amounts)
}

func TestApply_EvenSpread(t *testing.T) {
	amounts, err := Apply(EvenSpread, 100, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{25, 25, 25, 25}, amounts)
}

func TestApply_SCurveRampsUpThenDown(t *testing.T) {
	amounts, err := Apply(SCurve, 1000, 6)
	require.NoError(t, err)
	require.Len(t, amounts, 6)
	// Slow start, fast middle, slow end.
	assert.Less(t, amounts[0], amounts[2])
	assert.Less(t, amounts[5], amounts[3])
	mid := amounts[2] + amounts[3]
	ends := amounts[0] + amounts[5]
	assert.Greater(t, mid, ends)
}

func TestApply_SumIsExactForAllPatterns(t *testing.T) {
	totals := []float64{1000, 333.33, 1000000, 0.01, 99999.99}
	for _, p := range AllPatterns {
		for _, total := range totals {
			for periods := 1; periods <= 12; periods++ {
				t.Run(fmt.Sprintf("%s/%.2f/%d", p, total, periods), func(t *testing.T) {
					amounts, err := Apply(p, total, periods)
					require.NoError(t, err)
					require.Len(t, amounts, periods)

					sum := decimal.Zero
					for _, a := range amounts {
						sum = sum.Add(decimal.NewFromFloat(a))
					}
					assert.True(t, sum.Equal(decimal.NewFromFloat(total).Round(2)),
						"sum %s != total %.2f", sum, total)
				})
			}
		}
	}
}

func TestApply_SinglePeriodGetsEverything(t *testing.T) {
	for _, p := range AllPatterns {
		amounts, err := Apply(p, 500, 1)
		require.NoError(t, err)
		assert.Equal(t, []float64{500}, amounts)
	}
}

func TestApply_RejectsZeroPeriods(t *testing.T) {
	_, err := Apply(EvenSpread, 100, 0)
	assert.Error(t, err)
}

func TestApply_UnknownPattern(t *testing.T) {
	_, err := Apply(Pattern("linear"), 100, 4)
	assert.ErrorIs(t, err, ErrUnknownPattern)
}

func TestParsePattern(t *testing.T) {
	p, err := ParsePattern("s_curve")
	require.NoError(t, err)
	assert.Equal(t, SCurve, p)

	_, err = ParsePattern("exponential")
	assert.ErrorIs(t, err, ErrUnknownPattern)
}

func TestQuarterLabels(t *testing.T) {
	labels := QuarterLabels(Quarter{Q: 3, Year: 2026}, 4)
	assert.Equal(t, []string{"Q3 2026", "Q4 2026", "Q1 2027", "Q2 2027"}, labels)
}

func TestParseQuarter(t *testing.T) {
	q, err := ParseQuarter("Q4 2027")
	require.NoError(t, err)
	assert.Equal(t, Quarter{Q: 4, Year: 2027}, q)

	_, err = ParseQuarter("2027-Q4")
	assert.Error(t, err)
	_, err = ParseQuarter("Q5 2027")
	assert.Error(t, err)
}
