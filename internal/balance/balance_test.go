package balance

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dom(id string, percent float64, active bool) domain.BusinessDomain {
	return domain.BusinessDomain{
		ID:            id,
		Code:          "DOM",
		Name:          "Domain " + id,
		BudgetPercent: percent,
		IsActive:      active,
	}
}

func TestAutoBalanceEqual_SplitsAcrossActive(t *testing.T) {
	domains := []domain.BusinessDomain{
		dom("a", 70, true),
		dom("b", 20, true),
		dom("c", 10, true),
	}
	out := AutoBalanceEqual(domains, 1_000_000)

	for _, d := range out {
		assert.InDelta(t, 33.33, d.BudgetPercent, 0.01)
		assert.InDelta(t, 333_300, d.Budget, 100)
	}
	assert.InDelta(t, 100, ActivePercentSum(out), DriftTolerance)
}

func TestAutoBalanceEqual_SkipsInactive(t *testing.T) {
	domains := []domain.BusinessDomain{
		dom("a", 40, true),
		dom("b", 40, true),
		dom("c", 20, false),
	}
	out := AutoBalanceEqual(domains, 1000)

	assert.Equal(t, 50.0, out[0].BudgetPercent)
	assert.Equal(t, 50.0, out[1].BudgetPercent)
	assert.Equal(t, 20.0, out[2].BudgetPercent, "inactive domain untouched")
}

func TestAutoBalanceEqual_NoActiveDomains(t *testing.T) {
	domains := []domain.BusinessDomain{dom("a", 100, false)}
	out := AutoBalanceEqual(domains, 1000)
	assert.Equal(t, domains, out)
}

func TestAutoBalanceEqual_DoesNotMutateInput(t *testing.T) {
	domains := []domain.BusinessDomain{dom("a", 70, true), dom("b", 30, true)}
	_ = AutoBalanceEqual(domains, 1000)
	assert.Equal(t, 70.0, domains[0].BudgetPercent)
}

func TestSmartAutoBalance_ProportionalRedistribution(t *testing.T) {
	domains := []domain.BusinessDomain{
		dom("a", 40, true),
		dom("b", 30, true),
		dom("c", 30, true),
	}
	out, err := SmartAutoBalance(domains, "a", 60, 1000)
	require.NoError(t, err)

	assert.Equal(t, 60.0, out[0].BudgetPercent)
	// b and c had equal prior shares, so they split the remaining 40 evenly.
	assert.InDelta(t, 20, out[1].BudgetPercent, 0.01)
	assert.InDelta(t, 20, out[2].BudgetPercent, 0.01)
	assert.InDelta(t, 100, ActivePercentSum(out), DriftTolerance)
}

func TestSmartAutoBalance_ZeroPriorSharesFallBackToEqualSplit(t *testing.T) {
	domains := []domain.BusinessDomain{
		dom("a", 100, true),
		dom("b", 0, true),
		dom("c", 0, true),
	}
	out, err := SmartAutoBalance(domains, "a", 40, 1000)
	require.NoError(t, err)

	assert.Equal(t, 40.0, out[0].BudgetPercent)
	assert.InDelta(t, 30, out[1].BudgetPercent, 0.01)
	assert.InDelta(t, 30, out[2].BudgetPercent, 0.01)
	assert.InDelta(t, 100, ActivePercentSum(out), DriftTolerance)
}

func TestSmartAutoBalance_UnknownDomain(t *testing.T) {
	_, err := SmartAutoBalance([]domain.BusinessDomain{dom("a", 100, true)}, "zz", 50, 1000)
	assert.Error(t, err)
}

func TestSmartAutoBalance_InactiveChangedDomain(t *testing.T) {
	domains := []domain.BusinessDomain{dom("a", 50, true), dom("b", 50, false)}
	_, err := SmartAutoBalance(domains, "b", 30, 1000)
	assert.Error(t, err)
}

func TestSmartAutoBalance_RejectsOutOfRangeValue(t *testing.T) {
	domains := []domain.BusinessDomain{dom("a", 100, true)}
	_, err := SmartAutoBalance(domains, "a", 101, 1000)
	assert.Error(t, err)
	_, err = SmartAutoBalance(domains, "a", -1, 1000)
	assert.Error(t, err)
}

// Property: for any configuration and any target value, active shares sum to
// 100 within tolerance after a targeted rebalance.
func TestSmartAutoBalance_SumProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.Intn(8)
		domains := make([]domain.BusinessDomain, n)
		for i := range domains {
			percent := float64(rng.Intn(101))
			if rng.Intn(4) == 0 {
				percent = 0 // exercise the zero-share path often
			}
			domains[i] = dom(fmt.Sprintf("d%d", i), percent, true)
		}
		changed := fmt.Sprintf("d%d", rng.Intn(n))
		newValue := float64(rng.Intn(101))

		out, err := SmartAutoBalance(domains, changed, newValue, 1_000_000)
		require.NoError(t, err)
		assert.InDelta(t, 100, ActivePercentSum(out), DriftTolerance,
			"trial %d: n=%d changed=%s v=%.0f", trial, n, changed, newValue)
	}
}

func TestNeedsRebalance(t *testing.T) {
	drifted := []domain.BusinessDomain{dom("a", 50, true), dom("b", 49, true)}
	balanced := []domain.BusinessDomain{dom("a", 50, true), dom("b", 50, true)}

	assert.True(t, NeedsRebalance(drifted, domain.BudgetModePercent))
	assert.False(t, NeedsRebalance(balanced, domain.BudgetModePercent))
	assert.False(t, NeedsRebalance(drifted, domain.BudgetModeDollar),
		"dollar mode never auto-corrects")
	assert.False(t, NeedsRebalance(nil, domain.BudgetModePercent))
}

func TestSmartAutoBalance_SingleActiveDomain(t *testing.T) {
	domains := []domain.BusinessDomain{dom("a", 100, true), dom("b", 50, false)}
	out, err := SmartAutoBalance(domains, "a", 100, 1000)
	require.NoError(t, err)
	assert.Equal(t, 100.0, out[0].BudgetPercent)
	assert.InDelta(t, 100, ActivePercentSum(out), DriftTolerance)
}

func TestRenormalize_PreservesProportions(t *testing.T) {
	// Deactivating the 20% domain leaves the two 40% domains summing to 80;
	// renormalizing scales them back to 50/50.
	domains := []domain.BusinessDomain{
		dom("a", 40, true),
		dom("b", 40, true),
		dom("c", 20, false),
	}
	out := Renormalize(domains, 1000)

	assert.Equal(t, 50.0, out[0].BudgetPercent)
	assert.Equal(t, 50.0, out[1].BudgetPercent)
	assert.Equal(t, 20.0, out[2].BudgetPercent, "inactive domain untouched")
	assert.InDelta(t, 100, ActivePercentSum(out), DriftTolerance)
}

func TestRenormalize_UnevenShares(t *testing.T) {
	domains := []domain.BusinessDomain{
		dom("a", 30, true),
		dom("b", 10, true),
	}
	out := Renormalize(domains, 1000)

	assert.Equal(t, 75.0, out[0].BudgetPercent)
	assert.Equal(t, 25.0, out[1].BudgetPercent)
}

func TestRenormalize_ZeroPriorSumSplitsEqually(t *testing.T) {
	domains := []domain.BusinessDomain{
		dom("a", 0, true),
		dom("b", 0, true),
		dom("c", 0, true),
	}
	out := Renormalize(domains, 900)

	assert.InDelta(t, 100, ActivePercentSum(out), DriftTolerance)
	for _, d := range out {
		assert.InDelta(t, 33.33, d.BudgetPercent, 0.5)
	}
}
