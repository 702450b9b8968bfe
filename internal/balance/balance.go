// Package balance redistributes budget shares across business domains.
// Every function takes a snapshot and returns a new slice; inputs are never
// mutated, so callers can detect changes by comparison.
package balance

import (
	"fmt"
	"math"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// DriftTolerance is the maximum allowed deviation, in percentage points, of
// the active domains' share sum from 100 before a rebalance is triggered.
const DriftTolerance = 0.1

// AutoBalanceEqual gives every active domain an equal share of 100% (rounded
// to 2 decimals) and recomputes the dollar figures from totalBudget.
// Inactive domains are returned unchanged and excluded from the 100% target.
// With zero active domains the snapshot is returned as-is: an empty plan is a
// steady state, not an error.
func AutoBalanceEqual(domains []domain.BusinessDomain, totalBudget float64) []domain.BusinessDomain {
	out := cloneDomains(domains)
	active := activeIndexes(out)
	if len(active) == 0 {
		return out
	}
	share := round2(100 / float64(len(active)))
	for _, i := range active {
		out[i].BudgetPercent = share
		out[i].ApplyTotalBudget(totalBudget, out[i].Budget-out[i].RemainingBudget)
	}
	return out
}

// SmartAutoBalance pins the changed domain at newPercent and redistributes
// the remaining 100-newPercent across the other active domains in proportion
// to their prior shares. When every other active domain had a zero prior
// share there is nothing to be proportional to, so the remainder is split
// equally among them. Post-condition: active shares sum to 100 within
// DriftTolerance.
func SmartAutoBalance(domains []domain.BusinessDomain, changedID string, newPercent, totalBudget float64) ([]domain.BusinessDomain, error) {
	if newPercent < 0 || newPercent > 100 {
		return nil, fmt.Errorf("budget percent %.2f must be between 0 and 100", newPercent)
	}
	out := cloneDomains(domains)

	changed := -1
	for i := range out {
		if out[i].ID == changedID {
			changed = i
			break
		}
	}
	if changed == -1 {
		return nil, fmt.Errorf("domain %q not found", changedID)
	}
	if !out[changed].IsActive {
		return nil, fmt.Errorf("domain %q is inactive and cannot be rebalanced", changedID)
	}

	var others []int
	var priorSum float64
	for _, i := range activeIndexes(out) {
		if i == changed {
			continue
		}
		others = append(others, i)
		priorSum += out[i].BudgetPercent
	}

	out[changed].BudgetPercent = round2(newPercent)

	remainder := 100 - newPercent
	allocated := out[changed].BudgetPercent
	for n, i := range others {
		var share float64
		if priorSum > 0 {
			share = remainder * (out[i].BudgetPercent / priorSum)
		} else {
			// Zero prior shares: fall back to an equal split.
			share = remainder / float64(len(others))
		}
		out[i].BudgetPercent = round2(share)
		allocated += out[i].BudgetPercent
		// The last domain absorbs the rounding residual so the shares
		// keep summing to 100.
		if n == len(others)-1 {
			out[i].BudgetPercent = round2(out[i].BudgetPercent + 100 - allocated)
		}
	}

	for _, i := range activeIndexes(out) {
		out[i].ApplyTotalBudget(totalBudget, out[i].Budget-out[i].RemainingBudget)
	}
	return out, nil
}

// Renormalize scales the active domains' shares so they sum to 100 again,
// preserving their relative proportions. It is applied after the active set
// changes (a domain is added, removed, activated or deactivated) and the
// shares have drifted. A zero prior sum falls back to an equal split.
func Renormalize(domains []domain.BusinessDomain, totalBudget float64) []domain.BusinessDomain {
	out := cloneDomains(domains)
	active := activeIndexes(out)
	if len(active) == 0 {
		return out
	}

	var priorSum float64
	for _, i := range active {
		priorSum += out[i].BudgetPercent
	}

	var allocated float64
	for n, i := range active {
		var share float64
		if priorSum > 0 {
			share = 100 * (out[i].BudgetPercent / priorSum)
		} else {
			share = 100 / float64(len(active))
		}
		out[i].BudgetPercent = round2(share)
		allocated += out[i].BudgetPercent
		if n == len(active)-1 {
			out[i].BudgetPercent = round2(out[i].BudgetPercent + 100 - allocated)
		}
	}

	for _, i := range active {
		out[i].ApplyTotalBudget(totalBudget, out[i].Budget-out[i].RemainingBudget)
	}
	return out
}

// NeedsRebalance reports whether the active domains' shares have drifted more
// than DriftTolerance from 100%. In dollar mode entries are authoritative and
// may legitimately not sum to the total, so no correction is ever triggered.
func NeedsRebalance(domains []domain.BusinessDomain, mode domain.BudgetMode) bool {
	if mode == domain.BudgetModeDollar {
		return false
	}
	active := activeIndexes(domains)
	if len(active) == 0 {
		return false
	}
	var sum float64
	for _, i := range active {
		sum += domains[i].BudgetPercent
	}
	return math.Abs(sum-100) > DriftTolerance
}

// ActivePercentSum totals the active domains' budget shares.
func ActivePercentSum(domains []domain.BusinessDomain) float64 {
	var sum float64
	for _, i := range activeIndexes(domains) {
		sum += domains[i].BudgetPercent
	}
	return sum
}

func activeIndexes(domains []domain.BusinessDomain) []int {
	var idx []int
	for i := range domains {
		if domains[i].IsActive {
			idx = append(idx, i)
		}
	}
	return idx
}

func cloneDomains(domains []domain.BusinessDomain) []domain.BusinessDomain {
	out := make([]domain.BusinessDomain, len(domains))
	copy(out, domains)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
