package service

import (
	"context"
	"errors"
	"sort"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/finance"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/repository"
)

// ErrDiscountRateUnset is returned when an operation needs financial metrics
// but no discount rate has been configured yet.
var ErrDiscountRateUnset = errors.New("discount rate is not configured (run 'capalloc config set --discount-rate')")

// defaultSettings is what callers see before the singleton row exists.
func defaultSettings() *domain.PlanSettings {
	return &domain.PlanSettings{
		Currency:   "USD",
		BudgetMode: domain.BudgetModePercent,
	}
}

func settingsOrDefault(ctx context.Context, repo repository.SettingsRepo) (*domain.PlanSettings, error) {
	s, err := repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return defaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// applyMetrics recomputes all four derived metrics from the project's cash
// flows. They always change together; a stale NPV next to a fresh IRR would
// be worse than no metrics at all.
func applyMetrics(p *domain.Project, ratePercent float64) {
	m := finance.Compute(p.CashFlows, finance.Config{DiscountRate: ratePercent})
	p.NPV = m.NPV
	p.IRR = m.IRR
	p.MIRR = m.MIRR
	p.PaybackYears = m.PaybackYears
}

// selectedCapexByDomain sums selected-project CAPEX per domain ID.
func selectedCapexByDomain(projects []domain.Project) map[string]float64 {
	spend := make(map[string]float64)
	for i := range projects {
		if projects[i].IsSelected() {
			spend[projects[i].DomainID] += projects[i].Capex
		}
	}
	return spend
}

// refreshDomainSpend recomputes a single domain's RemainingBudget from its
// selected projects. Called inside the same transaction as the status change
// that invalidated it.
func refreshDomainSpend(ctx context.Context, domains repository.DomainRepo, projects repository.ProjectRepo, domainID string) error {
	d, err := domains.GetByID(ctx, domainID)
	if err != nil {
		return err
	}
	inDomain, err := projects.ListByDomain(ctx, domainID)
	if err != nil {
		return err
	}
	var spend float64
	for i := range inDomain {
		if inDomain[i].IsSelected() {
			spend += inDomain[i].Capex
		}
	}
	d.RemainingBudget = d.Budget - spend
	return domains.Update(ctx, d)
}

// selectedByRank returns the domain's selected projects ordered by their
// current rank, ties broken by creation time.
func selectedByRank(projects []domain.Project) []domain.Project {
	var sel []domain.Project
	for i := range projects {
		if projects[i].IsSelected() {
			sel = append(sel, projects[i])
		}
	}
	sort.SliceStable(sel, func(i, j int) bool {
		if sel[i].PortfolioRank != sel[j].PortfolioRank {
			return sel[i].PortfolioRank < sel[j].PortfolioRank
		}
		return sel[i].CreatedAt.Before(sel[j].CreatedAt)
	})
	return sel
}
