package service

import (
	"context"
	"testing"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/balance"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCreate_SeedsApprovalMatrix(t *testing.T) {
	settings, domains, _, approvals, uow := setupRepos(t)
	ctx := context.Background()
	svc := NewDomainService(domains, settings, uow)

	d := &domain.BusinessDomain{Code: "MFG", Name: "Manufacturing", BudgetPercent: 100}
	require.NoError(t, svc.Create(ctx, d))

	records, err := approvals.ListByDomain(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, records, len(domain.AllApprovalRoles))
	for _, rec := range records {
		assert.Equal(t, domain.ApprovalNotStarted, rec.State)
	}
}

func TestDomainCreate_PinsShareAndRebalancesOthers(t *testing.T) {
	settings, domains, _, _, uow := setupRepos(t)
	ctx := context.Background()
	seedSettings(t, settings, 1_000_000, nil)
	svc := NewDomainService(domains, settings, uow)

	a := &domain.BusinessDomain{Code: "AA", Name: "Alpha", BudgetPercent: 60}
	b := &domain.BusinessDomain{Code: "BB", Name: "Beta", BudgetPercent: 40}
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.Create(ctx, b))

	// A third domain claiming 50% forces the first two down proportionally.
	c := &domain.BusinessDomain{Code: "CC", Name: "Gamma", BudgetPercent: 50}
	require.NoError(t, svc.Create(ctx, c))

	all, err := domains.List(ctx, true)
	require.NoError(t, err)
	byCode := make(map[string]domain.BusinessDomain)
	for _, d := range all {
		byCode[d.Code] = d
	}
	assert.Equal(t, 50.0, byCode["CC"].BudgetPercent, "requested share stays pinned")
	assert.Equal(t, 30.0, byCode["AA"].BudgetPercent)
	assert.Equal(t, 20.0, byCode["BB"].BudgetPercent)
	assert.InDelta(t, 100, balance.ActivePercentSum(all), balance.DriftTolerance)
}

func TestDomainSetActive_RenormalizesSurvivors(t *testing.T) {
	settings, domains, _, _, uow := setupRepos(t)
	ctx := context.Background()
	seedSettings(t, settings, 1000, nil)
	svc := NewDomainService(domains, settings, uow)

	a := testutil.NewTestDomain("Alpha", testutil.WithBudgetPercent(40, 1000))
	b := testutil.NewTestDomain("Beta", testutil.WithBudgetPercent(40, 1000))
	c := testutil.NewTestDomain("Gamma", testutil.WithBudgetPercent(20, 1000))
	for _, d := range []*domain.BusinessDomain{a, b, c} {
		require.NoError(t, domains.Create(ctx, d))
	}

	out, err := svc.SetActive(ctx, c.ID, false)
	require.NoError(t, err)

	byID := make(map[string]domain.BusinessDomain)
	for _, d := range out {
		byID[d.ID] = d
	}
	assert.False(t, byID[c.ID].IsActive)
	assert.Equal(t, 50.0, byID[a.ID].BudgetPercent)
	assert.Equal(t, 50.0, byID[b.ID].BudgetPercent)
	assert.Equal(t, 20.0, byID[c.ID].BudgetPercent, "inactive share is kept for reactivation")
}

func TestDomainBalanceEqual(t *testing.T) {
	settings, domains, _, _, uow := setupRepos(t)
	ctx := context.Background()
	seedSettings(t, settings, 900, nil)
	svc := NewDomainService(domains, settings, uow)

	for _, pct := range []float64{70, 20, 10} {
		d := testutil.NewTestDomain("D", testutil.WithBudgetPercent(pct, 900))
		require.NoError(t, domains.Create(ctx, d))
	}

	out, err := svc.BalanceEqual(ctx)
	require.NoError(t, err)
	for _, d := range out {
		assert.InDelta(t, 33.33, d.BudgetPercent, 0.01)
		assert.InDelta(t, 300, d.Budget, 1)
	}
}

func TestDomainSetBudgetPercent_SmartRedistribution(t *testing.T) {
	settings, domains, _, _, uow := setupRepos(t)
	ctx := context.Background()
	seedSettings(t, settings, 1000, nil)
	svc := NewDomainService(domains, settings, uow)

	a := testutil.NewTestDomain("Alpha", testutil.WithBudgetPercent(50, 1000))
	b := testutil.NewTestDomain("Beta", testutil.WithBudgetPercent(30, 1000))
	c := testutil.NewTestDomain("Gamma", testutil.WithBudgetPercent(20, 1000))
	for _, d := range []*domain.BusinessDomain{a, b, c} {
		require.NoError(t, domains.Create(ctx, d))
	}

	out, err := svc.SetBudgetPercent(ctx, a.ID, 80)
	require.NoError(t, err)

	byID := make(map[string]domain.BusinessDomain)
	for _, d := range out {
		byID[d.ID] = d
	}
	assert.Equal(t, 80.0, byID[a.ID].BudgetPercent)
	assert.Equal(t, 12.0, byID[b.ID].BudgetPercent, "30/50 of the remaining 20")
	assert.Equal(t, 8.0, byID[c.ID].BudgetPercent, "20/50 of the remaining 20")
}

func TestDomainSetBudgetPercent_UnknownDomain(t *testing.T) {
	settings, domains, _, _, uow := setupRepos(t)
	svc := NewDomainService(domains, settings, uow)

	_, err := svc.SetBudgetPercent(context.Background(), "no-such-id", 50)
	assert.Error(t, err)
}

func TestDomainDelete_CascadesAndRebalances(t *testing.T) {
	settings, domains, projects, approvals, uow := setupRepos(t)
	ctx := context.Background()
	seedSettings(t, settings, 1000, nil)
	svc := NewDomainService(domains, settings, uow)

	a := &domain.BusinessDomain{Code: "AA", Name: "Alpha", BudgetPercent: 60}
	b := &domain.BusinessDomain{Code: "BB", Name: "Beta", BudgetPercent: 40}
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.Create(ctx, b))

	p := testutil.NewTestProject("Doomed", b.ID)
	require.NoError(t, projects.Create(ctx, p))

	require.NoError(t, svc.Delete(ctx, b.ID))

	_, err := projects.GetByID(ctx, p.ID)
	assert.Error(t, err, "projects go with their domain")
	records, err := approvals.ListByDomain(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, records)

	remaining, err := domains.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, remaining.BudgetPercent)
}
