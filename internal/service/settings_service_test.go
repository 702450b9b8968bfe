package service

import (
	"context"
	"testing"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsGet_DefaultsBeforeFirstSave(t *testing.T) {
	settings, _, _, _, uow := setupRepos(t)
	svc := NewSettingsService(settings, uow)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, domain.BudgetModePercent, got.BudgetMode)
	assert.Nil(t, got.DiscountRate, "no discount rate until one is set")
}

func TestSettingsUpdate_RecomputesDomainBudgets(t *testing.T) {
	settings, domains, _, _, uow := setupRepos(t)
	ctx := context.Background()

	d := testutil.NewTestDomain("Manufacturing", testutil.WithBudgetPercent(40, 1000))
	require.NoError(t, domains.Create(ctx, d))

	svc := NewSettingsService(settings, uow)
	require.NoError(t, svc.Update(ctx, &domain.PlanSettings{TotalBudget: 2_000_000}))

	updated, err := domains.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 800_000.0, updated.Budget)
	assert.Equal(t, 800_000.0, updated.RemainingBudget)
}

func TestSettingsUpdate_RateChangeRecomputesProjectMetrics(t *testing.T) {
	settings, domains, projects, _, uow := setupRepos(t)
	ctx := context.Background()

	d := testutil.NewTestDomain("Ops")
	require.NoError(t, domains.Create(ctx, d))
	p := testutil.NewTestProject("Line upgrade", d.ID,
		testutil.WithCapex(1000),
		testutil.WithCashFlows(-1000, 400, 400, 400, 400),
	)
	require.NoError(t, projects.Create(ctx, p))

	svc := NewSettingsService(settings, uow)
	require.NoError(t, svc.Update(ctx, &domain.PlanSettings{DiscountRate: ratePtr(10)}))

	updated, err := projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 267.95, updated.NPV, 0.5, "NPV of -1000 then 4x400 at 10%")
	require.NotNil(t, updated.IRR)
	assert.InDelta(t, 21.86, *updated.IRR, 0.1)
	assert.Equal(t, 3.0, updated.PaybackYears)
}

func TestSettingsUpdate_RejectsInvalidRate(t *testing.T) {
	settings, _, _, _, uow := setupRepos(t)
	svc := NewSettingsService(settings, uow)

	err := svc.Update(context.Background(), &domain.PlanSettings{DiscountRate: ratePtr(150)})
	assert.Error(t, err)
}
