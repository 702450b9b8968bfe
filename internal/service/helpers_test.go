package service

import (
	"context"
	"testing"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/db"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/repository"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (*repository.SQLiteSettingsRepo, *repository.SQLiteDomainRepo, *repository.SQLiteProjectRepo, *repository.SQLiteApprovalRepo, db.UnitOfWork) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteSettingsRepo(database),
		repository.NewSQLiteDomainRepo(database),
		repository.NewSQLiteProjectRepo(database),
		repository.NewSQLiteApprovalRepo(database),
		testutil.NewTestUoW(database)
}

func seedSettings(t *testing.T, repo repository.SettingsRepo, total float64, rate *float64) {
	t.Helper()
	s := &domain.PlanSettings{
		TotalBudget:  total,
		DiscountRate: rate,
		Currency:     "USD",
		BudgetMode:   domain.BudgetModePercent,
		StartQuarter: "Q1 2026",
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Upsert(context.Background(), s))
}

func ratePtr(v float64) *float64 { return &v }
