package repository

import (
	"context"
	"testing"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDomainRepo(database)
	ctx := context.Background()

	d := testutil.NewTestDomain("Manufacturing",
		testutil.WithBudgetPercent(40, 1_000_000),
		testutil.WithThresholds(12, 5),
	)
	require.NoError(t, repo.Create(ctx, d))

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.Code, got.Code)
	assert.Equal(t, 40.0, got.BudgetPercent)
	assert.Equal(t, 400_000.0, got.Budget)
	assert.Equal(t, 12.0, got.MinIRR)
	assert.Equal(t, 5.0, got.MaxPayback)
	assert.True(t, got.IsActive)
}

func TestDomainRepo_GetByCode_CaseInsensitive(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDomainRepo(database)
	ctx := context.Background()

	d := testutil.NewTestDomain("Digital")
	d.Code = "DIGI"
	require.NoError(t, repo.Create(ctx, d))

	got, err := repo.GetByCode(ctx, "digi")
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
}

func TestDomainRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDomainRepo(database)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDomainRepo_ListFiltersInactive(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDomainRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestDomain("Active One")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestDomain("Dormant", testutil.WithInactive())))

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDomainRepo_UpdateAllPersistsRebalance(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDomainRepo(database)
	ctx := context.Background()

	a := testutil.NewTestDomain("A", testutil.WithBudgetPercent(70, 1000))
	b := testutil.NewTestDomain("B", testutil.WithBudgetPercent(30, 1000))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	a.BudgetPercent, b.BudgetPercent = 50, 50
	require.NoError(t, repo.UpdateAll(ctx, []domain.BusinessDomain{*a, *b}))

	got, err := repo.List(ctx, true)
	require.NoError(t, err)
	for _, d := range got {
		assert.Equal(t, 50.0, d.BudgetPercent)
	}
}

func TestDomainRepo_DeleteCascadesToProjects(t *testing.T) {
	database := testutil.NewTestDB(t)
	domains := NewSQLiteDomainRepo(database)
	projects := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	d := testutil.NewTestDomain("Doomed")
	require.NoError(t, domains.Create(ctx, d))
	p := testutil.NewTestProject("Orphan", d.ID)
	require.NoError(t, projects.Create(ctx, p))

	require.NoError(t, domains.Delete(ctx, d.ID))

	_, err := projects.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
