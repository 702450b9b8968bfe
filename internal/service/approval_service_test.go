package service

import (
	"context"
	"testing"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/repository"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvalFixture(t *testing.T) (context.Context, ApprovalService, *domain.BusinessDomain, *repository.SQLiteProjectRepo) {
	t.Helper()
	settings, domains, projects, approvals, uow := setupRepos(t)
	ctx := context.Background()
	seedSettings(t, settings, 1_000_000, ratePtr(10))

	domainSvc := NewDomainService(domains, settings, uow)
	validationSvc := NewValidationService(domains, projects, nil)
	approvalSvc := NewApprovalService(approvals, domains, validationSvc, uow)

	d := &domain.BusinessDomain{Code: "MFG", Name: "Manufacturing", BudgetPercent: 100}
	require.NoError(t, domainSvc.Create(ctx, d))

	return ctx, approvalSvc, d, projects
}

func TestApprovalSet_TransitionsCell(t *testing.T) {
	ctx, svc, d, _ := approvalFixture(t)

	rec, err := svc.Set(ctx, d.ID, domain.RoleFinance, domain.ApprovalPending, "under review", false)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalPending, rec.State)
	assert.Equal(t, "under review", rec.Comments)
	require.NotNil(t, rec.Date)
}

func TestApprovalSet_ApproveGatedOnCriticalIssues(t *testing.T) {
	ctx, svc, d, projects := approvalFixture(t)

	// Two selected projects blow through the domain budget, which is a
	// critical validation issue.
	for _, capex := range []float64{600_000, 700_000} {
		p := testutil.NewTestProject("Big", d.ID,
			testutil.WithCapex(capex),
			testutil.WithProjectStatus(domain.ProjectSelected),
		)
		require.NoError(t, projects.Create(ctx, p))
	}

	_, err := svc.Set(ctx, d.ID, domain.RoleExecutive, domain.ApprovalApproved, "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	// With force the same transition goes through.
	rec, err := svc.Set(ctx, d.ID, domain.RoleExecutive, domain.ApprovalApproved, "override", true)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, rec.State)
}

func TestApprovalSet_ApproveCleanPortfolio(t *testing.T) {
	ctx, svc, d, _ := approvalFixture(t)

	rec, err := svc.Set(ctx, d.ID, domain.RoleDomainOwner, domain.ApprovalApproved, "", false)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, rec.State)
}

func TestApprovalProgress(t *testing.T) {
	ctx, svc, d, _ := approvalFixture(t)

	approved, total, err := svc.Progress(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, approved)
	assert.Equal(t, len(domain.AllApprovalRoles), total)

	_, err = svc.Set(ctx, d.ID, domain.RoleFinance, domain.ApprovalApproved, "", false)
	require.NoError(t, err)
	_, err = svc.Set(ctx, d.ID, domain.RoleRisk, domain.ApprovalApproved, "", false)
	require.NoError(t, err)

	approved, total, err = svc.Progress(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, approved)
	assert.Equal(t, len(domain.AllApprovalRoles), total)
}

func TestApprovalSet_InvalidState(t *testing.T) {
	ctx, svc, d, _ := approvalFixture(t)

	_, err := svc.Set(ctx, d.ID, domain.RoleFinance, domain.ApprovalState("maybe"), "", false)
	assert.Error(t, err)
}
