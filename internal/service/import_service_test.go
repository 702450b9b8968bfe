package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importHeader = "project_id,name,category,domain_code,capex,opex,revenue_potential,savings_potential,risk_score,strategic_fit,business_unit,geography,sponsor,start_quarter,Q1 2026,Q2 2026"

func writeImportFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.csv")
	content := strings.Join(append([]string{importHeader}, lines...), "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportProjects_CreatesRows(t *testing.T) {
	settings, domains, projects, _, uow := setupRepos(t)
	ctx := context.Background()
	seedSettings(t, settings, 1_000_000, ratePtr(10))

	d := testutil.NewTestDomain("Manufacturing")
	d.Code = "MFG"
	require.NoError(t, domains.Create(ctx, d))

	svc := NewImportService(settings, domains, projects, uow)
	path := writeImportFile(t,
		`CAP-101,Press retrofit,equipment,MFG,500000,20000,150000,80000,4,7,Plant A,EMEA,J. Meyer,Q1 2026,300000,200000`,
		`CAP-102,Conveyor,equipment,MFG,200000,5000,60000,30000,6,5,Plant B,APAC,L. Chen,Q2 2026,,200000`,
	)

	result, err := svc.ImportProjects(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)

	p, err := projects.GetByProjectID(ctx, "CAP-101")
	require.NoError(t, err)
	assert.Equal(t, 500_000.0, p.Capex)
	assert.Equal(t, domain.ProjectAvailable, p.Status)
	require.Len(t, p.CashFlows, 6, "capex outflow plus five benefit years")
	assert.Equal(t, -500_000.0, p.CashFlows[0].Amount)
	assert.Equal(t, 210_000.0, p.CashFlows[1].Amount, "revenue + savings - opex")
	require.NotNil(t, p.IRR, "metrics are computed on import")
	require.Len(t, p.QuarterlyAlloc, 2)
	assert.Equal(t, 300_000.0, p.QuarterlyAlloc[0].Amount)
}

func TestImportProjects_UpdatePreservesPortfolioState(t *testing.T) {
	settings, domains, projects, _, uow := setupRepos(t)
	ctx := context.Background()
	seedSettings(t, settings, 1_000_000, ratePtr(10))

	d := testutil.NewTestDomain("Manufacturing")
	d.Code = "MFG"
	require.NoError(t, domains.Create(ctx, d))

	svc := NewImportService(settings, domains, projects, uow)
	projectSvc := NewProjectService(projects, domains, settings, uow)

	path := writeImportFile(t,
		`CAP-201,Press,equipment,MFG,100000,0,50000,0,4,7,Plant A,EMEA,J. Meyer,Q1 2026,,`,
	)
	_, err := svc.ImportProjects(ctx, path)
	require.NoError(t, err)

	p, err := projects.GetByProjectID(ctx, "CAP-201")
	require.NoError(t, err)
	_, err = projectSvc.Select(ctx, p.ID)
	require.NoError(t, err)

	// Re-import with a changed capex; selection and rank must survive.
	path2 := writeImportFile(t,
		`CAP-201,Press,equipment,MFG,120000,0,50000,0,4,7,Plant A,EMEA,J. Meyer,Q1 2026,,`,
	)
	result, err := svc.ImportProjects(ctx, path2)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)

	updated, err := projects.GetByProjectID(ctx, "CAP-201")
	require.NoError(t, err)
	assert.Equal(t, 120_000.0, updated.Capex)
	assert.Equal(t, domain.ProjectSelected, updated.Status)
	assert.Equal(t, 1, updated.PortfolioRank)
}

func TestImportProjects_UnknownDomainRollsBackWholeFile(t *testing.T) {
	settings, domains, projects, _, uow := setupRepos(t)
	ctx := context.Background()
	seedSettings(t, settings, 1_000_000, ratePtr(10))

	d := testutil.NewTestDomain("Manufacturing")
	d.Code = "MFG"
	require.NoError(t, domains.Create(ctx, d))

	svc := NewImportService(settings, domains, projects, uow)
	path := writeImportFile(t,
		`CAP-301,Good row,equipment,MFG,1000,0,500,0,4,7,,,,Q1 2026,,`,
		`CAP-302,Bad row,equipment,NOPE,1000,0,500,0,4,7,,,,Q1 2026,,`,
	)

	_, err := svc.ImportProjects(ctx, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPE")

	_, err = projects.GetByProjectID(ctx, "CAP-301")
	assert.Error(t, err, "first row must not survive the failed import")
}

func TestImportProjects_ValidationErrorsAreCollected(t *testing.T) {
	settings, domains, projects, _, uow := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(settings, domains, projects, uow)

	path := writeImportFile(t,
		`bad-id,,equipment,MFG,-5,0,0,0,40,7,,,,Q1 2026,,`,
	)
	_, err := svc.ImportProjects(ctx, path)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "project ID")
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "capex")
	assert.Contains(t, msg, "risk_score")
}

func TestExportProjects_RoundTrips(t *testing.T) {
	settings, domains, projects, _, uow := setupRepos(t)
	ctx := context.Background()
	seedSettings(t, settings, 1_000_000, ratePtr(10))

	d := testutil.NewTestDomain("Manufacturing")
	d.Code = "MFG"
	require.NoError(t, domains.Create(ctx, d))

	svc := NewImportService(settings, domains, projects, uow)
	path := writeImportFile(t,
		`CAP-401,Press,equipment,MFG,500000,20000,150000,80000,4,7,Plant A,EMEA,J. Meyer,Q1 2026,300000,200000`,
	)
	_, err := svc.ImportProjects(ctx, path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportProjects(ctx, &buf))
	out := buf.String()

	assert.Contains(t, out, "CAP-401")
	assert.Contains(t, out, "MFG")
	assert.Contains(t, out, "Q1 2026")
	assert.Contains(t, out, "300000")

	// The exported file re-imports cleanly.
	exported := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(exported, buf.Bytes(), 0o644))
	result, err := svc.ImportProjects(ctx, exported)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
}
