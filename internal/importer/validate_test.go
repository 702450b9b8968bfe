package importer

import (
	"strings"
	"testing"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow(line int) ProjectRow {
	return ProjectRow{
		ProjectID:    "CAP-001",
		Name:         "Press",
		DomainCode:   "MFG",
		Capex:        1000,
		RiskScore:    5,
		StrategicFit: 6,
		StartQuarter: "Q1 2026",
		Line:         line,
	}
}

func TestValidateFile_CleanRow(t *testing.T) {
	file := &ImportFile{Rows: []ProjectRow{validRow(2)}}
	assert.Empty(t, ValidateFile(file))
}

func TestValidateFile_CollectsAllErrors(t *testing.T) {
	row := validRow(2)
	row.ProjectID = "nope"
	row.Name = ""
	row.Capex = -1
	row.RiskScore = 11
	row.StartQuarter = "sometime"

	errs := ValidateFile(&ImportFile{Rows: []ProjectRow{row}})
	require.Len(t, errs, 5)
	joined := joinErrs(errs)
	assert.Contains(t, joined, "line 2")
	assert.Contains(t, joined, "project ID")
	assert.Contains(t, joined, "risk_score")
}

func TestValidateFile_DuplicateProjectID(t *testing.T) {
	a := validRow(2)
	b := validRow(3)
	errs := ValidateFile(&ImportFile{Rows: []ProjectRow{a, b}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "duplicate project_id")
	assert.Contains(t, errs[0].Error(), "line 2")
}

func TestValidateFile_NegativeAllocation(t *testing.T) {
	row := validRow(2)
	row.Quarterly = []domain.QuarterAmount{{Quarter: "Q1 2026", Amount: -50}}
	errs := ValidateFile(&ImportFile{Rows: []ProjectRow{row}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "must not be negative")
}

func joinErrs(errs []error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}
