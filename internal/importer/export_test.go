package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteProjects_RoundTrip(t *testing.T) {
	projects := []domain.Project{
		{
			ProjectID: "CAP-010", Name: "Press", Category: "equipment", DomainID: "d1",
			Capex: 500_000, Opex: 20_000, RevenuePotential: 150_000, SavingsPotential: 80_000,
			RiskScore: 4, StrategicFit: 7, StartQuarter: "Q1 2026",
			QuarterlyAlloc: []domain.QuarterAmount{
				{Quarter: "Q2 2026", Amount: 200_000},
				{Quarter: "Q1 2026", Amount: 300_000},
			},
		},
		{
			ProjectID: "CAP-011", Name: "Conveyor", DomainID: "d1",
			Capex: 100_000, RiskScore: 5, StrategicFit: 5,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProjects(&buf, projects, map[string]string{"d1": "MFG"}))

	parsed, err := ParseProjects(&buf)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 2)
	assert.Equal(t, []string{"Q1 2026", "Q2 2026"}, parsed.Quarters, "quarters come out chronologically")

	first := parsed.Rows[0]
	assert.Equal(t, "MFG", first.DomainCode)
	assert.Equal(t, 500_000.0, first.Capex)
	require.Len(t, first.Quarterly, 2)
	assert.Equal(t, 300_000.0, first.Quarterly[0].Amount)
}

func TestWriteProjects_NoAllocations(t *testing.T) {
	var buf bytes.Buffer
	projects := []domain.Project{{ProjectID: "CAP-012", Name: "Bare", DomainID: "d1", Capex: 10}}
	require.NoError(t, WriteProjects(&buf, projects, map[string]string{"d1": "OPS"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(FixedColumns, ","), lines[0], "no quarter columns when nothing allocates")
}
