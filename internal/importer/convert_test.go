package importer

import (
	"testing"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_BuildsAvailableProject(t *testing.T) {
	row := validRow(2)
	row.Category = "equipment"
	row.Quarterly = []domain.QuarterAmount{{Quarter: "Q1 2026", Amount: 1000}}

	p := Convert(&row, "domain-42")

	assert.Equal(t, "CAP-001", p.ProjectID)
	assert.Equal(t, "domain-42", p.DomainID)
	assert.Equal(t, domain.ProjectAvailable, p.Status)
	assert.Zero(t, p.PortfolioRank)
	assert.Equal(t, row.Quarterly, p.QuarterlyAlloc)
	assert.Zero(t, p.NPV, "metrics are left for the service to derive")
}

func TestDeriveCashFlows_StandardSeries(t *testing.T) {
	flows := DeriveCashFlows(500_000, 20_000, 150_000, 80_000)

	require.Len(t, flows, 6)
	assert.Equal(t, domain.CashFlow{Period: 0, Amount: -500_000}, flows[0])
	for i := 1; i <= 5; i++ {
		assert.Equal(t, 210_000.0, flows[i].Amount)
		assert.Equal(t, i, flows[i].Period)
	}
}

func TestDeriveCashFlows_NoInvestmentNoBenefit(t *testing.T) {
	assert.Nil(t, DeriveCashFlows(0, 0, 0, 0))
}

func TestDeriveCashFlows_BenefitOnly(t *testing.T) {
	flows := DeriveCashFlows(0, 10, 100, 0)
	require.Len(t, flows, 6)
	assert.Equal(t, 0.0, -flows[0].Amount)
	assert.Equal(t, 90.0, flows[1].Amount)
}
