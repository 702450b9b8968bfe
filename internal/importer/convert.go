package importer

import (
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// benefitHorizonYears is the number of inflow periods derived from a row's
// revenue and savings potential.
const benefitHorizonYears = 5

// Convert turns a validated row into a project record. Derived metrics are
// left zero; the service recomputes them once a discount rate is known.
func Convert(row *ProjectRow, domainID string) *domain.Project {
	return &domain.Project{
		ProjectID:        row.ProjectID,
		Name:             row.Name,
		Category:         row.Category,
		DomainID:         domainID,
		Capex:            row.Capex,
		Opex:             row.Opex,
		RevenuePotential: row.RevenuePotential,
		SavingsPotential: row.SavingsPotential,
		CashFlows:        DeriveCashFlows(row.Capex, row.Opex, row.RevenuePotential, row.SavingsPotential),
		RiskScore:        row.RiskScore,
		StrategicFit:     row.StrategicFit,
		Status:           domain.ProjectAvailable,
		QuarterlyAlloc:   row.Quarterly,
		StartQuarter:     row.StartQuarter,
		BusinessUnit:     row.BusinessUnit,
		Geography:        row.Geography,
		Sponsor:          row.Sponsor,
	}
}

// DeriveCashFlows builds the standard cash-flow series the interchange
// format implies: the full CAPEX as an outflow at period 0 followed by five
// years of net benefit (revenue plus savings minus operating cost). Rows
// with no investment and no benefit yield no series at all.
func DeriveCashFlows(capex, opex, revenue, savings float64) []domain.CashFlow {
	net := revenue + savings - opex
	if capex == 0 && net == 0 {
		return nil
	}
	flows := make([]domain.CashFlow, 0, benefitHorizonYears+1)
	flows = append(flows, domain.CashFlow{Period: 0, Amount: -capex})
	for period := 1; period <= benefitHorizonYears; period++ {
		flows = append(flows, domain.CashFlow{Period: period, Amount: net})
	}
	return flows
}
