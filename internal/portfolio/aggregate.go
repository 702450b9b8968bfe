// Package portfolio rolls up selected projects into portfolio-level metrics.
package portfolio

import "github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"

// RiskDistribution counts selected projects per risk bucket.
type RiskDistribution struct {
	Low    int // riskScore <= 3
	Medium int // riskScore 4-6
	High   int // riskScore >= 7
}

// Metrics is the roll-up over the current selection.
type Metrics struct {
	ProjectCount    int
	TotalCapex      float64
	TotalNPV        float64
	PortfolioIRR    float64 // CAPEX-weighted average of defined IRRs, percent
	AvgPaybackYears float64
	AvgRiskScore    float64
	AvgStrategicFit float64 // missing strategicFit counts as 0
	Risk            RiskDistribution
	CapexByDomain   map[string]float64
}

// Aggregate computes portfolio metrics over the projects whose status is
// selected. Zero selected projects (or zero total CAPEX) yield all-zero
// metrics; the zero denominators are expected steady states, not errors.
// Projects with an undefined IRR contribute nothing to the weighted IRR but
// still count toward every other total.
func Aggregate(projects []domain.Project) Metrics {
	m := Metrics{CapexByDomain: make(map[string]float64)}

	var paybackSum, riskSum, fitSum, weightedIRR float64
	for i := range projects {
		p := &projects[i]
		if !p.IsSelected() {
			continue
		}
		m.ProjectCount++
		m.TotalCapex += p.Capex
		m.TotalNPV += p.NPV
		m.CapexByDomain[p.DomainID] += p.Capex
		paybackSum += p.PaybackYears
		riskSum += p.RiskScore
		fitSum += p.StrategicFit

		if p.IRR != nil {
			weightedIRR += *p.IRR * p.Capex
		}

		switch p.RiskLevel() {
		case domain.RiskLow:
			m.Risk.Low++
		case domain.RiskMedium:
			m.Risk.Medium++
		default:
			m.Risk.High++
		}
	}

	if m.ProjectCount > 0 {
		n := float64(m.ProjectCount)
		m.AvgPaybackYears = paybackSum / n
		m.AvgRiskScore = riskSum / n
		m.AvgStrategicFit = fitSum / n
	}
	if m.TotalCapex > 0 {
		m.PortfolioIRR = weightedIRR / m.TotalCapex
	}
	return m
}

// FitsBudget reports whether adding a candidate's CAPEX to the domain's
// current spend stays within the domain budget. Advisory only: callers
// decide whether to block the selection.
func FitsBudget(d domain.BusinessDomain, currentSpend, candidateCapex float64) bool {
	return currentSpend+candidateCapex <= d.Budget
}
