package domain

import (
	"fmt"
	"regexp"
	"time"
)

var projectIDPattern = regexp.MustCompile(`^[A-Z]{2,6}-[0-9]{2,4}$`)

// CashFlow is one signed amount at a period index. Period 0 is by convention
// the investment period and carries -CAPEX.
type CashFlow struct {
	Period int
	Amount float64
}

// QuarterAmount is one slot of a project's time-phased CAPEX allocation.
type QuarterAmount struct {
	Quarter string // label, e.g. "Q1 2026"
	Amount  float64
}

// Project is a candidate capital project. The four derived metrics (NPV, IRR,
// MIRR, PaybackYears) are always recomputed together from the same CashFlows
// snapshot; IRR and MIRR are nil when the root-finder could not converge.
type Project struct {
	ID               string
	ProjectID        string // short business identifier, e.g. CAP-001
	Name             string
	Category         string
	DomainID         string
	Capex            float64
	Opex             float64
	RevenuePotential float64
	SavingsPotential float64
	CashFlows        []CashFlow
	NPV              float64
	IRR              *float64 // percent; nil = undefined
	MIRR             *float64 // percent; nil = undefined
	PaybackYears     float64
	RiskScore        float64 // 1-10; RiskLevel() derives the bucket
	Status           ProjectStatus
	PortfolioRank    int // position among selected projects in the domain, 0 = unranked
	QuarterlyAlloc   []QuarterAmount
	StrategicFit     float64 // 1-10, 0 = not scored
	StartQuarter     string
	BusinessUnit     string
	Geography        string
	Sponsor          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsSelected reports whether the project is part of the current portfolio.
// Status is the single authoritative field.
func (p *Project) IsSelected() bool {
	return p.Status == ProjectSelected
}

// RiskLevel derives the risk bucket from RiskScore.
func (p *Project) RiskLevel() RiskLevel {
	return RiskLevelForScore(p.RiskScore)
}

// ValidateProjectID checks that ProjectID is non-empty and matches the
// required format: 2-6 uppercase letters, a dash, 2-4 digits (e.g. CAP-001).
func (p *Project) ValidateProjectID() error {
	if p.ProjectID == "" {
		return fmt.Errorf("project ID is required (use --id flag)")
	}
	if !projectIDPattern.MatchString(p.ProjectID) {
		return fmt.Errorf("project ID %q must be 2-6 uppercase letters, a dash and 2-4 digits (e.g. CAP-001)", p.ProjectID)
	}
	return nil
}

// Validate checks field ranges on a project record.
func (p *Project) Validate() error {
	if err := p.ValidateProjectID(); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.DomainID == "" {
		return fmt.Errorf("project domain is required")
	}
	if p.Capex < 0 {
		return fmt.Errorf("capex %.2f must not be negative", p.Capex)
	}
	if p.RiskScore != 0 && (p.RiskScore < 1 || p.RiskScore > 10) {
		return fmt.Errorf("risk score %.1f must be between 1 and 10", p.RiskScore)
	}
	if p.StrategicFit != 0 && (p.StrategicFit < 1 || p.StrategicFit > 10) {
		return fmt.Errorf("strategic fit %.1f must be between 1 and 10", p.StrategicFit)
	}
	if p.Status != "" && !ValidProjectStatuses[string(p.Status)] {
		return fmt.Errorf("status %q must be available, selected or excluded", p.Status)
	}
	return nil
}

// AllocatedTotal sums the quarterly allocation amounts. It should converge to
// Capex but may transiently differ while an allocation is being edited.
func (p *Project) AllocatedTotal() float64 {
	var sum float64
	for _, qa := range p.QuarterlyAlloc {
		sum += qa.Amount
	}
	return sum
}

// DisplayID returns the best short identifier for display.
// It prefers ProjectID; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.ProjectID != "" {
		return p.ProjectID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
