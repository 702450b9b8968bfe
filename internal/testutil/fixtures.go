package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/google/uuid"
)

var (
	testDomainCounter  atomic.Int64
	testProjectCounter atomic.Int64
)

// Domain options
type DomainOption func(*domain.BusinessDomain)

func WithBudgetPercent(percent, totalBudget float64) DomainOption {
	return func(d *domain.BusinessDomain) {
		d.BudgetPercent = percent
		d.ApplyTotalBudget(totalBudget, 0)
	}
}

func WithInactive() DomainOption {
	return func(d *domain.BusinessDomain) {
		d.IsActive = false
	}
}

func WithThresholds(minIRR, maxPayback float64) DomainOption {
	return func(d *domain.BusinessDomain) {
		d.MinIRR = minIRR
		d.MaxPayback = maxPayback
	}
}

func NewTestDomain(name string, opts ...DomainOption) *domain.BusinessDomain {
	now := time.Now().UTC()
	n := testDomainCounter.Add(1)
	d := &domain.BusinessDomain{
		ID:            uuid.New().String(),
		Code:          fmt.Sprintf("TD%c", 'A'+byte((n-1)%26)),
		Name:          name,
		RiskTolerance: domain.RiskMedium,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithCapex(capex float64) ProjectOption {
	return func(p *domain.Project) {
		p.Capex = capex
	}
}

func WithCashFlows(amounts ...float64) ProjectOption {
	return func(p *domain.Project) {
		p.CashFlows = make([]domain.CashFlow, len(amounts))
		for i, a := range amounts {
			p.CashFlows[i] = domain.CashFlow{Period: i, Amount: a}
		}
	}
}

func WithRiskScore(score float64) ProjectOption {
	return func(p *domain.Project) {
		p.RiskScore = score
	}
}

func NewTestProject(name, domainID string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	n := testProjectCounter.Add(1)
	p := &domain.Project{
		ID:           uuid.New().String(),
		ProjectID:    fmt.Sprintf("CAP-%03d", n),
		Name:         name,
		DomainID:     domainID,
		Capex:        1000,
		RiskScore:    5,
		StrategicFit: 6,
		Status:       domain.ProjectAvailable,
		BusinessUnit: "Test BU",
		Geography:    "Global",
		Sponsor:      "Test Sponsor",
		StartQuarter: "Q1 2026",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
