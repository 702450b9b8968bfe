package domain

import (
	"fmt"
	"regexp"
	"time"
)

var domainCodePattern = regexp.MustCompile(`^[A-Z]{2,6}$`)

// BusinessDomain is a business unit holding a slice of the total capital
// budget together with its acceptance thresholds for candidate projects.
type BusinessDomain struct {
	ID              string
	Code            string
	Name            string
	BudgetPercent   float64 // share of the total budget, 0-100
	Budget          float64 // derived dollar amount
	RemainingBudget float64 // Budget minus allocated project CAPEX
	RiskTolerance   RiskLevel
	MinIRR          float64 // acceptance threshold, percent
	MaxPayback      float64 // acceptance threshold, years
	StrategicScore  float64 // 1-10
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidateCode checks that Code is 2-6 uppercase letters (e.g. MFG, DIGI).
func (d *BusinessDomain) ValidateCode() error {
	if d.Code == "" {
		return fmt.Errorf("domain code is required (use --code flag)")
	}
	if !domainCodePattern.MatchString(d.Code) {
		return fmt.Errorf("domain code %q must be 2-6 uppercase letters (e.g. MFG)", d.Code)
	}
	return nil
}

// Validate checks field ranges on a domain record.
func (d *BusinessDomain) Validate() error {
	if err := d.ValidateCode(); err != nil {
		return err
	}
	if d.Name == "" {
		return fmt.Errorf("domain name is required")
	}
	if d.BudgetPercent < 0 || d.BudgetPercent > 100 {
		return fmt.Errorf("budget percent %.2f must be between 0 and 100", d.BudgetPercent)
	}
	if d.StrategicScore != 0 && (d.StrategicScore < 1 || d.StrategicScore > 10) {
		return fmt.Errorf("strategic score %.1f must be between 1 and 10", d.StrategicScore)
	}
	switch d.RiskTolerance {
	case "", RiskLow, RiskMedium, RiskHigh:
	default:
		return fmt.Errorf("risk tolerance %q must be low, medium or high", d.RiskTolerance)
	}
	return nil
}

// ApplyTotalBudget recomputes the dollar figures from the percentage share.
// Spend is the CAPEX already allocated to this domain's selected projects.
func (d *BusinessDomain) ApplyTotalBudget(totalBudget, spend float64) {
	d.Budget = d.BudgetPercent / 100 * totalBudget
	d.RemainingBudget = d.Budget - spend
}
