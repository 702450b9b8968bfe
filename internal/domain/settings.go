package domain

import (
	"fmt"
	"time"
)

// PlanSettings is the singleton configuration record for the allocation plan.
// DiscountRate is nil until the caller sets one explicitly; metrics cannot be
// computed without it.
type PlanSettings struct {
	TotalBudget  float64
	DiscountRate *float64   // percent per period, e.g. 10 for 10%
	Currency     string     // ISO 4217 code used for display, e.g. "USD"
	BudgetMode   BudgetMode // percent shares are authoritative, or raw dollars
	StartQuarter string     // first quarter of the planning horizon, e.g. "Q1 2026"
	UpdatedAt    time.Time
}

// Validate checks field ranges on the settings record.
func (s *PlanSettings) Validate() error {
	if s.TotalBudget < 0 {
		return fmt.Errorf("total budget %.2f must not be negative", s.TotalBudget)
	}
	if s.DiscountRate != nil && (*s.DiscountRate < 0 || *s.DiscountRate > 100) {
		return fmt.Errorf("discount rate %.2f must be between 0 and 100 percent", *s.DiscountRate)
	}
	if !ValidBudgetModes[string(s.BudgetMode)] {
		return fmt.Errorf("invalid budget mode %q", s.BudgetMode)
	}
	return nil
}
