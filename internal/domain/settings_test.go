package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsValidate(t *testing.T) {
	rate := 12.5
	s := &PlanSettings{TotalBudget: 1_000_000, DiscountRate: &rate, Currency: "USD", BudgetMode: BudgetModePercent}
	assert.NoError(t, s.Validate())

	s.TotalBudget = -1
	assert.Error(t, s.Validate())

	s.TotalBudget = 0
	bad := 150.0
	s.DiscountRate = &bad
	assert.Error(t, s.Validate())

	s.DiscountRate = nil
	assert.NoError(t, s.Validate())

	s.BudgetMode = "euros"
	assert.Error(t, s.Validate())
}
