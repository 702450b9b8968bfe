package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProjectID_Valid(t *testing.T) {
	cases := []string{"CAP-001", "MFG-42", "DIGIT-9999", "AB-01"}
	for _, id := range cases {
		p := &Project{ProjectID: id}
		assert.NoError(t, p.ValidateProjectID(), "should accept %q", id)
	}
}

func TestValidateProjectID_Empty(t *testing.T) {
	p := &Project{ProjectID: ""}
	err := p.ValidateProjectID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateProjectID_Invalid(t *testing.T) {
	cases := []string{"cap-001", "CAP001", "CAP-1", "TOOLONGX-01", "CAP-12345"}
	for _, id := range cases {
		p := &Project{ProjectID: id}
		assert.Error(t, p.ValidateProjectID(), "should reject %q", id)
	}
}

func TestProjectValidate_Ranges(t *testing.T) {
	valid := func() *Project {
		return &Project{ProjectID: "CAP-001", Name: "Line Upgrade", DomainID: "d1", Capex: 1000}
	}

	assert.NoError(t, valid().Validate())

	p := valid()
	p.Capex = -5
	assert.Error(t, p.Validate())

	p = valid()
	p.RiskScore = 11
	assert.Error(t, p.Validate())

	p = valid()
	p.StrategicFit = 0.5
	assert.Error(t, p.Validate())

	p = valid()
	p.Status = "parked"
	assert.Error(t, p.Validate())

	// zero means "not scored" for both 1-10 fields
	p = valid()
	p.RiskScore = 0
	p.StrategicFit = 0
	assert.NoError(t, p.Validate())
}

func TestRiskLevelForScore_Buckets(t *testing.T) {
	assert.Equal(t, RiskLow, RiskLevelForScore(1))
	assert.Equal(t, RiskLow, RiskLevelForScore(3))
	assert.Equal(t, RiskMedium, RiskLevelForScore(4))
	assert.Equal(t, RiskMedium, RiskLevelForScore(6))
	assert.Equal(t, RiskHigh, RiskLevelForScore(7))
	assert.Equal(t, RiskHigh, RiskLevelForScore(10))
}

func TestIsSelected_FollowsStatus(t *testing.T) {
	p := &Project{Status: ProjectSelected}
	assert.True(t, p.IsSelected())
	p.Status = ProjectAvailable
	assert.False(t, p.IsSelected())
}

func TestAllocatedTotal(t *testing.T) {
	p := &Project{QuarterlyAlloc: []QuarterAmount{
		{Quarter: "Q1 2026", Amount: 400},
		{Quarter: "Q2 2026", Amount: 600},
	}}
	assert.InDelta(t, 1000, p.AllocatedTotal(), 1e-9)
}

func TestDisplayID_WithProjectID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000", ProjectID: "CAP-001"}
	assert.Equal(t, "CAP-001", p.DisplayID())
}

func TestDisplayID_WithoutProjectID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000"}
	assert.Equal(t, "550e8400", p.DisplayID())
}
