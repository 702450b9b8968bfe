package approval

import (
	"testing"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_FullMatrix(t *testing.T) {
	domains := []domain.BusinessDomain{{ID: "d1"}, {ID: "d2"}}
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	records := Initialize(domains, now)
	require.Len(t, records, 8, "2 domains x 4 roles")

	seen := make(map[string]bool)
	for _, r := range records {
		key := r.DomainID + "/" + string(r.Role)
		assert.False(t, seen[key], "duplicate pair %s", key)
		seen[key] = true
		assert.Equal(t, domain.ApprovalNotStarted, r.State)
		assert.Nil(t, r.Date)
		assert.NotEmpty(t, r.ID)
	}
}

func TestTransition_StampsDateAndComments(t *testing.T) {
	rec := domain.ApprovalRecord{ID: "a1", DomainID: "d1", Role: domain.RoleFinance, State: domain.ApprovalNotStarted}
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	out, err := Transition(rec, domain.ApprovalPending, "submitted for review", now)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalPending, out.State)
	require.NotNil(t, out.Date)
	assert.Equal(t, now, *out.Date)
	assert.Equal(t, "submitted for review", out.Comments)

	// Input record is unchanged.
	assert.Equal(t, domain.ApprovalNotStarted, rec.State)
	assert.Nil(t, rec.Date)
}

func TestTransition_TerminalStatesCanReopen(t *testing.T) {
	now := time.Now().UTC()
	rec := domain.ApprovalRecord{State: domain.ApprovalApproved}

	out, err := Transition(rec, domain.ApprovalPending, "reopened after budget change", now)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalPending, out.State)

	rec = domain.ApprovalRecord{State: domain.ApprovalRejected}
	out, err = Transition(rec, domain.ApprovalPending, "", now)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalPending, out.State)
}

func TestTransition_InvalidState(t *testing.T) {
	_, err := Transition(domain.ApprovalRecord{}, domain.ApprovalState("vetoed"), "", time.Now())
	assert.Error(t, err)
}

func TestGate(t *testing.T) {
	assert.NoError(t, Gate(0))
	assert.Error(t, Gate(1))
	assert.Error(t, Gate(3))
}

func TestProgress(t *testing.T) {
	records := []domain.ApprovalRecord{
		{DomainID: "d1", Role: domain.RoleDomainOwner, State: domain.ApprovalApproved},
		{DomainID: "d1", Role: domain.RoleFinance, State: domain.ApprovalPending},
		{DomainID: "d1", Role: domain.RoleRisk, State: domain.ApprovalApproved},
		{DomainID: "d1", Role: domain.RoleExecutive, State: domain.ApprovalNotStarted},
		{DomainID: "d2", Role: domain.RoleDomainOwner, State: domain.ApprovalApproved},
	}
	approved, total := Progress(records, "d1")
	assert.Equal(t, 2, approved)
	assert.Equal(t, 4, total)
}
