// Package approval manages the per-(domain, role) sign-off matrix.
// No ordering is enforced between roles; every transition is an explicit
// caller action, so approved and rejected records can be reopened.
package approval

import (
	"fmt"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/google/uuid"
)

// Initialize builds the full (domain x role) matrix with every record in
// not_started. One record per pair; roles in canonical order per domain.
func Initialize(domains []domain.BusinessDomain, now time.Time) []domain.ApprovalRecord {
	records := make([]domain.ApprovalRecord, 0, len(domains)*len(domain.AllApprovalRoles))
	for _, d := range domains {
		for _, role := range domain.AllApprovalRoles {
			records = append(records, domain.ApprovalRecord{
				ID:        uuid.New().String(),
				DomainID:  d.ID,
				Role:      role,
				State:     domain.ApprovalNotStarted,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
	}
	return records
}

// Transition returns an updated copy of the record in the new state, with
// the transition time stamped and comments replaced. Any state may be set by
// explicit action, including moving a terminal record back to pending.
func Transition(rec domain.ApprovalRecord, to domain.ApprovalState, comments string, now time.Time) (domain.ApprovalRecord, error) {
	if !domain.ValidApprovalStates[string(to)] {
		return rec, fmt.Errorf("approval state %q must be not_started, pending, approved or rejected", to)
	}
	rec.State = to
	stamped := now
	rec.Date = &stamped
	rec.Comments = comments
	rec.UpdatedAt = now
	return rec, nil
}

// Gate reports whether approving is allowed given the portfolio's current
// critical-issue count. Approval is conventionally blocked while critical
// validation issues remain open.
func Gate(criticalCount int) error {
	if criticalCount > 0 {
		return fmt.Errorf("cannot approve while %d critical validation issue(s) remain", criticalCount)
	}
	return nil
}

// Progress summarizes a domain's matrix: approved count and total roles.
func Progress(records []domain.ApprovalRecord, domainID string) (approved, total int) {
	for _, r := range records {
		if r.DomainID != domainID {
			continue
		}
		total++
		if r.State == domain.ApprovalApproved {
			approved++
		}
	}
	return
}
