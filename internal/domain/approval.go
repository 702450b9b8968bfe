package domain

import "time"

// ApprovalRecord is one sign-off slot in the approval matrix. Exactly one
// record exists per (domain, role) pair.
type ApprovalRecord struct {
	ID        string
	DomainID  string
	Role      ApprovalRole
	State     ApprovalState
	Date      *time.Time // stamped on every transition, nil while not_started
	Comments  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
