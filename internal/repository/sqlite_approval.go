package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/db"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// SQLiteApprovalRepo implements ApprovalRepo using a SQLite database.
type SQLiteApprovalRepo struct {
	db db.DBTX
}

// NewSQLiteApprovalRepo creates a new SQLiteApprovalRepo.
func NewSQLiteApprovalRepo(conn db.DBTX) *SQLiteApprovalRepo {
	return &SQLiteApprovalRepo{db: conn}
}

const approvalColumns = `id, domain_id, role, state, date, comments, created_at, updated_at`

func (r *SQLiteApprovalRepo) Create(ctx context.Context, a *domain.ApprovalRecord) error {
	query := `INSERT INTO approvals (` + approvalColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.DomainID,
		string(a.Role),
		string(a.State),
		nullableTimeToString(a.Date, time.RFC3339),
		a.Comments,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting approval: %w", err)
	}
	return nil
}

func (r *SQLiteApprovalRepo) GetByID(ctx context.Context, id string) (*domain.ApprovalRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+approvalColumns+` FROM approvals WHERE id = ?`, id)
	return scanApproval(row)
}

func (r *SQLiteApprovalRepo) GetByDomainRole(ctx context.Context, domainID string, role domain.ApprovalRole) (*domain.ApprovalRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+approvalColumns+` FROM approvals WHERE domain_id = ? AND role = ?`, domainID, string(role))
	return scanApproval(row)
}

func (r *SQLiteApprovalRepo) List(ctx context.Context) ([]domain.ApprovalRecord, error) {
	return r.list(ctx, `SELECT `+approvalColumns+` FROM approvals ORDER BY domain_id, role`)
}

func (r *SQLiteApprovalRepo) ListByDomain(ctx context.Context, domainID string) ([]domain.ApprovalRecord, error) {
	return r.list(ctx, `SELECT `+approvalColumns+` FROM approvals WHERE domain_id = ? ORDER BY role`, domainID)
}

func (r *SQLiteApprovalRepo) Update(ctx context.Context, a *domain.ApprovalRecord) error {
	query := `UPDATE approvals SET state = ?, date = ?, comments = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		string(a.State),
		nullableTimeToString(a.Date, time.RFC3339),
		a.Comments,
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating approval: %w", err)
	}
	return nil
}

func (r *SQLiteApprovalRepo) DeleteByDomain(ctx context.Context, domainID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM approvals WHERE domain_id = ?`, domainID)
	if err != nil {
		return fmt.Errorf("deleting approvals: %w", err)
	}
	return nil
}

func (r *SQLiteApprovalRepo) list(ctx context.Context, query string, args ...any) ([]domain.ApprovalRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing approvals: %w", err)
	}
	defer rows.Close()

	var records []domain.ApprovalRecord
	for rows.Next() {
		a, err := scanApprovalInto(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning approval row: %w", err)
		}
		records = append(records, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating approvals: %w", err)
	}
	return records, nil
}

func scanApprovalInto(s rowScanner) (*domain.ApprovalRecord, error) {
	var a domain.ApprovalRecord
	var role, state string
	var date sql.NullString
	var createdAt, updatedAt string
	err := s.Scan(&a.ID, &a.DomainID, &role, &state, &date, &a.Comments, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	a.Role = domain.ApprovalRole(role)
	a.State = domain.ApprovalState(state)
	a.Date = parseNullableTime(date, time.RFC3339)
	if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		a.CreatedAt = t
	}
	if t, perr := time.Parse(time.RFC3339, updatedAt); perr == nil {
		a.UpdatedAt = t
	}
	return &a, nil
}

func scanApproval(row *sql.Row) (*domain.ApprovalRecord, error) {
	a, err := scanApprovalInto(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("approval: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning approval: %w", err)
	}
	return a, nil
}
