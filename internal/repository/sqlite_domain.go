package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/db"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// SQLiteDomainRepo implements DomainRepo using a SQLite database.
type SQLiteDomainRepo struct {
	db db.DBTX
}

// NewSQLiteDomainRepo creates a new SQLiteDomainRepo.
func NewSQLiteDomainRepo(conn db.DBTX) *SQLiteDomainRepo {
	return &SQLiteDomainRepo{db: conn}
}

const domainColumns = `id, code, name, budget_percent, budget, remaining_budget,
	risk_tolerance, min_irr, max_payback, strategic_score, is_active, created_at, updated_at`

func (r *SQLiteDomainRepo) Create(ctx context.Context, d *domain.BusinessDomain) error {
	query := `INSERT INTO domains (` + domainColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.Code,
		d.Name,
		d.BudgetPercent,
		d.Budget,
		d.RemainingBudget,
		string(d.RiskTolerance),
		d.MinIRR,
		d.MaxPayback,
		d.StrategicScore,
		boolToInt(d.IsActive),
		d.CreatedAt.Format(time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting domain: %w", err)
	}
	return nil
}

func (r *SQLiteDomainRepo) GetByID(ctx context.Context, id string) (*domain.BusinessDomain, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+domainColumns+` FROM domains WHERE id = ?`, id)
	return scanDomain(row)
}

func (r *SQLiteDomainRepo) GetByCode(ctx context.Context, code string) (*domain.BusinessDomain, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+domainColumns+` FROM domains WHERE UPPER(code) = UPPER(?)`, code)
	return scanDomain(row)
}

func (r *SQLiteDomainRepo) List(ctx context.Context, includeInactive bool) ([]domain.BusinessDomain, error) {
	query := `SELECT ` + domainColumns + ` FROM domains ORDER BY created_at`
	if !includeInactive {
		query = `SELECT ` + domainColumns + ` FROM domains WHERE is_active = 1 ORDER BY created_at`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}
	defer rows.Close()

	var domains []domain.BusinessDomain
	for rows.Next() {
		d, err := scanDomainFromRows(rows)
		if err != nil {
			return nil, err
		}
		domains = append(domains, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating domains: %w", err)
	}
	return domains, nil
}

func (r *SQLiteDomainRepo) Update(ctx context.Context, d *domain.BusinessDomain) error {
	query := `UPDATE domains SET code = ?, name = ?, budget_percent = ?, budget = ?,
		remaining_budget = ?, risk_tolerance = ?, min_irr = ?, max_payback = ?,
		strategic_score = ?, is_active = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		d.Code,
		d.Name,
		d.BudgetPercent,
		d.Budget,
		d.RemainingBudget,
		string(d.RiskTolerance),
		d.MinIRR,
		d.MaxPayback,
		d.StrategicScore,
		boolToInt(d.IsActive),
		d.UpdatedAt.Format(time.RFC3339),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating domain: %w", err)
	}
	return nil
}

// UpdateAll persists a rebalanced snapshot in one pass.
func (r *SQLiteDomainRepo) UpdateAll(ctx context.Context, domains []domain.BusinessDomain) error {
	for i := range domains {
		if err := r.Update(ctx, &domains[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteDomainRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM domains WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting domain: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDomainInto(s rowScanner) (*domain.BusinessDomain, error) {
	var d domain.BusinessDomain
	var riskTolerance string
	var isActive int
	var createdAt, updatedAt string
	err := s.Scan(
		&d.ID,
		&d.Code,
		&d.Name,
		&d.BudgetPercent,
		&d.Budget,
		&d.RemainingBudget,
		&riskTolerance,
		&d.MinIRR,
		&d.MaxPayback,
		&d.StrategicScore,
		&isActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.RiskTolerance = domain.RiskLevel(riskTolerance)
	d.IsActive = intToBool(isActive)
	if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		d.CreatedAt = t
	}
	if t, perr := time.Parse(time.RFC3339, updatedAt); perr == nil {
		d.UpdatedAt = t
	}
	return &d, nil
}

func scanDomain(row *sql.Row) (*domain.BusinessDomain, error) {
	d, err := scanDomainInto(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("domain: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning domain: %w", err)
	}
	return d, nil
}

func scanDomainFromRows(rows *sql.Rows) (*domain.BusinessDomain, error) {
	d, err := scanDomainInto(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning domain row: %w", err)
	}
	return d, nil
}
