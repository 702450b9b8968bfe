package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/db"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database. Cash
// flows and quarterly allocations live in child tables and are loaded and
// rewritten together with the project row, so the stored metrics always
// match the stored series.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, project_id, name, category, domain_id, capex, opex,
	revenue_potential, savings_potential, npv, irr, mirr, payback_years,
	risk_score, status, portfolio_rank, strategic_fit, start_quarter,
	business_unit, geography, sponsor, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ProjectID,
		p.Name,
		p.Category,
		p.DomainID,
		p.Capex,
		p.Opex,
		p.RevenuePotential,
		p.SavingsPotential,
		p.NPV,
		nullableFloatToValue(p.IRR),
		nullableFloatToValue(p.MIRR),
		p.PaybackYears,
		p.RiskScore,
		string(p.Status),
		p.PortfolioRank,
		p.StrategicFit,
		p.StartQuarter,
		p.BusinessUnit,
		p.Geography,
		p.Sponsor,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	if err := r.writeCashFlows(ctx, p.ID, p.CashFlows); err != nil {
		return err
	}
	return r.writeAllocations(ctx, p.ID, p.QuarterlyAlloc)
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return r.scanAndLoad(ctx, row)
}

func (r *SQLiteProjectRepo) GetByProjectID(ctx context.Context, projectID string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE UPPER(project_id) = UPPER(?)`, projectID)
	return r.scanAndLoad(ctx, row)
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at`)
}

func (r *SQLiteProjectRepo) ListByDomain(ctx context.Context, domainID string) ([]domain.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects WHERE domain_id = ? ORDER BY portfolio_rank, created_at`, domainID)
}

func (r *SQLiteProjectRepo) ListSelected(ctx context.Context) ([]domain.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects WHERE status = 'selected' ORDER BY domain_id, portfolio_rank`)
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET project_id = ?, name = ?, category = ?, domain_id = ?,
		capex = ?, opex = ?, revenue_potential = ?, savings_potential = ?,
		npv = ?, irr = ?, mirr = ?, payback_years = ?, risk_score = ?,
		status = ?, portfolio_rank = ?, strategic_fit = ?, start_quarter = ?,
		business_unit = ?, geography = ?, sponsor = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.ProjectID,
		p.Name,
		p.Category,
		p.DomainID,
		p.Capex,
		p.Opex,
		p.RevenuePotential,
		p.SavingsPotential,
		p.NPV,
		nullableFloatToValue(p.IRR),
		nullableFloatToValue(p.MIRR),
		p.PaybackYears,
		p.RiskScore,
		string(p.Status),
		p.PortfolioRank,
		p.StrategicFit,
		p.StartQuarter,
		p.BusinessUnit,
		p.Geography,
		p.Sponsor,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if err := r.writeCashFlows(ctx, p.ID, p.CashFlows); err != nil {
		return err
	}
	return r.writeAllocations(ctx, p.ID, p.QuarterlyAlloc)
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) writeCashFlows(ctx context.Context, projectID string, flows []domain.CashFlow) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cash_flows WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing cash flows: %w", err)
	}
	for _, cf := range flows {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO cash_flows (project_id, period, amount) VALUES (?, ?, ?)`,
			projectID, cf.Period, cf.Amount); err != nil {
			return fmt.Errorf("inserting cash flow: %w", err)
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) writeAllocations(ctx context.Context, projectID string, alloc []domain.QuarterAmount) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quarterly_allocations WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing quarterly allocations: %w", err)
	}
	for i, qa := range alloc {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO quarterly_allocations (project_id, position, quarter, amount) VALUES (?, ?, ?, ?)`,
			projectID, i, qa.Quarter, qa.Amount); err != nil {
			return fmt.Errorf("inserting quarterly allocation: %w", err)
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) loadCashFlows(ctx context.Context, projectID string) ([]domain.CashFlow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT period, amount FROM cash_flows WHERE project_id = ? ORDER BY period`, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading cash flows: %w", err)
	}
	defer rows.Close()

	var flows []domain.CashFlow
	for rows.Next() {
		var cf domain.CashFlow
		if err := rows.Scan(&cf.Period, &cf.Amount); err != nil {
			return nil, fmt.Errorf("scanning cash flow: %w", err)
		}
		flows = append(flows, cf)
	}
	return flows, rows.Err()
}

func (r *SQLiteProjectRepo) loadAllocations(ctx context.Context, projectID string) ([]domain.QuarterAmount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT quarter, amount FROM quarterly_allocations WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading quarterly allocations: %w", err)
	}
	defer rows.Close()

	var alloc []domain.QuarterAmount
	for rows.Next() {
		var qa domain.QuarterAmount
		if err := rows.Scan(&qa.Quarter, &qa.Amount); err != nil {
			return nil, fmt.Errorf("scanning quarterly allocation: %w", err)
		}
		alloc = append(alloc, qa)
	}
	return alloc, rows.Err()
}

func (r *SQLiteProjectRepo) scanAndLoad(ctx context.Context, row *sql.Row) (*domain.Project, error) {
	p, err := scanProjectInto(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	if p.CashFlows, err = r.loadCashFlows(ctx, p.ID); err != nil {
		return nil, err
	}
	if p.QuarterlyAlloc, err = r.loadAllocations(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProjectRepo) list(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProjectInto(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	for i := range projects {
		if projects[i].CashFlows, err = r.loadCashFlows(ctx, projects[i].ID); err != nil {
			return nil, err
		}
		if projects[i].QuarterlyAlloc, err = r.loadAllocations(ctx, projects[i].ID); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func scanProjectInto(s rowScanner) (*domain.Project, error) {
	var p domain.Project
	var irr, mirr sql.NullFloat64
	var status string
	var createdAt, updatedAt string
	err := s.Scan(
		&p.ID,
		&p.ProjectID,
		&p.Name,
		&p.Category,
		&p.DomainID,
		&p.Capex,
		&p.Opex,
		&p.RevenuePotential,
		&p.SavingsPotential,
		&p.NPV,
		&irr,
		&mirr,
		&p.PaybackYears,
		&p.RiskScore,
		&status,
		&p.PortfolioRank,
		&p.StrategicFit,
		&p.StartQuarter,
		&p.BusinessUnit,
		&p.Geography,
		&p.Sponsor,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.IRR = parseNullableFloat(irr)
	p.MIRR = parseNullableFloat(mirr)
	p.Status = domain.ProjectStatus(status)
	if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		p.CreatedAt = t
	}
	if t, perr := time.Parse(time.RFC3339, updatedAt); perr == nil {
		p.UpdatedAt = t
	}
	return &p, nil
}
