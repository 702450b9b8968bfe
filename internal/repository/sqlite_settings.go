package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/db"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo using a SQLite database.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a new SQLiteSettingsRepo.
func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.PlanSettings, error) {
	query := `SELECT total_budget, discount_rate, currency, budget_mode, start_quarter, updated_at
		FROM plan_settings WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var s domain.PlanSettings
	var rate sql.NullFloat64
	var updatedAt string
	err := row.Scan(&s.TotalBudget, &rate, &s.Currency, &s.BudgetMode, &s.StartQuarter, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan settings: %w", err)
	}
	s.DiscountRate = parseNullableFloat(rate)
	if t, perr := time.Parse(time.RFC3339, updatedAt); perr == nil {
		s.UpdatedAt = t
	}
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.PlanSettings) error {
	query := `INSERT OR REPLACE INTO plan_settings (id, total_budget, discount_rate, currency, budget_mode, start_quarter, updated_at)
		VALUES ('default', ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.TotalBudget,
		nullableFloatToValue(s.DiscountRate),
		s.Currency,
		string(s.BudgetMode),
		s.StartQuarter,
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting plan settings: %w", err)
	}
	return nil
}
