package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plan_settings (
		id            TEXT PRIMARY KEY DEFAULT 'default',
		total_budget  REAL NOT NULL DEFAULT 0,
		discount_rate REAL,
		currency      TEXT NOT NULL DEFAULT 'USD',
		budget_mode   TEXT NOT NULL DEFAULT 'percent'
		              CHECK(budget_mode IN ('percent','dollar')),
		start_quarter TEXT NOT NULL DEFAULT '',
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS domains (
		id               TEXT PRIMARY KEY,
		code             TEXT NOT NULL UNIQUE,
		name             TEXT NOT NULL,
		budget_percent   REAL NOT NULL DEFAULT 0,
		budget           REAL NOT NULL DEFAULT 0,
		remaining_budget REAL NOT NULL DEFAULT 0,
		risk_tolerance   TEXT NOT NULL DEFAULT 'medium'
		                 CHECK(risk_tolerance IN ('low','medium','high')),
		min_irr          REAL NOT NULL DEFAULT 0,
		max_payback      REAL NOT NULL DEFAULT 0,
		strategic_score  REAL NOT NULL DEFAULT 0,
		is_active        INTEGER NOT NULL DEFAULT 1,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL UNIQUE,
		name              TEXT NOT NULL,
		category          TEXT NOT NULL DEFAULT '',
		domain_id         TEXT NOT NULL REFERENCES domains(id) ON DELETE CASCADE,
		capex             REAL NOT NULL DEFAULT 0,
		opex              REAL NOT NULL DEFAULT 0,
		revenue_potential REAL NOT NULL DEFAULT 0,
		savings_potential REAL NOT NULL DEFAULT 0,
		npv               REAL NOT NULL DEFAULT 0,
		irr               REAL,
		mirr              REAL,
		payback_years     REAL NOT NULL DEFAULT 0,
		risk_score        REAL NOT NULL DEFAULT 0,
		status            TEXT NOT NULL DEFAULT 'available'
		                  CHECK(status IN ('available','selected','excluded')),
		portfolio_rank    INTEGER NOT NULL DEFAULT 0,
		strategic_fit     REAL NOT NULL DEFAULT 0,
		start_quarter     TEXT NOT NULL DEFAULT '',
		business_unit     TEXT NOT NULL DEFAULT '',
		geography         TEXT NOT NULL DEFAULT '',
		sponsor           TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_domain ON projects(domain_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,

	`CREATE TABLE IF NOT EXISTS cash_flows (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		period     INTEGER NOT NULL,
		amount     REAL NOT NULL,
		PRIMARY KEY (project_id, period)
	)`,

	`CREATE TABLE IF NOT EXISTS quarterly_allocations (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		position   INTEGER NOT NULL,
		quarter    TEXT NOT NULL,
		amount     REAL NOT NULL,
		PRIMARY KEY (project_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS approvals (
		id         TEXT PRIMARY KEY,
		domain_id  TEXT NOT NULL REFERENCES domains(id) ON DELETE CASCADE,
		role       TEXT NOT NULL
		           CHECK(role IN ('domain_owner','finance','risk','executive')),
		state      TEXT NOT NULL DEFAULT 'not_started'
		           CHECK(state IN ('not_started','pending','approved','rejected')),
		date       TEXT,
		comments   TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (domain_id, role)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_approvals_domain ON approvals(domain_id)`,
}
