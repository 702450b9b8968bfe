package service

import (
	"context"
	"io"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/allocation"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/portfolio"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/validation"
)

type SettingsService interface {
	Get(ctx context.Context) (*domain.PlanSettings, error)
	Update(ctx context.Context, s *domain.PlanSettings) error
}

type DomainService interface {
	Create(ctx context.Context, d *domain.BusinessDomain) error
	GetByID(ctx context.Context, id string) (*domain.BusinessDomain, error)
	GetByCode(ctx context.Context, code string) (*domain.BusinessDomain, error)
	List(ctx context.Context, includeInactive bool) ([]domain.BusinessDomain, error)
	Update(ctx context.Context, d *domain.BusinessDomain) error
	SetActive(ctx context.Context, id string, active bool) ([]domain.BusinessDomain, error)
	BalanceEqual(ctx context.Context) ([]domain.BusinessDomain, error)
	SetBudgetPercent(ctx context.Context, id string, percent float64) ([]domain.BusinessDomain, error)
	Delete(ctx context.Context, id string) error
}

// SelectResult reports a portfolio admission. WithinBudget is advisory: the
// selection goes through either way and the caller decides what to surface.
type SelectResult struct {
	Project      *domain.Project
	WithinBudget bool
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByProjectID(ctx context.Context, projectID string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListByDomain(ctx context.Context, domainID string) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	SetCashFlows(ctx context.Context, id string, flows []domain.CashFlow) (*domain.Project, error)
	Select(ctx context.Context, id string) (*SelectResult, error)
	Exclude(ctx context.Context, id string) error
	SetRank(ctx context.Context, id string, rank int) error
	Allocate(ctx context.Context, id string, pattern allocation.Pattern, periods int) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type PortfolioService interface {
	Aggregate(ctx context.Context) (portfolio.Metrics, error)
}

type ValidationService interface {
	Run(ctx context.Context) (*validation.Report, error)
}

type ApprovalService interface {
	List(ctx context.Context) ([]domain.ApprovalRecord, error)
	ListByDomain(ctx context.Context, domainID string) ([]domain.ApprovalRecord, error)
	Set(ctx context.Context, domainID string, role domain.ApprovalRole, state domain.ApprovalState, comments string, force bool) (*domain.ApprovalRecord, error)
	Progress(ctx context.Context, domainID string) (approved, total int, err error)
}

// ImportResult holds the outcome of a CSV project import.
type ImportResult struct {
	Created int
	Updated int
	Domains []string
}

type ImportService interface {
	ImportProjects(ctx context.Context, filePath string) (*ImportResult, error)
	ExportProjects(ctx context.Context, w io.Writer) error
}
