package repository

import (
	"context"
	"errors"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// ErrNotFound marks lookups that matched no row. Wrapped with entity context
// by each repository.
var ErrNotFound = errors.New("not found")

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.PlanSettings, error)
	Upsert(ctx context.Context, s *domain.PlanSettings) error
}

type DomainRepo interface {
	Create(ctx context.Context, d *domain.BusinessDomain) error
	GetByID(ctx context.Context, id string) (*domain.BusinessDomain, error)
	GetByCode(ctx context.Context, code string) (*domain.BusinessDomain, error)
	List(ctx context.Context, includeInactive bool) ([]domain.BusinessDomain, error)
	Update(ctx context.Context, d *domain.BusinessDomain) error
	UpdateAll(ctx context.Context, domains []domain.BusinessDomain) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByProjectID(ctx context.Context, projectID string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListByDomain(ctx context.Context, domainID string) ([]domain.Project, error)
	ListSelected(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type ApprovalRepo interface {
	Create(ctx context.Context, a *domain.ApprovalRecord) error
	GetByID(ctx context.Context, id string) (*domain.ApprovalRecord, error)
	GetByDomainRole(ctx context.Context, domainID string, role domain.ApprovalRole) (*domain.ApprovalRecord, error)
	List(ctx context.Context) ([]domain.ApprovalRecord, error)
	ListByDomain(ctx context.Context, domainID string) ([]domain.ApprovalRecord, error)
	Update(ctx context.Context, a *domain.ApprovalRecord) error
	DeleteByDomain(ctx context.Context, domainID string) error
}
