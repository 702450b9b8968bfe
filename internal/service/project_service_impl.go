package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/allocation"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/db"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/portfolio"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	domains  repository.DomainRepo
	settings repository.SettingsRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProjectService(
	projects repository.ProjectRepo,
	domains repository.DomainRepo,
	settings repository.SettingsRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		projects: projects,
		domains:  domains,
		settings: settings,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = domain.ProjectAvailable
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.recompute(ctx, p); err != nil {
		return err
	}
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) GetByProjectID(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.projects.GetByProjectID(ctx, projectID)
}

func (s *projectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) ListByDomain(ctx context.Context, domainID string) ([]domain.Project, error) {
	return s.projects.ListByDomain(ctx, domainID)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.recompute(ctx, p); err != nil {
		return err
	}
	return s.projects.Update(ctx, p)
}

func (s *projectService) SetCashFlows(ctx context.Context, id string, flows []domain.CashFlow) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.CashFlows = flows
	p.UpdatedAt = time.Now().UTC()
	if err := s.recompute(ctx, p); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Select admits a project into the portfolio, appends it to the bottom of
// its domain's ranking and refreshes the domain's remaining budget. A budget
// overrun does not block the selection; it is reported back for the caller
// to surface.
func (s *projectService) Select(ctx context.Context, id string) (result *SelectResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "project-select",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txDomains := repository.NewSQLiteDomainRepo(tx)

		p, err := txProjects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.IsSelected() {
			result = &SelectResult{Project: p, WithinBudget: true}
			return nil
		}

		d, err := txDomains.GetByID(ctx, p.DomainID)
		if err != nil {
			return err
		}
		inDomain, err := txProjects.ListByDomain(ctx, p.DomainID)
		if err != nil {
			return err
		}
		selected := selectedByRank(inDomain)

		var spend float64
		for i := range selected {
			spend += selected[i].Capex
		}
		within := portfolio.FitsBudget(*d, spend, p.Capex)
		fields["within_budget"] = within

		p.Status = domain.ProjectSelected
		p.PortfolioRank = len(selected) + 1
		p.UpdatedAt = time.Now().UTC()
		if err := txProjects.Update(ctx, p); err != nil {
			return err
		}
		if err := refreshDomainSpend(ctx, txDomains, txProjects, p.DomainID); err != nil {
			return err
		}
		result = &SelectResult{Project: p, WithinBudget: within}
		return nil
	})
	return result, err
}

// Exclude removes a project from the portfolio and closes the rank gap it
// leaves behind, so the domain's selected projects stay ranked 1..n.
func (s *projectService) Exclude(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txDomains := repository.NewSQLiteDomainRepo(tx)

		p, err := txProjects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p.Status = domain.ProjectExcluded
		p.PortfolioRank = 0
		p.UpdatedAt = time.Now().UTC()
		if err := txProjects.Update(ctx, p); err != nil {
			return err
		}

		inDomain, err := txProjects.ListByDomain(ctx, p.DomainID)
		if err != nil {
			return err
		}
		if err := s.reassignRanks(ctx, txProjects, selectedByRank(inDomain)); err != nil {
			return err
		}
		return refreshDomainSpend(ctx, txDomains, txProjects, p.DomainID)
	})
}

// SetRank moves a selected project to the given position within its domain,
// shifting the others. Rank is clamped to 1..n.
func (s *projectService) SetRank(ctx context.Context, id string, rank int) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)

		p, err := txProjects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !p.IsSelected() {
			return fmt.Errorf("project %s is not selected; only portfolio projects can be ranked", p.DisplayID())
		}

		inDomain, err := txProjects.ListByDomain(ctx, p.DomainID)
		if err != nil {
			return err
		}
		selected := selectedByRank(inDomain)

		idx := -1
		for i := range selected {
			if selected[i].ID == p.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return fmt.Errorf("project %s not found among selected projects", p.DisplayID())
		}
		moved := selected[idx]
		selected = append(selected[:idx], selected[idx+1:]...)

		if rank < 1 {
			rank = 1
		}
		if rank > len(selected)+1 {
			rank = len(selected) + 1
		}
		selected = append(selected[:rank-1], append([]domain.Project{moved}, selected[rank-1:]...)...)

		return s.reassignRanks(ctx, txProjects, selected)
	})
}

// Allocate spreads the project's CAPEX across n quarters following the given
// pattern, starting at the project's own start quarter or the plan's.
func (s *projectService) Allocate(ctx context.Context, id string, pattern allocation.Pattern, periods int) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	start := p.StartQuarter
	if start == "" {
		plan, err := settingsOrDefault(ctx, s.settings)
		if err != nil {
			return nil, err
		}
		start = plan.StartQuarter
	}
	if start == "" {
		return nil, fmt.Errorf("no start quarter set on project %s or in plan settings", p.DisplayID())
	}
	q, err := allocation.ParseQuarter(start)
	if err != nil {
		return nil, err
	}

	amounts, err := allocation.Apply(pattern, p.Capex, periods)
	if err != nil {
		return nil, err
	}
	labels := allocation.QuarterLabels(q, periods)

	alloc := make([]domain.QuarterAmount, periods)
	for i := range amounts {
		alloc[i] = domain.QuarterAmount{Quarter: labels[i], Amount: amounts[i]}
	}
	p.QuarterlyAlloc = alloc
	p.UpdatedAt = time.Now().UTC()
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txDomains := repository.NewSQLiteDomainRepo(tx)

		p, err := txProjects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := txProjects.Delete(ctx, id); err != nil {
			return err
		}
		if !p.IsSelected() {
			return nil
		}
		inDomain, err := txProjects.ListByDomain(ctx, p.DomainID)
		if err != nil {
			return err
		}
		if err := s.reassignRanks(ctx, txProjects, selectedByRank(inDomain)); err != nil {
			return err
		}
		return refreshDomainSpend(ctx, txDomains, txProjects, p.DomainID)
	})
}

// recompute derives the four metrics from the cash flows. Projects without
// flows keep zero metrics; projects with flows require a configured discount
// rate.
func (s *projectService) recompute(ctx context.Context, p *domain.Project) error {
	if len(p.CashFlows) == 0 {
		return nil
	}
	plan, err := settingsOrDefault(ctx, s.settings)
	if err != nil {
		return err
	}
	if plan.DiscountRate == nil {
		return ErrDiscountRateUnset
	}
	applyMetrics(p, *plan.DiscountRate)
	return nil
}

func (s *projectService) reassignRanks(ctx context.Context, repo repository.ProjectRepo, ordered []domain.Project) error {
	now := time.Now().UTC()
	for i := range ordered {
		want := i + 1
		if ordered[i].PortfolioRank == want {
			continue
		}
		ordered[i].PortfolioRank = want
		ordered[i].UpdatedAt = now
		if err := repo.Update(ctx, &ordered[i]); err != nil {
			return err
		}
	}
	return nil
}
