package service

import (
	"context"
	"errors"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/db"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/repository"
)

type settingsService struct {
	settings repository.SettingsRepo
	uow      db.UnitOfWork
}

func NewSettingsService(settings repository.SettingsRepo, uow db.UnitOfWork) SettingsService {
	return &settingsService{settings: settings, uow: uow}
}

func (s *settingsService) Get(ctx context.Context) (*domain.PlanSettings, error) {
	return settingsOrDefault(ctx, s.settings)
}

// Update persists the plan settings and propagates them: domain dollar
// budgets follow TotalBudget, and a changed discount rate re-derives every
// project's metrics. All of it commits or none of it does.
func (s *settingsService) Update(ctx context.Context, ns *domain.PlanSettings) error {
	if ns.BudgetMode == "" {
		ns.BudgetMode = domain.BudgetModePercent
	}
	if ns.Currency == "" {
		ns.Currency = "USD"
	}
	if err := ns.Validate(); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSettings := repository.NewSQLiteSettingsRepo(tx)
		txDomains := repository.NewSQLiteDomainRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)

		prev, err := txSettings.Get(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			prev = defaultSettings()
		} else if err != nil {
			return err
		}

		now := time.Now().UTC()
		ns.UpdatedAt = now
		if err := txSettings.Upsert(ctx, ns); err != nil {
			return err
		}

		domains, err := txDomains.List(ctx, true)
		if err != nil {
			return err
		}
		projects, err := txProjects.List(ctx)
		if err != nil {
			return err
		}

		spend := selectedCapexByDomain(projects)
		for i := range domains {
			domains[i].ApplyTotalBudget(ns.TotalBudget, spend[domains[i].ID])
			domains[i].UpdatedAt = now
		}
		if err := txDomains.UpdateAll(ctx, domains); err != nil {
			return err
		}

		if !rateChanged(prev.DiscountRate, ns.DiscountRate) || ns.DiscountRate == nil {
			return nil
		}
		for i := range projects {
			if len(projects[i].CashFlows) == 0 {
				continue
			}
			applyMetrics(&projects[i], *ns.DiscountRate)
			projects[i].UpdatedAt = now
			if err := txProjects.Update(ctx, &projects[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func rateChanged(a, b *float64) bool {
	if a == nil || b == nil {
		return a != b
	}
	return *a != *b
}
