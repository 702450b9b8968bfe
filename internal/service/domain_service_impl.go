package service

import (
	"context"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/approval"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/balance"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/db"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/repository"
	"github.com/google/uuid"
)

type domainService struct {
	domains  repository.DomainRepo
	settings repository.SettingsRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewDomainService(domains repository.DomainRepo, settings repository.SettingsRepo, uow db.UnitOfWork, observers ...UseCaseObserver) DomainService {
	return &domainService{
		domains:  domains,
		settings: settings,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create inserts the domain, seeds its four-role approval matrix and, when
// the new share pushes the active total off 100%, rebalances the other
// domains around it while keeping the requested share pinned.
func (s *domainService) Create(ctx context.Context, d *domain.BusinessDomain) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.RiskTolerance == "" {
		d.RiskTolerance = domain.RiskMedium
	}
	now := time.Now().UTC()
	d.IsActive = true
	d.CreatedAt = now
	d.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDomains := repository.NewSQLiteDomainRepo(tx)
		txApprovals := repository.NewSQLiteApprovalRepo(tx)
		txSettings := repository.NewSQLiteSettingsRepo(tx)

		plan, err := settingsOrDefault(ctx, txSettings)
		if err != nil {
			return err
		}
		d.ApplyTotalBudget(plan.TotalBudget, 0)

		if err := txDomains.Create(ctx, d); err != nil {
			return err
		}
		for _, rec := range approval.Initialize([]domain.BusinessDomain{*d}, now) {
			rec := rec
			if err := txApprovals.Create(ctx, &rec); err != nil {
				return err
			}
		}

		all, err := txDomains.List(ctx, true)
		if err != nil {
			return err
		}
		if !balance.NeedsRebalance(all, plan.BudgetMode) {
			return nil
		}
		out, err := balance.SmartAutoBalance(all, d.ID, d.BudgetPercent, plan.TotalBudget)
		if err != nil {
			return err
		}
		return txDomains.UpdateAll(ctx, out)
	})
}

func (s *domainService) GetByID(ctx context.Context, id string) (*domain.BusinessDomain, error) {
	return s.domains.GetByID(ctx, id)
}

func (s *domainService) GetByCode(ctx context.Context, code string) (*domain.BusinessDomain, error) {
	return s.domains.GetByCode(ctx, code)
}

func (s *domainService) List(ctx context.Context, includeInactive bool) ([]domain.BusinessDomain, error) {
	return s.domains.List(ctx, includeInactive)
}

func (s *domainService) Update(ctx context.Context, d *domain.BusinessDomain) error {
	if err := d.Validate(); err != nil {
		return err
	}
	d.UpdatedAt = time.Now().UTC()
	return s.domains.Update(ctx, d)
}

// SetActive toggles a domain in or out of the plan. Changing the active set
// leaves the shares summing to something other than 100, so the survivors
// are renormalized proportionally when the drift exceeds the tolerance.
func (s *domainService) SetActive(ctx context.Context, id string, active bool) (out []domain.BusinessDomain, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "domain-set-active",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"domain_id": id, "active": active},
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDomains := repository.NewSQLiteDomainRepo(tx)
		txSettings := repository.NewSQLiteSettingsRepo(tx)

		d, err := txDomains.GetByID(ctx, id)
		if err != nil {
			return err
		}
		d.IsActive = active
		d.UpdatedAt = time.Now().UTC()
		if err := txDomains.Update(ctx, d); err != nil {
			return err
		}

		plan, err := settingsOrDefault(ctx, txSettings)
		if err != nil {
			return err
		}
		all, err := txDomains.List(ctx, true)
		if err != nil {
			return err
		}
		if balance.NeedsRebalance(all, plan.BudgetMode) {
			all = balance.Renormalize(all, plan.TotalBudget)
			if err := txDomains.UpdateAll(ctx, all); err != nil {
				return err
			}
		}
		out = all
		return nil
	})
	return out, err
}

func (s *domainService) BalanceEqual(ctx context.Context) (out []domain.BusinessDomain, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDomains := repository.NewSQLiteDomainRepo(tx)
		txSettings := repository.NewSQLiteSettingsRepo(tx)

		plan, err := settingsOrDefault(ctx, txSettings)
		if err != nil {
			return err
		}
		all, err := txDomains.List(ctx, true)
		if err != nil {
			return err
		}
		out = balance.AutoBalanceEqual(all, plan.TotalBudget)
		return txDomains.UpdateAll(ctx, out)
	})
	return out, err
}

func (s *domainService) SetBudgetPercent(ctx context.Context, id string, percent float64) (out []domain.BusinessDomain, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDomains := repository.NewSQLiteDomainRepo(tx)
		txSettings := repository.NewSQLiteSettingsRepo(tx)

		plan, err := settingsOrDefault(ctx, txSettings)
		if err != nil {
			return err
		}
		all, err := txDomains.List(ctx, true)
		if err != nil {
			return err
		}
		out, err = balance.SmartAutoBalance(all, id, percent, plan.TotalBudget)
		if err != nil {
			return err
		}
		return txDomains.UpdateAll(ctx, out)
	})
	return out, err
}

// Delete removes the domain; projects and approval records go with it via
// foreign-key cascade. The surviving shares are renormalized when needed.
func (s *domainService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDomains := repository.NewSQLiteDomainRepo(tx)
		txSettings := repository.NewSQLiteSettingsRepo(tx)

		if err := txDomains.Delete(ctx, id); err != nil {
			return err
		}
		plan, err := settingsOrDefault(ctx, txSettings)
		if err != nil {
			return err
		}
		all, err := txDomains.List(ctx, true)
		if err != nil {
			return err
		}
		if !balance.NeedsRebalance(all, plan.BudgetMode) {
			return nil
		}
		return txDomains.UpdateAll(ctx, balance.Renormalize(all, plan.TotalBudget))
	})
}
