package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/approval"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/db"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/repository"
)

type approvalService struct {
	approvals  repository.ApprovalRepo
	domains    repository.DomainRepo
	validation ValidationService
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewApprovalService(
	approvals repository.ApprovalRepo,
	domains repository.DomainRepo,
	validation ValidationService,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ApprovalService {
	return &approvalService{
		approvals:  approvals,
		domains:    domains,
		validation: validation,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *approvalService) List(ctx context.Context) ([]domain.ApprovalRecord, error) {
	return s.approvals.List(ctx)
}

func (s *approvalService) ListByDomain(ctx context.Context, domainID string) ([]domain.ApprovalRecord, error) {
	return s.approvals.ListByDomain(ctx, domainID)
}

// Set transitions one cell of the approval matrix. Moving to approved is
// gated on the portfolio having zero critical validation issues unless force
// is set; the gate is advisory-by-override, not absolute.
func (s *approvalService) Set(ctx context.Context, domainID string, role domain.ApprovalRole, state domain.ApprovalState, comments string, force bool) (updated *domain.ApprovalRecord, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"domain_id": domainID, "role": string(role), "state": string(state)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "approval-set",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if state == domain.ApprovalApproved && !force {
		report, verr := s.validation.Run(ctx)
		if verr != nil {
			return nil, verr
		}
		if gerr := approval.Gate(report.Critical); gerr != nil {
			return nil, fmt.Errorf("%w (use --force to override)", gerr)
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txApprovals := repository.NewSQLiteApprovalRepo(tx)
		txDomains := repository.NewSQLiteDomainRepo(tx)

		rec, err := txApprovals.GetByDomainRole(ctx, domainID, role)
		if errors.Is(err, repository.ErrNotFound) {
			// Older plans may predate the matrix; seed the domain's rows.
			d, derr := txDomains.GetByID(ctx, domainID)
			if derr != nil {
				return derr
			}
			for _, seeded := range approval.Initialize([]domain.BusinessDomain{*d}, time.Now().UTC()) {
				seeded := seeded
				if cerr := txApprovals.Create(ctx, &seeded); cerr != nil {
					return cerr
				}
			}
			rec, err = txApprovals.GetByDomainRole(ctx, domainID, role)
		}
		if err != nil {
			return err
		}

		next, err := approval.Transition(*rec, state, comments, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := txApprovals.Update(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	return updated, err
}

func (s *approvalService) Progress(ctx context.Context, domainID string) (approved, total int, err error) {
	records, err := s.approvals.ListByDomain(ctx, domainID)
	if err != nil {
		return 0, 0, err
	}
	approved, total = approval.Progress(records, domainID)
	return approved, total, nil
}
