package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/db"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/importer"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	settings repository.SettingsRepo
	domains  repository.DomainRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(
	settings repository.SettingsRepo,
	domains repository.DomainRepo,
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		settings: settings,
		domains:  domains,
		projects: projects,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// ImportProjects loads a CSV file and upserts every row in one transaction.
// Rows with a known project_id update the existing record but keep its
// portfolio status and rank; unknown rows are created as available. Any
// failure rolls the whole file back.
func (s *importService) ImportProjects(ctx context.Context, filePath string) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"file": filePath}
	defer func() {
		if result != nil {
			fields["created"] = result.Created
			fields["updated"] = result.Updated
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-projects",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	file, err := importer.LoadProjects(filePath)
	if err != nil {
		return nil, err
	}
	if errs := importer.ValidateFile(file); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSettings := repository.NewSQLiteSettingsRepo(tx)
		txDomains := repository.NewSQLiteDomainRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)

		plan, err := settingsOrDefault(ctx, txSettings)
		if err != nil {
			return err
		}

		domainIDs := make(map[string]string)
		all, err := txDomains.List(ctx, true)
		if err != nil {
			return err
		}
		for i := range all {
			domainIDs[all[i].Code] = all[i].ID
		}

		result = &ImportResult{}
		touched := make(map[string]bool)
		now := time.Now().UTC()

		for i := range file.Rows {
			row := &file.Rows[i]
			domainID, ok := domainIDs[row.DomainCode]
			if !ok {
				return fmt.Errorf("line %d: unknown domain code %q (create the domain first)", row.Line, row.DomainCode)
			}
			touched[domainID] = true

			p := importer.Convert(row, domainID)
			if len(p.CashFlows) > 0 {
				if plan.DiscountRate == nil {
					return ErrDiscountRateUnset
				}
				applyMetrics(p, *plan.DiscountRate)
			}

			existing, err := txProjects.GetByProjectID(ctx, row.ProjectID)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				p.ID = uuid.New().String()
				p.CreatedAt = now
				p.UpdatedAt = now
				if err := txProjects.Create(ctx, p); err != nil {
					return fmt.Errorf("line %d: %w", row.Line, err)
				}
				result.Created++
			case err != nil:
				return err
			default:
				p.ID = existing.ID
				p.Status = existing.Status
				p.PortfolioRank = existing.PortfolioRank
				p.CreatedAt = existing.CreatedAt
				p.UpdatedAt = now
				if err := txProjects.Update(ctx, p); err != nil {
					return fmt.Errorf("line %d: %w", row.Line, err)
				}
				result.Updated++
			}
		}

		for domainID := range touched {
			if err := refreshDomainSpend(ctx, txDomains, txProjects, domainID); err != nil {
				return err
			}
			result.Domains = append(result.Domains, domainID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ExportProjects writes every project to w in the interchange CSV format.
func (s *importService) ExportProjects(ctx context.Context, w io.Writer) error {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return err
	}
	domains, err := s.domains.List(ctx, true)
	if err != nil {
		return err
	}
	codes := make(map[string]string, len(domains))
	for i := range domains {
		codes[domains[i].ID] = domains[i].Code
	}
	return importer.WriteProjects(w, projects, codes)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
