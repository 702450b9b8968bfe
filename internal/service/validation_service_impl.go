package service

import (
	"context"
	"time"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/repository"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/validation"
)

type validationService struct {
	domains  repository.DomainRepo
	projects repository.ProjectRepo
	rules    []validation.Rule
	observer UseCaseObserver
}

// NewValidationService builds a validation service running the built-in
// checks plus the given configurable rules (nil means validation.DefaultRules).
func NewValidationService(domains repository.DomainRepo, projects repository.ProjectRepo, rules []validation.Rule, observers ...UseCaseObserver) ValidationService {
	if rules == nil {
		rules = validation.DefaultRules()
	}
	return &validationService{
		domains:  domains,
		projects: projects,
		rules:    rules,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *validationService) Run(ctx context.Context) (report *validation.Report, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "validate-portfolio",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	domains, err := s.domains.List(ctx, true)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	r := validation.Run(domains, projects, s.rules)
	fields["critical"] = r.Critical
	fields["warning"] = r.Warning
	fields["info"] = r.Info
	fields["health_score"] = r.HealthScore
	return &r, nil
}
