package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// resolveDomain accepts a domain code (case-insensitive) or a UUID prefix.
func resolveDomain(ctx context.Context, app *App, input string) (*domain.BusinessDomain, error) {
	if input == "" {
		return nil, fmt.Errorf("domain code is required")
	}

	domains, err := app.Domains.List(ctx, true)
	if err != nil {
		return nil, err
	}

	for i := range domains {
		if strings.EqualFold(domains[i].Code, input) {
			return &domains[i], nil
		}
	}
	for i := range domains {
		if domains[i].ID == input {
			return &domains[i], nil
		}
	}

	var matches []*domain.BusinessDomain
	for i := range domains {
		if strings.HasPrefix(domains[i].ID, input) {
			matches = append(matches, &domains[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("domain not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("domain ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveProject accepts a business project ID like CAP-001 (case-insensitive)
// or a UUID prefix.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	if input == "" {
		return nil, fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		if strings.EqualFold(projects[i].ProjectID, input) {
			return &projects[i], nil
		}
	}
	for i := range projects {
		if projects[i].ID == input {
			return &projects[i], nil
		}
	}

	var matches []*domain.Project
	for i := range projects {
		if strings.HasPrefix(projects[i].ID, input) {
			matches = append(matches, &projects[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// domainCodeMap builds the domain ID to code lookup used by formatters.
func domainCodeMap(ctx context.Context, app *App) (map[string]string, error) {
	domains, err := app.Domains.List(ctx, true)
	if err != nil {
		return nil, err
	}
	codes := make(map[string]string, len(domains))
	for i := range domains {
		codes[domains[i].ID] = domains[i].Code
	}
	return codes, nil
}
