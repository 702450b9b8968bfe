package service

import (
	"context"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/portfolio"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/repository"
)

type portfolioService struct {
	projects repository.ProjectRepo
}

func NewPortfolioService(projects repository.ProjectRepo) PortfolioService {
	return &portfolioService{projects: projects}
}

func (s *portfolioService) Aggregate(ctx context.Context) (portfolio.Metrics, error) {
	selected, err := s.projects.ListSelected(ctx)
	if err != nil {
		return portfolio.Metrics{}, err
	}
	return portfolio.Aggregate(selected), nil
}
