package service

import (
	"context"

	"yatube/internal/repository"
)

type StatsService interface {
	Counts(ctx context.Context) (repository.Stats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) Counts(ctx context.Context) (repository.Stats, error) {
	return s.statsRepo.Counts(ctx)
}
