package service

import (
	"context"
	"fmt"

	"fishing-game-backend/internal/common/config"
	"fishing-game-backend/internal/common/errors"
	miningservice "fishing-game-backend/internal/features/mining/service"
	"fishing-game-backend/internal/features/stats/models"
	"fishing-game-backend/internal/features/stats/repository"
)

type StatsService interface {
	Global(ctx context.Context) (*models.StatsResponse, error)
}

type statsService struct {
	repo repository.Repository
	cfg  *config.Config
}

func NewStatsService(repo repository.Repository, cfg *config.Config) StatsService {
	return &statsService{repo: repo, cfg: cfg}
}

// Global folds the shared counters into the public dashboard shape. The
// difficulty figure is derived on read, never stored.
func (s *statsService) Global(ctx context.Context) (*models.StatsResponse, error) {
	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to read global stats")
	}

	total, err := s.repo.TotalPlayers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to count players")
	}

	multiplier := miningservice.DifficultyMultiplier(snapshot.QualifiedPlayers, &s.cfg.Game)

	return &models.StatsResponse{
		DifficultyPercent: fmt.Sprintf("%.1f%%", multiplier*100),
		QualifiedPlayers:  snapshot.QualifiedPlayers,
		TotalPlayers:      total,
		TotalFishMinted:   snapshot.TotalFishMinted,
		TotalFishBurned:   snapshot.TotalFishBurned,
		USDCOutflow:       snapshot.TotalSpinOutflow + snapshot.TotalSwapOutflow + snapshot.TotalReferralOutflow,
	}, nil
}
