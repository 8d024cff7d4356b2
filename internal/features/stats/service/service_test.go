package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishing-game-backend/internal/common/config"
	"fishing-game-backend/internal/features/stats/models"
	"fishing-game-backend/internal/features/stats/repository/memory"
)

func TestGlobalFoldsCountersAndDerivesDifficulty(t *testing.T) {
	cfg := &config.Config{}
	cfg.Game = config.GameConfig{
		BaseDifficulty:  1.0,
		MinDifficulty:   0.1,
		PlayerReduction: 0.001,
	}

	repo := memory.NewRepository()
	ctx := context.Background()

	_, err := repo.IncrInt(ctx, models.FieldQualifiedPlayers, 50)
	require.NoError(t, err)
	require.NoError(t, repo.IncrFloat(ctx, models.FieldTotalFishMinted, 1200))
	require.NoError(t, repo.IncrFloat(ctx, models.FieldTotalFishBurned, 300))
	require.NoError(t, repo.IncrFloat(ctx, models.FieldTotalSpinOutflow, 10))
	require.NoError(t, repo.IncrFloat(ctx, models.FieldTotalSwapOutflow, 24))
	require.NoError(t, repo.IncrFloat(ctx, models.FieldTotalReferralOutflow, 5))
	require.NoError(t, repo.RegisterPlayer(ctx, 100))
	require.NoError(t, repo.RegisterPlayer(ctx, 101))

	svc := NewStatsService(repo, cfg)
	resp, err := svc.Global(ctx)
	require.NoError(t, err)

	assert.Equal(t, "95.0%", resp.DifficultyPercent)
	assert.Equal(t, int64(50), resp.QualifiedPlayers)
	assert.Equal(t, int64(2), resp.TotalPlayers)
	assert.InDelta(t, 1200.0, resp.TotalFishMinted, 1e-9)
	assert.InDelta(t, 300.0, resp.TotalFishBurned, 1e-9)
	assert.InDelta(t, 39.0, resp.USDCOutflow, 1e-9)
}
