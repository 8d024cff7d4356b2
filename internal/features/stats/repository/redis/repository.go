package redis

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"fishing-game-backend/internal/features/stats/models"
	"fishing-game-backend/internal/features/stats/repository"
	platform "fishing-game-backend/internal/platform/redis"
)

const (
	keyGlobalStats = "stats:global"
	keyAllPlayers  = "players:all"
)

type statsRepository struct {
	client *platform.Client
}

func NewRepository(client *platform.Client) repository.Repository {
	return &statsRepository{client: client}
}

func (r *statsRepository) IncrFloat(ctx context.Context, field string, delta float64) error {
	return r.client.HIncrByFloat(ctx, keyGlobalStats, field, delta).Err()
}

func (r *statsRepository) IncrInt(ctx context.Context, field string, delta int64) (int64, error) {
	return r.client.HIncrBy(ctx, keyGlobalStats, field, delta).Result()
}

func (r *statsRepository) QualifiedPlayers(ctx context.Context) (int64, error) {
	v, err := r.client.HGet(ctx, keyGlobalStats, models.FieldQualifiedPlayers).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, _ := strconv.ParseInt(v, 10, 64)
	return n, nil
}

func (r *statsRepository) Snapshot(ctx context.Context) (*models.GlobalStats, error) {
	data, err := r.client.HGetAll(ctx, keyGlobalStats).Result()
	if err != nil {
		return nil, err
	}

	total, err := r.TotalPlayers(ctx)
	if err != nil {
		return nil, err
	}

	return &models.GlobalStats{
		QualifiedPlayers:     parseInt(data[models.FieldQualifiedPlayers]),
		TotalPlayers:         total,
		TotalFishMinted:      parseFloat(data[models.FieldTotalFishMinted]),
		TotalFishBurned:      parseFloat(data[models.FieldTotalFishBurned]),
		TotalSpinOutflow:     parseFloat(data[models.FieldTotalSpinOutflow]),
		TotalSwapOutflow:     parseFloat(data[models.FieldTotalSwapOutflow]),
		TotalReferralOutflow: parseFloat(data[models.FieldTotalReferralOutflow]),
	}, nil
}

func (r *statsRepository) RegisterPlayer(ctx context.Context, fid int64) error {
	return r.client.SAdd(ctx, keyAllPlayers, fid).Err()
}

func (r *statsRepository) TotalPlayers(ctx context.Context) (int64, error) {
	return r.client.SCard(ctx, keyAllPlayers).Result()
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
