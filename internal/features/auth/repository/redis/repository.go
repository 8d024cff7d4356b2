package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fishing-game-backend/internal/features/auth/models"
	"fishing-game-backend/internal/features/auth/repository"
	platform "fishing-game-backend/internal/platform/redis"
)

const (
	keyPrefixChallenge = "auth:nonce:"
	keyPrefixSession   = "session:"
)

type authRepository struct {
	client *platform.Client
}

func NewRepository(client *platform.Client) repository.Repository {
	return &authRepository{client: client}
}

func (r *authRepository) SaveChallenge(ctx context.Context, challenge *models.Challenge, ttl time.Duration) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}
	key := fmt.Sprintf("%s%d", keyPrefixChallenge, challenge.FID)
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *authRepository) GetChallenge(ctx context.Context, fid int64) (*models.Challenge, error) {
	key := fmt.Sprintf("%s%d", keyPrefixChallenge, fid)
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	var challenge models.Challenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}
	return &challenge, nil
}

func (r *authRepository) DeleteChallenge(ctx context.Context, fid int64) error {
	return r.client.Del(ctx, fmt.Sprintf("%s%d", keyPrefixChallenge, fid)).Err()
}

func (r *authRepository) CreateSession(ctx context.Context, fid int64, wallet string, ttl time.Duration) error {
	key := fmt.Sprintf("%s%d", keyPrefixSession, fid)
	return r.client.Set(ctx, key, wallet, ttl).Err()
}

func (r *authRepository) HasSession(ctx context.Context, fid int64) (bool, error) {
	key := fmt.Sprintf("%s%d", keyPrefixSession, fid)
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
