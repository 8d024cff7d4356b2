package repository

import (
	"context"
	"time"

	"fishing-game-backend/internal/features/auth/models"
)

// Repository stores wallet-proof challenges and the per-fid session markers
// that gate every mutating game operation.
type Repository interface {
	SaveChallenge(ctx context.Context, challenge *models.Challenge, ttl time.Duration) error
	// GetChallenge returns nil when no live challenge exists.
	GetChallenge(ctx context.Context, fid int64) (*models.Challenge, error)
	DeleteChallenge(ctx context.Context, fid int64) error

	CreateSession(ctx context.Context, fid int64, wallet string, ttl time.Duration) error
	HasSession(ctx context.Context, fid int64) (bool, error)
}
