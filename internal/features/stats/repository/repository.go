package repository

import (
	"context"

	"fishing-game-backend/internal/features/stats/models"
)

// Repository is the atomic counter store behind the global economy record.
// Implementations must never read-modify-write these counters in application
// code; concurrent casts from many users depend on store-side atomicity.
type Repository interface {
	IncrFloat(ctx context.Context, field string, delta float64) error
	IncrInt(ctx context.Context, field string, delta int64) (int64, error)
	QualifiedPlayers(ctx context.Context) (int64, error)
	Snapshot(ctx context.Context) (*models.GlobalStats, error)

	RegisterPlayer(ctx context.Context, fid int64) error
	TotalPlayers(ctx context.Context) (int64, error)
}
