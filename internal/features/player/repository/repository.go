package repository

import (
	"context"
	"errors"

	"fishing-game-backend/internal/features/player/models"
)

var ErrNotFound = errors.New("player not found")

// Repository is the store contract for the per-user record. The store must
// provide atomic single-field increments; multi-field commits are batched but
// the design tolerates a store without real transactions (see CommitCatch).
type Repository interface {
	// GetOrCreate loads the record, writing defaults only when the fid has
	// never been seen. Existing fields are never overwritten. The returned
	// bool reports whether the record was created by this call.
	GetOrCreate(ctx context.Context, fid int64, defaults *models.Player) (*models.Player, bool, error)
	Get(ctx context.Context, fid int64) (*models.Player, error)

	BindWallet(ctx context.Context, fid int64, address string) error
	SetBoat(ctx context.Context, fid int64, tier int, mode models.Mode) error
	// SetReferredBy records the referrer at most once; returns false when the
	// field was already set.
	SetReferredBy(ctx context.Context, fid, referrer int64) (bool, error)

	SetLastCast(ctx context.Context, fid, ts int64) error
	SetFields(ctx context.Context, fid int64, fields map[string]string) error

	// ReplaceBucket installs a fresh hourly bucket, resetting the cursor, the
	// hourly counter and the window start in one batch so a concurrent cast
	// never observes a half-updated bucket.
	ReplaceBucket(ctx context.Context, fid int64, bucket []models.Rarity, windowStart int64) error

	// CommitCatch applies the success-path mutation of a cast: balances, XP,
	// counters and, last of all, the cursor advance. Ordering the cursor last
	// makes a torn batch under-credit instead of double-crediting a slot.
	CommitCatch(ctx context.Context, fid int64, value float64, xp int64) error

	// QualifyOnce performs the atomic test-and-set of the qualified flag.
	// True means this call won the set and the caller owns the one-time
	// global counter increment.
	QualifyOnce(ctx context.Context, fid int64) (bool, error)

	IncrTickets(ctx context.Context, fid int64, delta int64) (int64, error)
	IncrBalance(ctx context.Context, fid int64, field string, delta float64) (float64, error)
	IncrActiveReferrals(ctx context.Context, fid int64) (int64, error)

	DailyCatches(ctx context.Context, fid int64, day string) (int64, error)
	IncrDailyCatches(ctx context.Context, fid int64, day string) (int64, error)

	AppendAudit(ctx context.Context, fid int64, kind string, entry interface{}) error
}
