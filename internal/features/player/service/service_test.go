package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishing-game-backend/internal/common/config"
	"fishing-game-backend/internal/features/player/models"
	playermemory "fishing-game-backend/internal/features/player/repository/memory"
	referralmemory "fishing-game-backend/internal/features/referral/repository/memory"
	statsmemory "fishing-game-backend/internal/features/stats/repository/memory"
)

type playerFixture struct {
	svc       PlayerService
	repo      *playermemory.Repository
	stats     *statsmemory.Repository
	referrals *referralmemory.Repository
}

func newPlayerFixture(devFIDs ...int64) *playerFixture {
	cfg := &config.Config{}
	cfg.Game = config.GameConfig{
		DeveloperFIDs: devFIDs,
		SessionTTL:    24 * time.Hour,
		LevelDivisor:  1000,
	}

	repo := playermemory.NewRepository()
	stats := statsmemory.NewRepository()
	referrals := referralmemory.NewRepository()
	return &playerFixture{
		svc:       NewPlayerService(repo, stats, referrals, cfg),
		repo:      repo,
		stats:     stats,
		referrals: referrals,
	}
}

func TestEnsureCreatesWithDefaults(t *testing.T) {
	f := newPlayerFixture()
	ctx := context.Background()

	player, err := f.svc.Ensure(ctx, 100, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(100), player.FID)
	assert.Equal(t, models.ModeFree, player.Mode)
	assert.Equal(t, int64(1), player.SpinTickets)
	assert.Zero(t, player.ActiveBoatTier)
	assert.False(t, player.Qualified)

	total, err := f.stats.TotalPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestEnsureDeveloperStartsPaid(t *testing.T) {
	f := newPlayerFixture(500)

	player, err := f.svc.Ensure(context.Background(), 500, 0)
	require.NoError(t, err)
	assert.Equal(t, models.ModePaid, player.Mode)
	assert.Equal(t, 50, player.ActiveBoatTier)
}

func TestEnsureBindsReferrerOnFirstSightOnly(t *testing.T) {
	f := newPlayerFixture()
	ctx := context.Background()

	player, err := f.svc.Ensure(ctx, 100, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), player.ReferredBy)

	count, err := f.referrals.InviteeCount(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// A later visit with a different ref link changes nothing.
	player, err = f.svc.Ensure(ctx, 100, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(7), player.ReferredBy)

	count, err = f.referrals.InviteeCount(ctx, 9)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEnsureDropsSelfReferral(t *testing.T) {
	f := newPlayerFixture()
	ctx := context.Background()

	player, err := f.svc.Ensure(ctx, 100, 100)
	require.NoError(t, err)
	assert.Zero(t, player.ReferredBy)
}

func TestProfileDerivesLevel(t *testing.T) {
	f := newPlayerFixture()
	ctx := context.Background()

	_, err := f.svc.Ensure(ctx, 100, 0)
	require.NoError(t, err)
	require.NoError(t, f.repo.SetFields(ctx, 100, map[string]string{
		models.FieldXP: "2600",
	}))

	profile, err := f.svc.Profile(ctx, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), profile.Level)
	assert.Equal(t, int64(2600), profile.XP)
}
