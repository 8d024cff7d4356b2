package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishing-game-backend/internal/common/config"
	playermodels "fishing-game-backend/internal/features/player/models"
	playermemory "fishing-game-backend/internal/features/player/repository/memory"
	"fishing-game-backend/internal/features/referral/repository"
	referralmemory "fishing-game-backend/internal/features/referral/repository/memory"
	statsmodels "fishing-game-backend/internal/features/stats/models"
	statsmemory "fishing-game-backend/internal/features/stats/repository/memory"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Game = config.GameConfig{
		ReferralActivationReward: 5,
		ReferralCastsReward:      10,
		ReferralFishReward:       25,
		ReferralCastsThreshold:   10,
		ReferralFishThreshold:    50,
		ReferralTicketEvery:      3,
		LevelDivisor:             1000,
		SessionTTL:               24 * time.Hour,
	}
	return cfg
}

type referralFixture struct {
	svc     Evaluator
	repo    *referralmemory.Repository
	players *playermemory.Repository
	stats   *statsmemory.Repository
	cfg     *config.Config
}

func newReferralFixture() *referralFixture {
	cfg := testConfig()
	repo := referralmemory.NewRepository()
	players := playermemory.NewRepository()
	stats := statsmemory.NewRepository()
	return &referralFixture{
		svc:     NewReferralService(repo, players, stats, cfg),
		repo:    repo,
		players: players,
		stats:   stats,
		cfg:     cfg,
	}
}

func caster(fid, referredBy int64) *playermodels.Player {
	return &playermodels.Player{FID: fid, ReferredBy: referredBy}
}

func TestActivationPaidExactlyOnce(t *testing.T) {
	f := newReferralFixture()
	ctx := context.Background()

	f.svc.EvaluateAfterCast(ctx, caster(100, 7), 1, 5)
	f.svc.EvaluateAfterCast(ctx, caster(100, 7), 2, 10)

	referrer, err := f.players.Get(ctx, 7)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, referrer.CanFishBalance, 1e-9)
	assert.Equal(t, int64(1), referrer.ActiveReferrals)
	assert.InDelta(t, 5.0, f.stats.Float(statsmodels.FieldTotalReferralOutflow), 1e-9)
}

func TestAllMilestonesPayTheirRewards(t *testing.T) {
	f := newReferralFixture()
	ctx := context.Background()

	f.svc.EvaluateAfterCast(ctx, caster(100, 7), 10, 60)

	referrer, err := f.players.Get(ctx, 7)
	require.NoError(t, err)
	assert.InDelta(t, 5.0+10.0+25.0, referrer.CanFishBalance, 1e-9)

	// Replaying the same state credits nothing further.
	f.svc.EvaluateAfterCast(ctx, caster(100, 7), 11, 65)
	referrer, err = f.players.Get(ctx, 7)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, referrer.CanFishBalance, 1e-9)
}

func TestNoReferrerMeansNoEvaluation(t *testing.T) {
	f := newReferralFixture()
	ctx := context.Background()

	f.svc.EvaluateAfterCast(ctx, caster(100, 0), 10, 60)
	f.svc.EvaluateAfterCast(ctx, caster(100, 100), 10, 60)

	_, err := f.players.Get(ctx, 100)
	assert.Error(t, err)
}

func TestBonusTicketEveryThirdActivation(t *testing.T) {
	f := newReferralFixture()
	ctx := context.Background()

	for _, fid := range []int64{100, 101, 102} {
		f.svc.EvaluateAfterCast(ctx, caster(fid, 7), 1, 1)
	}

	referrer, err := f.players.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), referrer.ActiveReferrals)
	assert.Equal(t, int64(1), referrer.SpinTickets)

	// Two more activations stay below the next threshold.
	f.svc.EvaluateAfterCast(ctx, caster(103, 7), 1, 1)
	f.svc.EvaluateAfterCast(ctx, caster(104, 7), 1, 1)

	referrer, err = f.players.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), referrer.SpinTickets)
}

func TestStatsCountsInviteesAndActivations(t *testing.T) {
	f := newReferralFixture()
	ctx := context.Background()

	require.NoError(t, f.repo.AddInvitee(ctx, 7, 100))
	require.NoError(t, f.repo.AddInvitee(ctx, 7, 101))
	f.svc.EvaluateAfterCast(ctx, caster(100, 7), 1, 1)

	stats, err := f.svc.Stats(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Invitees)
	assert.Equal(t, int64(1), stats.ActiveReferrals)
}

func TestClaimMilestoneIsSetNXStyle(t *testing.T) {
	f := newReferralFixture()
	ctx := context.Background()

	won, err := f.repo.ClaimMilestone(ctx, 100, repository.MilestoneActivated)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = f.repo.ClaimMilestone(ctx, 100, repository.MilestoneActivated)
	require.NoError(t, err)
	assert.False(t, won)
}
