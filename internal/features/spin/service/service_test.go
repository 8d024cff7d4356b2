package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishing-game-backend/internal/common/config"
	"fishing-game-backend/internal/common/errors"
	playermemory "fishing-game-backend/internal/features/player/repository/memory"
	statsmodels "fishing-game-backend/internal/features/stats/models"
	statsmemory "fishing-game-backend/internal/features/stats/repository/memory"
)

func rollSeq(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

type spinFixture struct {
	svc     *spinService
	players *playermemory.Repository
	stats   *statsmemory.Repository
	base    time.Time
}

func newSpinFixture() *spinFixture {
	cfg := &config.Config{}
	cfg.Game = config.GameConfig{
		SpinCooldown: 24 * time.Hour,
		SessionTTL:   24 * time.Hour,
		LevelDivisor: 1000,
	}

	players := playermemory.NewRepository()
	stats := statsmemory.NewRepository()
	svc := NewSpinService(players, stats, cfg).(*spinService)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	return &spinFixture{svc: svc, players: players, stats: stats, base: base}
}

func (f *spinFixture) advance(d time.Duration) {
	f.base = f.base.Add(d)
	current := f.base
	f.svc.now = func() time.Time { return current }
}

func assertCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestExecuteWinCreditsSpinBalance(t *testing.T) {
	f := newSpinFixture()
	// 0.7 clears the 60% nothing gate, 0.1 lands in the smallest prize band.
	f.svc.roll = rollSeq(0.7, 0.1)

	result, err := f.svc.Execute(context.Background(), 100)
	require.NoError(t, err)

	assert.InDelta(t, 0.05, result.Prize, 1e-9)
	assert.Equal(t, "COMMON", result.Rarity)
	assert.Equal(t, int64(0), result.TicketsRemaining)
	assert.InDelta(t, 0.05, result.SpinBalance, 1e-9)
	assert.InDelta(t, 0.05, f.stats.Float(statsmodels.FieldTotalSpinOutflow), 1e-9)
	assert.Len(t, f.players.Audits(100, "spin"), 1)
}

func TestExecuteNothingBurnsTicketOnly(t *testing.T) {
	f := newSpinFixture()
	f.svc.roll = rollSeq(0.3)

	result, err := f.svc.Execute(context.Background(), 100)
	require.NoError(t, err)

	assert.Zero(t, result.Prize)
	assert.Equal(t, "NONE", result.Rarity)
	assert.Zero(t, result.SpinBalance)
	assert.Zero(t, f.stats.Float(statsmodels.FieldTotalSpinOutflow))
}

func TestExecuteWithoutTicketsRefundsToZero(t *testing.T) {
	f := newSpinFixture()
	f.svc.roll = rollSeq(0.7, 0.1)

	ctx := context.Background()
	_, err := f.svc.Execute(ctx, 100)
	require.NoError(t, err)

	// Ticket count is now 0; the failed burn must leave it at 0, not -1.
	_, err = f.svc.Execute(ctx, 100)
	assertCode(t, err, errors.ErrCodeNoTickets)

	player, err := f.players.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), player.SpinTickets)
}

func TestPrizeBands(t *testing.T) {
	f := newSpinFixture()

	cases := []struct {
		winRoll float64
		prize   float64
		rarity  string
	}{
		{0.10, 0.05, "COMMON"},
		{0.85, 0.5, "UNCOMMON"},
		{0.96, 5, "RARE"},
		{0.995, 50, "LEGENDARY"},
	}
	for _, tc := range cases {
		f.svc.roll = rollSeq(0.9, tc.winRoll)
		prize, rarity := f.svc.rollPrize()
		assert.InDelta(t, tc.prize, prize, 1e-9)
		assert.Equal(t, tc.rarity, rarity)
	}
}

func TestClaimDailyGrantsOneTicketPerDay(t *testing.T) {
	f := newSpinFixture()

	ctx := context.Background()
	result, err := f.svc.ClaimDaily(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Tickets)

	_, err = f.svc.ClaimDaily(ctx, 100)
	assertCode(t, err, errors.ErrCodeDailySpinClaimed)

	f.advance(25 * time.Hour)
	result, err = f.svc.ClaimDaily(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Tickets)
}
