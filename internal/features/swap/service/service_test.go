package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishing-game-backend/internal/common/config"
	"fishing-game-backend/internal/common/errors"
	playermodels "fishing-game-backend/internal/features/player/models"
	playermemory "fishing-game-backend/internal/features/player/repository/memory"
	statsmodels "fishing-game-backend/internal/features/stats/models"
	statsmemory "fishing-game-backend/internal/features/stats/repository/memory"
)

type swapFixture struct {
	svc     *swapService
	players *playermemory.Repository
	stats   *statsmemory.Repository
	base    time.Time
}

func newSwapFixture() *swapFixture {
	cfg := &config.Config{}
	cfg.Game = config.GameConfig{
		SwapMinAmount: 100,
		SwapRate:      100,
		SwapUSDC:      5,
		SwapFee:       1,
		SwapCooldown:  24 * time.Hour,
		SessionTTL:    24 * time.Hour,
		LevelDivisor:  1000,
	}

	players := playermemory.NewRepository()
	stats := statsmemory.NewRepository()
	svc := NewSwapService(players, stats, cfg).(*swapService)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	return &swapFixture{svc: svc, players: players, stats: stats, base: base}
}

func (f *swapFixture) advance(d time.Duration) {
	f.base = f.base.Add(d)
	current := f.base
	f.svc.now = func() time.Time { return current }
}

func (f *swapFixture) fund(t *testing.T, fid int64, amount float64) {
	t.Helper()

	ctx := context.Background()
	_, _, err := f.players.GetOrCreate(ctx, fid, playermodels.NewPlayer(fid, false, f.base))
	require.NoError(t, err)
	_, err = f.players.IncrBalance(ctx, fid, playermodels.FieldCanFishBalance, amount)
	require.NoError(t, err)
}

func assertCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestExecuteBelowMinimumRejected(t *testing.T) {
	f := newSwapFixture()

	_, err := f.svc.Execute(context.Background(), 100, 50)
	assertCode(t, err, errors.ErrCodeInvalidSwapAmount)
}

func TestExecuteInsufficientBalance(t *testing.T) {
	f := newSwapFixture()
	f.fund(t, 100, 120)

	_, err := f.svc.Execute(context.Background(), 100, 150)
	assertCode(t, err, errors.ErrCodeInsufficientBalance)
}

func TestExecuteSettlesAtConfiguredRate(t *testing.T) {
	f := newSwapFixture()
	f.fund(t, 100, 500)

	result, err := f.svc.Execute(context.Background(), 100, 500)
	require.NoError(t, err)

	// 500 fish at 5 USDC per 100, minus the 1 USDC fee.
	assert.InDelta(t, 24.0, result.USDCReceived, 1e-9)
	assert.InDelta(t, 500.0, result.AmountBurned, 1e-9)
	assert.Zero(t, result.RemainingBalance)
	assert.NotEmpty(t, result.SwapID)

	assert.InDelta(t, 500.0, f.stats.Float(statsmodels.FieldTotalFishBurned), 1e-9)
	assert.InDelta(t, 24.0, f.stats.Float(statsmodels.FieldTotalSwapOutflow), 1e-9)
	assert.Len(t, f.players.Audits(100, "swap"), 1)
}

func TestExecuteCooldownBlocksSecondSwap(t *testing.T) {
	f := newSwapFixture()
	f.fund(t, 100, 1000)

	ctx := context.Background()
	_, err := f.svc.Execute(ctx, 100, 200)
	require.NoError(t, err)

	_, err = f.svc.Execute(ctx, 100, 200)
	assertCode(t, err, errors.ErrCodeSwapCooldown)

	f.advance(25 * time.Hour)
	_, err = f.svc.Execute(ctx, 100, 200)
	require.NoError(t, err)
}
