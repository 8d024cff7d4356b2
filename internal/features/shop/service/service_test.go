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
	"fishing-game-backend/internal/features/shop/models"
)

func newShopFixture(devFIDs ...int64) (ShopService, *playermemory.Repository) {
	cfg := &config.Config{}
	cfg.Game = config.GameConfig{
		DeveloperFIDs: devFIDs,
		SessionTTL:    24 * time.Hour,
		LevelDivisor:  1000,
	}

	players := playermemory.NewRepository()
	return NewShopService(players, cfg), players
}

func fund(t *testing.T, players *playermemory.Repository, fid int64, amount float64) {
	t.Helper()

	ctx := context.Background()
	_, _, err := players.GetOrCreate(ctx, fid, playermodels.NewPlayer(fid, false, time.Now()))
	require.NoError(t, err)
	_, err = players.IncrBalance(ctx, fid, playermodels.FieldCanFishBalance, amount)
	require.NoError(t, err)
}

func assertCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestSelectUnknownTierRejected(t *testing.T) {
	svc, _ := newShopFixture()

	_, err := svc.SelectBoat(context.Background(), 100, 7)
	assertCode(t, err, errors.ErrCodeInvalidBoatTier)
}

func TestSelectUnaffordableTierRejected(t *testing.T) {
	svc, _ := newShopFixture()

	_, err := svc.SelectBoat(context.Background(), 100, 10)
	assertCode(t, err, errors.ErrCodeInvalidBoatTier)
}

func TestSelectPaidTierSwitchesToPaidMode(t *testing.T) {
	svc, players := newShopFixture()
	fund(t, players, 100, 200)

	ctx := context.Background()
	resp, err := svc.SelectBoat(ctx, 100, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Tier)
	assert.Equal(t, string(playermodels.ModePaid), resp.Mode)

	player, err := players.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, player.ActiveBoatTier)
	assert.Equal(t, playermodels.ModePaid, player.Mode)
}

func TestDowngradeRejected(t *testing.T) {
	svc, players := newShopFixture()
	fund(t, players, 100, 1000)

	ctx := context.Background()
	_, err := svc.SelectBoat(ctx, 100, 20)
	require.NoError(t, err)

	_, err = svc.SelectBoat(ctx, 100, 10)
	assertCode(t, err, errors.ErrCodeBoatDowngrade)
}

func TestTierZeroSwitchesToFreeMode(t *testing.T) {
	svc, players := newShopFixture()
	fund(t, players, 100, 1000)

	ctx := context.Background()
	_, err := svc.SelectBoat(ctx, 100, 20)
	require.NoError(t, err)

	resp, err := svc.SelectBoat(ctx, 100, models.TierNone)
	require.NoError(t, err)
	assert.Equal(t, string(playermodels.ModeFree), resp.Mode)

	player, err := players.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, playermodels.ModeFree, player.Mode)
}

func TestDeveloperBypassesPriceAndDowngradeRules(t *testing.T) {
	svc, players := newShopFixture(500)

	ctx := context.Background()
	_, err := svc.SelectBoat(ctx, 500, 50)
	require.NoError(t, err)

	// Moving down a tier without balance is allowed for developers.
	_, err = svc.SelectBoat(ctx, 500, 10)
	require.NoError(t, err)

	player, err := players.Get(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, 10, player.ActiveBoatTier)
}
