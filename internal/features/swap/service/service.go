package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fishing-game-backend/internal/common/config"
	"fishing-game-backend/internal/common/errors"
	playermodels "fishing-game-backend/internal/features/player/models"
	playerrepo "fishing-game-backend/internal/features/player/repository"
	statsmodels "fishing-game-backend/internal/features/stats/models"
	statsrepo "fishing-game-backend/internal/features/stats/repository"
	"fishing-game-backend/internal/features/swap/models"
)

const auditKindSwap = "swap"

type SwapService interface {
	Execute(ctx context.Context, fid int64, amount float64) (*models.ExecuteResponse, error)
}

type swapService struct {
	players playerrepo.Repository
	stats   statsrepo.Repository
	cfg     *config.Config

	now func() time.Time
}

func NewSwapService(players playerrepo.Repository, stats statsrepo.Repository, cfg *config.Config) SwapService {
	return &swapService{
		players: players,
		stats:   stats,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Execute burns fish balance for USDC at the configured rate. Validation order
// is amount, cooldown, balance; nothing is written until all three pass.
func (s *swapService) Execute(ctx context.Context, fid int64, amount float64) (*models.ExecuteResponse, error) {
	game := &s.cfg.Game

	if amount < game.SwapMinAmount {
		return nil, errors.Newf(errors.ErrCodeInvalidSwapAmount, "Minimum swap amount is %.0f", game.SwapMinAmount)
	}

	player, err := s.ensure(ctx, fid)
	if err != nil {
		return nil, err
	}

	nowMs := s.now().UnixMilli()
	cooldown := game.SwapCooldown.Milliseconds()
	if player.LastSwapAt != 0 && nowMs-player.LastSwapAt < cooldown {
		return nil, errors.New(errors.ErrCodeSwapCooldown, "Swap cooldown active")
	}

	if player.CanFishBalance < amount {
		return nil, errors.Newf(errors.ErrCodeInsufficientBalance, "Balance %.2f is below swap amount %.2f", player.CanFishBalance, amount)
	}

	usdc := amount/game.SwapRate*game.SwapUSDC - game.SwapFee
	if usdc < 0 {
		usdc = 0
	}

	remaining, err := s.players.IncrBalance(ctx, fid, playermodels.FieldCanFishBalance, -amount)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to burn balance")
	}
	if err := s.players.SetFields(ctx, fid, map[string]string{
		playermodels.FieldLastSwapAt: strconv.FormatInt(nowMs, 10),
	}); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to record swap time")
	}

	if err := s.stats.IncrFloat(ctx, statsmodels.FieldTotalFishBurned, amount); err != nil {
		log.Error().Err(err).Msg("Burned counter failed")
	}
	if err := s.stats.IncrFloat(ctx, statsmodels.FieldTotalSwapOutflow, usdc); err != nil {
		log.Error().Err(err).Msg("Swap outflow counter failed")
	}

	swapID := uuid.New().String()
	entry := models.SwapAuditEntry{
		ID:        swapID,
		Amount:    amount,
		USDC:      usdc,
		Timestamp: nowMs,
	}
	if err := s.players.AppendAudit(ctx, fid, auditKindSwap, entry); err != nil {
		log.Error().Err(err).Int64("fid", fid).Msg("Audit append failed")
	}

	log.Info().
		Int64("fid", fid).
		Float64("amount", amount).
		Float64("usdc", usdc).
		Msg("Swap settled")

	return &models.ExecuteResponse{
		SwapID:           swapID,
		AmountBurned:     amount,
		USDCReceived:     usdc,
		RemainingBalance: remaining,
		NextSwapAt:       nowMs + cooldown,
	}, nil
}

func (s *swapService) ensure(ctx context.Context, fid int64) (*playermodels.Player, error) {
	defaults := playermodels.NewPlayer(fid, s.cfg.IsDeveloper(fid), s.now())
	player, _, err := s.players.GetOrCreate(ctx, fid, defaults)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to load player")
	}
	return player, nil
}
