package service

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fishing-game-backend/internal/common/config"
	"fishing-game-backend/internal/common/errors"
	playermodels "fishing-game-backend/internal/features/player/models"
	playerrepo "fishing-game-backend/internal/features/player/repository"
	"fishing-game-backend/internal/features/spin/models"
	statsmodels "fishing-game-backend/internal/features/stats/models"
	statsrepo "fishing-game-backend/internal/features/stats/repository"
)

const auditKindSpin = "spin"

type SpinService interface {
	Execute(ctx context.Context, fid int64) (*models.SpinResult, error)
	ClaimDaily(ctx context.Context, fid int64) (*models.DailyResult, error)
}

type spinService struct {
	players playerrepo.Repository
	stats   statsrepo.Repository
	cfg     *config.Config

	roll func() float64
	now  func() time.Time
}

func NewSpinService(players playerrepo.Repository, stats statsrepo.Repository, cfg *config.Config) SpinService {
	return &spinService{
		players: players,
		stats:   stats,
		cfg:     cfg,
		roll:    rand.Float64,
		now:     time.Now,
	}
}

// Execute burns one ticket and rolls the server-side prize table. The burn is
// decrement-then-check: a count that races below zero is refunded right away,
// so the observable balance never settles negative.
func (s *spinService) Execute(ctx context.Context, fid int64) (*models.SpinResult, error) {
	player, err := s.ensure(ctx, fid)
	if err != nil {
		return nil, err
	}

	remaining, err := s.players.IncrTickets(ctx, fid, -1)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to burn ticket")
	}
	if remaining < 0 {
		if _, err := s.players.IncrTickets(ctx, fid, 1); err != nil {
			log.Error().Err(err).Int64("fid", fid).Msg("Ticket refund failed")
		}
		return nil, errors.New(errors.ErrCodeNoTickets, "No spin tickets left")
	}

	prize, rarity := s.rollPrize()

	newBalance := player.SpinBalance
	if prize > 0 {
		newBalance, err = s.players.IncrBalance(ctx, fid, playermodels.FieldSpinBalance, prize)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to credit prize")
		}
		if err := s.stats.IncrFloat(ctx, statsmodels.FieldTotalSpinOutflow, prize); err != nil {
			log.Error().Err(err).Msg("Spin outflow counter failed")
		}
	}

	entry := models.SpinAuditEntry{
		ID:        uuid.New().String(),
		Prize:     prize,
		Rarity:    rarity,
		Timestamp: s.now().UnixMilli(),
	}
	if err := s.players.AppendAudit(ctx, fid, auditKindSpin, entry); err != nil {
		log.Error().Err(err).Int64("fid", fid).Msg("Audit append failed")
	}

	return &models.SpinResult{
		Prize:            prize,
		Rarity:           rarity,
		TicketsRemaining: remaining,
		SpinBalance:      newBalance,
	}, nil
}

// rollPrize mirrors the deployed wheel: 60% nothing, then a nested table for
// the winning 40%.
func (s *spinService) rollPrize() (float64, string) {
	if s.roll()*100 < 60 {
		return 0, "NONE"
	}
	winRoll := s.roll() * 100
	switch {
	case winRoll < 80:
		return 0.05, "COMMON"
	case winRoll < 95:
		return 0.5, "UNCOMMON"
	case winRoll < 99:
		return 5, "RARE"
	default:
		return 50, "LEGENDARY"
	}
}

func (s *spinService) ClaimDaily(ctx context.Context, fid int64) (*models.DailyResult, error) {
	player, err := s.ensure(ctx, fid)
	if err != nil {
		return nil, err
	}

	nowMs := s.now().UnixMilli()
	cooldown := s.cfg.Game.SpinCooldown.Milliseconds()
	if nowMs-player.LastDailySpin < cooldown {
		return nil, errors.New(errors.ErrCodeDailySpinClaimed, "Daily ticket already claimed")
	}

	if err := s.players.SetFields(ctx, fid, map[string]string{
		playermodels.FieldLastDailySpin: strconv.FormatInt(nowMs, 10),
	}); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to record claim")
	}

	tickets, err := s.players.IncrTickets(ctx, fid, 1)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to grant ticket")
	}

	return &models.DailyResult{
		Tickets:      tickets,
		NextClaimAt:  nowMs + cooldown,
		ClaimedAtUTC: nowMs,
	}, nil
}

func (s *spinService) ensure(ctx context.Context, fid int64) (*playermodels.Player, error) {
	defaults := playermodels.NewPlayer(fid, s.cfg.IsDeveloper(fid), s.now())
	player, _, err := s.players.GetOrCreate(ctx, fid, defaults)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to load player")
	}
	return player, nil
}
