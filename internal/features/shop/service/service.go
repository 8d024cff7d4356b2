package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"fishing-game-backend/internal/common/config"
	"fishing-game-backend/internal/common/errors"
	playermodels "fishing-game-backend/internal/features/player/models"
	playerrepo "fishing-game-backend/internal/features/player/repository"
	"fishing-game-backend/internal/features/shop/models"
)

type ShopService interface {
	SelectBoat(ctx context.Context, fid int64, tier int) (*models.SelectResponse, error)
}

type shopService struct {
	players playerrepo.Repository
	cfg     *config.Config
}

func NewShopService(players playerrepo.Repository, cfg *config.Config) ShopService {
	return &shopService{players: players, cfg: cfg}
}

// SelectBoat applies the tier rules: unknown tiers and unaffordable tiers are
// rejected, paid tiers are upgrade-only (switching to free is always allowed)
// and developers may move freely.
func (s *shopService) SelectBoat(ctx context.Context, fid int64, tier int) (*models.SelectResponse, error) {
	tierCfg, ok := models.BoatTiers[tier]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidBoatTier, "Unknown boat tier %d", tier)
	}

	dev := s.cfg.IsDeveloper(fid)

	defaults := playermodels.NewPlayer(fid, dev, time.Now())
	player, _, err := s.players.GetOrCreate(ctx, fid, defaults)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to load player")
	}

	if !dev && tier != models.TierNone {
		if tier < player.ActiveBoatTier {
			return nil, errors.New(errors.ErrCodeBoatDowngrade, "Cannot move to a lower boat tier")
		}
		if player.CanFishBalance < tierCfg.Price {
			return nil, errors.Newf(errors.ErrCodeInvalidBoatTier, "Cannot afford boat tier %d", tier)
		}
	}

	mode := playermodels.ModePaid
	if tier == models.TierNone {
		mode = playermodels.ModeFree
	}

	if err := s.players.SetBoat(ctx, fid, tier, mode); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to set boat")
	}

	log.Info().Int64("fid", fid).Int("tier", tier).Str("mode", string(mode)).Msg("Boat selected")

	return &models.SelectResponse{
		Tier:        tier,
		Label:       tierCfg.Label,
		SuccessRate: tierCfg.SuccessRate,
		Mode:        string(mode),
	}, nil
}
