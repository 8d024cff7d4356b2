package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"fishing-game-backend/internal/common/config"
	"fishing-game-backend/internal/features/player/models"
	"fishing-game-backend/internal/features/player/repository"
	referralrepo "fishing-game-backend/internal/features/referral/repository"
	statsrepo "fishing-game-backend/internal/features/stats/repository"
)

type PlayerService interface {
	// Ensure lazily creates the record on first sight and registers the
	// referrer exactly once. referrer==0 means no referral link was followed.
	Ensure(ctx context.Context, fid, referrer int64) (*models.Player, error)
	Get(ctx context.Context, fid int64) (*models.Player, error)
	BindWallet(ctx context.Context, fid int64, address string) error
	Profile(ctx context.Context, fid, referrer int64) (*ProfileResponse, error)
	Balance(ctx context.Context, fid int64) (*BalanceResponse, error)
}

type ProfileResponse struct {
	FID            int64       `json:"fid"`
	Wallet         string      `json:"wallet,omitempty"`
	Mode           models.Mode `json:"mode"`
	ActiveBoatTier int         `json:"active_boat_tier"`
	MinedFish      float64     `json:"mined_fish"`
	CanFishBalance float64     `json:"can_fish_balance"`
	SpinBalance    float64     `json:"spin_balance"`
	XP             int64       `json:"xp"`
	Level          int64       `json:"level"`
	SpinTickets    int64       `json:"spin_tickets"`
	TotalCasts     int64       `json:"total_casts"`
	Qualified      bool        `json:"qualified"`
}

type BalanceResponse struct {
	CanFish   float64 `json:"can_fish"`
	TotalFish float64 `json:"total_fish"`
	Level     int64   `json:"level"`
}

type playerService struct {
	repo      repository.Repository
	stats     statsrepo.Repository
	referrals referralrepo.Repository
	cfg       *config.Config
}

func NewPlayerService(repo repository.Repository, stats statsrepo.Repository, referrals referralrepo.Repository, cfg *config.Config) PlayerService {
	return &playerService{
		repo:      repo,
		stats:     stats,
		referrals: referrals,
		cfg:       cfg,
	}
}

func (s *playerService) Ensure(ctx context.Context, fid, referrer int64) (*models.Player, error) {
	defaults := models.NewPlayer(fid, s.cfg.IsDeveloper(fid), time.Now())

	player, created, err := s.repo.GetOrCreate(ctx, fid, defaults)
	if err != nil {
		return nil, err
	}

	if created {
		log.Info().Int64("fid", fid).Str("mode", string(player.Mode)).Msg("Player initialized")

		if err := s.stats.RegisterPlayer(ctx, fid); err != nil {
			log.Error().Err(err).Int64("fid", fid).Msg("Failed to register player in global set")
		}

		// The referrer binds at most once, and only for first-seen users.
		// Self-referrals are dropped.
		if referrer != 0 && referrer != fid {
			set, err := s.repo.SetReferredBy(ctx, fid, referrer)
			if err != nil {
				log.Error().Err(err).Int64("fid", fid).Msg("Failed to bind referrer")
			} else if set {
				player.ReferredBy = referrer
				if err := s.referrals.AddInvitee(ctx, referrer, fid); err != nil {
					log.Error().Err(err).Int64("referrer", referrer).Msg("Failed to record invitee")
				}
			}
		}
	}

	return player, nil
}

func (s *playerService) Get(ctx context.Context, fid int64) (*models.Player, error) {
	return s.repo.Get(ctx, fid)
}

func (s *playerService) BindWallet(ctx context.Context, fid int64, address string) error {
	return s.repo.BindWallet(ctx, fid, address)
}

func (s *playerService) Profile(ctx context.Context, fid, referrer int64) (*ProfileResponse, error) {
	player, err := s.Ensure(ctx, fid, referrer)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{
		FID:            player.FID,
		Wallet:         player.Wallet,
		Mode:           player.Mode,
		ActiveBoatTier: player.ActiveBoatTier,
		MinedFish:      player.MinedFish,
		CanFishBalance: player.CanFishBalance,
		SpinBalance:    player.SpinBalance,
		XP:             player.XP,
		Level:          player.Level(s.cfg.Game.LevelDivisor),
		SpinTickets:    player.SpinTickets,
		TotalCasts:     player.TotalCasts,
		Qualified:      player.Qualified,
	}, nil
}

func (s *playerService) Balance(ctx context.Context, fid int64) (*BalanceResponse, error) {
	player, err := s.Ensure(ctx, fid, 0)
	if err != nil {
		return nil, err
	}

	return &BalanceResponse{
		CanFish:   player.CanFishBalance,
		TotalFish: player.MinedFish,
		Level:     player.Level(s.cfg.Game.LevelDivisor),
	}, nil
}
