package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"fishing-game-backend/internal/common/config"
	playermodels "fishing-game-backend/internal/features/player/models"
	playerrepo "fishing-game-backend/internal/features/player/repository"
	"fishing-game-backend/internal/features/referral/repository"
	statsmodels "fishing-game-backend/internal/features/stats/models"
	statsrepo "fishing-game-backend/internal/features/stats/repository"
)

// Evaluator runs the referral milestone checks after a successful cast.
// Everything here is best-effort: a failure is logged and swallowed, it must
// never fail the cast that triggered it.
type Evaluator interface {
	EvaluateAfterCast(ctx context.Context, caster *playermodels.Player, totalCasts int64, minedTotal float64)
	Stats(ctx context.Context, fid int64) (*StatsResponse, error)
}

type StatsResponse struct {
	Invitees        int64 `json:"invitees"`
	ActiveReferrals int64 `json:"active_referrals"`
}

type referralService struct {
	repo    repository.Repository
	players playerrepo.Repository
	stats   statsrepo.Repository
	cfg     *config.Config
}

func NewReferralService(repo repository.Repository, players playerrepo.Repository, stats statsrepo.Repository, cfg *config.Config) Evaluator {
	return &referralService{repo: repo, players: players, stats: stats, cfg: cfg}
}

func (s *referralService) EvaluateAfterCast(ctx context.Context, caster *playermodels.Player, totalCasts int64, minedTotal float64) {
	referrer := caster.ReferredBy
	if referrer == 0 || referrer == caster.FID {
		return
	}

	game := &s.cfg.Game

	if totalCasts >= 1 {
		s.claimAndPay(ctx, caster.FID, referrer, repository.MilestoneActivated, game.ReferralActivationReward, true)
	}
	if totalCasts >= game.ReferralCastsThreshold {
		s.claimAndPay(ctx, caster.FID, referrer, repository.MilestoneCasts, game.ReferralCastsReward, false)
	}
	if minedTotal >= game.ReferralFishThreshold {
		s.claimAndPay(ctx, caster.FID, referrer, repository.MilestoneFish, game.ReferralFishReward, false)
	}
}

// claimAndPay credits a milestone reward at most once per referred user. The
// SETNX marker, not the re-derivable cast counters, is the idempotency guard.
func (s *referralService) claimAndPay(ctx context.Context, referred, referrer int64, milestone string, reward float64, activation bool) {
	won, err := s.repo.ClaimMilestone(ctx, referred, milestone)
	if err != nil {
		log.Error().Err(err).Int64("referred", referred).Str("milestone", milestone).Msg("Milestone claim failed")
		return
	}
	if !won {
		return
	}

	if _, err := s.players.IncrBalance(ctx, referrer, playermodels.FieldCanFishBalance, reward); err != nil {
		log.Error().Err(err).Int64("referrer", referrer).Str("milestone", milestone).Msg("Referral reward credit failed")
		return
	}
	if err := s.stats.IncrFloat(ctx, statsmodels.FieldTotalReferralOutflow, reward); err != nil {
		log.Error().Err(err).Str("milestone", milestone).Msg("Referral outflow counter failed")
	}

	if activation {
		active, err := s.players.IncrActiveReferrals(ctx, referrer)
		if err != nil {
			log.Error().Err(err).Int64("referrer", referrer).Msg("Active referral counter failed")
		} else if s.cfg.Game.ReferralTicketEvery > 0 && active%s.cfg.Game.ReferralTicketEvery == 0 {
			// One bonus spin ticket per N activated invitees.
			if _, err := s.players.IncrTickets(ctx, referrer, 1); err != nil {
				log.Error().Err(err).Int64("referrer", referrer).Msg("Bonus ticket grant failed")
			}
		}
	}

	log.Info().
		Int64("referrer", referrer).
		Int64("referred", referred).
		Str("milestone", milestone).
		Float64("reward", reward).
		Msg("Referral milestone credited")
}

func (s *referralService) Stats(ctx context.Context, fid int64) (*StatsResponse, error) {
	invitees, err := s.repo.InviteeCount(ctx, fid)
	if err != nil {
		return nil, err
	}

	player, err := s.players.Get(ctx, fid)
	if err != nil {
		if err == playerrepo.ErrNotFound {
			return &StatsResponse{Invitees: invitees}, nil
		}
		return nil, err
	}

	return &StatsResponse{
		Invitees:        invitees,
		ActiveReferrals: player.ActiveReferrals,
	}, nil
}
