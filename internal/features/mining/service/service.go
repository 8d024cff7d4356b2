package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fishing-game-backend/internal/common/config"
	"fishing-game-backend/internal/common/errors"
	"fishing-game-backend/internal/features/mining/models"
	playermodels "fishing-game-backend/internal/features/player/models"
	playerrepo "fishing-game-backend/internal/features/player/repository"
	referralservice "fishing-game-backend/internal/features/referral/service"
	shopmodels "fishing-game-backend/internal/features/shop/models"
	statsmodels "fishing-game-backend/internal/features/stats/models"
	statsrepo "fishing-game-backend/internal/features/stats/repository"
)

const auditKindMining = "mining"

type MiningService interface {
	// Start ensures the player enters a valid hour window and reports it.
	Start(ctx context.Context, fid int64) (*models.StartResult, error)
	// Cast runs one attempt of the cast state machine.
	Cast(ctx context.Context, fid int64) (*models.CastResult, error)
}

type miningService struct {
	players   playerrepo.Repository
	stats     statsrepo.Repository
	referrals referralservice.Evaluator
	cfg       *config.Config

	// Injectable for deterministic tests.
	roll func() float64
	now  func() time.Time
}

func NewMiningService(players playerrepo.Repository, stats statsrepo.Repository, referrals referralservice.Evaluator, cfg *config.Config) MiningService {
	return &miningService{
		players:   players,
		stats:     stats,
		referrals: referrals,
		cfg:       cfg,
		roll:      rand.Float64,
		now:       time.Now,
	}
}

func (s *miningService) Start(ctx context.Context, fid int64) (*models.StartResult, error) {
	player, err := s.ensure(ctx, fid)
	if err != nil {
		return nil, err
	}

	if player.Mode != playermodels.ModePaid {
		return nil, errors.New(errors.ErrCodeMiningLockFreeMode, "Mining is locked in free mode")
	}

	tierCfg, ok := shopmodels.BoatTiers[player.ActiveBoatTier]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidBoatConfig, "Stored boat tier %d has no config", player.ActiveBoatTier)
	}

	now := s.now()
	if s.windowExpired(player, now) {
		if err := s.regenerateBucket(ctx, player, tierCfg, now); err != nil {
			return nil, err
		}
	}

	return &models.StartResult{
		BucketSize:    len(player.Bucket),
		HourlyFishCap: tierCfg.HourlyFishCap,
		WindowStart:   player.HourWindowStart,
	}, nil
}

// Cast is the core state transition. Order of checks is load → mode → rate
// limit → difficulty/tier → caps → roll; lastCastAt is persisted on every
// attempt, success or miss, before the result is returned so a client cannot
// retry-storm its way through repeated misses.
func (s *miningService) Cast(ctx context.Context, fid int64) (*models.CastResult, error) {
	player, err := s.ensure(ctx, fid)
	if err != nil {
		return nil, err
	}

	if player.Mode != playermodels.ModePaid {
		return nil, errors.New(errors.ErrCodeMiningLockFreeMode, "Mining is locked in free mode")
	}

	now := s.now()
	nowMs := now.UnixMilli()

	if nowMs-player.LastCastAt < s.cfg.Game.MinCastInterval.Milliseconds() {
		return nil, errors.New(errors.ErrCodeCastTooFast, "Casting too fast")
	}

	qualified, err := s.stats.QualifiedPlayers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to read qualified players")
	}
	multiplier := DifficultyMultiplier(qualified, &s.cfg.Game)

	tierCfg, ok := shopmodels.BoatTiers[player.ActiveBoatTier]
	if !ok {
		// Data corruption, not user error: the stored tier predates the
		// current table or was written by a broken migration.
		return nil, errors.Newf(errors.ErrCodeInvalidBoatConfig, "Stored boat tier %d has no config", player.ActiveBoatTier)
	}

	if s.windowExpired(player, now) {
		if err := s.regenerateBucket(ctx, player, tierCfg, now); err != nil {
			return nil, err
		}
	}

	// Catch-count cap and bucket-value cap are independent ceilings; the
	// count check runs here, the value bound is baked into the bucket.
	if player.HourlyCatches >= int64(tierCfg.HourlyFishCap) {
		return nil, errors.New(errors.ErrCodeHourlyCapReached, "Hourly catch cap reached")
	}

	day := now.UTC().Format("2006-01-02")
	daily, err := s.players.DailyCatches(ctx, fid, day)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to read daily counter")
	}
	if daily >= s.cfg.Game.DailyCatchCap {
		return nil, errors.New(errors.ErrCodeDailyCapReached, "Daily catch cap reached")
	}

	// Persist the attempt timestamp before the roll outcome is known.
	if err := s.players.SetLastCast(ctx, fid, nowMs); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to persist cast timestamp")
	}

	if s.roll() >= tierCfg.SuccessRate*multiplier {
		return &models.CastResult{
			Status: models.CastStatusMiss,
			Stats:  &models.CastStats{DifficultyMultiplier: multiplier},
		}, nil
	}

	if player.BucketCursor >= len(player.Bucket) {
		// Permanent for this hour window, distinct from a retryable error.
		return nil, errors.New(errors.ErrCodeBucketExhausted, "Hourly reward bucket exhausted")
	}

	fishType := player.Bucket[player.BucketCursor]
	fishValue := fishType.Value()

	if err := s.players.CommitCatch(ctx, fid, fishValue, s.cfg.Game.XPPerCatch); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to commit catch")
	}
	if _, err := s.players.IncrDailyCatches(ctx, fid, day); err != nil {
		log.Error().Err(err).Int64("fid", fid).Msg("Daily counter increment failed")
	}

	// One-time qualification: the flag test-and-set decides ownership of the
	// non-idempotent global increment.
	if !player.Qualified {
		won, err := s.players.QualifyOnce(ctx, fid)
		if err != nil {
			log.Error().Err(err).Int64("fid", fid).Msg("Qualification flag write failed")
		} else if won {
			if _, err := s.stats.IncrInt(ctx, statsmodels.FieldQualifiedPlayers, 1); err != nil {
				log.Error().Err(err).Int64("fid", fid).Msg("Qualified player counter failed")
			}
		}
	}

	castID := uuid.New().String()
	entry := models.CastAuditEntry{
		ID:        castID,
		Type:      fishType,
		Value:     fishValue,
		Timestamp: nowMs,
	}
	if err := s.players.AppendAudit(ctx, fid, auditKindMining, entry); err != nil {
		log.Error().Err(err).Int64("fid", fid).Msg("Audit append failed")
	}
	if err := s.stats.IncrFloat(ctx, statsmodels.FieldTotalFishMinted, fishValue); err != nil {
		log.Error().Err(err).Msg("Minted counter failed")
	}

	// Referral milestones are best-effort and never fail the cast.
	s.referrals.EvaluateAfterCast(ctx, player, player.TotalCasts+1, player.MinedFish+fishValue)

	return &models.CastResult{
		Status: models.CastStatusSuccess,
		CastID: castID,
		Fish:   &models.CaughtFish{Type: fishType, Value: fishValue},
		Stats: &models.CastStats{
			MinedFishTotal:       player.MinedFish + fishValue,
			XPTotal:              player.XP + s.cfg.Game.XPPerCatch,
			HourlyCatches:        player.HourlyCatches + 1,
			DifficultyMultiplier: multiplier,
		},
	}, nil
}

func (s *miningService) ensure(ctx context.Context, fid int64) (*playermodels.Player, error) {
	defaults := playermodels.NewPlayer(fid, s.cfg.IsDeveloper(fid), s.now())
	player, _, err := s.players.GetOrCreate(ctx, fid, defaults)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to load player")
	}
	return player, nil
}

func (s *miningService) windowExpired(player *playermodels.Player, now time.Time) bool {
	if len(player.Bucket) == 0 && player.HourWindowStart == 0 {
		return true
	}
	return now.UnixMilli()-player.HourWindowStart >= s.cfg.Game.HourWindow.Milliseconds()
}

// regenerateBucket installs a fresh hourly bucket and resets the window
// in-place on the loaded record so the caller continues against the state it
// just wrote.
func (s *miningService) regenerateBucket(ctx context.Context, player *playermodels.Player, tierCfg shopmodels.TierConfig, now time.Time) error {
	bucket := GenerateBucket(tierCfg.HourlyFishCap, s.roll)
	windowStart := now.UnixMilli()

	if err := s.players.ReplaceBucket(ctx, player.FID, bucket, windowStart); err != nil {
		return errors.Wrap(err, errors.ErrCodeStore, "Failed to persist bucket")
	}

	player.Bucket = bucket
	player.BucketCursor = 0
	player.HourWindowStart = windowStart
	player.HourlyCatches = 0

	log.Debug().
		Int64("fid", player.FID).
		Int("bucket_size", len(bucket)).
		Int("cap", tierCfg.HourlyFishCap).
		Msg("Hourly bucket regenerated")
	return nil
}
