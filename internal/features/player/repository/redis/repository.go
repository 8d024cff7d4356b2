package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fishing-game-backend/internal/features/player/models"
	"fishing-game-backend/internal/features/player/repository"
	platform "fishing-game-backend/internal/platform/redis"
)

const (
	keyPrefixUser  = "user:"
	keyPrefixDaily = "mining:daily:"
	keyPrefixAudit = "audit:"

	// Daily counters outlive their day by one so a request straddling
	// midnight still sees the old counter, then they expire on their own.
	dailyCounterTTL = 48 * time.Hour
)

type playerRepository struct {
	client *platform.Client
}

func NewRepository(client *platform.Client) repository.Repository {
	return &playerRepository{client: client}
}

func userKey(fid int64) string {
	return fmt.Sprintf("%s%d", keyPrefixUser, fid)
}

func dailyKey(fid int64, day string) string {
	return fmt.Sprintf("%s%d:%s", keyPrefixDaily, fid, day)
}

func (r *playerRepository) GetOrCreate(ctx context.Context, fid int64, defaults *models.Player) (*models.Player, bool, error) {
	key := userKey(fid)

	data, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to load player %d: %w", fid, err)
	}
	if len(data) > 0 {
		return models.FromMap(data), false, nil
	}

	// First-seen fid: fill the record via HSETNX per field so two racing
	// ensures never clobber each other's writes.
	pipe := r.client.TxPipeline()
	for field, value := range defaults.ToMap() {
		pipe.HSetNX(ctx, key, field, value)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to create player %d: %w", fid, err)
	}

	data, err = r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to reload player %d: %w", fid, err)
	}
	return models.FromMap(data), true, nil
}

func (r *playerRepository) Get(ctx context.Context, fid int64) (*models.Player, error) {
	data, err := r.client.HGetAll(ctx, userKey(fid)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load player %d: %w", fid, err)
	}
	if len(data) == 0 {
		return nil, repository.ErrNotFound
	}
	return models.FromMap(data), nil
}

func (r *playerRepository) BindWallet(ctx context.Context, fid int64, address string) error {
	return r.client.HSet(ctx, userKey(fid), models.FieldWallet, address).Err()
}

func (r *playerRepository) SetBoat(ctx context.Context, fid int64, tier int, mode models.Mode) error {
	return r.client.HSet(ctx, userKey(fid), map[string]interface{}{
		models.FieldBoatTier: tier,
		models.FieldMode:     string(mode),
	}).Err()
}

func (r *playerRepository) SetReferredBy(ctx context.Context, fid, referrer int64) (bool, error) {
	return r.client.HSetNX(ctx, userKey(fid), models.FieldReferredBy, referrer).Result()
}

func (r *playerRepository) SetLastCast(ctx context.Context, fid, ts int64) error {
	return r.client.HSet(ctx, userKey(fid), models.FieldLastCastAt, ts).Err()
}

func (r *playerRepository) SetFields(ctx context.Context, fid int64, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	values := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		values[k] = v
	}
	return r.client.HSet(ctx, userKey(fid), values).Err()
}

func (r *playerRepository) ReplaceBucket(ctx context.Context, fid int64, bucket []models.Rarity, windowStart int64) error {
	raw, err := json.Marshal(bucket)
	if err != nil {
		return fmt.Errorf("failed to marshal bucket: %w", err)
	}

	key := userKey(fid)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		models.FieldBucket:          string(raw),
		models.FieldBucketCursor:    0,
		models.FieldHourWindowStart: windowStart,
		models.FieldHourlyCatches:   0,
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *playerRepository) CommitCatch(ctx context.Context, fid int64, value float64, xp int64) error {
	key := userKey(fid)
	pipe := r.client.TxPipeline()
	pipe.HIncrByFloat(ctx, key, models.FieldMinedFish, value)
	pipe.HIncrByFloat(ctx, key, models.FieldCanFishBalance, value)
	pipe.HIncrBy(ctx, key, models.FieldXP, xp)
	pipe.HIncrBy(ctx, key, models.FieldHourlyCatches, 1)
	pipe.HIncrBy(ctx, key, models.FieldTotalCasts, 1)
	// Cursor advance goes last: it is the field that marks the slot consumed.
	pipe.HIncrBy(ctx, key, models.FieldBucketCursor, 1)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *playerRepository) QualifyOnce(ctx context.Context, fid int64) (bool, error) {
	// HSETNX is the linearization point: the field is never pre-written, so
	// exactly one concurrent cast observes true here.
	return r.client.HSetNX(ctx, userKey(fid), models.FieldQualified, "true").Result()
}

func (r *playerRepository) IncrTickets(ctx context.Context, fid int64, delta int64) (int64, error) {
	return r.client.HIncrBy(ctx, userKey(fid), models.FieldSpinTickets, delta).Result()
}

func (r *playerRepository) IncrBalance(ctx context.Context, fid int64, field string, delta float64) (float64, error) {
	return r.client.HIncrByFloat(ctx, userKey(fid), field, delta).Result()
}

func (r *playerRepository) IncrActiveReferrals(ctx context.Context, fid int64) (int64, error) {
	return r.client.HIncrBy(ctx, userKey(fid), models.FieldActiveReferrals, 1).Result()
}

func (r *playerRepository) DailyCatches(ctx context.Context, fid int64, day string) (int64, error) {
	v, err := r.client.Get(ctx, dailyKey(fid, day)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

func (r *playerRepository) IncrDailyCatches(ctx context.Context, fid int64, day string) (int64, error) {
	key := dailyKey(fid, day)
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, dailyCounterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (r *playerRepository) AppendAudit(ctx context.Context, fid int64, kind string, entry interface{}) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}
	key := fmt.Sprintf("%s%d:%s", keyPrefixAudit, fid, kind)
	return r.client.LPush(ctx, key, data).Err()
}
