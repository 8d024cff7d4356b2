package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"fishing-game-backend/internal/features/player/models"
	"fishing-game-backend/internal/features/player/repository"
)

// Repository is a map-backed implementation of the player store with the same
// hash-field semantics as the redis one. Used in tests and local tooling.
type Repository struct {
	mu     sync.Mutex
	users  map[int64]map[string]string
	daily  map[string]int64
	audits map[string][]string
}

func NewRepository() *Repository {
	return &Repository{
		users:  make(map[int64]map[string]string),
		daily:  make(map[string]int64),
		audits: make(map[string][]string),
	}
}

func (r *Repository) GetOrCreate(_ context.Context, fid int64, defaults *models.Player) (*models.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash, exists := r.users[fid]
	if !exists {
		hash = make(map[string]string)
		r.users[fid] = hash
	}
	for field, value := range defaults.ToMap() {
		if _, ok := hash[field]; !ok {
			hash[field] = value
		}
	}
	return models.FromMap(hash), !exists, nil
}

func (r *Repository) Get(_ context.Context, fid int64) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash, ok := r.users[fid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return models.FromMap(hash), nil
}

func (r *Repository) BindWallet(_ context.Context, fid int64, address string) error {
	return r.set(fid, models.FieldWallet, address)
}

func (r *Repository) SetBoat(_ context.Context, fid int64, tier int, mode models.Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash := r.hash(fid)
	hash[models.FieldBoatTier] = strconv.Itoa(tier)
	hash[models.FieldMode] = string(mode)
	return nil
}

func (r *Repository) SetReferredBy(_ context.Context, fid, referrer int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash := r.hash(fid)
	if _, ok := hash[models.FieldReferredBy]; ok {
		return false, nil
	}
	hash[models.FieldReferredBy] = strconv.FormatInt(referrer, 10)
	return true, nil
}

func (r *Repository) SetLastCast(_ context.Context, fid, ts int64) error {
	return r.set(fid, models.FieldLastCastAt, strconv.FormatInt(ts, 10))
}

func (r *Repository) SetFields(_ context.Context, fid int64, fields map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash := r.hash(fid)
	for field, value := range fields {
		hash[field] = value
	}
	return nil
}

func (r *Repository) ReplaceBucket(_ context.Context, fid int64, bucket []models.Rarity, windowStart int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.Marshal(bucket)
	if err != nil {
		return err
	}
	hash := r.hash(fid)
	hash[models.FieldBucket] = string(raw)
	hash[models.FieldBucketCursor] = "0"
	hash[models.FieldHourlyCatches] = "0"
	hash[models.FieldHourWindowStart] = strconv.FormatInt(windowStart, 10)
	return nil
}

func (r *Repository) CommitCatch(_ context.Context, fid int64, value float64, xp int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.incrFloat(fid, models.FieldMinedFish, value)
	r.incrFloat(fid, models.FieldCanFishBalance, value)
	r.incrInt(fid, models.FieldXP, xp)
	r.incrInt(fid, models.FieldHourlyCatches, 1)
	r.incrInt(fid, models.FieldTotalCasts, 1)
	r.incrInt(fid, models.FieldBucketCursor, 1)
	return nil
}

func (r *Repository) QualifyOnce(_ context.Context, fid int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash := r.hash(fid)
	if _, ok := hash[models.FieldQualified]; ok {
		return false, nil
	}
	hash[models.FieldQualified] = "true"
	return true, nil
}

func (r *Repository) IncrTickets(_ context.Context, fid int64, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.incrInt(fid, models.FieldSpinTickets, delta), nil
}

func (r *Repository) IncrBalance(_ context.Context, fid int64, field string, delta float64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.incrFloat(fid, field, delta), nil
}

func (r *Repository) IncrActiveReferrals(_ context.Context, fid int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.incrInt(fid, models.FieldActiveReferrals, 1), nil
}

func (r *Repository) DailyCatches(_ context.Context, fid int64, day string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.daily[dailyKey(fid, day)], nil
}

func (r *Repository) IncrDailyCatches(_ context.Context, fid int64, day string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dailyKey(fid, day)
	r.daily[key]++
	return r.daily[key], nil
}

func (r *Repository) AppendAudit(_ context.Context, fid int64, kind string, entry interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%d:%s", fid, kind)
	r.audits[key] = append(r.audits[key], string(raw))
	return nil
}

// Audits returns the raw log for assertions.
func (r *Repository) Audits(fid int64, kind string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.audits[fmt.Sprintf("%d:%s", fid, kind)]
}

func (r *Repository) hash(fid int64) map[string]string {
	hash, ok := r.users[fid]
	if !ok {
		hash = make(map[string]string)
		r.users[fid] = hash
	}
	return hash
}

func (r *Repository) set(fid int64, field, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hash(fid)[field] = value
	return nil
}

func (r *Repository) incrInt(fid int64, field string, delta int64) int64 {
	hash := r.hash(fid)
	v, _ := strconv.ParseInt(hash[field], 10, 64)
	v += delta
	hash[field] = strconv.FormatInt(v, 10)
	return v
}

func (r *Repository) incrFloat(fid int64, field string, delta float64) float64 {
	hash := r.hash(fid)
	v, _ := strconv.ParseFloat(hash[field], 64)
	v += delta
	hash[field] = strconv.FormatFloat(v, 'f', -1, 64)
	return v
}

func dailyKey(fid int64, day string) string {
	return fmt.Sprintf("%d:%s", fid, day)
}

var _ repository.Repository = (*Repository)(nil)
