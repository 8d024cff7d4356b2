package memory

import (
	"context"
	"strconv"
	"sync"

	"fishing-game-backend/internal/features/stats/models"
	"fishing-game-backend/internal/features/stats/repository"
)

// Repository is a map-backed stand-in for the shared counter store.
type Repository struct {
	mu      sync.Mutex
	fields  map[string]string
	players map[int64]struct{}
}

func NewRepository() *Repository {
	return &Repository{
		fields:  make(map[string]string),
		players: make(map[int64]struct{}),
	}
}

func (r *Repository) IncrFloat(_ context.Context, field string, delta float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, _ := strconv.ParseFloat(r.fields[field], 64)
	r.fields[field] = strconv.FormatFloat(v+delta, 'f', -1, 64)
	return nil
}

func (r *Repository) IncrInt(_ context.Context, field string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, _ := strconv.ParseInt(r.fields[field], 10, 64)
	v += delta
	r.fields[field] = strconv.FormatInt(v, 10)
	return v, nil
}

func (r *Repository) QualifiedPlayers(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, _ := strconv.ParseInt(r.fields[models.FieldQualifiedPlayers], 10, 64)
	return v, nil
}

func (r *Repository) Snapshot(_ context.Context) (*models.GlobalStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return &models.GlobalStats{
		QualifiedPlayers:     r.intField(models.FieldQualifiedPlayers),
		TotalFishMinted:      r.floatField(models.FieldTotalFishMinted),
		TotalFishBurned:      r.floatField(models.FieldTotalFishBurned),
		TotalSpinOutflow:     r.floatField(models.FieldTotalSpinOutflow),
		TotalSwapOutflow:     r.floatField(models.FieldTotalSwapOutflow),
		TotalReferralOutflow: r.floatField(models.FieldTotalReferralOutflow),
	}, nil
}

func (r *Repository) RegisterPlayer(_ context.Context, fid int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[fid] = struct{}{}
	return nil
}

func (r *Repository) TotalPlayers(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.players)), nil
}

// Float returns a counter value for assertions.
func (r *Repository) Float(field string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.floatField(field)
}

func (r *Repository) intField(field string) int64 {
	v, _ := strconv.ParseInt(r.fields[field], 10, 64)
	return v
}

func (r *Repository) floatField(field string) float64 {
	v, _ := strconv.ParseFloat(r.fields[field], 64)
	return v
}

var _ repository.Repository = (*Repository)(nil)
