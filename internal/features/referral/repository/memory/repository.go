package memory

import (
	"context"
	"fmt"
	"sync"

	"fishing-game-backend/internal/features/referral/repository"
)

// Repository is a map-backed referral store with SETNX-style claim semantics.
type Repository struct {
	mu       sync.Mutex
	invitees map[int64]map[int64]struct{}
	claims   map[string]struct{}
}

func NewRepository() *Repository {
	return &Repository{
		invitees: make(map[int64]map[int64]struct{}),
		claims:   make(map[string]struct{}),
	}
}

func (r *Repository) AddInvitee(_ context.Context, referrer, invitee int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.invitees[referrer]
	if !ok {
		set = make(map[int64]struct{})
		r.invitees[referrer] = set
	}
	set[invitee] = struct{}{}
	return nil
}

func (r *Repository) InviteeCount(_ context.Context, referrer int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.invitees[referrer])), nil
}

func (r *Repository) ClaimMilestone(_ context.Context, referred int64, milestone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%d:%s", referred, milestone)
	if _, ok := r.claims[key]; ok {
		return false, nil
	}
	r.claims[key] = struct{}{}
	return true, nil
}

var _ repository.Repository = (*Repository)(nil)
