package redis

import (
	"context"
	"fmt"

	"fishing-game-backend/internal/features/referral/repository"
	platform "fishing-game-backend/internal/platform/redis"
)

const (
	keyPrefixInvitees  = "referral:invitees:"
	keyPrefixMilestone = "referral:milestone:"
)

type referralRepository struct {
	client *platform.Client
}

func NewRepository(client *platform.Client) repository.Repository {
	return &referralRepository{client: client}
}

func (r *referralRepository) AddInvitee(ctx context.Context, referrer, invitee int64) error {
	key := fmt.Sprintf("%s%d", keyPrefixInvitees, referrer)
	return r.client.SAdd(ctx, key, invitee).Err()
}

func (r *referralRepository) InviteeCount(ctx context.Context, referrer int64) (int64, error) {
	key := fmt.Sprintf("%s%d", keyPrefixInvitees, referrer)
	return r.client.SCard(ctx, key).Result()
}

func (r *referralRepository) ClaimMilestone(ctx context.Context, referred int64, milestone string) (bool, error) {
	// SETNX is the idempotency guard: the first claim wins, replays no-op.
	key := fmt.Sprintf("%s%d:%s", keyPrefixMilestone, referred, milestone)
	return r.client.SetNX(ctx, key, "claimed", 0).Result()
}
