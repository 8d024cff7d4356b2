package repository

import "context"

// Milestone tags. Each is credited at most once per referred user.
const (
	MilestoneActivated = "activated"
	MilestoneCasts     = "casts_10"
	MilestoneFish      = "fish_50"
)

// Repository persists the referral graph and the per-milestone idempotency
// markers. Markers are the source of truth for "already paid": re-running the
// evaluator against the same cast must not double-credit the referrer.
type Repository interface {
	AddInvitee(ctx context.Context, referrer, invitee int64) error
	InviteeCount(ctx context.Context, referrer int64) (int64, error)

	// ClaimMilestone atomically marks the milestone claimed for the referred
	// user. True means this call won the claim and the reward may be paid.
	ClaimMilestone(ctx context.Context, referred int64, milestone string) (bool, error)
}
