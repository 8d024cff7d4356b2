package models

import (
	playermodels "fishing-game-backend/internal/features/player/models"
)

type CastStatus string

const (
	CastStatusSuccess CastStatus = "SUCCESS"
	CastStatusMiss    CastStatus = "MISS"
)

// CaughtFish is the reward popped from the bucket on a successful cast.
type CaughtFish struct {
	Type  playermodels.Rarity `json:"type"`
	Value float64             `json:"value"`
}

// CastStats is the post-commit snapshot returned with a successful cast.
type CastStats struct {
	MinedFishTotal       float64 `json:"mined_fish_total"`
	XPTotal              int64   `json:"xp_total"`
	HourlyCatches        int64   `json:"hourly_catches"`
	DifficultyMultiplier float64 `json:"difficulty_multiplier"`
}

// CastResult is the outcome of one cast attempt.
type CastResult struct {
	Status CastStatus  `json:"status"`
	CastID string      `json:"cast_id,omitempty"`
	Fish   *CaughtFish `json:"fish,omitempty"`
	Stats  *CastStats  `json:"stats,omitempty"`
}

// StartResult reports the mining window the player is entering.
type StartResult struct {
	BucketSize    int   `json:"bucket_size"`
	HourlyFishCap int   `json:"hourly_fish_cap"`
	WindowStart   int64 `json:"window_start"`
}

// CastAuditEntry is the append-only log record of one successful cast.
type CastAuditEntry struct {
	ID        string              `json:"id"`
	Type      playermodels.Rarity `json:"type"`
	Value     float64             `json:"value"`
	Timestamp int64               `json:"timestamp"`
}
