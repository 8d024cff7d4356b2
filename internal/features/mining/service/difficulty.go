package service

import "fishing-game-backend/internal/common/config"

// DifficultyMultiplier scales every boat's base success rate down as the
// qualified-player count grows, floored at the configured minimum. It is
// recomputed per request from the live counter; caching a snapshot would let
// early casts run against stale, easier difficulty.
func DifficultyMultiplier(qualifiedPlayers int64, cfg *config.GameConfig) float64 {
	m := cfg.BaseDifficulty - float64(qualifiedPlayers)*cfg.PlayerReduction
	if m < cfg.MinDifficulty {
		return cfg.MinDifficulty
	}
	return m
}
