package models

// Hash field names of the shared stats:global record. Mutated exclusively
// through atomic increments; many users' casts race on these concurrently.
const (
	FieldQualifiedPlayers     = "qualified_players"
	FieldTotalFishMinted      = "total_fish_minted"
	FieldTotalFishBurned      = "total_fish_burned"
	FieldTotalSpinOutflow     = "total_spin_outflow"
	FieldTotalSwapOutflow     = "total_swap_outflow"
	FieldTotalReferralOutflow = "total_referral_outflow"
)

// GlobalStats is the decoded snapshot of the shared economy record.
type GlobalStats struct {
	QualifiedPlayers     int64   `json:"qualified_players"`
	TotalPlayers         int64   `json:"total_players"`
	TotalFishMinted      float64 `json:"total_fish_minted"`
	TotalFishBurned      float64 `json:"total_fish_burned"`
	TotalSpinOutflow     float64 `json:"total_spin_outflow"`
	TotalSwapOutflow     float64 `json:"total_swap_outflow"`
	TotalReferralOutflow float64 `json:"total_referral_outflow"`
}

// StatsResponse is the public shape of GET /statistics/global.
type StatsResponse struct {
	DifficultyPercent string  `json:"difficulty_percent"`
	QualifiedPlayers  int64   `json:"qualified_players"`
	TotalPlayers      int64   `json:"total_players"`
	TotalFishMinted   float64 `json:"total_fish_minted"`
	TotalFishBurned   float64 `json:"total_fish_burned"`
	USDCOutflow       float64 `json:"usdc_outflow"`
}
