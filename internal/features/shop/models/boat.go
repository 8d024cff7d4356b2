package models

// Boat tiers. The tier id doubles as the price tag of the boat, which is why
// the ids are not consecutive.
const (
	TierNone   = 0
	TierSmall  = 10
	TierMedium = 20
	TierLarge  = 50
)

// TierConfig controls a boat's economics: what it costs, how often a cast
// succeeds and how much value the hourly bucket may hold.
type TierConfig struct {
	Price         float64 `json:"price"`
	SuccessRate   float64 `json:"success_rate"`
	HourlyFishCap int     `json:"hourly_fish_cap"`
	Label         string  `json:"label"`
}

// BoatTiers is the static tier table. Tier 0 has a zero cap and mining is
// categorically locked regardless of its rate.
var BoatTiers = map[int]TierConfig{
	TierNone:   {Price: 0, SuccessRate: 0.05, HourlyFishCap: 0, Label: "Free Mode"},
	TierSmall:  {Price: 10, SuccessRate: 0.15, HourlyFishCap: 100, Label: "Small Boat"},
	TierMedium: {Price: 20, SuccessRate: 0.16, HourlyFishCap: 150, Label: "Medium Boat"},
	TierLarge:  {Price: 50, SuccessRate: 0.20, HourlyFishCap: 250, Label: "Large Boat"},
}

// SelectRequest selects a boat tier for the authenticated player.
type SelectRequest struct {
	Tier int `json:"tier"`
}

// SelectResponse reports the newly active tier.
type SelectResponse struct {
	Tier        int     `json:"tier"`
	Label       string  `json:"label"`
	SuccessRate float64 `json:"success_rate"`
	Mode        string  `json:"mode"`
}
