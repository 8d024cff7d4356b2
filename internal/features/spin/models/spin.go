package models

// SpinResult is the outcome of burning one ticket on the wheel.
type SpinResult struct {
	Prize            float64 `json:"prize"`
	Rarity           string  `json:"rarity"`
	TicketsRemaining int64   `json:"tickets_remaining"`
	SpinBalance      float64 `json:"spin_balance"`
}

// DailyResult reports the once-per-24h free ticket claim.
type DailyResult struct {
	Tickets      int64 `json:"tickets"`
	NextClaimAt  int64 `json:"next_claim_at"`
	ClaimedAtUTC int64 `json:"claimed_at"`
}

// SpinAuditEntry is the append-only log record of one spin.
type SpinAuditEntry struct {
	ID        string  `json:"id"`
	Prize     float64 `json:"prize"`
	Rarity    string  `json:"rarity"`
	Timestamp int64   `json:"timestamp"`
}
