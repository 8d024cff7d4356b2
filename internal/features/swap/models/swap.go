package models

// ExecuteRequest is the client's swap order. Amount is denominated in fish.
type ExecuteRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// ExecuteResponse reports the settled swap.
type ExecuteResponse struct {
	SwapID           string  `json:"swap_id"`
	AmountBurned     float64 `json:"amount_burned"`
	USDCReceived     float64 `json:"usdc_received"`
	RemainingBalance float64 `json:"remaining_balance"`
	NextSwapAt       int64   `json:"next_swap_at"`
}

// SwapAuditEntry is the append-only log record of one swap.
type SwapAuditEntry struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	USDC      float64 `json:"usdc"`
	Timestamp int64   `json:"timestamp"`
}
