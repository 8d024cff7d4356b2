package models

import "time"

// Challenge is the nonce-bearing state a wallet must sign to mint a session.
type Challenge struct {
	FID       int64     `json:"fid"`
	Nonce     string    `json:"nonce"`
	CreatedAt time.Time `json:"created_at"`
}

// VerifyRequest carries a wallet-proof over a previously issued challenge.
type VerifyRequest struct {
	Address   string `json:"address" binding:"required"`
	Network   string `json:"network" binding:"required"`
	Timestamp string `json:"timestamp" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	PublicKey string `json:"public_key" binding:"required"`
}

// VerifyResponse reports the minted session and the bound wallet.
type VerifyResponse struct {
	Success bool   `json:"success"`
	FID     int64  `json:"fid"`
	Wallet  string `json:"wallet"`
	Mode    string `json:"mode"`
}

// ChallengeResponse returns the nonce the wallet has to sign.
type ChallengeResponse struct {
	Nonce     string `json:"nonce"`
	ExpiresIn int64  `json:"expires_in_seconds"`
}
