package service

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xssnick/tonutils-go/address"

	"fishing-game-backend/internal/common/config"
	"fishing-game-backend/internal/common/errors"
	"fishing-game-backend/internal/features/auth/models"
	"fishing-game-backend/internal/features/auth/repository"
	playerservice "fishing-game-backend/internal/features/player/service"
)

// Signed message layout: "<domain>:<timestamp>:<nonce>".
const proofDomain = "fishing.app"

// Proofs older than this are rejected even when the nonce is still live.
const proofMaxAge = 300 * time.Second

type Service struct {
	repo    repository.Repository
	players playerservice.PlayerService
	cfg     *config.Config
}

func NewService(repo repository.Repository, players playerservice.PlayerService, cfg *config.Config) *Service {
	return &Service{repo: repo, players: players, cfg: cfg}
}

// Challenge issues a short-lived nonce the wallet must sign.
func (s *Service) Challenge(ctx context.Context, fid int64) (*models.ChallengeResponse, error) {
	challenge := &models.Challenge{
		FID:       fid,
		Nonce:     uuid.New().String(),
		CreatedAt: time.Now(),
	}

	if err := s.repo.SaveChallenge(ctx, challenge, s.cfg.Game.ChallengeTTL); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to save challenge")
	}

	return &models.ChallengeResponse{
		Nonce:     challenge.Nonce,
		ExpiresIn: int64(s.cfg.Game.ChallengeTTL.Seconds()),
	}, nil
}

// Verify checks the wallet proof over the issued nonce, binds the wallet to
// the fid (at most once) and mints the 24h session marker that gates every
// mutating game operation.
func (s *Service) Verify(ctx context.Context, fid int64, req *models.VerifyRequest) (*models.VerifyResponse, error) {
	challenge, err := s.repo.GetChallenge(ctx, fid)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to load challenge")
	}
	if challenge == nil {
		return nil, errors.New(errors.ErrCodeChallengeExpired, "Challenge expired or not found")
	}

	timestamp, err := strconv.ParseInt(req.Timestamp, 10, 64)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidSignature, "Invalid proof timestamp")
	}
	if time.Now().Unix() > timestamp+int64(proofMaxAge.Seconds()) {
		return nil, errors.New(errors.ErrCodeInvalidSignature, "Proof expired")
	}

	if err := verifySignature(req, challenge.Nonce); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidSignature, "Signature verification failed")
	}

	parsed, err := address.ParseAddr(req.Address)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, "Invalid wallet address")
	}
	wallet := parsed.String()

	// One proof per nonce.
	if err := s.repo.DeleteChallenge(ctx, fid); err != nil {
		log.Error().Err(err).Int64("fid", fid).Msg("Failed to delete challenge")
	}

	player, err := s.players.Ensure(ctx, fid, 0)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to load player")
	}

	// The wallet binds at most once per fid. A different address on a later
	// proof is rejected outright, developers included; silently continuing
	// would make the binding meaningless.
	switch player.Wallet {
	case "":
		if err := s.players.BindWallet(ctx, fid, wallet); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to bind wallet")
		}
		player.Wallet = wallet
	case wallet:
		// Re-login with the bound wallet.
	default:
		return nil, errors.New(errors.ErrCodeWalletMismatch, "Wallet does not match the bound address")
	}

	if err := s.repo.CreateSession(ctx, fid, wallet, s.cfg.Game.SessionTTL); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStore, "Failed to create session")
	}

	log.Info().Int64("fid", fid).Str("wallet", wallet).Msg("Session minted")

	return &models.VerifyResponse{
		Success: true,
		FID:     fid,
		Wallet:  wallet,
		Mode:    string(player.Mode),
	}, nil
}

func verifySignature(req *models.VerifyRequest, nonce string) error {
	message := fmt.Sprintf("%s:%s:%s", proofDomain, req.Timestamp, nonce)

	pubKey, err := base64.StdEncoding.DecodeString(req.PublicKey)
	if err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}
	if len(pubKey) != ed25519.PublicKeySize {
		return fmt.Errorf("invalid public key length: %d", len(pubKey))
	}

	signature, err := base64.StdEncoding.DecodeString(req.Signature)
	if err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}

	if !ed25519.Verify(pubKey, []byte(message), signature) {
		return fmt.Errorf("signature mismatch")
	}

	return nil
}
