package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Mode gates whether mining is permitted at all.
type Mode string

const (
	ModeFree Mode = "FREE_USER"
	ModePaid Mode = "PAID_USER"
)

// Rarity is a reward token drawn from the hourly distribution bucket.
type Rarity string

const (
	RarityLegendary Rarity = "LEGENDARY"
	RarityEpic      Rarity = "EPIC"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityCommon    Rarity = "COMMON"
	RarityJunk      Rarity = "JUNK"
)

// Value returns the point value of a token. Unknown rarities fall back to the
// common value so a corrupted bucket slot never mints zero-cost rewards.
func (r Rarity) Value() float64 {
	switch r {
	case RarityLegendary:
		return 10
	case RarityEpic:
		return 5
	case RarityUncommon:
		return 3
	case RarityCommon:
		return 1
	case RarityJunk:
		return 0.1
	default:
		return 1
	}
}

// Player is the single per-user record stored as a redis hash. Every field is
// string-encoded in the store; the struct carries the decoded view.
type Player struct {
	FID             int64    `json:"fid"`
	Wallet          string   `json:"wallet"`
	Mode            Mode     `json:"mode"`
	ActiveBoatTier  int      `json:"active_boat_tier"`
	MinedFish       float64  `json:"mined_fish"`
	CanFishBalance  float64  `json:"can_fish_balance"`
	SpinBalance     float64  `json:"spin_balance"`
	XP              int64    `json:"xp"`
	SpinTickets     int64    `json:"spin_tickets"`
	LastDailySpin   int64    `json:"last_daily_spin"`
	LastCastAt      int64    `json:"last_cast_at"`
	LastSwapAt      int64    `json:"last_swap_at"`
	Bucket          []Rarity `json:"distribution_bucket"`
	BucketCursor    int      `json:"bucket_cursor"`
	HourWindowStart int64    `json:"hour_window_start"`
	HourlyCatches   int64    `json:"hourly_catches"`
	TotalCasts      int64    `json:"total_casts"`
	Qualified       bool     `json:"qualified"`
	ReferredBy      int64    `json:"referred_by,omitempty"`
	ActiveReferrals int64    `json:"active_referrals"`
	CreatedAt       int64    `json:"created_at"`
}

// Level derives the display level from accumulated XP.
func (p *Player) Level(divisor int64) int64 {
	if divisor <= 0 {
		return 1
	}
	return p.XP/divisor + 1
}

// Hash field names of the user record.
const (
	FieldFID             = "fid"
	FieldWallet          = "wallet"
	FieldMode            = "mode"
	FieldBoatTier        = "active_boat_tier"
	FieldMinedFish       = "mined_fish"
	FieldCanFishBalance  = "can_fish_balance"
	FieldSpinBalance     = "spin_balance"
	FieldXP              = "xp"
	FieldSpinTickets     = "spin_tickets"
	FieldLastDailySpin   = "last_daily_spin"
	FieldLastCastAt      = "last_cast_at"
	FieldLastSwapAt      = "last_swap_at"
	FieldBucket          = "distribution_bucket"
	FieldBucketCursor    = "bucket_cursor"
	FieldHourWindowStart = "hour_window_start"
	FieldHourlyCatches   = "hourly_catches"
	FieldTotalCasts      = "total_casts"
	FieldQualified       = "qualified"
	FieldReferredBy      = "referred_by"
	FieldActiveReferrals = "active_referrals"
	FieldCreatedAt       = "created_at"
)

// NewPlayer returns the default record for a first-seen fid. Developers start
// in paid mode on the top tier so they can exercise every flow.
// The qualified field is deliberately left unset: its first write happens via
// HSETNX on the first successful cast, which makes that write a test-and-set.
func NewPlayer(fid int64, developer bool, now time.Time) *Player {
	p := &Player{
		FID:         fid,
		Wallet:      "",
		Mode:        ModeFree,
		SpinTickets: 1,
		CreatedAt:   now.UnixMilli(),
	}
	if developer {
		p.Mode = ModePaid
		p.ActiveBoatTier = 50
	}
	return p
}

// ToMap encodes the record for HSET. The qualified flag is intentionally
// excluded, see NewPlayer.
func (p *Player) ToMap() map[string]string {
	m := map[string]string{
		FieldFID:             strconv.FormatInt(p.FID, 10),
		FieldWallet:          p.Wallet,
		FieldMode:            string(p.Mode),
		FieldBoatTier:        strconv.Itoa(p.ActiveBoatTier),
		FieldMinedFish:       formatFloat(p.MinedFish),
		FieldCanFishBalance:  formatFloat(p.CanFishBalance),
		FieldSpinBalance:     formatFloat(p.SpinBalance),
		FieldXP:              strconv.FormatInt(p.XP, 10),
		FieldSpinTickets:     strconv.FormatInt(p.SpinTickets, 10),
		FieldLastDailySpin:   strconv.FormatInt(p.LastDailySpin, 10),
		FieldLastCastAt:      strconv.FormatInt(p.LastCastAt, 10),
		FieldLastSwapAt:      strconv.FormatInt(p.LastSwapAt, 10),
		FieldBucketCursor:    strconv.Itoa(p.BucketCursor),
		FieldHourWindowStart: strconv.FormatInt(p.HourWindowStart, 10),
		FieldHourlyCatches:   strconv.FormatInt(p.HourlyCatches, 10),
		FieldTotalCasts:      strconv.FormatInt(p.TotalCasts, 10),
		FieldActiveReferrals: strconv.FormatInt(p.ActiveReferrals, 10),
		FieldCreatedAt:       strconv.FormatInt(p.CreatedAt, 10),
	}
	if p.Bucket != nil {
		raw, _ := json.Marshal(p.Bucket)
		m[FieldBucket] = string(raw)
	}
	if p.ReferredBy != 0 {
		m[FieldReferredBy] = strconv.FormatInt(p.ReferredBy, 10)
	}
	return m
}

// FromMap decodes a redis hash into a Player. Missing fields decode to zero
// values so records written by older deployments stay readable.
func FromMap(m map[string]string) *Player {
	p := &Player{
		FID:             parseInt(m[FieldFID]),
		Wallet:          m[FieldWallet],
		Mode:            Mode(m[FieldMode]),
		ActiveBoatTier:  int(parseInt(m[FieldBoatTier])),
		MinedFish:       parseFloat(m[FieldMinedFish]),
		CanFishBalance:  parseFloat(m[FieldCanFishBalance]),
		SpinBalance:     parseFloat(m[FieldSpinBalance]),
		XP:              parseInt(m[FieldXP]),
		SpinTickets:     parseInt(m[FieldSpinTickets]),
		LastDailySpin:   parseInt(m[FieldLastDailySpin]),
		LastCastAt:      parseInt(m[FieldLastCastAt]),
		LastSwapAt:      parseInt(m[FieldLastSwapAt]),
		BucketCursor:    int(parseInt(m[FieldBucketCursor])),
		HourWindowStart: parseInt(m[FieldHourWindowStart]),
		HourlyCatches:   parseInt(m[FieldHourlyCatches]),
		TotalCasts:      parseInt(m[FieldTotalCasts]),
		Qualified:       m[FieldQualified] == "true",
		ReferredBy:      parseInt(m[FieldReferredBy]),
		ActiveReferrals: parseInt(m[FieldActiveReferrals]),
		CreatedAt:       parseInt(m[FieldCreatedAt]),
	}
	if p.Mode == "" {
		p.Mode = ModeFree
	}
	if raw := m[FieldBucket]; raw != "" {
		// A bucket that fails to decode is treated as absent; the next cast
		// regenerates it for the current hour window.
		_ = json.Unmarshal([]byte(raw), &p.Bucket)
	}
	return p
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
