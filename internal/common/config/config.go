package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken string `env:"BOT_TOKEN,required"`
	}

	Game GameConfig
}

// GameConfig holds every economy tunable. Defaults mirror the live deployment.
type GameConfig struct {
	// Identities that bypass the session gate and boat restrictions.
	DeveloperFIDs []int64 `env:"DEVELOPER_FIDS" envSeparator:","`

	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	ChallengeTTL time.Duration `env:"CHALLENGE_TTL" envDefault:"15m"`

	MinCastInterval time.Duration `env:"MIN_CAST_INTERVAL" envDefault:"4s"`
	HourWindow      time.Duration `env:"HOUR_WINDOW" envDefault:"1h"`
	DailyCatchCap   int64         `env:"DAILY_CATCH_CAP" envDefault:"500"`
	XPPerCatch      int64         `env:"XP_PER_CATCH" envDefault:"25"`
	LevelDivisor    int64         `env:"LEVEL_DIVISOR" envDefault:"1000"`

	BaseDifficulty  float64 `env:"BASE_DIFFICULTY" envDefault:"1.0"`
	MinDifficulty   float64 `env:"MIN_DIFFICULTY" envDefault:"0.1"`
	PlayerReduction float64 `env:"PLAYER_REDUCTION" envDefault:"0.001"`

	SpinCooldown time.Duration `env:"SPIN_COOLDOWN" envDefault:"24h"`

	SwapMinAmount float64       `env:"SWAP_MIN_AMOUNT" envDefault:"100"`
	SwapRate      float64       `env:"SWAP_RATE" envDefault:"100"`
	SwapUSDC      float64       `env:"SWAP_USDC_REWARD" envDefault:"5"`
	SwapFee       float64       `env:"SWAP_FEE" envDefault:"1"`
	SwapCooldown  time.Duration `env:"SWAP_COOLDOWN" envDefault:"24h"`

	ReferralActivationReward float64 `env:"REFERRAL_ACTIVATION_REWARD" envDefault:"5"`
	ReferralCastsReward      float64 `env:"REFERRAL_CASTS_REWARD" envDefault:"10"`
	ReferralFishReward       float64 `env:"REFERRAL_FISH_REWARD" envDefault:"25"`
	ReferralCastsThreshold   int64   `env:"REFERRAL_CASTS_THRESHOLD" envDefault:"10"`
	ReferralFishThreshold    float64 `env:"REFERRAL_FISH_THRESHOLD" envDefault:"50"`
	// One bonus spin ticket for the referrer per this many activated invitees.
	ReferralTicketEvery int64 `env:"REFERRAL_TICKET_EVERY" envDefault:"3"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Ignore a missing .env file; in production the variables are set
		// directly in the environment.
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}

// IsDeveloper reports whether the fid is on the developer allow-list.
func (c *Config) IsDeveloper(fid int64) bool {
	for _, id := range c.Game.DeveloperFIDs {
		if id == fid {
			return true
		}
	}
	return false
}
