package shared

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"hotel_ops/internal/pricing"
)

type Config struct {
	AppEnv          string   `envconfig:"APP_ENV" default:"prod"`
	LogLevel        string   `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr        string   `envconfig:"HTTP_ADDR" default:":8080"`
	MySQLDSN        string   `envconfig:"MYSQL_DSN"`
	RedisAddr       string   `envconfig:"REDIS_ADDR"`
	RedisPass       string   `envconfig:"REDIS_PASSWORD"`
	RedisDB         int      `envconfig:"REDIS_DB" default:"0"`
	CacheTTLSeconds int      `envconfig:"CACHE_TTL_SECONDS" default:"30"`
	RateLimitRPS    int      `envconfig:"RATE_LIMIT_RPS" default:"20"`
	CORSOrigins     []string `envconfig:"CORS_ORIGINS"`
	HotelName       string   `envconfig:"HOTEL_NAME" default:"Five Star Grand Hotel"`
	HotelAddress    string   `envconfig:"HOTEL_ADDRESS" default:"100 Zhongxiao E Rd, Xinyi District, Taipei"`
	PeakMonths      []int    `envconfig:"PEAK_MONTHS"`
	PeakSurcharge   float64  `envconfig:"PEAK_SURCHARGE" default:"0.20"`
	LoyaltyDiscount float64  `envconfig:"LOYALTY_DISCOUNT" default:"0.10"`
	BonusSenior     float64  `envconfig:"BONUS_SENIOR" default:"15000"`
	BonusManager    float64  `envconfig:"BONUS_MANAGER" default:"30000"`
	BonusDirector   float64  `envconfig:"BONUS_DIRECTOR" default:"50000"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not parse .env file, using process environment")
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	if c.MySQLDSN == "" {
		log.Warn().Msg("MYSQL_DSN is empty, event journal disabled")
	}
	return c, nil
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c Config) RateTable() pricing.RateTable {
	rt := pricing.DefaultRateTable()
	rt.Bonuses[pricing.TierSenior] = c.BonusSenior
	rt.Bonuses[pricing.TierManager] = c.BonusManager
	rt.Bonuses[pricing.TierDirector] = c.BonusDirector
	rt.PeakSurcharge = c.PeakSurcharge
	rt.LoyaltyDiscount = c.LoyaltyDiscount
	return rt
}

// Season ignores month numbers outside 1..12.
func (c Config) Season() pricing.Season {
	var s pricing.Season
	for _, m := range c.PeakMonths {
		if m >= 1 && m <= 12 {
			s.PeakMonths = append(s.PeakMonths, time.Month(m))
		}
	}
	return s
}
