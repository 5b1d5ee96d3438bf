package config

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	// Estimator modes
	ModeRemote = "remote"
	ModeLocal  = "local"

	// Environments
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

var (
	ErrInvalidMode         = errors.New("estimator mode must be remote or local")
	ErrInvalidRoomBounds   = errors.New("room bounds must satisfy 0 < min <= max")
	ErrInvalidPriceBand    = errors.New("estimate band must satisfy 0 <= min <= max and max-min < MaxInt64")
	ErrInvalidStatus       = errors.New("upstream error status must be a 4xx or 5xx code")
	ErrMissingPredictorURL = errors.New("predictor urls are required in remote mode")
)

type Config struct {
	Env      string `env:"GO_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Server    ServerConfig
	Estimator EstimatorConfig
	Rooms     RoomBounds
}

type ServerConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            string        `env:"PORT" envDefault:"5500"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// requests per second, 0 disables limiting
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"100"`
	RateBurst int     `env:"RATE_BURST" envDefault:"200"`
}

type EstimatorConfig struct {
	Mode string `env:"ESTIMATOR_MODE" envDefault:"remote"`

	RentPredictorURL string `env:"RENT_PREDICTOR_URL" envDefault:"https://rent-pred.herokuapp.com/predict"`
	SalePredictorURL string `env:"SALE_PREDICTOR_URL" envDefault:"https://sale-prediction.herokuapp.com/predict"`
	// Status sent to the client when the prediction service fails.
	UpstreamErrorStatus int `env:"UPSTREAM_ERROR_STATUS" envDefault:"401"`

	// Bands for the local estimator, in whole currency units.
	RentMin int64 `env:"RENT_MIN" envDefault:"150000"`
	RentMax int64 `env:"RENT_MAX" envDefault:"5000000"`
	SaleMin int64 `env:"SALE_MIN" envDefault:"5000000"`
	SaleMax int64 `env:"SALE_MAX" envDefault:"500000000"`
}

// RoomBounds is the inclusive range accepted for bedrooms, bathrooms and toilets.
type RoomBounds struct {
	Min int `env:"ROOMS_MIN" envDefault:"1"`
	Max int `env:"ROOMS_MAX" envDefault:"9"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Estimator.Mode != ModeRemote && c.Estimator.Mode != ModeLocal {
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Estimator.Mode)
	}
	if c.Rooms.Min < 1 || c.Rooms.Min > c.Rooms.Max {
		return fmt.Errorf("%w: got %d..%d", ErrInvalidRoomBounds, c.Rooms.Min, c.Rooms.Max)
	}
	if c.Estimator.Mode == ModeRemote {
		if c.Estimator.RentPredictorURL == "" || c.Estimator.SalePredictorURL == "" {
			return ErrMissingPredictorURL
		}
		if c.Estimator.UpstreamErrorStatus < http.StatusBadRequest || c.Estimator.UpstreamErrorStatus > 599 {
			return fmt.Errorf("%w: %d", ErrInvalidStatus, c.Estimator.UpstreamErrorStatus)
		}
	}
	if c.Estimator.Mode == ModeLocal {
		if !validBand(c.Estimator.RentMin, c.Estimator.RentMax) || !validBand(c.Estimator.SaleMin, c.Estimator.SaleMax) {
			return ErrInvalidPriceBand
		}
	}
	return nil
}

func validBand(lo, hi int64) bool {
	return lo >= 0 && lo <= hi && hi-lo < math.MaxInt64
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
