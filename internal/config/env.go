package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultAppAddr        = ":8080"
	DefaultEventsExchange = "ridemarket.events"
	DefaultTicketSigner   = "checksum"
)

// DefaultCORSOrigins are the local dev frontends.
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

type Env struct {
	AppAddr     string   `envconfig:"APP_ADDR" default:":8080"`
	GinMode     string   `envconfig:"GIN_MODE"`
	CORSOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"`

	SeedFile string `envconfig:"SEED_FILE"`
	SeedDSN  string `envconfig:"SEED_DSN"`

	AMQPURL        string `envconfig:"AMQP_URL"`
	EventsExchange string `envconfig:"EVENTS_EXCHANGE" default:"ridemarket.events"`

	JWTSecret string `envconfig:"JWT_SECRET"`

	TicketSigner      string `envconfig:"TICKET_SIGNER" default:"checksum"`
	TicketSignerKey   string `envconfig:"TICKET_SIGNER_KEY"`
	TicketOneTimeScan bool   `envconfig:"TICKET_ONE_TIME_SCAN" default:"false"`

	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, err
	}
	env.applyFallbacks()
	return env, nil
}

// applyFallbacks covers variables that are set but blank; envconfig only
// applies defaults to unset ones.
func (e *Env) applyFallbacks() {
	e.AppAddr = orDefault(e.AppAddr, DefaultAppAddr)
	e.EventsExchange = orDefault(e.EventsExchange, DefaultEventsExchange)
	e.TicketSigner = strings.ToLower(orDefault(e.TicketSigner, DefaultTicketSigner))
	e.CORSOrigins = AllowedOrigins(e.CORSOrigins)
}

// AllowedOrigins trims the list and falls back to DefaultCORSOrigins when
// nothing usable is left.
func AllowedOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultCORSOrigins...)
	}
	return out
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}
