package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
	"strings"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Config holds all runtime configuration values.  Each field corresponds to
// one or more environment variables.  The scheduling engine itself is
// configuration-agnostic; everything here is resolved once at startup
// and passed into the engine's collaborators.
type Config struct {
	Env            string                    // application environment (e.g. "dev", "prod")
	Port           string                    // HTTP port to listen on
	DBUser         string                    // database username
	DBPass         string                    // database password (optional)
	DBHost         string                    // database host address
	DBPort         string                    // database port number
	DBName         string                    // database name
	TimeZone       *time.Location            // zone operating hours and slot labels are expressed in
	AMQPURL        string                    // broker URL for notifications (optional, local default)
	RetireInterval time.Duration             // cadence of the retirement sweep
	RetireTimeout  time.Duration             // budget for one retirement batch
	RetireEligible []model.ReservationStatus // statuses the sweep may complete
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),      // environment (dev/test/prod)
		Port:           must("APP_PORT"),     // port to bind the HTTP server
		DBUser:         must("DB_USER"),      // database user
		DBPass:         os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:         must("DB_HOST"),      // database host
		DBPort:         must("DB_PORT"),      // database port
		DBName:         must("DB_NAME"),      // database name
		TimeZone:       loadTimeZone("TIME_ZONE"),
		AMQPURL:        amqpURL(),
		RetireInterval: envDuration("RETIRE_INTERVAL", 15*time.Minute),
		RetireTimeout:  envDuration("RETIRE_TIMEOUT", 30*time.Second),
		RetireEligible: loadStatuses("RETIRE_ELIGIBLE_STATUSES", []model.ReservationStatus{
			model.StatusPending, model.StatusConfirmed, model.StatusSeated,
		}),
	}
}

// IsDevelopment reports whether verbose error detail may be exposed
// to API callers.
func (c Config) IsDevelopment() bool { return c.Env == "dev" || c.Env == "development" }

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// loadTimeZone resolves an IANA zone name, defaulting to UTC when the
// variable is unset.  An unknown zone is a fatal configuration error.
func loadTimeZone(key string) *time.Location {
	name := os.Getenv(key)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Fatalf("invalid time zone for %s: %q", key, name)
	}
	return loc
}

// amqpURL reads the broker URL, honoring both common variable names.
// Empty means the local default broker.
func amqpURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

// envDuration parses a Go duration with a default.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}

// loadStatuses parses a comma-separated reservation status list,
// rejecting unknown values so a typo cannot silently change what the
// retirement sweep touches.
func loadStatuses(key string, def []model.ReservationStatus) []model.ReservationStatus {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []model.ReservationStatus
	for _, part := range strings.Split(v, ",") {
		s := model.ReservationStatus(strings.TrimSpace(strings.ToLower(part)))
		if s == "" {
			continue
		}
		if !s.Valid() {
			log.Fatalf("invalid reservation status for %s: %q", key, part)
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return def
	}
	return out
}
