package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseFile   string        `env:"MODSUGGEST_DATABASE_FILE"    envDefault:"modsuggest.db"`   // SQLite database file
	PepperFile     string        `env:"MODSUGGEST_PEPPER_FILE"      envDefault:"pepper"`          // pepper for password hashing, generated if missing
	SessionKeyFile string        `env:"MODSUGGEST_SESSION_KEY_FILE" envDefault:"session_key.pem"` // Ed25519 key signing session tokens, generated if missing
	SessionTTL     time.Duration `env:"MODSUGGEST_SESSION_TTL"      envDefault:"168h"`
	Issuer         string        `env:"MODSUGGEST_ISSUER"           envDefault:"modsuggest"`
	SecureCookies  bool          `env:"MODSUGGEST_SECURE_COOKIES"` // force Secure on cookies even behind plain HTTP

	// Seed admin, only used while the accounts table is empty.
	AdminUsername string `env:"MODSUGGEST_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"MODSUGGEST_ADMIN_PASSWORD" envDefault:"admin123"`

	Env                  string        `env:"ENV"                   envDefault:"dev"`  // dev, staging, prod
	LogLevel             string        `env:"LOG_LEVEL"             envDefault:"info"` // debug, info, warn, error
	LogFormat            string        `env:"LOG_FORMAT"            envDefault:"json"` // json, text
	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig reads a .env file from the working directory when one exists
// and then parses the environment. Variables already set win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return parseConfig(env.Options{})
}

func parseConfig(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DatabaseFile) == "" {
		errs = append(errs, errors.New("MODSUGGEST_DATABASE_FILE must not be empty"))
	}
	if strings.TrimSpace(c.Issuer) == "" {
		errs = append(errs, errors.New("MODSUGGEST_ISSUER must not be empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("MODSUGGEST_SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}

	return errors.Join(errs...)
}
