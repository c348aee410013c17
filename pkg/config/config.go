package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

// minProdSecretLen is the shortest JWT secret accepted outside dev.
const minProdSecretLen = 32

// Config is everything a command reads from STATIONDESK_* variables.
type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Session       SessionConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Idempotency   IdempotencyConfig
	FeatureFlags  FeatureFlagsConfig
	Owner         OwnerConfig
	Identity      IdentityConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Upload        UploadConfig
	CORS          CORSConfig
}

// Load parses the environment, then runs the cross-field checks envconfig
// cannot express. All failed checks are returned together.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) check() error {
	var errs error

	dsn, err := c.DB.resolveDSN()
	errs = multierr.Append(errs, err)
	c.DB.DSN = dsn

	if c.App.IsProd() && len(c.JWT.Secret) < minProdSecretLen {
		errs = multierr.Append(errs, fmt.Errorf("%s must be at least %d characters in prod", EnvJWTSecret, minProdSecretLen))
	}
	if c.JWT.SessionTTL <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvSessionTTL))
	}
	if c.AuthRateLimit.LoginWindow <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvLoginWindow))
	}
	for _, origin := range c.CORS.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: %q is not an origin", EnvCORSOrigins, origin))
		}
	}
	return errs
}

type AppConfig struct {
	Env          string `envconfig:"STATIONDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"STATIONDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STATIONDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STATIONDESK_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"STATIONDESK_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

// IsProd accepts "prod" and "production".
func (a AppConfig) IsProd() bool {
	env := strings.ToLower(a.Env)
	return env == AppEnvProd || env == "production"
}
