package config

import (
	"strings"
	"time"
)

type RedisConfig struct {
	URL          string        `envconfig:"STATIONDESK_REDIS_URL"`
	Address      string        `envconfig:"STATIONDESK_REDIS_ADDR"`
	Password     string        `envconfig:"STATIONDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"STATIONDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STATIONDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STATIONDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STATIONDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STATIONDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STATIONDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured is true when either a URL or a bare address is set. Without
// Redis sessions are not revocable and login throttling is off.
func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret     string        `envconfig:"STATIONDESK_JWT_SECRET" required:"true"`
	Issuer     string        `envconfig:"STATIONDESK_JWT_ISSUER" default:"stationdesk"`
	SessionTTL time.Duration `envconfig:"STATIONDESK_SESSION_TTL" default:"8760h"`
}

type SessionConfig struct {
	CookieName string `envconfig:"STATIONDESK_SESSION_COOKIE_NAME" default:"app_session_id"`
}

// PasswordConfig holds the argon2id cost. Changing it causes existing hashes
// to be upgraded on the next successful login.
type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STATIONDESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STATIONDESK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STATIONDESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STATIONDESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STATIONDESK_ARGON_KEY_LEN" default:"32"`
}

// AuthRateLimitConfig bounds auth.login attempts per window. A limit of zero
// disables that bucket.
type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"STATIONDESK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"STATIONDESK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"STATIONDESK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// IdempotencyConfig is how long a replayable mutation response is kept.
type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"STATIONDESK_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STATIONDESK_AUTO_MIGRATE" default:"false"`
}

// OwnerConfig names the account that is promoted to admin the first time it
// is created.
type OwnerConfig struct {
	Email string `envconfig:"STATIONDESK_OWNER_EMAIL"`
	Name  string `envconfig:"STATIONDESK_OWNER_NAME"`
}

type IdentityConfig struct {
	URL     string        `envconfig:"STATIONDESK_IDENTITY_URL"`
	APIKey  string        `envconfig:"STATIONDESK_IDENTITY_API_KEY"`
	Timeout time.Duration `envconfig:"STATIONDESK_IDENTITY_TIMEOUT" default:"10s"`
}

func (i IdentityConfig) Configured() bool {
	return strings.TrimSpace(i.URL) != "" && strings.TrimSpace(i.APIKey) != ""
}

type GCPConfig struct {
	ProjectID              string `envconfig:"STATIONDESK_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"STATIONDESK_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"STATIONDESK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName    string `envconfig:"STATIONDESK_GCS_BUCKET_NAME" default:"employee-documents"`
	Endpoint      string `envconfig:"STATIONDESK_GCS_ENDPOINT"`
	PublicBaseURL string `envconfig:"STATIONDESK_GCS_PUBLIC_BASE_URL" default:"https://storage.googleapis.com"`
	Disabled      bool   `envconfig:"STATIONDESK_GCS_DISABLED" default:"false"`
}

type UploadConfig struct {
	MaxUploadMB int `envconfig:"STATIONDESK_MAX_UPLOAD_MB" default:"10"`
}

// MaxBytes returns the decoded upload ceiling, 10 MiB when unset.
func (u UploadConfig) MaxBytes() int64 {
	mb := u.MaxUploadMB
	if mb <= 0 {
		mb = 10
	}
	return int64(mb) << 20
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STATIONDESK_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}
