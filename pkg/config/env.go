package config

// EnvPrefix is empty because every field carries its full STATIONDESK_ key.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv          = "STATIONDESK_APP_ENV"
	EnvPort            = "STATIONDESK_APP_PORT"
	EnvLogLevel        = "STATIONDESK_LOG_LEVEL"
	EnvDBDSN           = "STATIONDESK_DB_DSN"
	EnvDBHost          = "STATIONDESK_DB_HOST"
	EnvDBUser          = "STATIONDESK_DB_USER"
	EnvDBPassword      = "STATIONDESK_DB_PASSWORD"
	EnvDBName          = "STATIONDESK_DB_NAME"
	EnvRedisURL        = "STATIONDESK_REDIS_URL"
	EnvJWTSecret       = "STATIONDESK_JWT_SECRET"
	EnvJWTIssuer       = "STATIONDESK_JWT_ISSUER"
	EnvSessionTTL      = "STATIONDESK_SESSION_TTL"
	EnvCookieName      = "STATIONDESK_SESSION_COOKIE_NAME"
	EnvOwnerEmail      = "STATIONDESK_OWNER_EMAIL"
	EnvIdentityURL     = "STATIONDESK_IDENTITY_URL"
	EnvIdentityAPIKey  = "STATIONDESK_IDENTITY_API_KEY"
	EnvGCSBucket       = "STATIONDESK_GCS_BUCKET_NAME"
	EnvMaxUploadMB     = "STATIONDESK_MAX_UPLOAD_MB"
	EnvCORSOrigins     = "STATIONDESK_CORS_ALLOWED_ORIGINS"
	EnvAutoMigrate     = "STATIONDESK_AUTO_MIGRATE"
	EnvGCPCredsJSON    = "STATIONDESK_GCP_CREDENTIALS_JSON"
	EnvGCSEndpoint     = "STATIONDESK_GCS_ENDPOINT"
	EnvGCSDisabled     = "STATIONDESK_GCS_DISABLED"
	EnvIdentityTimeout = "STATIONDESK_IDENTITY_TIMEOUT"
	EnvLoginWindow     = "STATIONDESK_AUTH_RATE_LIMIT_LOGIN_WINDOW"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
