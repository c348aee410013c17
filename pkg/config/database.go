package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DBConfig is optional. With neither a DSN nor the discrete parts the API
// boots against a disabled store.
type DBConfig struct {
	DSN    string `envconfig:"STATIONDESK_DB_DSN"`
	Driver string `envconfig:"STATIONDESK_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"STATIONDESK_DB_HOST"`
	Port     int    `envconfig:"STATIONDESK_DB_PORT" default:"5432"`
	User     string `envconfig:"STATIONDESK_DB_USER"`
	Password string `envconfig:"STATIONDESK_DB_PASSWORD"`
	Name     string `envconfig:"STATIONDESK_DB_NAME"`
	SSLMode  string `envconfig:"STATIONDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STATIONDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STATIONDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STATIONDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STATIONDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SlowQueryThreshold time.Duration `envconfig:"STATIONDESK_DB_SLOW_QUERY_THRESHOLD" default:"500ms"`
}

// Configured reports whether a datasource was supplied.
func (db DBConfig) Configured() bool {
	return strings.TrimSpace(db.DSN) != ""
}

// resolveDSN returns the explicit DSN, or a postgres URL assembled from the
// host, user and name parts. Giving some parts but not all is an error.
func (db DBConfig) resolveDSN() (string, error) {
	if dsn := strings.TrimSpace(db.DSN); dsn != "" {
		return dsn, nil
	}

	parts := []struct{ env, value string }{
		{EnvDBHost, db.Host},
		{EnvDBUser, db.User},
		{EnvDBName, db.Name},
	}
	var missing []string
	for _, p := range parts {
		if strings.TrimSpace(p.value) == "" {
			missing = append(missing, p.env)
		}
	}
	switch len(missing) {
	case len(parts):
		return "", nil
	case 0:
	default:
		return "", fmt.Errorf("set %s or all of %s (missing %s)", EnvDBDSN, strings.Join(legacyDBEnvVars, ", "), strings.Join(missing, ", "))
	}

	dsn := url.URL{
		Scheme: "postgres",
		User:   url.User(db.User),
		Host:   net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:   "/" + db.Name,
	}
	if db.Password != "" {
		dsn.User = url.UserPassword(db.User, db.Password)
	}
	if db.SSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": {db.SSLMode}}.Encode()
	}
	return dsn.String(), nil
}
