package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// clockSkew tolerated when checking iat/exp across instances.
const clockSkew = 30 * time.Second

var signingMethod = jwt.SigningMethodHS256

func checkSecret(cfg config.JWTConfig) error {
	if cfg.Secret == "" {
		return errors.New("jwt secret is required")
	}
	return nil
}

// MintSessionToken signs a session JWT for payload. The expiry is fixed at
// issuance and never slides; a blank JTI gets a random one.
func MintSessionToken(cfg config.JWTConfig, now time.Time, payload SessionPayload) (string, *SessionClaims, error) {
	if err := checkSecret(cfg); err != nil {
		return "", nil, err
	}
	switch {
	case cfg.Issuer == "":
		return "", nil, errors.New("jwt issuer is required")
	case cfg.SessionTTL <= 0:
		return "", nil, errors.New("session ttl must be positive")
	}

	jti := strings.TrimSpace(payload.JTI)
	if jti == "" {
		jti = uuid.NewString()
	}
	claims := &SessionClaims{
		UserID: payload.UserID,
		Name:   payload.Name,
		Role:   payload.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    cfg.Issuer,
			Subject:   payload.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.SessionTTL)),
		},
	}
	if err := claims.Validate(); err != nil {
		return "", nil, err
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return signed, claims, nil
}

// ParseSessionToken verifies signature, issuer and expiry.
func ParseSessionToken(cfg config.JWTConfig, raw string) (*SessionClaims, error) {
	return parse(cfg, raw,
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(clockSkew),
	)
}

// ParseSessionTokenAllowExpired checks the signature only, so logout can
// revoke a session whose token already expired.
func ParseSessionTokenAllowExpired(cfg config.JWTConfig, raw string) (*SessionClaims, error) {
	return parse(cfg, raw, jwt.WithoutClaimsValidation())
}

func parse(cfg config.JWTConfig, raw string, opts ...jwt.ParserOption) (*SessionClaims, error) {
	if err := checkSecret(cfg); err != nil {
		return nil, err
	}
	opts = append(opts, jwt.WithValidMethods([]string{signingMethod.Alg()}))

	claims := &SessionClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
