// Package identity signs users in against an external GoTrue-compatible
// identity provider using the password grant.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/config"
)

// ErrInvalidCredentials is returned when the provider rejects the email and
// password pair.
var ErrInvalidCredentials = errors.New("identity provider rejected credentials")

// Identity is the subset of the provider's user record the API keeps.
type Identity struct {
	ExternalID string
	Email      string
	Name       string
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient returns nil when no provider is configured.
func NewClient(cfg config.IdentityConfig) *Client {
	if !cfg.Configured() {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordGrantResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID           string         `json:"id"`
		Email        string         `json:"email"`
		UserMetadata map[string]any `json:"user_metadata"`
	} `json:"user"`
}

// SignIn exchanges credentials for the provider's user record.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	if c == nil {
		return nil, errors.New("identity provider not configured")
	}

	payload, err := json.Marshal(passwordGrantRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/token?grant_type=password", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity sign-in: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	case resp.StatusCode != http.StatusOK:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("identity sign-in failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var body passwordGrantResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding identity response: %w", err)
	}
	if body.User.Email == "" {
		return nil, errors.New("identity response missing user email")
	}

	ident := &Identity{ExternalID: body.User.ID, Email: strings.ToLower(body.User.Email)}
	for _, key := range []string{"name", "full_name"} {
		if v, ok := body.User.UserMetadata[key].(string); ok && strings.TrimSpace(v) != "" {
			ident.Name = strings.TrimSpace(v)
			break
		}
	}
	return ident, nil
}
