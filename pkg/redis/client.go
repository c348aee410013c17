package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "sd"

var errNotConnected = errors.New("redis client not connected")

// commands is the slice of go-redis used here; tests swap in a map-backed fake.
type commands interface {
	Ping(ctx context.Context) *goredis.StatusCmd
	Get(ctx context.Context, key string) *goredis.StringCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *goredis.BoolCmd
	SetEx(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Exists(ctx context.Context, keys ...string) *goredis.IntCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Incr(ctx context.Context, key string) *goredis.IntCmd
	ExpireNX(ctx context.Context, key string, expiration time.Duration) *goredis.BoolCmd
}

// Client stores revocable sessions, login attempt counters and replayable
// mutation responses.
type Client struct {
	cmds commands
	conn *goredis.Client
}

// New dials redis from cfg and pings it once.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := newOptions(cfg)
	if err != nil {
		return nil, err
	}
	conn := goredis.NewClient(opts)
	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	if logg != nil {
		logg.Info(logg.WithField(ctx, "redis_addr", opts.Addr), "redis connected")
	}
	return &Client{cmds: conn, conn: conn}, nil
}

// newOptions prefers a redis:// URL and falls back to a bare address. Pool
// and timeout settings fill whatever the URL left unset.
func newOptions(cfg config.RedisConfig) (*goredis.Options, error) {
	var opts *goredis.Options
	switch {
	case strings.TrimSpace(cfg.URL) != "":
		parsed, err := goredis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	case strings.TrimSpace(cfg.Address) != "":
		opts = &goredis.Options{Addr: cfg.Address, Password: cfg.Password, DB: cfg.DB}
	default:
		return nil, errors.New("redis url or address is required")
	}

	fill := func(dst *time.Duration, v time.Duration) {
		if *dst == 0 {
			*dst = v
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	fill(&opts.DialTimeout, cfg.DialTimeout)
	fill(&opts.ReadTimeout, cfg.ReadTimeout)
	fill(&opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

func key(kind, id string) string {
	return keyPrefix + ":" + kind + ":" + id
}

// SaveSession records a session id for ttl.
func (c *Client) SaveSession(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if c.cmds == nil {
		return errNotConnected
	}
	return c.cmds.SetEx(ctx, key("session", sessionID), userID, ttl).Err()
}

// SessionExists reports whether the session id is still registered.
func (c *Client) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	if c.cmds == nil {
		return false, errNotConnected
	}
	n, err := c.cmds.Exists(ctx, key("session", sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteSession removes a session id. Deleting an unknown id is not an error.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if c.cmds == nil {
		return errNotConnected
	}
	return c.cmds.Del(ctx, key("session", sessionID)).Err()
}

// CountAttempt bumps the counter for name and returns the count inside the
// current window. The window starts at the first attempt.
func (c *Client) CountAttempt(ctx context.Context, name string, window time.Duration) (int64, error) {
	if c.cmds == nil {
		return 0, errNotConnected
	}
	k := key("attempts", name)
	count, err := c.cmds.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	// NX keeps the original deadline and repairs a counter left without one.
	if window > 0 {
		if err := c.cmds.ExpireNX(ctx, k, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// ClaimReplay stores value under scope only if nothing is there yet. False
// means another request already holds the scope.
func (c *Client) ClaimReplay(ctx context.Context, scope, value string, ttl time.Duration) (bool, error) {
	if c.cmds == nil {
		return false, errNotConnected
	}
	return c.cmds.SetNX(ctx, key("replay", scope), value, ttl).Result()
}

// LoadReplay returns the record held for scope. A missing key is reported
// through the bool, not as an error.
func (c *Client) LoadReplay(ctx context.Context, scope string) (string, bool, error) {
	if c.cmds == nil {
		return "", false, errNotConnected
	}
	value, err := c.cmds.Get(ctx, key("replay", scope)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SaveReplay overwrites the record for scope and restarts its ttl.
func (c *Client) SaveReplay(ctx context.Context, scope, value string, ttl time.Duration) error {
	if c.cmds == nil {
		return errNotConnected
	}
	return c.cmds.SetEx(ctx, key("replay", scope), value, ttl).Err()
}

func (c *Client) DropReplay(ctx context.Context, scope string) error {
	if c.cmds == nil {
		return errNotConnected
	}
	return c.cmds.Del(ctx, key("replay", scope)).Err()
}

func (c *Client) Ping(ctx context.Context) error {
	if c.cmds == nil {
		return errNotConnected
	}
	return c.cmds.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
