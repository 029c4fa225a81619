package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/signupdesk/signupdesk/backend/internal/config"
)

var ErrUnauthorized = errors.New("unauthorized")

const (
	ModeStatic = "static"
	ModeJWT    = "jwt"
)

// Blacklist stores revoked tokens until they expire.
type Blacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// Guard checks the admin credential pair and the bearer tokens it hands out.
// In static mode every successful login returns the same configured token.
type Guard struct {
	username  string
	password  string
	mode      string
	token     string
	secret    []byte
	ttl       time.Duration
	blacklist Blacklist
	now       func() time.Time
}

// NewGuard builds a guard from the admin config. bl may be nil.
func NewGuard(cfg config.AdminConfig, bl Blacklist) *Guard {
	mode := cfg.Mode
	if mode == "" {
		mode = ModeStatic
	}
	return &Guard{
		username:  cfg.Username,
		password:  cfg.Password,
		mode:      mode,
		token:     cfg.Token,
		secret:    []byte(cfg.Secret),
		ttl:       cfg.TokenTTL,
		blacklist: bl,
		now:       time.Now,
	}
}

func (g *Guard) Mode() string { return g.mode }

// Login returns a bearer token when username and password match exactly.
func (g *Guard) Login(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	if !userOK || !passOK {
		return "", ErrUnauthorized
	}
	if g.mode == ModeJWT {
		return g.issue(username)
	}
	return g.token, nil
}

// Authorize returns nil when token grants admin access.
func (g *Guard) Authorize(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthorized
	}
	if g.mode != ModeJWT {
		if subtle.ConstantTimeCompare([]byte(token), []byte(g.token)) != 1 {
			return ErrUnauthorized
		}
		return nil
	}
	if _, err := g.parse(token); err != nil {
		return err
	}
	if g.blacklist != nil {
		revoked, err := g.blacklist.Contains(ctx, token)
		if err != nil {
			return fmt.Errorf("blacklist lookup: %w", err)
		}
		if revoked {
			return ErrUnauthorized
		}
	}
	return nil
}

// Logout revokes a signed token for the rest of its lifetime. The static
// token is shared by every admin and cannot be revoked, so Logout is a no-op
// in static mode.
func (g *Guard) Logout(ctx context.Context, token string) error {
	if g.mode != ModeJWT || g.blacklist == nil {
		return nil
	}
	claims, err := g.parse(token)
	if err != nil {
		return err
	}
	ttl := claims.ExpiresAt.Time.Sub(g.now())
	if ttl <= 0 {
		return nil
	}
	return g.blacklist.Add(ctx, token, ttl)
}
