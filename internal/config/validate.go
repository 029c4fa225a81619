package config

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "file", "memory":
	case "mongo":
		if c.MongoDB.URI == "" {
			return fmt.Errorf("%w: STORE_BACKEND=mongo requires MONGODB_URI", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown STORE_BACKEND %q", ErrInvalidConfig, c.Store.Backend)
	}
	if c.Store.Backend == "file" && c.Store.DataFile == "" {
		return fmt.Errorf("%w: DATA_FILE is empty", ErrInvalidConfig)
	}

	switch c.Admin.Mode {
	case "static":
		if c.Admin.Token == "" {
			return fmt.Errorf("%w: ADMIN_TOKEN is empty", ErrInvalidConfig)
		}
	case "jwt":
		if c.Admin.Secret == "" {
			return fmt.Errorf("%w: ADMIN_TOKEN_MODE=jwt requires ADMIN_JWT_SECRET", ErrInvalidConfig)
		}
		if c.Admin.TokenTTL <= 0 {
			return fmt.Errorf("%w: ADMIN_TOKEN_TTL must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown ADMIN_TOKEN_MODE %q", ErrInvalidConfig, c.Admin.Mode)
	}

	switch c.SMS.Notifier {
	case "log", "noop":
	case "redis":
		if c.Redis.Host == "" {
			return fmt.Errorf("%w: SMS_NOTIFIER=redis requires REDIS_HOST", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown SMS_NOTIFIER %q", ErrInvalidConfig, c.SMS.Notifier)
	}
	return nil
}
