package broadcast

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/signupdesk/signupdesk/backend/pkg/logger"
)

// Notifier delivers a dispatch to an SMS provider. No provider is integrated;
// the implementations below log, discard or queue the dispatch.
type Notifier interface {
	Notify(ctx context.Context, d *Dispatch) error
}

// LogNotifier writes the dispatch to the service log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, d *Dispatch) error {
	logger.Infow("sms dispatch", "id", d.ID, "mode", d.Mode, "recipients", d.Recipients, "message", d.Message)
	return nil
}

// NoopNotifier drops every dispatch.
type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, d *Dispatch) error { return nil }

// RedisQueueNotifier pushes each dispatch as JSON onto a Redis list for an
// out-of-process sender to pop.
type RedisQueueNotifier struct {
	client *redis.Client
	key    string
}

func NewRedisQueueNotifier(client *redis.Client, key string) *RedisQueueNotifier {
	if key == "" {
		key = "sms:outbox"
	}
	return &RedisQueueNotifier{client: client, key: key}
}

func (n *RedisQueueNotifier) Notify(ctx context.Context, d *Dispatch) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return n.client.LPush(ctx, n.key, b).Err()
}
