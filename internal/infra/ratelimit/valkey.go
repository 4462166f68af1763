package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"
)

const window = time.Minute

// Valkey counts requests per key in fixed one-minute windows shared by every
// replica that talks to the same server.
type Valkey struct {
	client    valkey.Client
	prefix    string
	perMinute int64
	now       func() time.Time
}

// NewValkey builds a shared limiter.
func NewValkey(client valkey.Client, prefix string, perMinute int) *Valkey {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &Valkey{client: client, prefix: prefix, perMinute: int64(perMinute), now: time.Now}
}

// Allow increments the current window's counter for key.
func (v *Valkey) Allow(ctx context.Context, key string) (bool, error) {
	k := v.windowKey(key, v.now())
	count, err := v.client.Do(ctx, v.client.B().Incr().Key(k).Build()).AsInt64()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", k, err)
	}
	if count == 1 {
		ttl := int64((2 * window) / time.Second)
		if err := v.client.Do(ctx, v.client.B().Expire().Key(k).Seconds(ttl).Build()).Error(); err != nil {
			return false, fmt.Errorf("expire %s: %w", k, err)
		}
	}
	return count <= v.perMinute, nil
}

func (v *Valkey) windowKey(key string, now time.Time) string {
	return v.prefix + ":" + key + ":" + strconv.FormatInt(now.Unix()/int64(window/time.Second), 10)
}
