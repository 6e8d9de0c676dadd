package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ThrottleCache counts answer submissions per participant inside a
// rolling window. The counter is explicit, time-bounded state: the
// key expires with the window, so there is nothing to sweep and no
// ambient in-process map to leak.
type ThrottleCache interface {
	// Incr bumps the participant's counter and returns the new count.
	// The first hit in a window arms the expiry.
	Incr(ctx context.Context, participantID string, window time.Duration) (int64, error)
}

type throttleCache struct {
	client *redis.Client
}

// incrWindow bumps the counter and arms the window expiry in one
// server-side step, so a crash between the two can never leave a
// counter without a TTL.
var incrWindow = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// NewThrottleCache creates a throttle cache on the given Redis client.
func NewThrottleCache(client *redis.Client) ThrottleCache {
	return &throttleCache{client: client}
}

func (c *throttleCache) counterKey(participantID string) string {
	return fmt.Sprintf("participant:%s:answers", participantID)
}

func (c *throttleCache) Incr(ctx context.Context, participantID string, window time.Duration) (int64, error) {
	key := c.counterKey(participantID)
	return incrWindow.Run(ctx, c.client, []string{key}, window.Milliseconds()).Int64()
}
