package httpmiddleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisWindow is a fixed-window per-key limiter backed by redis, for
// deployments with more than one API instance. Fails open when redis is
// unreachable so a cache outage cannot take down registration.
type RedisWindow struct {
	client    *redis.Client
	prefix    string
	perWindow int
	window    time.Duration
}

// NewRedisWindow creates a limiter allowing perMinute requests per key per minute.
func NewRedisWindow(client *redis.Client, prefix string, perMinute int) *RedisWindow {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisWindow{
		client:    client,
		prefix:    prefix,
		perWindow: perMinute,
		window:    time.Minute,
	}
}

// Allow increments the window counter for key and checks it against the cap.
func (l *RedisWindow) Allow(c *gin.Context, key string) bool {
	ctx := c.Request.Context()
	slot := time.Now().Unix() / int64(l.window.Seconds())
	redisKey := l.prefix + ":" + key + ":" + strconv.FormatInt(slot, 10)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, redisKey, l.window)
	}
	return count <= int64(l.perWindow)
}
