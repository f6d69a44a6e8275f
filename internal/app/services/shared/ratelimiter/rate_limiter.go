package ratelimiter

import (
	"context"
	"fmt"
	"rehab-service/internal/app/contracts"
	"strings"
	"time"

	"go.uber.org/zap"
)

// resourceLimiter is a fixed-window counter stored in Redis with a TTL equal
// to the window, shared by every instance of the service.
type resourceLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewResourceLimiter(redis contracts.RedisRepository, log *zap.Logger) contracts.ResourceLimiter {
	return &resourceLimiter{redis: redis, log: log, now: time.Now}
}

func (l *resourceLimiter) Allow(ctx context.Context, group, resource string, window time.Duration, quota int) (bool, time.Duration, error) {
	resource = strings.ToLower(strings.TrimSpace(resource))
	group = strings.ToUpper(strings.TrimSpace(group))
	if quota <= 0 {
		return true, 0, nil
	}
	if window < time.Second {
		window = time.Minute
	}
	if resource == "" || group == "" {
		return false, window, nil
	}

	windowSec := int64(window / time.Second)
	now := l.now().UTC()
	windowID := now.Unix() / windowSec
	key := fmt.Sprintf("ratelimit:%s:%s:%d", group, resource, windowID)

	count, err := l.redis.IncrementWithTTL(ctx, key, window+time.Second)
	if err != nil {
		l.log.Error("resourceLimiter.Allow increment failed",
			zap.String("key", key),
			zap.Error(err))
		return false, 0, err
	}

	if count > quota {
		nextWindowStart := time.Unix((windowID+1)*windowSec, 0)
		return false, nextWindowStart.Sub(now), nil
	}
	return true, 0, nil
}
