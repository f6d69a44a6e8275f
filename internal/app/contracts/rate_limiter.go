package contracts

import (
	"context"
	"time"
)

type ResourceLimiter interface {
	// Allow counts one hit for resource within group and reports whether the
	// quota for the current window still holds, plus the wait until the next
	// window when it does not.
	Allow(ctx context.Context, group, resource string, window time.Duration, quota int) (bool, time.Duration, error)
}
