package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	// DeleteIfValue removes key only while it still holds value.
	DeleteIfValue(ctx context.Context, key string, value interface{}) (bool, error)
	// ExpireIfValue resets the TTL of key only while it still holds value.
	ExpireIfValue(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	// IncrementWithTTL increments key and sets ttl when the key is created.
	IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error)
}
