package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "booking-lock:"

// ErrLockHeld is returned when another request holds the property's lock.
var ErrLockHeld = errors.New("booking lock is held by another request")

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// BookingLocker serialises the check-then-insert step of booking creation
// per property with a short-lived Redis key.
type BookingLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBookingLocker(client *redis.Client, ttl time.Duration) *BookingLocker {
	return &BookingLocker{client: client, ttl: ttl}
}

// Acquire takes the lock for propertyID. The returned release function is
// safe to call after the lock expired.
func (l *BookingLocker) Acquire(ctx context.Context, propertyID string) (func(context.Context) error, error) {
	key := lockKeyPrefix + propertyID
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("release %s: %w", key, err)
		}
		return nil
	}
	return release, nil
}
