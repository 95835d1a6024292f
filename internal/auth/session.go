package auth

import (
	"context"
	"fmt"
	"time"

	redisdb "hangar/internal/redis"
)

// CookieName carries the session JWT in the browser.
const CookieName = "hangar_session"

const sessionKeyFmt = "session:%d"

// SetSession records the active token for a user with an inactivity TTL.
// Writing replaces any previous token, so a fresh login evicts the old
// session.
func SetSession(ctx context.Context, rdb redisdb.Cmdable, userID uint, token string, ttl time.Duration) error {
	return rdb.Set(ctx, fmt.Sprintf(sessionKeyFmt, userID), token, ttl).Err()
}

// GetSession returns the stored token, or an error when none exists.
func GetSession(ctx context.Context, rdb redisdb.Cmdable, userID uint) (string, error) {
	return rdb.Get(ctx, fmt.Sprintf(sessionKeyFmt, userID)).Result()
}

// RefreshSession pushes the inactivity window forward without rewriting
// the token.
func RefreshSession(ctx context.Context, rdb redisdb.Cmdable, userID uint, ttl time.Duration) error {
	return rdb.Expire(ctx, fmt.Sprintf(sessionKeyFmt, userID), ttl).Err()
}

// DeleteSession removes the session record. Deleting an absent session is
// not an error, so logout is idempotent.
func DeleteSession(ctx context.Context, rdb redisdb.Cmdable, userID uint) error {
	return rdb.Del(ctx, fmt.Sprintf(sessionKeyFmt, userID)).Err()
}
