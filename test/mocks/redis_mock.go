package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory stand-in for the handful of Redis
// commands the session and flash stores use. Tests can inject errors per
// command to drive failure paths.
type MockRedisClient struct {
	mu    sync.RWMutex
	data  map[string]mockRedisValue
	lists map[string][]string

	SetError    error
	GetError    error
	DelError    error
	ExpireError error
	RPushError  error
	LRangeError error
}

type mockRedisValue struct {
	value     string
	expiresAt time.Time
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		data:  make(map[string]mockRedisValue),
		lists: make(map[string][]string),
	}
}

// Set stores a string value with optional expiration.
func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewStatusCmd(ctx)
	if m.SetError != nil {
		cmd.SetErr(m.SetError)
		return cmd
	}

	expiresAt := time.Time{}
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}
	m.data[key] = mockRedisValue{value: value.(string), expiresAt: expiresAt}

	cmd.SetVal("OK")
	return cmd
}

// Get retrieves a string value by key.
func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmd := redis.NewStringCmd(ctx)
	if m.GetError != nil {
		cmd.SetErr(m.GetError)
		return cmd
	}

	val, ok := m.data[key]
	if !ok || (!val.expiresAt.IsZero() && time.Now().After(val.expiresAt)) {
		cmd.SetErr(redis.Nil)
		return cmd
	}

	cmd.SetVal(val.value)
	return cmd
}

// Del deletes keys of either kind.
func (m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewIntCmd(ctx)
	if m.DelError != nil {
		cmd.SetErr(m.DelError)
		return cmd
	}

	var deleted int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			delete(m.data, key)
			deleted++
		}
		if _, ok := m.lists[key]; ok {
			delete(m.lists, key)
			deleted++
		}
	}

	cmd.SetVal(deleted)
	return cmd
}

// Expire refreshes the TTL of a string key.
func (m *MockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewBoolCmd(ctx)
	if m.ExpireError != nil {
		cmd.SetErr(m.ExpireError)
		return cmd
	}

	if val, ok := m.data[key]; ok {
		val.expiresAt = time.Now().Add(expiration)
		m.data[key] = val
		cmd.SetVal(true)
		return cmd
	}
	if _, ok := m.lists[key]; ok {
		cmd.SetVal(true)
		return cmd
	}

	cmd.SetVal(false)
	return cmd
}

// RPush appends values to a list.
func (m *MockRedisClient) RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewIntCmd(ctx)
	if m.RPushError != nil {
		cmd.SetErr(m.RPushError)
		return cmd
	}

	for _, v := range values {
		switch s := v.(type) {
		case string:
			m.lists[key] = append(m.lists[key], s)
		case []byte:
			m.lists[key] = append(m.lists[key], string(s))
		}
	}

	cmd.SetVal(int64(len(m.lists[key])))
	return cmd
}

// LRange returns a slice of a list; 0, -1 means the whole list.
func (m *MockRedisClient) LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmd := redis.NewStringSliceCmd(ctx)
	if m.LRangeError != nil {
		cmd.SetErr(m.LRangeError)
		return cmd
	}

	list := m.lists[key]
	n := int64(len(list))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop {
		cmd.SetVal([]string{})
		return cmd
	}

	out := make([]string, 0, stop-start+1)
	out = append(out, list[start:stop+1]...)
	cmd.SetVal(out)
	return cmd
}

// Ping reports the fake as always reachable.
func (m *MockRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

// Reset clears all data and injected errors.
func (m *MockRedisClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make(map[string]mockRedisValue)
	m.lists = make(map[string][]string)
	m.SetError = nil
	m.GetError = nil
	m.DelError = nil
	m.ExpireError = nil
	m.RPushError = nil
	m.LRangeError = nil
}

// SetKey directly sets a string key (for test setup).
func (m *MockRedisClient) SetKey(key, value string, expiration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt := time.Time{}
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}
	m.data[key] = mockRedisValue{value: value, expiresAt: expiresAt}
}
