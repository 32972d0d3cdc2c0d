package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket_AllowUpToBurst(t *testing.T) {
	b := newBucket(60, time.Minute, 10)
	now := time.Now()

	for i := 0; i < 10; i++ {
		assert.True(t, b.allow(now), "request %d", i+1)
	}
	assert.False(t, b.allow(now), "11th request is denied")
}

func TestBucket_Refill(t *testing.T) {
	b := newBucket(60, time.Minute, 10) // one token per second
	now := time.Now()

	for i := 0; i < 10; i++ {
		b.allow(now)
	}
	require.False(t, b.allow(now))

	later := now.Add(1100 * time.Millisecond)
	assert.True(t, b.allow(later))
	assert.False(t, b.allow(later))
}

func TestBucket_Status(t *testing.T) {
	b := newBucket(60, time.Minute, 10)
	now := time.Now()

	for i := 0; i < 5; i++ {
		b.allow(now)
	}

	remaining, resetTime := b.status(now)
	assert.Equal(t, 5, remaining)
	assert.Equal(t, now.Add(5*time.Second), resetTime)
}

func TestBucket_RetryAfter(t *testing.T) {
	b := newBucket(60, time.Minute, 1)
	now := time.Now()

	assert.Equal(t, time.Duration(0), b.retryAfter(now))
	require.True(t, b.allow(now))
	assert.Equal(t, time.Second, b.retryAfter(now))
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/relocate", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/relocate", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
	assert.True(t, info.ResetTime.After(time.Now()))
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("192.168.1.1", "/", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
	assert.Equal(t, 0, limiter.Len())
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/relocate", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 30, info.Limit)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/relocate", "POST")
	assert.False(t, allowed, "burst exhausted")
	assert.Equal(t, 30, info.Limit)

	allowed, info = limiter.Allow("127.0.0.1", "/relocate", "GET")
	assert.True(t, allowed, "reading the form uses the default limit")
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var allowedCount atomic.Int32

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/bridge", "GET"); allowed {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(100), allowedCount.Load())
}

func TestLimiter_CleanupRemovesIdleBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/", "GET")
		require.True(t, allowed)
	}
	require.Equal(t, 10, limiter.Len())

	limiter.cleanupBuckets(time.Now())
	assert.Equal(t, 10, limiter.Len(), "recently used buckets survive")

	limiter.cleanupBuckets(time.Now().Add(2 * time.Hour))
	assert.Equal(t, 0, limiter.Len())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/relocate", Method: "POST", Limit: 1},
		{Path: "/static/", Method: "GET", Limit: 2},
	}

	tests := []struct {
		name   string
		path   string
		method string
		want   int
		isNil  bool
	}{
		{name: "exact", path: "/relocate", method: "POST", want: 1},
		{name: "trailing slash", path: "/relocate/", method: "POST", want: 1},
		{name: "method mismatch", path: "/relocate", method: "GET", isNil: true},
		{name: "prefix", path: "/static/app.css", method: "GET", want: 2},
		{name: "prefix root", path: "/static/", method: "GET", want: 2},
		{name: "health", path: "/health", method: "GET", want: 0},
		{name: "unknown", path: "/bridge", method: "GET", isNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.isNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Limit)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
	assert.Len(t, cfg.EndpointConfigs, 2)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "50")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2,")
	t.Setenv("RATE_LIMIT_BLACKLIST", "10.0.0.9")

	cfg := LoadConfig()

	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.Equal(t, map[string]bool{"10.0.0.9": true}, cfg.Blacklist)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_InvalidFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "lots")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.DefaultLimit)
}
