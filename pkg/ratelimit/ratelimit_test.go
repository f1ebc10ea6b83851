package ratelimit

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRateLimiter(t *testing.T) {
	t.Run("allows up to the limit, then blocks", func(t *testing.T) {
		rl := NewLoginRateLimiter(3, time.Minute)
		defer rl.Stop()

		for i := 0; i < 3; i++ {
			assert.True(t, rl.Allow("1.2.3.4"), "attempt %d", i+1)
		}
		assert.False(t, rl.Allow("1.2.3.4"))
	})

	t.Run("different IPs have independent counters", func(t *testing.T) {
		rl := NewLoginRateLimiter(1, time.Minute)
		defer rl.Stop()

		assert.True(t, rl.Allow("1.1.1.1"))
		assert.False(t, rl.Allow("1.1.1.1"))
		assert.True(t, rl.Allow("2.2.2.2"))
	})

	t.Run("reset clears the counter", func(t *testing.T) {
		rl := NewLoginRateLimiter(1, time.Minute)
		defer rl.Stop()

		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))
		rl.Reset("1.2.3.4")
		assert.True(t, rl.Allow("1.2.3.4"))
	})

	t.Run("window expiry starts a fresh window", func(t *testing.T) {
		rl := NewLoginRateLimiter(1, 50*time.Millisecond)
		defer rl.Stop()

		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))
		time.Sleep(60 * time.Millisecond)
		assert.True(t, rl.Allow("1.2.3.4"))
	})

	t.Run("retry-after reports remaining seconds", func(t *testing.T) {
		rl := NewLoginRateLimiter(1, time.Minute)
		defer rl.Stop()

		assert.Equal(t, 0, rl.RetryAfterSeconds("unseen"))

		rl.Allow("1.2.3.4")
		after := rl.RetryAfterSeconds("1.2.3.4")
		assert.Greater(t, after, 0)
		assert.LessOrEqual(t, after, 61)
	})
}

func TestExtractIP(t *testing.T) {
	newReq := func() *http.Request {
		req, err := http.NewRequest(http.MethodPost, "/api/auth/login", nil)
		require.NoError(t, err)
		req.RemoteAddr = "10.0.0.1:54321"
		return req
	}

	t.Run("X-Forwarded-For wins, first entry", func(t *testing.T) {
		req := newReq()
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
		assert.Equal(t, "203.0.113.7", ExtractIP(req))
	})

	t.Run("X-Real-IP is second choice", func(t *testing.T) {
		req := newReq()
		req.Header.Set("X-Real-IP", "203.0.113.8")
		assert.Equal(t, "203.0.113.8", ExtractIP(req))
	})

	t.Run("falls back to RemoteAddr host", func(t *testing.T) {
		req := newReq()
		assert.Equal(t, "10.0.0.1", ExtractIP(req))
	})
}

func TestFormatRetryMessage(t *testing.T) {
	assert.Equal(t, "45 second(s)", FormatRetryMessage(45))
	assert.Equal(t, "2 minute(s)", FormatRetryMessage(120))
}
