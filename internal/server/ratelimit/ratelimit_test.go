package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig() Config {
	return Config{
		Enabled:         true,
		DefaultRPM:      60,
		SubmitRPM:       2,
		AuthRPM:         5,
		CleanupInterval: time.Minute,
	}
}

func TestLimiter_AllowsWithinBudget(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("1.2.3.4", "/api/jobs", "GET")
		assert.True(t, allowed, "request %d should pass", i)
		assert.Equal(t, 60, info.Limit)
	}
}

func TestLimiter_SubmitClassIsTighter(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, _ := l.Allow("1.2.3.4", "/api/applications", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/api/applications", "POST")
	assert.True(t, allowed)

	allowed, info := l.Allow("1.2.3.4", "/api/applications", "POST")
	assert.False(t, allowed, "third submission should exceed the budget")
	assert.Equal(t, 2, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	// Reads from the same client stay on their own bucket.
	allowed, _ = l.Allow("1.2.3.4", "/api/jobs", "GET")
	assert.True(t, allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	l.Allow("1.1.1.1", "/api/applications", "POST")
	l.Allow("1.1.1.1", "/api/applications", "POST")
	allowed, _ := l.Allow("1.1.1.1", "/api/applications", "POST")
	assert.False(t, allowed)

	allowed, _ = l.Allow("2.2.2.2", "/api/applications", "POST")
	assert.True(t, allowed, "a different client has a fresh bucket")
}

func TestLimiter_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/applications", "POST")
		assert.True(t, allowed)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_RPM", "")
	t.Setenv("RATE_LIMIT_SUBMIT_RPM", "")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 300, cfg.DefaultRPM)
	assert.Equal(t, 10, cfg.SubmitRPM)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_SUBMIT_RPM", "99")
	cfg = LoadConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 99, cfg.SubmitRPM)
}
