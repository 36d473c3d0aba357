package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "BACKEND_URL", "UPSTREAM_TIMEOUT", "CART_STORE", "CORS_ALLOW_ORIGINS", "RUN_MIGRATIONS", "RABBITMQ_URL", "IMAGE_ALLOW_HOSTS", "HEALTH_PROBE_TIMEOUT", "CART_SESSION_SECRET"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "memory", cfg.CartStore)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.True(t, cfg.RunMigrations)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.ImageAllowHosts)
	assert.Equal(t, 2*time.Second, cfg.HealthProbeTimeout)
	assert.True(t, cfg.DefaultSessionSecret())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://localhost:3001/")
	t.Setenv("UPSTREAM_TIMEOUT", "250ms")
	t.Setenv("CART_STORE", "Redis")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("RUN_MIGRATIONS", "no")
	t.Setenv("IMAGE_ALLOW_HOSTS", "cdn.example.com, i.postimg.cc")
	t.Setenv("HEALTH_PROBE_TIMEOUT", "500ms")
	t.Setenv("CART_SESSION_SECRET", "s3cret")

	cfg := Load()

	assert.Equal(t, "http://localhost:3001", cfg.BackendURL)
	assert.Equal(t, 250*time.Millisecond, cfg.UpstreamTimeout)
	assert.Equal(t, "redis", cfg.CartStore)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, []string{"cdn.example.com", "i.postimg.cc"}, cfg.ImageAllowHosts)
	assert.Equal(t, 500*time.Millisecond, cfg.HealthProbeTimeout)
	assert.False(t, cfg.DefaultSessionSecret())
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 3*time.Second, parseDuration("bogus", 3*time.Second))
	assert.True(t, parseBool("maybe", true))
	assert.Equal(t, []string{"*"}, splitCSV(" , "))
	assert.Empty(t, splitList(" , "))
}
