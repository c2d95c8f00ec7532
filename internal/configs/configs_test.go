package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("LEARNHUB_API_URL", "")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "")
	t.Setenv("TOKEN_FILE", "/tmp/learnhub-test-token")
	t.Setenv("REQUEST_RATE", "")
	t.Setenv("REQUEST_BURST", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "http://127.0.0.1:8000", cfg.BaseURL.String())
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "/tmp/learnhub-test-token", cfg.TokenFile)
	assert.Equal(t, 10.0, cfg.RequestRate)
	assert.Equal(t, 20, cfg.RequestBurst)
}

func TestLoadConfigExplicitValues(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LEARNHUB_API_URL", "https://learnhub.example.com/api-root/")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("TOKEN_FILE", "/tmp/learnhub-test-token")
	t.Setenv("REQUEST_RATE", "2.5")
	t.Setenv("REQUEST_BURST", "4")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "https", cfg.BaseURL.Scheme)
	assert.Equal(t, "learnhub.example.com", cfg.BaseURL.Host)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2.5, cfg.RequestRate)
	assert.Equal(t, 4, cfg.RequestBurst)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"non-http scheme", "LEARNHUB_API_URL", "ftp://example.com"},
		{"missing host", "LEARNHUB_API_URL", "http://"},
		{"non-numeric timeout", "HTTP_TIMEOUT_SECONDS", "soon"},
		{"zero timeout", "HTTP_TIMEOUT_SECONDS", "0"},
		{"non-numeric rate", "REQUEST_RATE", "fast"},
		{"negative rate", "REQUEST_RATE", "-1"},
		{"non-numeric burst", "REQUEST_BURST", "many"},
		{"zero burst", "REQUEST_BURST", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TOKEN_FILE", "/tmp/learnhub-test-token")
			t.Setenv(tc.key, tc.value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
