package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	cfg := &Config{
		Telegram:  TelegramConfig{Token: "t", RunMode: "Polling"},
		RateLimit: RateLimitConfig{ExcludeUpdates: []string{" Callback ", ""}},
		Metrics:   MetricsConfig{Listen: ":9090"},
	}
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, []string{UpdateCallback}, cfg.RateLimit.ExcludeUpdates)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestNormalizeErrors(t *testing.T) {
	cases := map[string]Config{
		"token":           {},
		"webhook.url":     {Telegram: TelegramConfig{Token: "t", RunMode: RunModeWebhook}},
		"webhook.port":    {Telegram: TelegramConfig{Token: "t", RunMode: RunModeWebhook}, Webhook: WebhookConfig{URL: "https://x", Listen: "0.0.0.0"}},
		"run_mode":        {Telegram: TelegramConfig{Token: "t", RunMode: "smoke"}},
		"admin_id":        {Telegram: TelegramConfig{Token: "t", AdminID: -1}},
		"exclude_updates": {Telegram: TelegramConfig{Token: "t"}, RateLimit: RateLimitConfig{ExcludeUpdates: []string{"poll"}}},
		"interval_ms":     {Telegram: TelegramConfig{Token: "t"}, RateLimit: RateLimitConfig{IntervalMS: -5}},
		"metrics.path":    {Telegram: TelegramConfig{Token: "t"}, Metrics: MetricsConfig{Path: "metrics"}},
	}
	for want, cfg := range cases {
		err := Normalize(&cfg)
		assert.ErrorContains(t, err, want, want)
	}
	assert.Error(t, Normalize(nil))
}
