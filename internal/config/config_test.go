package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("API_ID", "12345")
	t.Setenv("API_HASH", "abcdef0123456789")
	t.Setenv("SESSION_STRING", "1BVtsOHkBu...")
}

func TestLoad_FromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WEBHOOK_URL", "https://example.com/hook")

	conf, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 12345, conf.Telegram.ApiID)
	assert.Equal(t, "abcdef0123456789", conf.Telegram.ApiHash)
	assert.True(t, conf.WebhookEnabled())
	assert.False(t, conf.FileSession())
	assert.Equal(t, "", conf.SessionPath())
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	conf, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", conf.Env)
	assert.Equal(t, 8, conf.Webhook.TimeoutSeconds)
	assert.Equal(t, "5000", conf.Listen.Port)
	assert.False(t, conf.WebhookEnabled())
	assert.False(t, conf.Photos.Enabled)
	assert.Equal(t, "photos", conf.Photos.Dir)
}

func TestLoad_MissingApiID(t *testing.T) {
	t.Setenv("API_HASH", "abcdef0123456789")
	t.Setenv("SESSION_STRING", "1BVtsOHkBu...")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingApiHash(t *testing.T) {
	t.Setenv("API_ID", "12345")
	t.Setenv("SESSION_STRING", "1BVtsOHkBu...")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingSession(t *testing.T) {
	t.Setenv("API_ID", "12345")
	t.Setenv("API_HASH", "abcdef0123456789")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_BothSessionsRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_NAME", "bridge")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_FileSession(t *testing.T) {
	t.Setenv("API_ID", "12345")
	t.Setenv("API_HASH", "abcdef0123456789")
	t.Setenv("SESSION_NAME", "bridge")

	conf, err := Load("")
	require.NoError(t, err)

	assert.True(t, conf.FileSession())
	assert.Equal(t, "bridge.session", conf.SessionPath())
}

func TestLoad_MissingConfigFileIsError(t *testing.T) {
	setRequiredEnv(t)

	_, err := Load("/nonexistent/bridge.yml")
	assert.Error(t, err)
}

func TestLoad_InvalidWebhookURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WEBHOOK_URL", "not a url")

	_, err := Load("")
	assert.Error(t, err)
}
