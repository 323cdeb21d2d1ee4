package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ADMIN_TOKEN_TTL", "")
	t.Setenv("MAX_UPLOAD_MB", "")
	LoadConfig()

	assert.Equal(t, 12*time.Hour, AdminTokenTTL)
	assert.Equal(t, int64(10<<20), MaxUploadBytes)
	assert.Equal(t, "luxserv.events", AmqpExchange)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("OWNER_TOKEN_TTL", "2h")
	t.Setenv("NOTIFY_EMAILS", "ops@luxserv.test, , desk@luxserv.test")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001")
	t.Setenv("TELEGRAM_BOT_TOKEN", "bot-token")
	t.Setenv("PUBLIC_BASE_URL", "https://api.luxserv.test/")
	LoadConfig()

	assert.Equal(t, 2*time.Hour, OwnerTokenTTL)
	assert.Equal(t, []string{"ops@luxserv.test", "desk@luxserv.test"}, NotifyEmails)
	assert.Equal(t, int64(-1001), TelegramChatID)
	assert.True(t, TelegramEnabled())
	assert.Equal(t, "https://api.luxserv.test", PublicBaseURL)
}

func TestGetDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_TTL", "soon")
	assert.Equal(t, time.Minute, getDuration("SOME_TTL", time.Minute))
}
