package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stpnv0/EventRadar/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

func TestNewTelegramNotifier_Disabled(t *testing.T) {
	n, err := NewTelegramNotifier("", 42, 0, newTestLogger(t))
	require.NoError(t, err)
	assert.Nil(t, n.bot)
	assert.Equal(t, DefaultThrottle, n.throttle)

	n, err = NewTelegramNotifier("token", 0, time.Minute, newTestLogger(t))
	require.NoError(t, err)
	assert.Nil(t, n.bot)

	assert.NotPanics(t, func() {
		n.NotifyOutage(context.Background(), domain.Outage{Provider: "rapid"})
	})
}

func TestTelegramNotifier_Throttle(t *testing.T) {
	n, err := NewTelegramNotifier("", 0, time.Minute, newTestLogger(t))
	require.NoError(t, err)

	t0 := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	assert.True(t, n.allow("rapid", t0))
	assert.False(t, n.allow("rapid", t0.Add(30*time.Second)))
	assert.True(t, n.allow("other", t0.Add(30*time.Second)), "throttle is per provider")
	assert.True(t, n.allow("rapid", t0.Add(time.Minute)))
}

func TestFormatOutage(t *testing.T) {
	text := formatOutage(domain.Outage{
		Provider:    "rapid_api",
		Fallback:    "backup",
		Query:       "party events in Austin",
		PrimaryErr:  "status 500",
		FallbackErr: "status 502",
		At:          time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	})

	assert.Contains(t, text, `Provider: rapid\_api`)
	assert.Contains(t, text, "Fallback backup: status 502")
	assert.Contains(t, text, "Query: party events in Austin")
	assert.Contains(t, text, "17.10.2026 12:00:00")
}
