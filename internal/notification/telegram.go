package notification

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stpnv0/EventRadar/internal/domain"
	"github.com/wb-go/wbf/logger"
)

// DefaultThrottle bounds how often outage alerts reach the chat.
const DefaultThrottle = 10 * time.Minute

// TelegramNotifier posts provider outage alerts to an operator chat.
type TelegramNotifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	throttle time.Duration
	logger   logger.Logger
	now      func() time.Time

	mu       sync.Mutex
	lastSent map[string]time.Time
}

// NewTelegramNotifier returns a disabled notifier when token or chatID is
// empty; its NotifyOutage only logs.
func NewTelegramNotifier(token string, chatID int64, throttle time.Duration, logger logger.Logger) (*TelegramNotifier, error) {
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	n := &TelegramNotifier{
		chatID:   chatID,
		throttle: throttle,
		logger:   logger,
		now:      time.Now,
		lastSent: make(map[string]time.Time),
	}

	if token == "" || chatID == 0 {
		logger.Warn("telegram bot token or chat id is empty, outage alerts disabled")
		return n, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	n.bot = bot

	return n, nil
}

func (n *TelegramNotifier) NotifyOutage(ctx context.Context, o domain.Outage) {
	if !n.allow(o.Provider, n.now()) {
		n.logger.Debug("outage alert throttled", logger.String("provider", o.Provider))
		return
	}
	n.send(ctx, formatOutage(o))
}

// allow reports whether an alert for provider may go out at t and, if so,
// records it.
func (n *TelegramNotifier) allow(provider string, t time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if last, ok := n.lastSent[provider]; ok && t.Sub(last) < n.throttle {
		return false
	}
	n.lastSent[provider] = t
	return true
}

func formatOutage(o domain.Outage) string {
	var b strings.Builder
	b.WriteString("*Event search degraded*\n\n")
	fmt.Fprintf(&b, "Provider: %s\n", escape(o.Provider))
	fmt.Fprintf(&b, "Error: %s\n", escape(o.PrimaryErr))
	if o.Fallback != "" {
		fmt.Fprintf(&b, "Fallback %s: %s\n", escape(o.Fallback), escape(o.FallbackErr))
	}
	if o.Query != "" {
		fmt.Fprintf(&b, "Query: %s\n", escape(o.Query))
	}
	fmt.Fprintf(&b, "At (UTC): %s", o.At.UTC().Format("02.01.2006 15:04:05"))
	return b.String()
}

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)", logger.String("text", text))
		return
	}

	if err := ctx.Err(); err != nil {
		n.logger.Debug("notification skipped (context cancelled)",
			logger.Int64("chat_id", n.chatID),
		)
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram notification",
			logger.Int64("chat_id", n.chatID),
			logger.String("error", err.Error()),
		)
	}
}
