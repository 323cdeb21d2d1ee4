package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const telegramMessagePreview = 200

// BotSender is the part of *tgbotapi.BotAPI used for alerts.
type BotSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSink posts a formatted alert to a staff chat for each new request.
type TelegramSink struct {
	bot    BotSender
	chatID int64
}

func NewTelegramBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return bot, nil
}

func NewTelegramSink(bot BotSender, chatID int64) *TelegramSink {
	return &TelegramSink{bot: bot, chatID: chatID}
}

func (t *TelegramSink) Name() string { return "telegram" }

// Notify sends a MarkdownV2 alert and retries once as plain text when
// Telegram rejects the markup.
func (t *TelegramSink) Notify(ctx context.Context, ev Event) error {
	if ev.Type != EventRequestCreated || ev.Request == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, TelegramAlert(ev))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	if err == nil {
		return nil
	}
	if !isMarkupError(err) {
		return fmt.Errorf("telegram send: %w", err)
	}

	plain := tgbotapi.NewMessage(t.chatID, TelegramPlainAlert(ev))
	if _, err2 := t.bot.Send(plain); err2 != nil {
		return fmt.Errorf("telegram send plain: %w", err2)
	}
	return nil
}

func isMarkupError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "parse") || strings.Contains(s, "markdown")
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func priorityEmoji(p string) string {
	switch p {
	case "urgent":
		return "🚨"
	case "high":
		return "⚠️"
	default:
		return "📋"
	}
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= telegramMessagePreview {
		return s
	}
	return string(r[:telegramMessagePreview]) + "..."
}

// TelegramAlert renders the MarkdownV2 alert body. Every user supplied value
// is escaped.
func TelegramAlert(ev Event) string {
	r := ev.Request
	var b strings.Builder
	b.WriteString("🏖️ *LuxServ 365 \\- New Guest Request*\n\n")
	fmt.Fprintf(&b, "%s *%s PRIORITY*\n", priorityEmoji(string(r.Priority)), escape(strings.ToUpper(string(r.Priority))))
	fmt.Fprintf(&b, "*Confirmation:* `%s`\n", escape(ev.ConfirmationNumber))
	fmt.Fprintf(&b, "*Response Time:* %s\n\n", escape(r.ResponseTime()))
	fmt.Fprintf(&b, "*Type:* %s\n", escape(r.RequestType.Label()))
	fmt.Fprintf(&b, "*Property:* %s\n", escape(r.PropertyAddress))
	fmt.Fprintf(&b, "*Guest:* %s\n", escape(r.GuestName))
	fmt.Fprintf(&b, "*Email:* %s\n", escape(r.GuestEmail))
	if n := len(r.Photos); n > 0 {
		fmt.Fprintf(&b, "*Photos:* %d attached\n", n)
	}
	fmt.Fprintf(&b, "\n*Message:*\n%s\n\n", escape(preview(r.Message)))
	fmt.Fprintf(&b, "_Submitted %s_", escape(ev.At.Format("2006-01-02 15:04 MST")))
	return b.String()
}

func TelegramPlainAlert(ev Event) string {
	r := ev.Request
	return fmt.Sprintf("🏖️ LuxServ 365 - New Guest Request\n\n%s PRIORITY\nConfirmation: %s\n\nGuest: %s\nEmail: %s\nProperty: %s\nType: %s\n\nMessage: %s",
		strings.ToUpper(string(r.Priority)),
		ev.ConfirmationNumber,
		r.GuestName,
		r.GuestEmail,
		r.PropertyAddress,
		r.RequestType.Label(),
		preview(r.Message))
}
