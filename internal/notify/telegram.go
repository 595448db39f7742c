package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"taskflow/internal/service"
)

// TelegramNotifier delivers the end-of-day digest to users who linked a
// Telegram chat. Send failures are logged, never fatal.
type TelegramNotifier struct {
	api *tgbotapi.BotAPI
	log zerolog.Logger
}

func NewTelegram(token string, log zerolog.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{api: api, log: log}, nil
}

// SendDailyDigests delivers one digest per snapshot, skipping users without
// a linked chat.
func (n *TelegramNotifier) SendDailyDigests(ctx context.Context, snapshots []service.UserSnapshot) {
	for _, snap := range snapshots {
		if snap.User.TelegramChatID == 0 {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		msg := tgbotapi.NewMessage(snap.User.TelegramChatID, digestMessage(snap))
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := n.api.Send(msg); err != nil {
			n.log.Error().Err(err).Str("user_id", snap.User.ID).Msg("send digest")
		}
	}
}

func digestMessage(snap service.UserSnapshot) string {
	stats := snap.Stats

	var sb strings.Builder
	sb.WriteString("📊 <b>Your day on TaskFlow</b>\n")
	sb.WriteString(fmt.Sprintf("🗓 %s\n\n", stats.Date.Format("02.01.2006")))
	sb.WriteString(fmt.Sprintf("Hi %s!\n", html.EscapeString(snap.User.DisplayName())))
	sb.WriteString(fmt.Sprintf("🆕 Created: <b>%d</b>\n", stats.TasksCreated))
	sb.WriteString(fmt.Sprintf("✅ Completed: <b>%d</b> (%d%%)\n", stats.TasksCompleted, stats.CompletionRate))

	switch {
	case stats.StreakDays > 1:
		sb.WriteString(fmt.Sprintf("🔥 Streak: <b>%d days</b> — keep it going!", stats.StreakDays))
	case stats.StreakDays == 1:
		sb.WriteString("🔥 A new streak starts today!")
	default:
		sb.WriteString("💤 No completions today. Tomorrow is a fresh start.")
	}

	return strings.TrimSpace(sb.String())
}
