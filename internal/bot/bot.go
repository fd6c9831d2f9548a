package bot

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/example/studydash/pkg/models"
)

// Bot sends deadline reminders to one Telegram chat
type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// New connects to the Telegram Bot API
func New(token string, chatID int64, lgr zerolog.Logger) (*Bot, error) {
	return NewWithEndpoint(token, tgbotapi.APIEndpoint, chatID, lgr)
}

// NewWithEndpoint connects to a Bot API server at a custom endpoint,
// formatted like tgbotapi.APIEndpoint
func NewWithEndpoint(token, endpoint string, chatID int64, lgr zerolog.Logger) (*Bot, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}

	lgr.Info().Str("account", api.Self.UserName).Msg("Telegram bot authorized")
	return &Bot{
		api:    api,
		chatID: chatID,
		logger: lgr.With().Str("component", "telegram").Logger(),
	}, nil
}

// NotifyDeadlines implements the scheduler.Notifier interface
func (b *Bot) NotifyDeadlines(_ context.Context, studentName string, due []models.Deadline) error {
	msg := tgbotapi.NewMessage(b.chatID, FormatReminder(studentName, due))
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", b.chatID).Msg("Error sending reminder")
		return err
	}

	b.logger.Info().Int64("chat_id", b.chatID).Int("deadlines", len(due)).Msg("Reminder sent")
	return nil
}

// FormatReminder builds the reminder text
func FormatReminder(studentName string, due []models.Deadline) string {
	noun := "deadlines"
	if len(due) == 1 {
		noun = "deadline"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, you have %d upcoming %s:\n", studentName, len(due), noun)
	for _, d := range due {
		fmt.Fprintf(&b, "• %s - %s: %s\n", d.Date, d.Type, d.Module)
	}
	return b.String()
}
