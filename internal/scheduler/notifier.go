package scheduler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/example/studydash/pkg/models"
)

// LogNotifier writes reminders to the log when no messenger is configured
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a notifier backed by a logger
func NewLogNotifier(lgr zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: lgr}
}

// NotifyDeadlines logs one line per due deadline
func (n *LogNotifier) NotifyDeadlines(_ context.Context, studentName string, due []models.Deadline) error {
	for _, d := range due {
		n.logger.Info().
			Str("student", studentName).
			Str("date", d.Date).
			Str("type", d.Type).
			Str("module", d.Module).
			Msg("Upcoming deadline")
	}
	return nil
}
