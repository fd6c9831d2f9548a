package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/example/studydash/internal/dashboard"
	"github.com/example/studydash/internal/deadlines"
	"github.com/example/studydash/pkg/models"
)

// jobTimeout bounds a single scheduled run
const jobTimeout = 30 * time.Second

// Notifier delivers deadline reminders
type Notifier interface {
	NotifyDeadlines(ctx context.Context, studentName string, due []models.Deadline) error
}

// Options configures the scheduled jobs. A zero interval disables a job.
type Options struct {
	AutosaveInterval   time.Duration
	ReminderInterval   time.Duration
	ReminderWindowDays int
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	dash      *dashboard.Dashboard
	notifier  Notifier
	opts      Options
	logger    zerolog.Logger
	now       func() time.Time
}

// New creates a new scheduler instance
func New(dash *dashboard.Dashboard, notifier Notifier, opts Options, lgr zerolog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		dash:      dash,
		notifier:  notifier,
		opts:      opts,
		logger:    lgr.With().Str("component", "scheduler").Logger(),
		now:       time.Now,
	}
}

// SetClock replaces the time source used to find due deadlines
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// Start registers the jobs and runs them in the background
func (s *Scheduler) Start() error {
	if s.opts.AutosaveInterval > 0 {
		// The dashboard was saved at startup, so wait for the first tick
		if _, err := s.scheduler.Every(s.opts.AutosaveInterval).WaitForSchedule().Do(s.runAutosave); err != nil {
			return fmt.Errorf("failed to schedule autosave: %w", err)
		}
	}
	if s.opts.ReminderInterval > 0 && s.notifier != nil {
		if _, err := s.scheduler.Every(s.opts.ReminderInterval).Do(s.runReminders); err != nil {
			return fmt.Errorf("failed to schedule reminders: %w", err)
		}
	}

	s.scheduler.StartAsync()
	s.logger.Info().
		Dur("autosave_interval", s.opts.AutosaveInterval).
		Dur("reminder_interval", s.opts.ReminderInterval).
		Msg("Scheduler started")
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runAutosave() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.Autosave(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Autosave failed")
		return
	}
	s.logger.Debug().Msg("Dashboard saved")
}

func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	count, err := s.CheckDeadlines(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Deadline reminder failed")
		return
	}
	s.logger.Debug().Int("due", count).Msg("Deadline check finished")
}

// Autosave persists a fresh dashboard snapshot
func (s *Scheduler) Autosave(ctx context.Context) error {
	s.dash.Lock()
	defer s.dash.Unlock()

	return s.dash.SaveAll(ctx)
}

// CheckDeadlines reloads the deadlines and notifies about the ones due
// within the reminder window. It returns the number of due deadlines.
func (s *Scheduler) CheckDeadlines(ctx context.Context) (int, error) {
	s.dash.Lock()
	if err := s.dash.ReloadDeadlines(ctx); err != nil {
		s.dash.Unlock()
		return 0, err
	}
	due := deadlines.DueWithin(s.dash.Deadlines(), s.now(), s.opts.ReminderWindowDays)
	name := s.dash.Student().Name
	s.dash.Unlock()

	if len(due) == 0 {
		return 0, nil
	}
	if err := s.notifier.NotifyDeadlines(ctx, name, due); err != nil {
		return len(due), fmt.Errorf("failed to send reminder: %w", err)
	}
	return len(due), nil
}
