// Package scheduler polls wall-clock time and raises alerts for due
// reminders. Matching is coarse: time-of-day truncated to the minute,
// checked once per poll tick, so delivery is near the reminder time but
// never exact-second.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/meditrack/meditrack/internal/model"
	"github.com/meditrack/meditrack/internal/notifier"
	"github.com/meditrack/meditrack/internal/repository"
	"github.com/meditrack/meditrack/pkg/clock"
	"github.com/meditrack/meditrack/pkg/logger"
	"github.com/meditrack/meditrack/pkg/metrics"
)

const (
	DefaultPollInterval = 30 * time.Second
	DefaultSnoozeDelay  = 5 * time.Minute

	dateLayout = "2006-01-02"
)

type Config struct {
	PollInterval time.Duration
	SnoozeDelay  time.Duration
	// DailyFireGuard makes the poll path idempotent per calendar day, so a
	// reminder cannot fire on consecutive ticks inside the same minute.
	// Snooze re-fires bypass the guard.
	DailyFireGuard bool
}

type Scheduler struct {
	repo      repository.ReminderRepository
	presenter notifier.Presenter
	alarm     notifier.Alarm
	clk       clock.Clock
	metrics   *metrics.Metrics
	logger    *logger.Logger

	pollInterval time.Duration
	snoozeDelay  time.Duration
	dailyGuard   bool

	mu      sync.Mutex
	firedOn map[uuid.UUID]string
}

func New(
	repo repository.ReminderRepository,
	presenter notifier.Presenter,
	alarm notifier.Alarm,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *logger.Logger,
	cfg Config,
) *Scheduler {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.SnoozeDelay <= 0 {
		cfg.SnoozeDelay = DefaultSnoozeDelay
	}
	return &Scheduler{
		repo:         repo,
		presenter:    presenter,
		alarm:        alarm,
		clk:          clk,
		metrics:      m,
		logger:       logger,
		pollInterval: cfg.PollInterval,
		snoozeDelay:  cfg.SnoozeDelay,
		dailyGuard:   cfg.DailyFireGuard,
		firedOn:      make(map[uuid.UUID]string),
	}
}

// Start runs the poll loop until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.pollInterval), func() {
		s.CheckDue(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule poll: %w", err)
	}

	c.Start()
	s.logger.Info("scheduler started", "poll_interval", s.pollInterval.String())

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("scheduler stopped")
	return nil
}

// CheckDue runs one poll tick: matches every active reminder whose
// time-of-day equals the current minute and fires it.
func (s *Scheduler) CheckDue(ctx context.Context) {
	timer := prometheus.NewTimer(s.metrics.PollDuration)
	defer timer.ObserveDuration()

	now := s.clk.Now()
	current := model.TimeOfDayFrom(now)
	today := now.Format(dateLayout)

	// The guard only needs today's entries.
	s.mu.Lock()
	for id, day := range s.firedOn {
		if day != today {
			delete(s.firedOn, id)
		}
	}
	s.mu.Unlock()

	reminders, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(err, "failed to list reminders")
		return
	}
	s.metrics.ActiveReminders.Set(float64(len(reminders)))

	for _, r := range reminders {
		if r.ReminderTime != current {
			continue
		}
		if s.dailyGuard && !s.markFired(r.ID, today) {
			continue
		}
		s.fire(r)
	}
}

// MarkTaken dismisses the current alert for a reminder. The reminder itself
// stays active and recurs at the next occurrence of its time-of-day.
func (s *Scheduler) MarkTaken(_ context.Context, id uuid.UUID) {
	s.presenter.DismissPopup(id)
	s.alarm.Stop()
	s.presenter.Toast("Reminder Completed", "Great job taking your medication on time!")
	s.metrics.RemindersTaken.Inc()
	s.logger.Info("reminder taken", "reminder_id", id.String())
}

// Snooze dismisses the current alert and arms a one-shot re-fire after the
// snooze delay. The re-fire is silent if the reminder was deleted meanwhile.
func (s *Scheduler) Snooze(_ context.Context, id uuid.UUID) {
	s.presenter.DismissPopup(id)
	s.alarm.Stop()

	s.clk.AfterFunc(s.snoozeDelay, func() {
		r, ok := s.repo.Get(context.Background(), id)
		if !ok {
			return
		}
		s.fire(r)
	})

	s.presenter.Toast("Reminder Snoozed", fmt.Sprintf("Reminder will appear again in %s.", s.snoozeDelay))
	s.metrics.RemindersSnoozed.Inc()
	s.logger.Info("reminder snoozed", "reminder_id", id.String(), "delay", s.snoozeDelay.String())
}

func (s *Scheduler) fire(r *model.Reminder) {
	if err := s.alarm.Play(); err != nil {
		s.logger.Debug("alarm play failed", "error", err.Error())
	}
	s.presenter.Notify("Medication Reminder",
		fmt.Sprintf("Time to take %s - %s", r.MedicationName, r.Dosage))
	s.presenter.ShowPopup(r)

	s.metrics.RemindersFired.Inc()
	s.logger.Info("reminder fired", "reminder_id", r.ID.String(), "medication", r.MedicationName)
}

// markFired records a poll-path fire for today and reports whether this is
// the first one. Entries from earlier days are pruned as they are touched.
func (s *Scheduler) markFired(id uuid.UUID, today string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if day, ok := s.firedOn[id]; ok && day == today {
		return false
	}
	s.firedOn[id] = today
	return true
}
