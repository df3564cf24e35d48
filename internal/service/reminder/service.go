package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meditrack/meditrack/internal/model"
	"github.com/meditrack/meditrack/internal/notifier"
	"github.com/meditrack/meditrack/internal/repository"
	apperrors "github.com/meditrack/meditrack/pkg/errors"
	"github.com/meditrack/meditrack/pkg/logger"
)

// DefaultLeadTime is how far ahead the suggested reminder time lies.
const DefaultLeadTime = time.Hour

type Service struct {
	repo      repository.ReminderRepository
	presenter notifier.Presenter
	logger    *logger.Logger
}

func NewService(repo repository.ReminderRepository, presenter notifier.Presenter, logger *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		presenter: presenter,
		logger:    logger,
	}
}

func (s *Service) Create(ctx context.Context, r *model.Reminder) (uuid.UUID, error) {
	if err := s.validate(r); err != nil {
		return uuid.Nil, apperrors.BadRequest(err.Error(), err)
	}

	id, err := s.repo.Add(ctx, r)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	s.presenter.Notify("Reminder Added",
		fmt.Sprintf("%s reminder has been added successfully!", r.MedicationName))
	return id, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	s.presenter.Notify("Reminder Deleted", "Reminder has been removed successfully!")
	return nil
}

// Replace implements edit as delete-then-recreate: the edited reminder gets
// a fresh id and creation timestamp, and the original timestamp is lost.
func (s *Service) Replace(ctx context.Context, id uuid.UUID, r *model.Reminder) (uuid.UUID, error) {
	if err := s.validate(r); err != nil {
		return uuid.Nil, apperrors.BadRequest(err.Error(), err)
	}

	if err := s.repo.Remove(ctx, id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to remove reminder for edit: %w", err)
	}

	newID, err := s.repo.Add(ctx, r)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to recreate reminder: %w", err)
	}
	return newID, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Reminder, error) {
	return s.repo.List(ctx)
}

// Views returns the display projection of the active reminders.
func (s *Service) Views(ctx context.Context, now time.Time) ([]*model.ReminderView, error) {
	reminders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	views := make([]*model.ReminderView, len(reminders))
	for i, r := range reminders {
		views[i] = model.NewReminderView(r, now)
	}
	return views, nil
}

// DefaultTime suggests a reminder time of now plus one hour, truncated to
// the minute.
func (s *Service) DefaultTime(now time.Time) model.TimeOfDay {
	return model.TimeOfDayFrom(now.Add(DefaultLeadTime))
}

func (s *Service) validate(r *model.Reminder) error {
	if r.MedicationName == "" {
		return fmt.Errorf("medication name is required")
	}
	if r.Dosage == "" {
		return fmt.Errorf("dosage is required")
	}
	if !r.Frequency.IsValid() {
		return fmt.Errorf("unknown frequency %q", r.Frequency)
	}
	return nil
}
