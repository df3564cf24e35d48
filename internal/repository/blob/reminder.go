// Package blob implements the repositories over a storage.Adapter, holding
// each collection in memory and serializing it as one JSON blob on every
// mutation. Last full-sequence write wins; there are no partial updates.
package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meditrack/meditrack/internal/model"
	"github.com/meditrack/meditrack/internal/storage"
	"github.com/meditrack/meditrack/pkg/logger"
)

type ReminderStore struct {
	adapter storage.Adapter
	logger  *logger.Logger

	mu        sync.Mutex
	reminders []model.Reminder
}

func NewReminderStore(adapter storage.Adapter, logger *logger.Logger) *ReminderStore {
	return &ReminderStore{
		adapter: adapter,
		logger:  logger,
	}
}

func (s *ReminderStore) Load(ctx context.Context) error {
	data, err := s.adapter.Get(ctx, storage.KeyReminders)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Warn("failed to read reminders blob, starting empty", "error", err.Error())
		return nil
	}

	var reminders []model.Reminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		// Corrupt blob must not take the app down.
		s.logger.Warn("corrupt reminders blob, starting empty", "error", err.Error())
		return nil
	}

	s.mu.Lock()
	s.reminders = reminders
	s.mu.Unlock()
	return nil
}

func (s *ReminderStore) Add(ctx context.Context, r *model.Reminder) (uuid.UUID, error) {
	if r.MedicationName == "" || r.Dosage == "" {
		return uuid.Nil, fmt.Errorf("medication name and dosage are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	r.IsActive = true
	s.reminders = append(s.reminders, *r)

	if err := s.persist(ctx); err != nil {
		return uuid.Nil, err
	}
	return r.ID, nil
}

func (s *ReminderStore) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.reminders[:0]
	for _, r := range s.reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(s.reminders) {
		// Unknown id is a no-op, not an error.
		return nil
	}
	s.reminders = kept

	return s.persist(ctx)
}

func (s *ReminderStore) Get(_ context.Context, id uuid.UUID) (*model.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reminders {
		if r.ID == id {
			out := r
			return &out, true
		}
	}
	return nil, false
}

func (s *ReminderStore) List(_ context.Context) ([]*model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Reminder, 0, len(s.reminders))
	for i := range s.reminders {
		if s.reminders[i].IsActive {
			r := s.reminders[i]
			out = append(out, &r)
		}
	}
	return out, nil
}

// persist writes the full sequence. Callers hold s.mu.
func (s *ReminderStore) persist(ctx context.Context) error {
	data, err := json.Marshal(s.reminders)
	if err != nil {
		return fmt.Errorf("failed to serialize reminders: %w", err)
	}
	if err := s.adapter.Set(ctx, storage.KeyReminders, data); err != nil {
		return fmt.Errorf("failed to persist reminders: %w", err)
	}
	return nil
}
