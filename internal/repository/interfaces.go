package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/meditrack/meditrack/internal/model"
)

// ReminderRepository owns the reminder sequence. Every mutation persists the
// whole sequence synchronously before returning.
type ReminderRepository interface {
	// Load hydrates the in-memory sequence from storage. A missing or
	// corrupt blob yields an empty sequence, never an error.
	Load(ctx context.Context) error
	// Add assigns an id and creation timestamp, appends and persists.
	Add(ctx context.Context, r *model.Reminder) (uuid.UUID, error)
	// Remove deletes the matching record; removing an unknown id is a no-op.
	Remove(ctx context.Context, id uuid.UUID) error
	// Get looks a reminder up regardless of its active flag.
	Get(ctx context.Context, id uuid.UUID) (*model.Reminder, bool)
	// List returns active reminders in insertion order.
	List(ctx context.Context) ([]*model.Reminder, error)
}

// BMIHistoryRepository owns the append-only BMI measurement log.
type BMIHistoryRepository interface {
	Load(ctx context.Context) error
	Append(ctx context.Context, rec *model.BMIRecord) error
	List(ctx context.Context) ([]*model.BMIRecord, error)
}
