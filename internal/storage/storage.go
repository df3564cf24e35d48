package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Adapter stores named string blobs. The reminder and BMI collections are
// each persisted as a single blob under a fixed key; every write replaces
// the whole blob, last write wins.
type Adapter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Well-known blob keys.
const (
	KeyReminders  = "reminders"
	KeyBMIHistory = "bmi_history"
)
