package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/meditrack/meditrack/internal/model"
	"github.com/meditrack/meditrack/internal/storage"
	"github.com/meditrack/meditrack/pkg/logger"
)

// BMIHistory is the append-only measurement log. Records are never pruned.
type BMIHistory struct {
	adapter storage.Adapter
	logger  *logger.Logger

	mu      sync.Mutex
	records []model.BMIRecord
}

func NewBMIHistory(adapter storage.Adapter, logger *logger.Logger) *BMIHistory {
	return &BMIHistory{
		adapter: adapter,
		logger:  logger,
	}
}

func (h *BMIHistory) Load(ctx context.Context) error {
	data, err := h.adapter.Get(ctx, storage.KeyBMIHistory)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		h.logger.Warn("failed to read BMI history blob, starting empty", "error", err.Error())
		return nil
	}

	var records []model.BMIRecord
	if err := json.Unmarshal(data, &records); err != nil {
		h.logger.Warn("corrupt BMI history blob, starting empty", "error", err.Error())
		return nil
	}

	h.mu.Lock()
	h.records = records
	h.mu.Unlock()
	return nil
}

func (h *BMIHistory) Append(ctx context.Context, rec *model.BMIRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, *rec)

	data, err := json.Marshal(h.records)
	if err != nil {
		return fmt.Errorf("failed to serialize BMI history: %w", err)
	}
	if err := h.adapter.Set(ctx, storage.KeyBMIHistory, data); err != nil {
		return fmt.Errorf("failed to persist BMI history: %w", err)
	}
	return nil
}

func (h *BMIHistory) List(_ context.Context) ([]*model.BMIRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*model.BMIRecord, len(h.records))
	for i := range h.records {
		rec := h.records[i]
		out[i] = &rec
	}
	return out, nil
}
