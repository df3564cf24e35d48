package bmi

import (
	"context"
	"fmt"
	"time"

	"github.com/meditrack/meditrack/internal/model"
	"github.com/meditrack/meditrack/internal/repository"
	apperrors "github.com/meditrack/meditrack/pkg/errors"
	"github.com/meditrack/meditrack/pkg/logger"
)

type Service struct {
	history repository.BMIHistoryRepository
	logger  *logger.Logger
}

func NewService(history repository.BMIHistoryRepository, logger *logger.Logger) *Service {
	return &Service{
		history: history,
		logger:  logger,
	}
}

// Compute calculates BMI from weight (kg), height (cm) and age (years) and
// appends the result to the history log. Age is recorded but does not alter
// the advisory text. Rejected input appends nothing.
func (s *Service) Compute(ctx context.Context, weightKg, heightCm float64, ageYears int) (*model.BMIRecord, error) {
	if weightKg <= 0 || heightCm <= 0 || ageYears <= 0 {
		return nil, apperrors.BadRequest("weight, height and age must be positive", nil)
	}

	heightM := heightCm / 100
	value := weightKg / (heightM * heightM)
	// Category comes from the exact value; only the stored value is rounded.
	category := model.BMICategoryFor(value)

	rec := &model.BMIRecord{
		Value:       model.RoundBMI(value),
		Weight:      weightKg,
		Height:      heightCm,
		Age:         ageYears,
		Category:    category,
		Description: category.Description(),
		Date:        time.Now(),
	}

	if err := s.history.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to record BMI measurement: %w", err)
	}

	s.logger.Info("BMI computed", "value", rec.Value, "category", string(category))
	return rec, nil
}

func (s *Service) History(ctx context.Context) ([]*model.BMIRecord, error) {
	return s.history.List(ctx)
}
