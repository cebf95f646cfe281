package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"dailydiet/internal/model"
	"dailydiet/internal/telemetry"
)

type MetricsService struct {
	mealRepo MealStore
	cache    MetricsCache
	logger   logrus.FieldLogger
}

// NewMetricsService wires the Metrics Engine. cache may be nil.
func NewMetricsService(mealRepo MealStore, cache MetricsCache, logger logrus.FieldLogger) *MetricsService {
	return &MetricsService{
		mealRepo: mealRepo,
		cache:    cache,
		logger:   logger,
	}
}

// Summary returns the owner's metrics, served from the cache when a summary
// for the current version exists.
func (s *MetricsService) Summary(ctx context.Context, userID string) (model.MealMetrics, error) {
	if userID == "" {
		return model.MealMetrics{}, ErrInvalidInput
	}
	if s.cache == nil {
		return s.compute(ctx, userID)
	}

	log := s.logger.WithField("user_id", userID)
	version, err := s.cache.Version(ctx, userID)
	if err != nil {
		telemetry.RecordCacheLookup("error")
		log.WithError(err).Warn("read metrics cache version failed")
		return s.compute(ctx, userID)
	}

	cached, ok, err := s.cache.Get(ctx, userID, version)
	switch {
	case err != nil:
		telemetry.RecordCacheLookup("error")
		log.WithError(err).Warn("read metrics cache failed")
	case ok:
		telemetry.RecordCacheLookup("hit")
		return *cached, nil
	default:
		telemetry.RecordCacheLookup("miss")
	}

	return s.computeAndStore(ctx, userID, version)
}

// Refresh recomputes the owner's metrics and stores them under the current
// cache version. Without a cache it only computes.
func (s *MetricsService) Refresh(ctx context.Context, userID string) (model.MealMetrics, error) {
	if userID == "" {
		return model.MealMetrics{}, ErrInvalidInput
	}
	if s.cache == nil {
		return s.compute(ctx, userID)
	}
	version, err := s.cache.Version(ctx, userID)
	if err != nil {
		return model.MealMetrics{}, err
	}
	return s.computeAndStore(ctx, userID, version)
}

func (s *MetricsService) computeAndStore(ctx context.Context, userID string, version int64) (model.MealMetrics, error) {
	metrics, err := s.compute(ctx, userID)
	if err != nil {
		return model.MealMetrics{}, err
	}
	if err := s.cache.Set(ctx, userID, version, metrics); err != nil {
		s.logger.WithField("user_id", userID).WithError(err).Warn("store metrics cache failed")
	}
	return metrics, nil
}

func (s *MetricsService) compute(ctx context.Context, userID string) (model.MealMetrics, error) {
	meals, err := s.mealRepo.ListByUserIDForMetrics(ctx, userID)
	if err != nil {
		return model.MealMetrics{}, err
	}
	return ComputeMetrics(meals), nil
}

// ComputeMetrics folds meals in the given order. The streak counts consecutive
// in-diet entries of that order, so callers pass date-descending history.
func ComputeMetrics(meals []model.Meal) model.MealMetrics {
	metrics := model.MealMetrics{TotalMeals: len(meals)}
	current := 0
	for _, meal := range meals {
		if meal.Diet == model.DietIn {
			metrics.TotalMealsInDiet++
			current++
		} else {
			current = 0
		}
		if meal.Diet == model.DietOut {
			metrics.TotalMealsOutDiet++
		}
		if current > metrics.BestOnDietSequence {
			metrics.BestOnDietSequence = current
		}
	}
	return metrics
}
