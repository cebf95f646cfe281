package app

import (
	"context"
	"time"

	"dailydiet/internal/model"
)

// UserStore is the credential store. Lookups return (nil, nil) when no row matches.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// MealStore is the meal store. Every single-row operation filters by both
// meal id and owner id.
type MealStore interface {
	Create(ctx context.Context, meal *model.Meal) error
	ListByUserID(ctx context.Context, userID string) ([]model.Meal, error)
	// ListByUserIDForMetrics orders by date descending, ties in insertion order.
	ListByUserIDForMetrics(ctx context.Context, userID string) ([]model.Meal, error)
	GetByIDAndUserID(ctx context.Context, mealID, userID string) (*model.Meal, error)
	UpdateByIDAndUserID(ctx context.Context, mealID, userID string, fields model.MealFields, updatedAt time.Time) (int64, error)
	DeleteByIDAndUserID(ctx context.Context, mealID, userID string) (int64, error)
}

type MetricsCache interface {
	Version(ctx context.Context, userID string) (int64, error)
	Get(ctx context.Context, userID string, version int64) (*model.MealMetrics, bool, error)
	Set(ctx context.Context, userID string, version int64, metrics model.MealMetrics) error
	Invalidate(ctx context.Context, userID string) error
}

type MealEventPublisher interface {
	Publish(ctx context.Context, event model.MealEvent) error
}
