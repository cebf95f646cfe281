package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailydiet/internal/logging"
	"dailydiet/internal/model"
	"dailydiet/internal/repository/memory"
)

func dietSeq(diets ...model.Diet) []model.Meal {
	meals := make([]model.Meal, 0, len(diets))
	for _, d := range diets {
		meals = append(meals, model.Meal{Diet: d})
	}
	return meals
}

func TestComputeMetrics(t *testing.T) {
	in, out := model.DietIn, model.DietOut
	tests := []struct {
		name  string
		meals []model.Meal
		want  model.MealMetrics
	}{
		{name: "empty", meals: nil, want: model.MealMetrics{}},
		{name: "all out", meals: dietSeq(out, out), want: model.MealMetrics{TotalMeals: 2, TotalMealsOutDiet: 2}},
		{name: "two in then out", meals: dietSeq(in, in, out), want: model.MealMetrics{TotalMeals: 3, TotalMealsInDiet: 2, TotalMealsOutDiet: 1, BestOnDietSequence: 2}},
		{name: "streak resets", meals: dietSeq(in, out, in, in, in, out, in), want: model.MealMetrics{TotalMeals: 7, TotalMealsInDiet: 5, TotalMealsOutDiet: 2, BestOnDietSequence: 3}},
		{name: "trailing streak", meals: dietSeq(out, in, in, in, in), want: model.MealMetrics{TotalMeals: 5, TotalMealsInDiet: 4, TotalMealsOutDiet: 1, BestOnDietSequence: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeMetrics(tt.meals))
		})
	}
}

func seedMeals(t *testing.T, svc *MealService, userID string, entries ...MealInput) {
	t.Helper()
	for _, in := range entries {
		_, err := svc.Create(context.Background(), CreateMealInput{UserID: userID, MealInput: in})
		require.NoError(t, err)
	}
}

func meal(date, diet string) MealInput {
	return MealInput{Name: "Meal", Description: "Desc", Date: date, Time: "12:00:00", Diet: diet}
}

func TestMetricsService_SameDayScenario(t *testing.T) {
	meals := memory.NewMealRepository()
	mealSvc := NewMealService(meals, nil, nil, logging.Discard())
	metricsSvc := NewMetricsService(meals, nil, logging.Discard())

	seedMeals(t, mealSvc, "owner",
		meal("2024-02-14", "in"),
		meal("2024-02-14", "in"),
		meal("2024-02-14", "out"),
	)
	seedMeals(t, mealSvc, "someone-else", meal("2024-02-14", "in"))

	got, err := metricsSvc.Summary(context.Background(), "owner")
	require.NoError(t, err)
	assert.Equal(t, model.MealMetrics{TotalMeals: 3, TotalMealsInDiet: 2, TotalMealsOutDiet: 1, BestOnDietSequence: 2}, got)
}

func TestMetricsService_StreakFollowsDateDescending(t *testing.T) {
	meals := memory.NewMealRepository()
	mealSvc := NewMealService(meals, nil, nil, logging.Discard())
	metricsSvc := NewMetricsService(meals, nil, logging.Discard())

	// Inserted out of calendar order; date-descending order is in, in, out, in.
	seedMeals(t, mealSvc, "owner",
		meal("2024-02-10", "in"),
		meal("2024-02-13", "in"),
		meal("2024-02-11", "out"),
		meal("2024-02-12", "in"),
	)

	got, err := metricsSvc.Summary(context.Background(), "owner")
	require.NoError(t, err)
	assert.Equal(t, 2, got.BestOnDietSequence)
	assert.Equal(t, 4, got.TotalMeals)
}

func TestMetricsService_UsesCacheUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	meals := memory.NewMealRepository()
	cache := newFakeCache()
	mealSvc := NewMealService(meals, cache, nil, logging.Discard())
	metricsSvc := NewMetricsService(meals, cache, logging.Discard())

	seedMeals(t, mealSvc, "owner", meal("2024-02-14", "in"))

	first, err := metricsSvc.Summary(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalMeals)
	assert.Equal(t, 1, cache.sets)

	second, err := metricsSvc.Summary(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "second read must be a cache hit")

	seedMeals(t, mealSvc, "owner", meal("2024-02-15", "out"))

	third, err := metricsSvc.Summary(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, 2, third.TotalMeals)
	assert.Equal(t, 1, third.TotalMealsOutDiet)
}

func TestMetricsService_CacheErrorsFallBackToStorage(t *testing.T) {
	ctx := context.Background()
	meals := memory.NewMealRepository()
	mealSvc := NewMealService(meals, nil, nil, logging.Discard())
	seedMeals(t, mealSvc, "owner", meal("2024-02-14", "in"), meal("2024-02-14", "in"))

	brokenVersion := newFakeCache()
	brokenVersion.failVersion = true
	got, err := NewMetricsService(meals, brokenVersion, logging.Discard()).Summary(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, 2, got.BestOnDietSequence)

	brokenGet := newFakeCache()
	brokenGet.failGet = true
	got, err = NewMetricsService(meals, brokenGet, logging.Discard()).Summary(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalMealsInDiet)
}

func TestMetricsService_Refresh(t *testing.T) {
	ctx := context.Background()
	meals := memory.NewMealRepository()
	cache := newFakeCache()
	mealSvc := NewMealService(meals, cache, nil, logging.Discard())
	metricsSvc := NewMetricsService(meals, cache, logging.Discard())

	seedMeals(t, mealSvc, "owner", meal("2024-02-14", "out"))

	refreshed, err := metricsSvc.Refresh(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.TotalMealsOutDiet)

	version, err := cache.Version(ctx, "owner")
	require.NoError(t, err)
	cached, ok, err := cache.Get(ctx, "owner", version)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, refreshed, *cached)
}

func TestMetricsService_StorageError(t *testing.T) {
	storeErr := errors.New("db down")
	svc := NewMetricsService(failingMealStore{err: storeErr}, nil, logging.Discard())

	_, err := svc.Summary(context.Background(), "owner")
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.Summary(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
