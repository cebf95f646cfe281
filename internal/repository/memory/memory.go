// Package memory holds process-local stores with the same contracts as the
// GORM repositories. Data is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"dailydiet/internal/model"
	"dailydiet/internal/repository"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
	now     func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]model.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return fmt.Errorf("create user failed: %w", repository.ErrDuplicateKey)
	}
	if _, ok := r.byID[user.ID]; ok {
		return fmt.Errorf("create user failed: %w", repository.ErrDuplicateKey)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now()
	}
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	user := r.byID[id]
	return &user, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// Delete removes a user and, like the foreign key, every meal they own.
func (r *UserRepository) Delete(_ context.Context, id string, meals *MealRepository) {
	r.mu.Lock()
	if user, ok := r.byID[id]; ok {
		delete(r.byEmail, user.Email)
		delete(r.byID, id)
	}
	r.mu.Unlock()

	if meals != nil {
		meals.deleteByUserID(id)
	}
}

type storedMeal struct {
	meal model.Meal
	seq  uint64
}

type MealRepository struct {
	mu    sync.RWMutex
	meals map[string]storedMeal
	seq   uint64
	now   func() time.Time
}

func NewMealRepository() *MealRepository {
	return &MealRepository{
		meals: make(map[string]storedMeal),
		now:   time.Now,
	}
}

func (r *MealRepository) Create(_ context.Context, meal *model.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.meals[meal.ID]; ok {
		return fmt.Errorf("create meal failed: %w", repository.ErrDuplicateKey)
	}
	if meal.CreatedAt.IsZero() {
		meal.CreatedAt = r.now()
	}
	r.seq++
	r.meals[meal.ID] = storedMeal{meal: *meal, seq: r.seq}
	return nil
}

// ListByUserID returns meals in insertion order.
func (r *MealRepository) ListByUserID(_ context.Context, userID string) ([]model.Meal, error) {
	owned := r.owned(userID)
	sort.Slice(owned, func(i, j int) bool { return owned[i].seq < owned[j].seq })
	return unwrap(owned), nil
}

func (r *MealRepository) ListByUserIDForMetrics(_ context.Context, userID string) ([]model.Meal, error) {
	owned := r.owned(userID)
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].meal.Date != owned[j].meal.Date {
			return owned[i].meal.Date > owned[j].meal.Date
		}
		return owned[i].seq < owned[j].seq
	})
	return unwrap(owned), nil
}

func (r *MealRepository) GetByIDAndUserID(_ context.Context, mealID, userID string) (*model.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.meals[mealID]
	if !ok || stored.meal.UserID != userID {
		return nil, nil
	}
	meal := stored.meal
	return &meal, nil
}

func (r *MealRepository) UpdateByIDAndUserID(_ context.Context, mealID, userID string, fields model.MealFields, updatedAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.meals[mealID]
	if !ok || stored.meal.UserID != userID {
		return 0, nil
	}
	stored.meal.Name = fields.Name
	stored.meal.Description = fields.Description
	stored.meal.Date = fields.Date
	stored.meal.Time = fields.Time
	stored.meal.Diet = fields.Diet
	stored.meal.UpdatedAt = &updatedAt
	r.meals[mealID] = stored
	return 1, nil
}

func (r *MealRepository) DeleteByIDAndUserID(_ context.Context, mealID, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.meals[mealID]
	if !ok || stored.meal.UserID != userID {
		return 0, nil
	}
	delete(r.meals, mealID)
	return 1, nil
}

func (r *MealRepository) deleteByUserID(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, stored := range r.meals {
		if stored.meal.UserID == userID {
			delete(r.meals, id)
		}
	}
}

func (r *MealRepository) owned(userID string) []storedMeal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]storedMeal, 0)
	for _, stored := range r.meals {
		if stored.meal.UserID == userID {
			owned = append(owned, stored)
		}
	}
	return owned
}

func unwrap(stored []storedMeal) []model.Meal {
	meals := make([]model.Meal, 0, len(stored))
	for _, s := range stored {
		meals = append(meals, s.meal)
	}
	return meals
}
