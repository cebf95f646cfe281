package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dailydiet/internal/model"
)

type MealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

func (r *MealRepository) Create(ctx context.Context, meal *model.Meal) error {
	if err := r.db.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("create meal failed: %w", err)
	}
	return nil
}

func (r *MealRepository) ListByUserID(ctx context.Context, userID string) ([]model.Meal, error) {
	var meals []model.Meal
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("list meals failed: %w", err)
	}
	return meals, nil
}

func (r *MealRepository) ListByUserIDForMetrics(ctx context.Context, userID string) ([]model.Meal, error) {
	var meals []model.Meal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}}).
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("list meals for metrics failed: %w", err)
	}
	return meals, nil
}

func (r *MealRepository) GetByIDAndUserID(ctx context.Context, mealID, userID string) (*model.Meal, error) {
	var meal model.Meal
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", mealID, userID).Take(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meal failed: %w", err)
	}
	return &meal, nil
}

func (r *MealRepository) UpdateByIDAndUserID(ctx context.Context, mealID, userID string, fields model.MealFields, updatedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Meal{}).
		Where("id = ? AND user_id = ?", mealID, userID).
		Updates(map[string]interface{}{
			"name":        fields.Name,
			"description": fields.Description,
			"date":        fields.Date,
			"time":        fields.Time,
			"diet":        fields.Diet,
			"updated_at":  updatedAt,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("update meal failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *MealRepository) DeleteByIDAndUserID(ctx context.Context, mealID, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", mealID, userID).Delete(&model.Meal{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete meal failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
