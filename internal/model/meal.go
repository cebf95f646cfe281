package model

import (
	"time"
)

type Diet string

const (
	DietIn  Diet = "in"
	DietOut Diet = "out"
)

func (d Diet) Valid() bool {
	return d == DietIn || d == DietOut
}

type Meal struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;not null;index" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Date        Date      `gorm:"type:date;not null" json:"date"`
	Time        TimeOfDay `gorm:"type:time;not null" json:"time"`
	Diet        Diet      `gorm:"size:3;not null" json:"diet"`
	CreatedAt   time.Time `json:"created_at"`
	// Nil until the first update.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// MealFields are the five caller-owned columns, always written together.
type MealFields struct {
	Name        string
	Description string
	Date        Date
	Time        TimeOfDay
	Diet        Diet
}

type MealMetrics struct {
	TotalMeals         int `json:"totalMeals"`
	TotalMealsInDiet   int `json:"totalMealsInDiet"`
	TotalMealsOutDiet  int `json:"totalMealsOutDiet"`
	BestOnDietSequence int `json:"bestOnDietSequence"`
}
