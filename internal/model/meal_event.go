package model

import "time"

type MealEventType string

const (
	MealCreated MealEventType = "created"
	MealUpdated MealEventType = "updated"
	MealDeleted MealEventType = "deleted"
)

type MealEvent struct {
	Type       MealEventType `json:"type"`
	UserID     string        `json:"user_id"`
	MealID     string        `json:"meal_id"`
	OccurredAt time.Time     `json:"occurred_at"`
}
