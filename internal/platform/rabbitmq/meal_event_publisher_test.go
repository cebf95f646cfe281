package rabbitmq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailydiet/internal/model"
)

func TestEncodeDecodeMealEvent(t *testing.T) {
	event := model.MealEvent{
		Type:       model.MealUpdated,
		UserID:     "u-1",
		MealID:     "m-1",
		OccurredAt: time.Date(2024, 2, 14, 21, 18, 0, 0, time.UTC),
	}

	body, err := EncodeMealEvent(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"updated","user_id":"u-1","meal_id":"m-1","occurred_at":"2024-02-14T21:18:00Z"}`, string(body))

	decoded, err := DecodeMealEvent(body)
	require.NoError(t, err)
	assert.Equal(t, event, decoded)
}

func TestDecodeMealEvent_Rejects(t *testing.T) {
	_, err := DecodeMealEvent([]byte("{not json"))
	assert.Error(t, err)

	_, err = DecodeMealEvent([]byte(`{"type":"created","meal_id":"m-1"}`))
	assert.Error(t, err)
}
