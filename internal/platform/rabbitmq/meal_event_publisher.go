package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"dailydiet/internal/model"
)

type MealEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewMealEventPublisher(conn *amqp.Connection, queueName string) *MealEventPublisher {
	return &MealEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *MealEventPublisher) Publish(ctx context.Context, event model.MealEvent) error {
	payload, err := EncodeMealEvent(event)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         string(event.Type),
			Timestamp:    event.OccurredAt,
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish meal event failed: %w", err)
	}
	return nil
}

func EncodeMealEvent(event model.MealEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal meal event failed: %w", err)
	}
	return payload, nil
}

// DecodeMealEvent parses a delivery body and rejects events without an owner.
func DecodeMealEvent(body []byte) (model.MealEvent, error) {
	var event model.MealEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return model.MealEvent{}, fmt.Errorf("decode meal event failed: %w", err)
	}
	if event.UserID == "" {
		return model.MealEvent{}, fmt.Errorf("decode meal event failed: missing user_id")
	}
	return event, nil
}
