package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"dailydiet/internal/model"
	"dailydiet/internal/platform/rabbitmq"
)

type MetricsRefresher interface {
	Refresh(ctx context.Context, userID string) (model.MealMetrics, error)
}

// MetricsRefreshWorker consumes meal events and re-warms the owner's cached
// metrics so the next read after a change is a hit.
type MetricsRefreshWorker struct {
	conn      *amqp.Connection
	refresher MetricsRefresher
	queueName string
	logger    logrus.FieldLogger

	refreshTimeout time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMetricsRefreshWorker(conn *amqp.Connection, refresher MetricsRefresher, queueName string, logger logrus.FieldLogger) *MetricsRefreshWorker {
	return &MetricsRefreshWorker{
		conn:           conn,
		refresher:      refresher,
		queueName:      queueName,
		logger:         logger.WithField("worker", "metrics_refresh"),
		refreshTimeout: 5 * time.Second,
	}
}

func (w *MetricsRefreshWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if _, err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	if err := ch.Qos(16, 0, false); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("set worker qos failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()
		w.consume(workerCtx, deliveries)
	}()

	w.logger.WithField("queue", w.queueName).Info("metrics refresh worker started")
	return nil
}

func (w *MetricsRefreshWorker) consume(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			w.handle(ctx, d)
		}
	}
}

func (w *MetricsRefreshWorker) handle(ctx context.Context, d amqp.Delivery) {
	event, err := rabbitmq.DecodeMealEvent(d.Body)
	if err != nil {
		w.logger.WithError(err).Warn("drop undecodable meal event")
		_ = d.Nack(false, false)
		return
	}

	refreshCtx, cancel := context.WithTimeout(ctx, w.refreshTimeout)
	defer cancel()

	log := w.logger.WithFields(logrus.Fields{"user_id": event.UserID, "meal_id": event.MealID, "event": event.Type})
	if _, err := w.refresher.Refresh(refreshCtx, event.UserID); err != nil {
		log.WithError(err).Error("refresh metrics failed")
		_ = d.Nack(false, false)
		return
	}

	log.Debug("metrics refreshed")
	_ = d.Ack(false)
}

func (w *MetricsRefreshWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
