package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailydiet/internal/logging"
	"dailydiet/internal/model"
)

type fakeRefresher struct {
	mu    sync.Mutex
	users []string
	err   error
}

func (f *fakeRefresher) Refresh(_ context.Context, userID string) (model.MealMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, userID)
	return model.MealMetrics{}, f.err
}

func (f *fakeRefresher) Users() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.users...)
}

type ackRecorder struct {
	mu      sync.Mutex
	acks    []uint64
	nacks   []uint64
	requeue []bool
}

func (a *ackRecorder) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acks = append(a.acks, tag)
	return nil
}

func (a *ackRecorder) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacks = append(a.nacks, tag)
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func newTestWorker(refresher MetricsRefresher) *MetricsRefreshWorker {
	return NewMetricsRefreshWorker(nil, refresher, "meals.events", logging.Discard())
}

func delivery(ack amqp.Acknowledger, tag uint64, body string) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, Body: []byte(body)}
}

func TestHandle_RefreshesOwnerAndAcks(t *testing.T) {
	refresher := &fakeRefresher{}
	ack := &ackRecorder{}
	w := newTestWorker(refresher)

	w.handle(context.Background(), delivery(ack, 7, `{"type":"created","user_id":"u-1","meal_id":"m-1"}`))

	assert.Equal(t, []string{"u-1"}, refresher.Users())
	assert.Equal(t, []uint64{7}, ack.acks)
	assert.Empty(t, ack.nacks)
}

func TestHandle_BadPayloadIsDropped(t *testing.T) {
	refresher := &fakeRefresher{}
	ack := &ackRecorder{}
	w := newTestWorker(refresher)

	w.handle(context.Background(), delivery(ack, 1, `garbage`))

	assert.Empty(t, refresher.Users())
	assert.Equal(t, []uint64{1}, ack.nacks)
	assert.Equal(t, []bool{false}, ack.requeue)
}

func TestHandle_RefreshFailureNacks(t *testing.T) {
	refresher := &fakeRefresher{err: errors.New("db down")}
	ack := &ackRecorder{}
	w := newTestWorker(refresher)

	w.handle(context.Background(), delivery(ack, 3, `{"type":"deleted","user_id":"u-9","meal_id":"m-2"}`))

	assert.Empty(t, ack.acks)
	assert.Equal(t, []uint64{3}, ack.nacks)
}

func TestConsume_StopsWhenChannelCloses(t *testing.T) {
	refresher := &fakeRefresher{}
	ack := &ackRecorder{}
	w := newTestWorker(refresher)

	deliveries := make(chan amqp.Delivery, 2)
	deliveries <- delivery(ack, 1, `{"type":"created","user_id":"a","meal_id":"m"}`)
	deliveries <- delivery(ack, 2, `{"type":"updated","user_id":"b","meal_id":"m"}`)
	close(deliveries)

	done := make(chan struct{})
	go func() {
		w.consume(context.Background(), deliveries)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consume did not return after channel close")
	}
	require.Equal(t, []string{"a", "b"}, refresher.Users())
}

func TestConsume_StopsOnCancel(t *testing.T) {
	w := newTestWorker(&fakeRefresher{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.consume(ctx, make(chan amqp.Delivery))
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consume did not return after cancel")
	}
}

func TestClose_WithoutStart(t *testing.T) {
	w := newTestWorker(&fakeRefresher{})
	w.Close()
}
