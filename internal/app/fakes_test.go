package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dailydiet/internal/model"
)

type fakeCache struct {
	mu          sync.Mutex
	versions    map[string]int64
	entries     map[string]model.MealMetrics
	failVersion bool
	failGet     bool
	sets        int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		versions: make(map[string]int64),
		entries:  make(map[string]model.MealMetrics),
	}
}

func (c *fakeCache) key(userID string, version int64) string {
	return fmt.Sprintf("%s#%d", userID, version)
}

func (c *fakeCache) Version(_ context.Context, userID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failVersion {
		return 0, errors.New("redis down")
	}
	return c.versions[userID], nil
}

func (c *fakeCache) Get(_ context.Context, userID string, version int64) (*model.MealMetrics, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, false, errors.New("redis down")
	}
	m, ok := c.entries[c.key(userID, version)]
	if !ok {
		return nil, false, nil
	}
	return &m, true, nil
}

func (c *fakeCache) Set(_ context.Context, userID string, version int64, metrics model.MealMetrics) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[c.key(userID, version)] = metrics
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failVersion {
		return errors.New("redis down")
	}
	c.versions[userID]++
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []model.MealEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event model.MealEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Events() []model.MealEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.MealEvent(nil), p.events...)
}

// failingMealStore fails every call.
type failingMealStore struct{ err error }

func (s failingMealStore) Create(context.Context, *model.Meal) error { return s.err }
func (s failingMealStore) ListByUserID(context.Context, string) ([]model.Meal, error) {
	return nil, s.err
}
func (s failingMealStore) ListByUserIDForMetrics(context.Context, string) ([]model.Meal, error) {
	return nil, s.err
}
func (s failingMealStore) GetByIDAndUserID(context.Context, string, string) (*model.Meal, error) {
	return nil, s.err
}
func (s failingMealStore) UpdateByIDAndUserID(context.Context, string, string, model.MealFields, time.Time) (int64, error) {
	return 0, s.err
}
func (s failingMealStore) DeleteByIDAndUserID(context.Context, string, string) (int64, error) {
	return 0, s.err
}
