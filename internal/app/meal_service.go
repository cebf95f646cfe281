package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dailydiet/internal/model"
	"dailydiet/internal/telemetry"
)

type MealService struct {
	mealRepo  MealStore
	cache     MetricsCache
	publisher MealEventPublisher
	logger    logrus.FieldLogger
	now       func() time.Time
}

type MealInput struct {
	Name        string
	Description string
	Date        string
	Time        string
	Diet        string
}

type CreateMealInput struct {
	UserID string
	MealInput
}

type UpdateMealInput struct {
	UserID string
	MealID string
	MealInput
}

// NewMealService wires Meal Management. cache and publisher may be nil.
func NewMealService(mealRepo MealStore, cache MetricsCache, publisher MealEventPublisher, logger logrus.FieldLogger) *MealService {
	return &MealService{
		mealRepo:  mealRepo,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *MealService) Create(ctx context.Context, input CreateMealInput) (*model.Meal, error) {
	if input.UserID == "" {
		return nil, ErrInvalidInput
	}
	fields, err := input.MealInput.normalize()
	if err != nil {
		return nil, err
	}

	meal := &model.Meal{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Name:        fields.Name,
		Description: fields.Description,
		Date:        fields.Date,
		Time:        fields.Time,
		Diet:        fields.Diet,
	}
	if err := s.mealRepo.Create(ctx, meal); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, model.MealCreated, meal.UserID, meal.ID)
	return meal, nil
}

func (s *MealService) List(ctx context.Context, userID string) ([]model.Meal, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	meals, err := s.mealRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []model.Meal{}
	}
	return meals, nil
}

func (s *MealService) Get(ctx context.Context, userID, mealID string) (*model.Meal, error) {
	if err := validateOwnedID(userID, mealID); err != nil {
		return nil, err
	}
	return s.findOwned(ctx, userID, mealID)
}

// Update replaces all five mutable fields. The ownership check and the write
// are separate statements; a meal deleted in between makes the write a no-op.
func (s *MealService) Update(ctx context.Context, input UpdateMealInput) error {
	if err := validateOwnedID(input.UserID, input.MealID); err != nil {
		return err
	}
	fields, err := input.MealInput.normalize()
	if err != nil {
		return err
	}

	if _, err := s.findOwned(ctx, input.UserID, input.MealID); err != nil {
		return err
	}

	affected, err := s.mealRepo.UpdateByIDAndUserID(ctx, input.MealID, input.UserID, fields, s.now())
	if err != nil {
		return err
	}
	if affected == 0 {
		s.logger.WithField("meal_id", input.MealID).Debug("meal update affected no rows")
		return nil
	}

	s.afterMutation(ctx, model.MealUpdated, input.UserID, input.MealID)
	return nil
}

func (s *MealService) Delete(ctx context.Context, userID, mealID string) error {
	if err := validateOwnedID(userID, mealID); err != nil {
		return err
	}
	if _, err := s.findOwned(ctx, userID, mealID); err != nil {
		return err
	}

	affected, err := s.mealRepo.DeleteByIDAndUserID(ctx, mealID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		s.logger.WithField("meal_id", mealID).Debug("meal delete affected no rows")
		return nil
	}

	s.afterMutation(ctx, model.MealDeleted, userID, mealID)
	return nil
}

func (s *MealService) findOwned(ctx context.Context, userID, mealID string) (*model.Meal, error) {
	meal, err := s.mealRepo.GetByIDAndUserID(ctx, mealID, userID)
	if err != nil {
		return nil, err
	}
	if meal == nil {
		return nil, ErrMealNotFound
	}
	return meal, nil
}

// afterMutation runs the best-effort side effects of a committed write.
func (s *MealService) afterMutation(ctx context.Context, eventType model.MealEventType, userID, mealID string) {
	telemetry.RecordMealMutation(string(eventType))
	log := s.logger.WithFields(logrus.Fields{"user_id": userID, "meal_id": mealID, "event": eventType})

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			log.WithError(err).Warn("invalidate metrics cache failed")
		}
	}

	if s.publisher != nil {
		event := model.MealEvent{
			Type:       eventType,
			UserID:     userID,
			MealID:     mealID,
			OccurredAt: s.now().UTC(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.WithError(err).Warn("publish meal event failed")
		}
	}
}

func (in MealInput) normalize() (model.MealFields, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return model.MealFields{}, ErrInvalidInput
	}
	diet := model.Diet(in.Diet)
	if !diet.Valid() {
		return model.MealFields{}, ErrInvalidInput
	}
	date, err := model.ParseDate(in.Date)
	if err != nil {
		return model.MealFields{}, ErrInvalidInput
	}
	tod, err := model.ParseTimeOfDay(in.Time)
	if err != nil {
		return model.MealFields{}, ErrInvalidInput
	}
	return model.MealFields{
		Name:        in.Name,
		Description: in.Description,
		Date:        date,
		Time:        tod,
		Diet:        diet,
	}, nil
}

func validateOwnedID(userID, mealID string) error {
	if userID == "" {
		return ErrInvalidInput
	}
	if _, err := uuid.Parse(mealID); err != nil {
		return ErrInvalidInput
	}
	return nil
}
