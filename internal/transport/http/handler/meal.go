package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dailydiet/internal/app"
	"dailydiet/internal/transport/http/middleware"
	"dailydiet/internal/transport/http/response"
)

const (
	msgMealRequired  = "Name, description, date, time and diet information are required"
	msgInvalidMealID = "Invalid meal id"
	msgMealNotFound  = "Meal not found"
)

type MealHandler struct {
	mealService    *app.MealService
	metricsService *app.MetricsService
	logger         logrus.FieldLogger
}

type MealRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Diet        string `json:"diet" binding:"required,oneof=in out"`
}

type MealURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

func NewMealHandler(mealService *app.MealService, metricsService *app.MetricsService, logger logrus.FieldLogger) *MealHandler {
	return &MealHandler{
		mealService:    mealService,
		metricsService: metricsService,
		logger:         logger,
	}
}

func (h *MealHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	meals, err := h.mealService.List(c.Request.Context(), userID)
	if err != nil {
		internalError(c, h.logger, err, "list meals failed")
		return
	}
	response.OK(c, gin.H{"meals": meals})
}

func (h *MealHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	mealID, ok := bindMealID(c)
	if !ok {
		return
	}

	meal, err := h.mealService.Get(c.Request.Context(), userID, mealID)
	if err != nil {
		h.mealError(c, err, "get meal failed")
		return
	}
	response.OK(c, gin.H{"meal": meal})
}

func (h *MealHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, msgMealRequired)
		return
	}

	meal, err := h.mealService.Create(c.Request.Context(), app.CreateMealInput{
		UserID:    userID,
		MealInput: req.input(),
	})
	if err != nil {
		h.mealError(c, err, "create meal failed")
		return
	}
	response.Created(c, "/meals/"+meal.ID)
}

func (h *MealHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	mealID, ok := bindMealID(c)
	if !ok {
		return
	}
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, msgMealRequired)
		return
	}

	err := h.mealService.Update(c.Request.Context(), app.UpdateMealInput{
		UserID:    userID,
		MealID:    mealID,
		MealInput: req.input(),
	})
	if err != nil {
		h.mealError(c, err, "update meal failed")
		return
	}
	c.Status(http.StatusOK)
}

func (h *MealHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	mealID, ok := bindMealID(c)
	if !ok {
		return
	}

	if err := h.mealService.Delete(c.Request.Context(), userID, mealID); err != nil {
		h.mealError(c, err, "delete meal failed")
		return
	}
	response.NoContent(c)
}

func (h *MealHandler) Metrics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	metrics, err := h.metricsService.Summary(c.Request.Context(), userID)
	if err != nil {
		internalError(c, h.logger, err, "compute meal metrics failed")
		return
	}
	response.OK(c, metrics)
}

// mealError maps service errors once the id has already been validated, so
// ErrInvalidInput can only come from the body.
func (h *MealHandler) mealError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, msgMealRequired)
	case errors.Is(err, app.ErrMealNotFound):
		response.Error(c, http.StatusNotFound, response.CodeMealNotFound, msgMealNotFound)
	default:
		internalError(c, h.logger, err, msg)
	}
}

func (r MealRequest) input() app.MealInput {
	return app.MealInput{
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Diet:        r.Diet,
	}
}

func bindMealID(c *gin.Context) (string, bool) {
	var uri MealURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidMealID, msgInvalidMealID)
		return "", false
	}
	return uri.ID, true
}

func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeTokenInvalid, middleware.MessageTokenInvalid)
		return "", false
	}
	return userID, true
}

func internalError(c *gin.Context, logger logrus.FieldLogger, err error, msg string) {
	_ = c.Error(err)
	logger.WithError(err).WithField("path", c.FullPath()).Error(msg)
	response.InternalError(c)
}
