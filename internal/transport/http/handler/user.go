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
	msgRegisterRequired = "Name, email and password is required"
	msgEmailInUse       = "This email is already in use"
	msgUserNotFound     = "User not found"
)

type UserHandler struct {
	authService *app.AuthService
	logger      logrus.FieldLogger
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func NewUserHandler(authService *app.AuthService, logger logrus.FieldLogger) *UserHandler {
	return &UserHandler{authService: authService, logger: logger}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, msgRegisterRequired)
		return
	}

	_, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, msgRegisterRequired)
		case errors.Is(err, app.ErrEmailExists):
			response.Error(c, http.StatusBadRequest, response.CodeEmailExists, msgEmailInUse)
		default:
			internalError(c, h.logger, err, "register failed")
		}
		return
	}

	c.Status(http.StatusCreated)
}

// Me answers for the token's user. A token can outlive its user since the
// guard never checks storage.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeTokenInvalid, middleware.MessageTokenInvalid)
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeUserNotFound, msgUserNotFound)
			return
		}
		internalError(c, h.logger, err, "fetch current user failed")
		return
	}

	response.OK(c, gin.H{"user": user.Summary()})
}
