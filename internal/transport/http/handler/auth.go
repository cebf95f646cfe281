package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dailydiet/internal/app"
	"dailydiet/internal/transport/http/response"
)

const (
	msgLoginRequired      = "Email and password is required"
	msgInvalidCredentials = "Email or password invalid"
)

type AuthHandler struct {
	authService *app.AuthService
	logger      logrus.FieldLogger
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(authService *app.AuthService, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, msgLoginRequired)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, msgLoginRequired)
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, msgInvalidCredentials)
		default:
			internalError(c, h.logger, err, "login failed")
		}
		return
	}

	response.OK(c, gin.H{
		"user":  result.User.Summary(),
		"token": result.Token,
	})
}
