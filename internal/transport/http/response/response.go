package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeEmailExists        = 40002
	CodeInvalidMealID      = 40003
	CodeUnauthorized       = 40100
	CodeInvalidCredentials = 40101
	CodeTokenMissing       = 40102
	CodeTokenInvalid       = 40103
	CodeMealNotFound       = 40401
	CodeUserNotFound       = 40402
	CodeInternalServer     = 50000
)

const MessageInternalServer = "Internal Server Error"

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created answers 201 with an empty body, pointing Location at the new resource.
func Created(c *gin.Context, location string) {
	if location != "" {
		c.Header("Location", location)
	}
	c.Status(http.StatusCreated)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes the error body and aborts the handler chain.
func Error(c *gin.Context, httpStatus, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, APIError{
		Code:    code,
		Message: message,
	})
}

func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternalServer, MessageInternalServer)
}
