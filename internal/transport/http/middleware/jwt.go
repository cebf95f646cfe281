package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dailydiet/internal/pkg/jwtutil"
	"dailydiet/internal/transport/http/response"
)

const ContextUserIDKey = "user_id"

const (
	MessageTokenMissing = "Token is missing"
	MessageTokenInvalid = "Token invalid"
)

// AuthJWT is the session guard. It only verifies the signature and never
// looks the user up.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeTokenMissing, MessageTokenMissing)
			return
		}

		scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			response.Error(c, http.StatusUnauthorized, response.CodeTokenInvalid, MessageTokenInvalid)
			return
		}

		claims, err := jwtutil.ParseToken(secret, strings.TrimSpace(token))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.CodeTokenInvalid, MessageTokenInvalid)
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

func UserIDFromContext(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserIDKey)
	return userID, userID != ""
}
