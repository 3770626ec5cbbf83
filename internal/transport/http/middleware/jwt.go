package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"appfab/internal/pkg/jwtutil"
	"appfab/internal/transport/http/response"
)

const (
	ContextUserIDKey   = "auth_user_id"
	ContextUsernameKey = "auth_username"
)

// AuthJWT guards routes that act on behalf of an appfab account. On success
// the verified account id and username are placed on the request context for
// the handlers.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "missing or malformed bearer token")
			return
		}

		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			abortUnauthorized(c, "token rejected")
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(strings.TrimSpace(scheme), "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, message)
	c.Abort()
}
