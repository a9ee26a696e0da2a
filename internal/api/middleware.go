package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abm32/Neuroshift/internal/auth"
	"github.com/Abm32/Neuroshift/internal/response"
	"github.com/Abm32/Neuroshift/internal/store"
)

// RequestIDMiddleware ensures every request has a correlation/request ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Next()
	}
}

// AuthMiddleware resolves the bearer token to a session and attaches the
// session's store to the request context. Requests without a live session
// are rejected; this is the routing guard in front of every data route.
func AuthMiddleware(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			sess, err := app.Auth().CurrentSession(token)
			if err == nil {
				st, err := app.Sessions().StoreFor(c.Request.Context(), sess)
				if err == nil {
					c.Set("session", sess)
					c.Set("store", st)
					c.Next()
					return
				}
				app.Logger().Errorf("failed to resolve store for user %s: %v", sess.UserID, err)
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Unauthorized"))
	}
}

func sessionFrom(c *gin.Context) *auth.Session {
	return c.MustGet("session").(*auth.Session)
}

func storeFrom(c *gin.Context) *store.Store {
	return c.MustGet("store").(*store.Store)
}
