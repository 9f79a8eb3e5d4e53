package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vyasarsoft/invoices_backend/utils"
)

// AuthMiddleware validates the bearer token and stashes the caller's
// identity in the request context. A missing header passes through so
// public routes can share the chain; RequireAuth gates protected ones.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		if auth == "" {
			c.Next()
			return
		}

		bearer := "Bearer "
		if !strings.HasPrefix(auth, bearer) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		auth = auth[len(bearer):]

		validate, err := utils.JwtValidate(auth)
		if err != nil || !validate.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		customClaim, _ := validate.Claims.(*utils.JwtCustomClaim)

		ctx := c.Request.Context()
		ctx = utils.SetUserIdInContext(ctx, customClaim.ID)
		ctx = utils.SetUsernameInContext(ctx, customClaim.Username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth aborts requests that never authenticated.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := utils.GetUserIdFromContext(c.Request.Context())
		if !ok || userId == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// PublicViewMiddleware marks the request as an unauthenticated read-only
// view of a shared invoice.
func PublicViewMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := utils.SetPublicViewInContext(c.Request.Context(), true)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
