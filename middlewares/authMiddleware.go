package middlewares

import (
	"net/http"
	"strings"

	"github.com/fuelchain/stationlog_backend/appctx"
	"github.com/fuelchain/stationlog_backend/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware protects the ops surface (manual sweep triggers and the
// execution-log accessor). Unlike a public API there is no anonymous path:
// a missing or invalid bearer token is rejected outright.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

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

		ctx := appctx.Set(c.Request.Context(), appctx.ContextKeyUserId, customClaim.ID)
		ctx = appctx.Set(ctx, appctx.ContextKeyUserName, customClaim.Name)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
