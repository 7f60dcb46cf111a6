package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikhilbadyal/tracker/metrics"
)

//OriginKey is the gin context key under which the validated request origin is kept
const OriginKey = "origin"

//WriteCorsHeaders echoes the validated origin, never a wildcard
func WriteCorsHeaders(c *gin.Context, origin string) {
	c.Header("Access-Control-Allow-Origin", origin)
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Header("Access-Control-Allow-Credentials", "true")
	c.Header("X-Content-Type-Options", "nosniff")
}

//OriginAuth checks that the request carries an Origin header from the fixed
//allow-list (equality match, not pattern match) and puts the validated origin
//into the request context
func OriginAuth(main gin.HandlerFunc, allowedOrigins map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			metrics.RejectedEvent(ErrOriginMissing)
			c.AbortWithStatusJSON(http.StatusForbidden, ErrResponse(ErrOriginMissing))
			return
		}

		if !allowedOrigins[origin] {
			metrics.RejectedEvent(ErrOriginDenied)
			c.AbortWithStatusJSON(http.StatusForbidden, ErrResponse(ErrOriginDenied))
			return
		}

		c.Set(OriginKey, origin)

		main(c)
	}
}

//Preflight answers OPTIONS requests: 204 with CORS headers for allow-listed
//origins, deterministic 403 otherwise so that unknown origins don't stall
func Preflight(allowedOrigins map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || !allowedOrigins[origin] {
			metrics.RejectedEvent(ErrOriginDenied)
			c.JSON(http.StatusForbidden, ErrResponse(ErrOriginDenied))
			return
		}

		WriteCorsHeaders(c, origin)
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Status(http.StatusNoContent)
	}
}
