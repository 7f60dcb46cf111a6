package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//extractToken returns admin token from
//1. query parameter
//2. header
func extractToken(r *http.Request) string {
	token := r.URL.Query().Get("token")

	if token == "" {
		token = r.Header.Get("x-admin-token")
	}

	return token
}

//TokenAuth checks that the provided token equals the configured one
func TokenAuth(main gin.HandlerFunc, originalToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c.Request)

		if originalToken == "" || token != originalToken {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		main(c)
	}
}
