package middleware

import (
	"github.com/gin-gonic/gin"
)

const hstsValue = "max-age=31536000; includeSubDomains"

//SecurityHeaders attaches strict transport security to every response,
//success or failure, regardless of the gate reached
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Strict-Transport-Security", hstsValue)
		c.Next()
	}
}
