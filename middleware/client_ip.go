package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikhilbadyal/tracker/metrics"
)

//ClientIPKey is the gin context key under which the trusted client IP is kept
const ClientIPKey = "client_ip"

//ClientIPAuth requires the connecting-IP header set by the edge platform.
//The header is unspoofable at the platform boundary and is the sole key for
//rate limiting and the stored ip field.
func ClientIPAuth(main gin.HandlerFunc, ipHeader string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.GetHeader(ipHeader)
		if ip == "" {
			metrics.RejectedEvent(ErrIPMissing)
			c.AbortWithStatusJSON(http.StatusForbidden, ErrResponse(ErrIPMissing))
			return
		}

		c.Set(ClientIPKey, ip)

		main(c)
	}
}
