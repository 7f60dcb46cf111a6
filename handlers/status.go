package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//StatusHandler answers the health-check path for any method and origin,
//bypassing every other gate
func StatusHandler(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.String(http.StatusOK, "We are up")
}
