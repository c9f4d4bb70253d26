package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness with the product cache counters and the number of
// open push connections.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "OK",
		"productCache":  h.products.CacheStats(),
		"wsSubscribers": h.ws.Subscribers(),
	})
}
