package handler

import (
	"github.com/gin-gonic/gin"
)

// Subscribe upgrades to a WebSocket that streams status events for the
// caller, or for everyone when the caller is an admin.
func (h *Handler) Subscribe(c *gin.Context) {
	userID, isAdmin := caller(c)
	h.ws.Serve(c.Writer, c.Request, userID, isAdmin)
}
