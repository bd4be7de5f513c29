package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleHealth reports liveness only. No dependency checks: the
// client treats a transport failure, not the payload, as "offline".
func (h *handlerImpl) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
