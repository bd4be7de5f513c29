package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lpessoa/go-tarefas/internal/models"
)

type statusResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// HandleListStatuses serves the fixed enumeration from in-process
// reference data; no store round trip.
func (h *handlerImpl) HandleListStatuses(c *gin.Context) {
	response := make([]statusResponse, len(models.Statuses))
	for i, status := range models.Statuses {
		response[i] = statusResponse{
			ID:   status.ID,
			Name: status.Name,
		}
	}

	c.JSON(http.StatusOK, response)
}
