package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StartScan handles POST /api/scan/start. Found devices are delivered over
// the /api/events stream.
func (h *Handler) StartScan(c *gin.Context) {
	if err := h.manager.StartScan(); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"scanning": true})
}

// StopScan handles POST /api/scan/stop.
func (h *Handler) StopScan(c *gin.Context) {
	h.manager.StopScan()
	c.JSON(http.StatusOK, gin.H{"scanning": false})
}
