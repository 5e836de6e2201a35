package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pos-bridge-backend/internal/model"
)

// StatusResponse is the bridge health summary.
type StatusResponse struct {
	BluetoothAvailable bool          `json:"bluetoothAvailable"`
	BluetoothEnabled   bool          `json:"bluetoothEnabled"`
	State              string        `json:"state"`
	ConnectedDevice    *model.Device `json:"connectedDevice"`
}

// GetStatus handles GET /api/status.
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		BluetoothAvailable: h.manager.IsBluetoothAvailable(),
		BluetoothEnabled:   h.manager.IsBluetoothEnabled(),
		State:              string(h.manager.State()),
		ConnectedDevice:    h.manager.ConnectedDevice(),
	})
}

// GetLastPrinter handles GET /api/printer/last.
func (h *Handler) GetLastPrinter(c *gin.Context) {
	last, err := h.manager.LastPrinter(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if last == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no printer remembered"})
		return
	}
	c.JSON(http.StatusOK, last)
}

// DeleteLastPrinter handles DELETE /api/printer/last.
func (h *Handler) DeleteLastPrinter(c *gin.Context) {
	if err := h.manager.ForgetLastPrinter(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
