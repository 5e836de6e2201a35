package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pos-bridge-backend/internal/model"
)

type deviceRequest struct {
	Address string `json:"address" binding:"required"`
}

// GetPairedDevices handles GET /api/devices/paired.
func (h *Handler) GetPairedDevices(c *gin.Context) {
	devices, err := h.manager.PairedDevices()
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	if devices == nil {
		devices = []model.Device{}
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

// GetSystemConnectedDevices handles GET /api/devices/system-connected. It
// reports paired devices the OS itself holds a connection to, which is how a
// printer connected before this daemon started is found again.
func (h *Handler) GetSystemConnectedDevices(c *gin.Context) {
	devices, err := h.manager.SystemConnectedPairedDevices()
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	if devices == nil {
		devices = []model.Device{}
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

// PairDevice handles POST /api/devices/pair.
func (h *Handler) PairDevice(c *gin.Context) {
	var req deviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.manager.Pair(req.Address); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"address": req.Address})
}

// ConnectDevice handles POST /api/devices/connect.
func (h *Handler) ConnectDevice(c *gin.Context) {
	var req deviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.bridge.Connect(c.Request.Context(), req.Address); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"device": h.manager.ConnectedDevice()})
}

// DisconnectDevice handles POST /api/devices/disconnect.
func (h *Handler) DisconnectDevice(c *gin.Context) {
	if err := h.manager.Disconnect(); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
