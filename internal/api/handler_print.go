package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type rawPrintRequest struct {
	Payload string `json:"payload" binding:"required"`
}

type textPrintRequest struct {
	Text string `json:"text" binding:"required"`
}

// Print handles POST /api/print. The body is a print job envelope:
// {"type":"PRINT_INVOICE","payload":{...}}.
func (h *Handler) Print(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.bridge.HandleMessage(c.Request.Context(), raw); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"printed": true})
}

// PrintRaw handles POST /api/print/raw with a base64 ESC/POS payload.
func (h *Handler) PrintRaw(c *gin.Context) {
	var req rawPrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.bridge.PrintRaw(c.Request.Context(), req.Payload); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"printed": true})
}

// PrintText handles POST /api/print/text. The string is written to the
// printer as-is, with no document compilation.
func (h *Handler) PrintText(c *gin.Context) {
	var req textPrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.manager.SendText(req.Text); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"printed": true})
}

// PrintTest handles POST /api/print/test.
func (h *Handler) PrintTest(c *gin.Context) {
	if err := h.bridge.PrintTest(c.Request.Context()); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"printed": true})
}
