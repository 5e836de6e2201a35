package api

import (
	"errors"
	"net/http"

	"pos-bridge-backend/internal/bluetooth"
	"pos-bridge-backend/internal/bridge"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	manager *bluetooth.Manager
	bridge  *bridge.Orchestrator
}

// NewHandler creates a new API handler.
func NewHandler(manager *bluetooth.Manager, orchestrator *bridge.Orchestrator) *Handler {
	return &Handler{
		manager: manager,
		bridge:  orchestrator,
	}
}

// httpStatus maps bridge and Bluetooth failures to response codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, bluetooth.ErrUnavailable), errors.Is(err, bluetooth.ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, bluetooth.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, bluetooth.ErrNotConnected), errors.Is(err, bridge.ErrPrinterRequired):
		return http.StatusConflict
	case errors.Is(err, bridge.ErrFormat):
		return http.StatusBadRequest
	case errors.Is(err, bluetooth.ErrConnectionFailed),
		errors.Is(err, bluetooth.ErrPairingFailed),
		errors.Is(err, bluetooth.ErrScan),
		errors.Is(err, bluetooth.ErrIO):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
