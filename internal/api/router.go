package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"pos-bridge-backend/config"
	"pos-bridge-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimit(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.CacheGET(cacheStore, ttl)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/status", h.GetStatus)

		// Paired-device enumeration shells out to the OS stack; cache it.
		api.GET("/devices/paired", caching, h.GetPairedDevices)
		api.GET("/devices/system-connected", h.GetSystemConnectedDevices)
		api.POST("/devices/pair", h.PairDevice)
		api.POST("/devices/connect", h.ConnectDevice)
		api.POST("/devices/disconnect", h.DisconnectDevice)

		api.POST("/scan/start", h.StartScan)
		api.POST("/scan/stop", h.StopScan)

		api.POST("/print", h.Print)
		api.POST("/print/raw", h.PrintRaw)
		api.POST("/print/text", h.PrintText)
		api.POST("/print/test", h.PrintTest)

		api.GET("/printer/last", h.GetLastPrinter)
		api.DELETE("/printer/last", h.DeleteLastPrinter)

		api.GET("/events", h.Events)
	}

	return r
}
