package mw

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiters hands out one token bucket per client IP.
type clientLimiters struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func (l *clientLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.clients[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.clients[ip] = limiter
	}
	return limiter
}

// RateLimit rejects requests from clients that exceed the per-IP rate.
func RateLimit(limit rate.Limit, burst int) gin.HandlerFunc {
	limiters := &clientLimiters{
		clients: make(map[string]*rate.Limiter),
		limit:   limit,
		burst:   burst,
	}
	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
