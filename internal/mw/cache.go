package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedEntry struct {
	status      int
	contentType string
	body        []byte
}

type teeWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w teeWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheGET serves repeated GET requests for the same URI from memory for the
// given duration. Device enumeration shells out to the OS stack, so even a
// short TTL keeps bursts of polling cheap. Only 2xx responses are stored.
func CacheGET(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if hit, ok := store.Get(key); ok {
			entry := hit.(cachedEntry)
			c.Data(entry.status, entry.contentType, entry.body)
			c.Abort()
			return
		}

		tee := teeWriter{ResponseWriter: c.Writer, body: bytes.NewBuffer(nil)}
		c.Writer = tee
		c.Next()

		if status := tee.Status(); status >= 200 && status < 300 {
			store.Set(key, cachedEntry{
				status:      status,
				contentType: tee.Header().Get("Content-Type"),
				body:        tee.body.Bytes(),
			}, ttl)
		}
	}
}
