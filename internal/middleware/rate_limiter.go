package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/emerpc1992/horale/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// windowCounter tracks request counts per client IP within a sliding window.
type windowCounter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
}

type windowEntry struct {
	count     int
	windowEnd time.Time
}

func newWindowCounter() *windowCounter {
	return &windowCounter{entries: make(map[string]*windowEntry)}
}

// hit registers one request for ip and reports whether the limit was exceeded.
func (w *windowCounter) hit(ip string, limit int, window time.Duration) (bool, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	entry, ok := w.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &windowEntry{windowEnd: now.Add(window)}
		w.entries[ip] = entry
	}
	entry.count++
	return entry.count > limit, entry.windowEnd
}

func (w *windowCounter) purge(now time.Time) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	purged := 0
	for ip, entry := range w.entries {
		if now.After(entry.windowEnd) {
			delete(w.entries, ip)
			purged++
		}
	}
	return purged
}

var (
	loginCounter = newWindowCounter()
	apiCounter   = newWindowCounter()
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		exceeded, _ := loginCounter.hit(c.ClientIP(), 20, time.Minute)
		if exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter returns a general-purpose sliding-window limiter for the API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		exceeded, windowEnd := apiCounter.hit(c.ClientIP(), limit, window)
		if exceeded {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// Expired entries are purged periodically so IPs that never return do not
// accumulate in memory.
const purgeInterval = 5 * time.Minute

func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purgedLogin := loginCounter.purge(now)
		purgedAPI := apiCounter.purge(now)
		if purgedLogin > 0 || purgedAPI > 0 {
			log.Debug().
				Int("login_entries_purged", purgedLogin).
				Int("api_entries_purged", purgedAPI).
				Msg("rate limiter maps purged")
		}
	}
}
