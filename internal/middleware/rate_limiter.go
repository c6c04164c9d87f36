package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"tunik/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// rateEntry tracks request counts per IP within one window.
type rateEntry struct {
	count     int
	windowEnd time.Time
}

// RateLimiter is a per-IP fixed-window counter. Each limiter owns its map;
// expired entries are dropped by Purge or the loop started with Run.
type RateLimiter struct {
	limit  int
	window time.Duration
	msg    string
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*rateEntry
}

func NewRateLimiter(limit int, window time.Duration, msg string) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		msg:     msg,
		now:     time.Now,
		entries: make(map[string]*rateEntry),
	}
}

// NewAPIRateLimiter allows 1000 requests per minute per IP.
func NewAPIRateLimiter() *RateLimiter {
	return NewRateLimiter(1000, time.Minute, "Demasiadas solicitudes. Intente nuevamente en un momento.")
}

// NewLoginRateLimiter allows 20 login attempts per minute per IP.
func NewLoginRateLimiter() *RateLimiter {
	return NewRateLimiter(20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.")
}

// Allow counts one request from ip and reports whether it is within the
// limit, plus the time the current window ends.
func (l *RateLimiter) Allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[ip]
	if !ok || now.After(e.windowEnd) {
		e = &rateEntry{windowEnd: now.Add(l.window)}
		l.entries[ip] = e
	}
	e.count++
	return e.count <= l.limit, e.windowEnd
}

func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.Allow(c.ClientIP())
		if !ok {
			secs := int(time.Until(windowEnd).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.msg))
			return
		}
		c.Next()
	}
}

// Purge removes expired entries and returns how many were dropped.
func (l *RateLimiter) Purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	purged := 0
	for ip, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, ip)
			purged++
		}
	}
	return purged
}

const purgeInterval = 5 * time.Minute

// Run purges expired entries every few minutes until ctx is done.
func (l *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Purge(); n > 0 {
				log.Debug().Int("entries_purged", n).Msg("rate limiter purged")
			}
		}
	}
}
