package api

import (
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"cpusim/config"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID tags every request with an id, echoing the caller's X-Request-ID
// when present, and logs one line per request.
func RequestID() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := strings.Clone(ctx.Get(requestIDHeader))
		if id == "" {
			id = uuid.New().String()
		}
		ctx.Set(requestIDHeader, id)
		ctx.Locals(requestIDKey, id)

		start := time.Now()
		err := ctx.Next()
		log.Println("request:", id, ctx.Method(), ctx.Path(), ctx.Response().StatusCode(), time.Since(start))
		return err
	}
}

func requestID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(requestIDKey).(string)
	return id
}

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) limiter(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[client]
	if !exists {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[client] = limiter
	}
	return limiter
}

// Handler rejects requests over the limit with 429. A non-positive rate
// disables limiting.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if rl.limit <= 0 {
			return ctx.Next()
		}
		if !rl.limiter(ctx.IP()).Allow() {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "rate limit exceeded",
				"retry_after": int(math.Ceil(1 / float64(rl.limit))),
			})
		}
		return ctx.Next()
	}
}
