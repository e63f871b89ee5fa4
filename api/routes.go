package api

import (
	"github.com/gofiber/fiber/v2"

	"cpusim/config"
)

// NewApp wires the middleware and the scheduling routes.
func NewApp(cfg *config.SchedulerConfig) *fiber.App {
	app := fiber.New()
	app.Use(RequestID())
	app.Use(NewRateLimiter(cfg.RateLimit).Handler())

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})

	handler := NewSchedulerHandlerImpl(cfg)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	{
		v1.Get("/algorithms", handler.ListAlgorithms)
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Post("/srtf", handler.ShortestRemainingTimeFirst)
		v1.Post("/priority", handler.Priority)
		v1.Post("/priority-preemptive", handler.PreemptivePriority)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/mlfq", handler.MultilevelFeedbackQueue)
		v1.Post("/all", handler.AllAlgorithms)
	}

	return app
}
