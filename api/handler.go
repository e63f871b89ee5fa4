package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"cpusim/config"
	"cpusim/internal/report"
	"cpusim/internal/requests"
	"cpusim/internal/schedulers"
)

type SchedulerHandler interface {
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	ShortestRemainingTimeFirst(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	PreemptivePriority(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	MultilevelFeedbackQueue(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	ListAlgorithms(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config *config.SchedulerConfig
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{config: config}
}

var errInvalidRequestFormat = errors.New("invalid request format")

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.FirstComeFirstServe)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.ShortestJobFirst)
}

func (s *SchedulerHandlerImpl) ShortestRemainingTimeFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.ShortestRemainingTimeFirst)
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.PriorityNonPreemptive)
}

func (s *SchedulerHandlerImpl) PreemptivePriority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.PriorityPreemptive)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.RoundRobin)
}

func (s *SchedulerHandlerImpl) MultilevelFeedbackQueue(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.MultilevelFeedbackQueue)
}

// AllAlgorithms runs the request through every algorithm and answers with the
// results keyed by algorithm identifier.
func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	request, opts, err := s.parse(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	results, err := schedulers.ScheduleAll(request, opts)
	if err != nil {
		return badRequest(ctx, err)
	}

	body := make(map[string]report.JSONView, len(results))
	for _, result := range results {
		body[result.Algorithm] = report.NewJSONView(result, s.config.OutputPrecision)
	}
	return ctx.JSON(body)
}

func (s *SchedulerHandlerImpl) ListAlgorithms(ctx *fiber.Ctx) error {
	type algorithm struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	body := make([]algorithm, 0)
	for _, a := range schedulers.Algorithms() {
		body = append(body, algorithm{ID: string(a), Title: a.Title()})
	}
	return ctx.JSON(body)
}

func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, algorithm schedulers.Algorithm) error {
	request, opts, err := s.parse(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	response, err := schedulers.Schedule(algorithm, request, opts)
	if err != nil {
		return badRequest(ctx, err)
	}

	return ctx.JSON(report.NewJSONView(response, s.config.OutputPrecision))
}

// parse decodes the body and overlays its optional quanta on the configured
// defaults.
func (s *SchedulerHandlerImpl) parse(ctx *fiber.Ctx) (*requests.ScheduleRequests, schedulers.Options, error) {
	request := &requests.ScheduleRequests{}
	if err := ctx.BodyParser(request); err != nil {
		return nil, schedulers.Options{}, errInvalidRequestFormat
	}

	opts := s.config.SchedulerOptions()
	if request.TimeQuantum != nil {
		opts.TimeQuantum = *request.TimeQuantum
	}
	if request.LevelsTimeQuantum != nil {
		opts.LevelsTimeQuantum = request.LevelsTimeQuantum
	}
	return request, opts, nil
}

func badRequest(ctx *fiber.Ctx, err error) error {
	log.Println("request:", requestID(ctx), "rejected:", err)
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}
