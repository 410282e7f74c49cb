package controller

import (
	"errors"
	"strings"

	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/pkg/serverutils"
	"topicmatch-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRankingController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
}

type rankingController struct {
	service service.IRankingService
}

func NewRankingController(service service.IRankingService) IRankingController {
	return &rankingController{service: service}
}

func (c *rankingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ranking/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Put("periods/:periodId", c.Submit)
	h.Get("periods/:periodId", c.Get)
}

// Submit replaces the caller's full preference order for the period.
func (c *rankingController) Submit(ctx *fiber.Ctx) error {
	respondentId, periodId, err := sessionIds(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	var req dto.SubmitRankingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Submit(ctx.Context(), respondentId, periodId, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPeriodNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		case errors.Is(err, service.ErrPeriodNotOpen):
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		case strings.Contains(err.Error(), "rank"):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Ranking submitted", res))
}

func (c *rankingController) Get(ctx *fiber.Ctx) error {
	respondentId, periodId, err := sessionIds(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	res, err := c.service.Get(ctx.Context(), respondentId, periodId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Ranking retrieved", res))
}
