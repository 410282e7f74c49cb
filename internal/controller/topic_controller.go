package controller

import (
	"topicmatch-be/internal/pkg/serverutils"
	"topicmatch-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITopicController interface {
	RegisterRoutes(r fiber.Router)
	GetPublished(ctx *fiber.Ctx) error
}

type topicController struct {
	service service.ITopicService
}

func NewTopicController(service service.ITopicService) ITopicController {
	return &topicController{service: service}
}

func (c *topicController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/topic/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/", c.GetPublished)
}

// GetPublished lists the rankable topics of a period. Draft topics stay
// hidden from students until an admin publishes them.
func (c *topicController) GetPublished(ctx *fiber.Ctx) error {
	periodId, err := uuid.Parse(ctx.Query("period_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	res, err := c.service.GetPublished(ctx.Context(), periodId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Topics retrieved", res))
}
