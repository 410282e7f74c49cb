package controller

import (
	"context"
	"errors"

	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/pkg/serverutils"
	"topicmatch-be/internal/service"
	"topicmatch-be/pkg/questionnaire"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IQuestionnaireController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	SetAnswer(ctx *fiber.Ctx) error
	Next(ctx *fiber.Ctx) error
	Previous(ctx *fiber.Ctx) error
	Jump(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	DismissSession(ctx *fiber.Ctx) error
}

type questionnaireController struct {
	service service.IQuestionnaireService
}

func NewQuestionnaireController(service service.IQuestionnaireService) IQuestionnaireController {
	return &questionnaireController{service: service}
}

func (c *questionnaireController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/questionnaire/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("periods/:periodId/session", c.StartSession)
	h.Get("periods/:periodId/session", c.GetSession)
	h.Put("periods/:periodId/session/answer", c.SetAnswer)
	h.Post("periods/:periodId/session/next", c.Next)
	h.Post("periods/:periodId/session/previous", c.Previous)
	h.Post("periods/:periodId/session/jump", c.Jump)
	h.Post("periods/:periodId/session/submit", c.Submit)
	h.Delete("periods/:periodId/session", c.DismissSession)
}

func (c *questionnaireController) StartSession(ctx *fiber.Ctx) error {
	respondentId, periodId, err := sessionIds(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	res, err := c.service.StartSession(ctx.Context(), respondentId, periodId)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPeriodNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		case errors.Is(err, service.ErrPeriodNotOpen):
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		case errors.Is(err, questionnaire.ErrNoQuestions):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "no questions available for this period"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session ready", res))
}

func (c *questionnaireController) GetSession(ctx *fiber.Ctx) error {
	respondentId, periodId, err := sessionIds(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	res, err := c.service.GetSession(ctx.Context(), respondentId, periodId)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session view", res))
}

func (c *questionnaireController) SetAnswer(ctx *fiber.Ctx) error {
	respondentId, periodId, err := sessionIds(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	var req dto.SetAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res, err := c.service.SetAnswer(ctx.Context(), respondentId, periodId, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		// Everything else on this path is a caller fault: wrong value
		// type, out-of-range scale, no current question.
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Answer set", res))
}

func (c *questionnaireController) Next(ctx *fiber.Ctx) error {
	return c.navigate(ctx, c.service.Next, "Moved to next question")
}

func (c *questionnaireController) Previous(ctx *fiber.Ctx) error {
	return c.navigate(ctx, c.service.Previous, "Moved to previous question")
}

func (c *questionnaireController) Jump(ctx *fiber.Ctx) error {
	respondentId, periodId, err := sessionIds(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	var req dto.JumpRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Jump(ctx.Context(), respondentId, periodId, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Jumped", res))
}

func (c *questionnaireController) Submit(ctx *fiber.Ctx) error {
	respondentId, periodId, err := sessionIds(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	res, err := c.service.Submit(ctx.Context(), respondentId, periodId)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Questionnaire submitted", res))
}

func (c *questionnaireController) DismissSession(ctx *fiber.Ctx) error {
	respondentId, periodId, err := sessionIds(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	if err := c.service.DismissSession(ctx.Context(), respondentId, periodId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session dismissed", nil))
}

func (c *questionnaireController) navigate(ctx *fiber.Ctx, op func(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.SessionViewResponse, error), msg string) error {
	respondentId, periodId, err := sessionIds(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	res, err := op(ctx.Context(), respondentId, periodId)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(msg, res))
}

func sessionIds(ctx *fiber.Ctx) (respondentId, periodId uuid.UUID, err error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	respondentId, err = uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	periodId, err = uuid.Parse(ctx.Params("periodId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return respondentId, periodId, nil
}
