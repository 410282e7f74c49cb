package controller

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/pkg/serverutils"
	"topicmatch-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetDashboardStats(ctx *fiber.Ctx) error
	GetRespondentProgress(ctx *fiber.Ctx) error
	ResetRespondent(ctx *fiber.Ctx) error

	CreatePeriod(ctx *fiber.Ctx) error
	GetAllPeriods(ctx *fiber.Ctx) error
	UpdatePeriodStatus(ctx *fiber.Ctx) error

	GetQuestions(ctx *fiber.Ctx) error
	CreateQuestion(ctx *fiber.Ctx) error
	UpdateQuestion(ctx *fiber.Ctx) error
	DeleteQuestion(ctx *fiber.Ctx) error

	CreateTopic(ctx *fiber.Ctx) error
	UpdateTopic(ctx *fiber.Ctx) error
	DeleteTopic(ctx *fiber.Ctx) error

	GetMatchingExport(ctx *fiber.Ctx) error

	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	service      service.IAdminService
	topicService service.ITopicService
}

func NewAdminController(service service.IAdminService, topicService service.ITopicService) IAdminController {
	return &adminController{
		service:      service,
		topicService: topicService,
	}
}

// adminMiddleware rejects anything without an admin-role JWT. The token
// is parsed here rather than in JwtMiddleware so the role check and the
// 403 stay in one place.
func (c *adminController) adminMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing or invalid authorization header"))
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || token == nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid or expired token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token claims"))
	}

	role, ok := claims["role"].(string)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Role missing"))
	}
	if role != "admin" {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Admins only"))
	}

	if userId, exists := claims["user_id"]; exists {
		ctx.Locals("user_id", userId)
	}

	return ctx.Next()
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(c.adminMiddleware)

	// Dashboard
	h.Get("/dashboard", c.GetDashboardStats)

	// Periods
	h.Post("/periods", c.CreatePeriod)
	h.Get("/periods", c.GetAllPeriods)
	h.Put("/periods/:id/status", c.UpdatePeriodStatus)
	h.Get("/periods/:id/respondents", c.GetRespondentProgress)
	h.Delete("/periods/:id/respondents/:userId", c.ResetRespondent)
	h.Get("/periods/:id/matching-export", c.GetMatchingExport)

	// Question catalog
	h.Get("/periods/:id/questions", c.GetQuestions)
	h.Post("/periods/:id/questions", c.CreateQuestion)
	h.Put("/questions/:id", c.UpdateQuestion)
	h.Delete("/questions/:id", c.DeleteQuestion)

	// Topics
	h.Post("/topics", c.CreateTopic)
	h.Put("/topics/:id", c.UpdateTopic)
	h.Delete("/topics/:id", c.DeleteTopic)

	// Logs
	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
}

func (c *adminController) GetDashboardStats(ctx *fiber.Ctx) error {
	stats, err := c.service.GetDashboardStats(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard stats", stats))
}

func (c *adminController) GetRespondentProgress(ctx *fiber.Ctx) error {
	periodId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	rows, err := c.service.GetRespondentProgress(ctx.Context(), periodId)
	if err != nil {
		if errors.Is(err, service.ErrPeriodNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Respondent progress", rows))
}

func (c *adminController) ResetRespondent(ctx *fiber.Ctx) error {
	periodId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}
	respondentId, err := uuid.Parse(ctx.Params("userId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	if err := c.service.ResetRespondent(ctx.Context(), periodId, respondentId); err != nil {
		if errors.Is(err, service.ErrPeriodNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Respondent reset", nil))
}

// --- Period Endpoints ---

func (c *adminController) CreatePeriod(ctx *fiber.Ctx) error {
	var req dto.CreatePeriodRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	result, err := c.service.CreatePeriod(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Period created", result))
}

func (c *adminController) GetAllPeriods(ctx *fiber.Ctx) error {
	periods, err := c.service.GetAllPeriods(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Period list", periods))
}

func (c *adminController) UpdatePeriodStatus(ctx *fiber.Ctx) error {
	periodId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	var req dto.UpdatePeriodStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	result, err := c.service.UpdatePeriodStatus(ctx.Context(), periodId, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrPeriodNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		if strings.Contains(err.Error(), "cannot move period") {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Period status updated", result))
}

// --- Question Catalog Endpoints ---

func (c *adminController) GetQuestions(ctx *fiber.Ctx) error {
	periodId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	questions, err := c.service.GetQuestions(ctx.Context(), periodId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Question list", questions))
}

func (c *adminController) CreateQuestion(ctx *fiber.Ctx) error {
	periodId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	var req dto.CreateQuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	question, err := c.service.CreateQuestion(ctx.Context(), periodId, &req)
	if err != nil {
		if errors.Is(err, service.ErrPeriodNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		if strings.Contains(err.Error(), "scale_min") {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Question created", question))
}

func (c *adminController) UpdateQuestion(ctx *fiber.Ctx) error {
	questionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid question ID"))
	}

	var req dto.UpdateQuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.Id = questionId

	question, err := c.service.UpdateQuestion(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		if strings.Contains(err.Error(), "scale_min") {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Question updated", question))
}

func (c *adminController) DeleteQuestion(ctx *fiber.Ctx) error {
	questionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid question ID"))
	}

	if err := c.service.DeleteQuestion(ctx.Context(), questionId); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Question deleted", nil))
}

// --- Topic Endpoints ---

func (c *adminController) CreateTopic(ctx *fiber.Ctx) error {
	var req dto.CreateTopicRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	topic, err := c.topicService.Create(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrPeriodNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Topic created", topic))
}

func (c *adminController) UpdateTopic(ctx *fiber.Ctx) error {
	topicId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid topic ID"))
	}

	var req dto.UpdateTopicRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	req.Id = topicId

	topic, err := c.topicService.Update(ctx.Context(), &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Topic updated", topic))
}

func (c *adminController) DeleteTopic(ctx *fiber.Ctx) error {
	topicId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid topic ID"))
	}

	if err := c.topicService.Delete(ctx.Context(), topicId); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Topic deleted", nil))
}

// --- Matching Export ---

// GetMatchingExport hands back the solver input for a period. Heavy
// lifting lives in pkg/matching; this endpoint just owns the HTTP shape.
func (c *adminController) GetMatchingExport(ctx *fiber.Ctx) error {
	periodId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid period ID"))
	}

	input, err := c.service.GetMatchingExport(ctx.Context(), periodId)
	if err != nil {
		if errors.Is(err, service.ErrPeriodNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		if strings.Contains(err.Error(), "no published topics") {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Matching export", input))
}

// --- Log Endpoints ---

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	level := ctx.Query("level", "")

	logs, err := c.service.GetSystemLogs(ctx.Context(), page, limit, level)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	logId := ctx.Params("id") // Content hash, not a UUID

	l, err := c.service.GetLogDetail(ctx.Context(), logId)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Log not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", l))
}
