package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/pkg/logger"
	"topicmatch-be/internal/repository/specification"
	"topicmatch-be/internal/repository/unitofwork"
	"topicmatch-be/pkg/admin/dashboard"
	adminEvents "topicmatch-be/pkg/admin/events"
	"topicmatch-be/pkg/matching"

	"github.com/google/uuid"
)

var ErrQuestionNotFound = errors.New("question not found")

type IAdminService interface {
	// Dashboard & Stats
	GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error)
	GetRespondentProgress(ctx context.Context, periodId uuid.UUID) ([]*dto.RespondentProgressResponse, error)
	ResetRespondent(ctx context.Context, periodId, respondentId uuid.UUID) error

	// Period Management
	CreatePeriod(ctx context.Context, req *dto.CreatePeriodRequest) (*dto.PeriodResponse, error)
	GetAllPeriods(ctx context.Context) ([]*dto.PeriodResponse, error)
	UpdatePeriodStatus(ctx context.Context, periodId uuid.UUID, status string) (*dto.PeriodResponse, error)

	// Question Catalog
	GetQuestions(ctx context.Context, periodId uuid.UUID) ([]*dto.QuestionResponse, error)
	CreateQuestion(ctx context.Context, periodId uuid.UUID, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, questionId uuid.UUID) error

	// Matching Export
	GetMatchingExport(ctx context.Context, periodId uuid.UUID) (*matching.Input, error)

	// Logs
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger

	// Domain Components
	dashboardAggregator *dashboard.Aggregator
	matchingBuilder     *matching.Builder
	eventPublisher      adminEvents.Publisher
	exportDir           string
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	dashboardAggregator *dashboard.Aggregator,
	matchingBuilder *matching.Builder,
	eventPublisher adminEvents.Publisher,
	exportDir string,
) IAdminService {
	return &adminService{
		uowFactory:          uowFactory,
		logger:              logger,
		dashboardAggregator: dashboardAggregator,
		matchingBuilder:     matchingBuilder,
		eventPublisher:      eventPublisher,
		exportDir:           exportDir,
	}
}

// ============================================================================
// Dashboard & Stats
// ============================================================================

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.dashboardAggregator.GetStats(ctx, uow)
}

func (s *adminService) GetRespondentProgress(ctx context.Context, periodId uuid.UUID) ([]*dto.RespondentProgressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	period, err := uow.PeriodRepository().FindOne(ctx, specification.ByID{ID: periodId})
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, ErrPeriodNotFound
	}
	return s.dashboardAggregator.GetRespondentProgress(ctx, uow, periodId)
}

// ResetRespondent wipes a respondent's stored answers and rankings for a
// period so they can redo the questionnaire from scratch. A session the
// respondent still has open keeps its local values; the wipe is visible
// the next time a session starts.
func (s *adminService) ResetRespondent(ctx context.Context, periodId, respondentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	period, err := uow.PeriodRepository().FindOne(ctx, specification.ByID{ID: periodId})
	if err != nil {
		return err
	}
	if period == nil {
		return ErrPeriodNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()
	if err := uow.AnswerRepository().DeleteAllByRespondentAndPeriod(ctx, respondentId, periodId); err != nil {
		return err
	}
	if err := uow.RankingRepository().DeleteAllByRespondentAndPeriod(ctx, respondentId, periodId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("ADMIN", "Respondent reset", map[string]interface{}{
		"period_id":     periodId.String(),
		"respondent_id": respondentId.String(),
	})
	return nil
}

// ============================================================================
// Period Management
// ============================================================================

func (s *adminService) CreatePeriod(ctx context.Context, req *dto.CreatePeriodRequest) (*dto.PeriodResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	period := &entity.Period{
		Id:       uuid.New(),
		Name:     req.Name,
		Status:   entity.PeriodStatusDraft,
		OpensAt:  req.OpensAt,
		ClosesAt: req.ClosesAt,
	}
	if err := uow.PeriodRepository().Create(ctx, period); err != nil {
		return nil, err
	}
	return periodResponseFrom(period), nil
}

func (s *adminService) GetAllPeriods(ctx context.Context) ([]*dto.PeriodResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	periods, err := uow.PeriodRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}
	res := make([]*dto.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		res = append(res, periodResponseFrom(p))
	}
	return res, nil
}

// UpdatePeriodStatus moves a period forward through its lifecycle.
// Transitions only ever run draft -> open -> closed; a closed period
// stays closed so stored answers and rankings cannot silently reopen.
func (s *adminService) UpdatePeriodStatus(ctx context.Context, periodId uuid.UUID, status string) (*dto.PeriodResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	period, err := uow.PeriodRepository().FindOne(ctx, specification.ByID{ID: periodId})
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, ErrPeriodNotFound
	}

	target := entity.PeriodStatus(status)
	if target == period.Status {
		return periodResponseFrom(period), nil
	}
	if !periodTransitionAllowed(period.Status, target) {
		return nil, fmt.Errorf("cannot move period from %s to %s", period.Status, target)
	}

	now := time.Now()
	period.Status = target
	switch target {
	case entity.PeriodStatusOpen:
		if period.OpensAt == nil {
			period.OpensAt = &now
		}
	case entity.PeriodStatusClosed:
		if period.ClosesAt == nil {
			period.ClosesAt = &now
		}
	}
	if err := uow.PeriodRepository().Update(ctx, period); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		switch target {
		case entity.PeriodStatusOpen:
			s.eventPublisher.PublishPeriodOpened(ctx, period.Id, period.Name, period.ClosesAt)
		case entity.PeriodStatusClosed:
			s.eventPublisher.PublishPeriodClosed(ctx, period.Id, period.Name)
		}
	}

	s.logger.Info("ADMIN", "Period status changed", map[string]interface{}{
		"period_id": period.Id.String(),
		"status":    string(target),
	})
	return periodResponseFrom(period), nil
}

func periodTransitionAllowed(from, to entity.PeriodStatus) bool {
	switch from {
	case entity.PeriodStatusDraft:
		return to == entity.PeriodStatusOpen
	case entity.PeriodStatusOpen:
		return to == entity.PeriodStatusClosed
	default:
		return false
	}
}

func periodResponseFrom(p *entity.Period) *dto.PeriodResponse {
	return &dto.PeriodResponse{
		Id:        p.Id,
		Name:      p.Name,
		Status:    string(p.Status),
		OpensAt:   p.OpensAt,
		ClosesAt:  p.ClosesAt,
		CreatedAt: p.CreatedAt,
	}
}

// ============================================================================
// Question Catalog
// ============================================================================

func (s *adminService) GetQuestions(ctx context.Context, periodId uuid.UUID) ([]*dto.QuestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	questions, err := uow.QuestionRepository().FindAll(ctx,
		specification.ByPeriodID{PeriodID: periodId},
		specification.OrderByPosition{},
	)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		res = append(res, questionResponseFrom(q))
	}
	return res, nil
}

func (s *adminService) CreateQuestion(ctx context.Context, periodId uuid.UUID, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	period, err := uow.PeriodRepository().FindOne(ctx, specification.ByID{ID: periodId})
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, ErrPeriodNotFound
	}

	question := &entity.Question{
		Id:       uuid.New(),
		PeriodId: periodId,
		Text:     req.Text,
		Kind:     entity.QuestionKind(req.Kind),
	}
	if question.Kind == entity.QuestionKindScale {
		question.ScaleMin = 1
		question.ScaleMax = 5
		if req.ScaleMin != nil {
			question.ScaleMin = *req.ScaleMin
		}
		if req.ScaleMax != nil {
			question.ScaleMax = *req.ScaleMax
		}
		if question.ScaleMin >= question.ScaleMax {
			return nil, errors.New("scale_min must be lower than scale_max")
		}
	}

	if req.Position != nil {
		question.Position = *req.Position
	} else {
		max, err := uow.QuestionRepository().MaxPosition(ctx, periodId)
		if err != nil {
			return nil, err
		}
		question.Position = max + 1
	}

	if err := uow.QuestionRepository().Create(ctx, question); err != nil {
		return nil, err
	}
	return questionResponseFrom(question), nil
}

// UpdateQuestion edits text, scale bounds and position. Kind is fixed at
// creation: stored answers are typed against it.
func (s *adminService) UpdateQuestion(ctx context.Context, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	question, err := uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	if req.Text != "" {
		question.Text = req.Text
	}
	if question.Kind == entity.QuestionKindScale {
		if req.ScaleMin != nil {
			question.ScaleMin = *req.ScaleMin
		}
		if req.ScaleMax != nil {
			question.ScaleMax = *req.ScaleMax
		}
		if question.ScaleMin >= question.ScaleMax {
			return nil, errors.New("scale_min must be lower than scale_max")
		}
	}
	if req.Position != nil {
		question.Position = *req.Position
	}

	if err := uow.QuestionRepository().Update(ctx, question); err != nil {
		return nil, err
	}
	return questionResponseFrom(question), nil
}

func (s *adminService) DeleteQuestion(ctx context.Context, questionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	question, err := uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: questionId})
	if err != nil {
		return err
	}
	if question == nil {
		return nil
	}
	return uow.QuestionRepository().Delete(ctx, questionId)
}

func questionResponseFrom(q *entity.Question) *dto.QuestionResponse {
	return &dto.QuestionResponse{
		Id:        q.Id,
		PeriodId:  q.PeriodId,
		Text:      q.Text,
		Kind:      string(q.Kind),
		ScaleMin:  q.ScaleMin,
		ScaleMax:  q.ScaleMax,
		Position:  q.Position,
		CreatedAt: q.CreatedAt,
	}
}

// ============================================================================
// Matching Export
// ============================================================================

// GetMatchingExport assembles the solver input for a period and keeps a
// JSON copy on disk as the audit record of what was handed out.
func (s *adminService) GetMatchingExport(ctx context.Context, periodId uuid.UUID) (*matching.Input, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	period, err := uow.PeriodRepository().FindOne(ctx, specification.ByID{ID: periodId})
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, ErrPeriodNotFound
	}

	input, err := s.matchingBuilder.Build(ctx, uow, periodId)
	if err != nil {
		return nil, err
	}

	// The export itself must not fail because the disk copy did.
	if path, err := s.writeExportFile(input); err != nil {
		s.logger.Error("ADMIN", "Failed to write matching export file", map[string]interface{}{
			"period_id": periodId.String(),
			"error":     err.Error(),
		})
	} else {
		s.logger.Info("ADMIN", "Matching export written", map[string]interface{}{
			"period_id": periodId.String(),
			"path":      path,
		})
	}

	if s.eventPublisher != nil {
		s.eventPublisher.PublishMatchingExported(ctx, period.Id, period.Name, input.NumTeams, input.NumAgents)
	}
	return input, nil
}

func (s *adminService) writeExportFile(input *matching.Input) (string, error) {
	if s.exportDir == "" {
		return "", errors.New("export directory not configured")
	}
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("matching_%s_%d.json", input.PeriodId, input.GeneratedAt.Unix())
	path := filepath.Join(s.exportDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ============================================================================
// Logs
// ============================================================================

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	return s.dashboardAggregator.GetSystemLogs(ctx, s.logger, page, limit, level)
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	return s.dashboardAggregator.GetLogDetail(ctx, s.logger, logId)
}
