package service

import (
	"context"
	"errors"
	"time"

	"topicmatch-be/internal/config"
	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/pkg/logger"
	"topicmatch-be/internal/repository/memory"
	"topicmatch-be/internal/repository/specification"
	"topicmatch-be/internal/repository/unitofwork"
	"topicmatch-be/pkg/events"
	pktNats "topicmatch-be/pkg/nats"
	"topicmatch-be/pkg/questionnaire"
	"topicmatch-be/pkg/store"

	"github.com/google/uuid"
)

var (
	ErrPeriodNotFound  = errors.New("period not found")
	ErrPeriodNotOpen   = errors.New("period is not open for answers")
	ErrNoActiveSession = errors.New("no active questionnaire session")
)

type IQuestionnaireService interface {
	StartSession(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.SessionViewResponse, error)
	GetSession(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.SessionViewResponse, error)
	SetAnswer(ctx context.Context, respondentId, periodId uuid.UUID, req *dto.SetAnswerRequest) (*dto.SessionViewResponse, error)
	Next(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.SessionViewResponse, error)
	Previous(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.SessionViewResponse, error)
	Jump(ctx context.Context, respondentId, periodId uuid.UUID, req *dto.JumpRequest) (*dto.SessionViewResponse, error)
	Submit(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.SessionViewResponse, error)
	DismissSession(ctx context.Context, respondentId, periodId uuid.UUID) error
}

type questionnaireService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionRepository
	committer  questionnaire.Committer
	natsPub    *pktNats.Publisher
	engineCfg  config.EngineConfig
	logger     logger.ILogger
}

func NewQuestionnaireService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	committer questionnaire.Committer,
	natsPub *pktNats.Publisher,
	engineCfg config.EngineConfig,
	log logger.ILogger,
) IQuestionnaireService {
	return &questionnaireService{
		uowFactory: uowFactory,
		sessions:   sessions,
		committer:  committer,
		natsPub:    natsPub,
		engineCfg:  engineCfg,
		logger:     log,
	}
}

// StartSession opens the respondent's run through the period, or resumes
// the live one with a fresh read of the answer store. Resuming is the
// common case after a page reload; the overlay with any unsynced edits
// survives as long as the session itself.
func (s *questionnaireService) StartSession(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.SessionViewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	period, err := uow.PeriodRepository().FindOne(ctx, specification.ByID{ID: periodId})
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, ErrPeriodNotFound
	}
	if !period.AcceptsAnswers() {
		return nil, ErrPeriodNotOpen
	}

	key := store.SessionKey(respondentId, periodId)
	if sess, ok := s.sessions.Get(key); ok {
		if err := s.refreshSnapshot(ctx, uow, sess.Engine); err != nil {
			return nil, err
		}
		s.sessions.Save(sess)
		return s.viewResponse(periodId, sess.Engine.View()), nil
	}

	catalog, err := s.loadCatalog(ctx, uow, periodId)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.loadSnapshot(ctx, uow, respondentId, periodId)
	if err != nil {
		return nil, err
	}

	engine, err := questionnaire.NewSession(questionnaire.Config{
		RespondentID: respondentId,
		PeriodID:     periodId,
		Catalog:      catalog,
		Snapshot:     snapshot,
		Committer:    s.committer,
		Navigation:   s.navigationPolicy(),
		Progress:     s.progressPolicy(),
	})
	if err != nil {
		return nil, err
	}

	sess := store.NewSession(engine)
	s.sessions.Save(sess)

	s.logger.Info("Questionnaire", "Session started", map[string]interface{}{
		"respondent_id": respondentId.String(),
		"period_id":     periodId.String(),
		"questions":     catalog.Len(),
		"persisted":     len(snapshot),
	})
	return s.viewResponse(periodId, engine.View()), nil
}

func (s *questionnaireService) GetSession(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.SessionViewResponse, error) {
	sess, ok := s.sessions.Get(store.SessionKey(respondentId, periodId))
	if !ok {
		return nil, ErrNoActiveSession
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.refreshSnapshot(ctx, uow, sess.Engine); err != nil {
		return nil, err
	}
	s.sessions.Save(sess)
	return s.viewResponse(periodId, sess.Engine.View()), nil
}

func (s *questionnaireService) SetAnswer(ctx context.Context, respondentId, periodId uuid.UUID, req *dto.SetAnswerRequest) (*dto.SessionViewResponse, error) {
	sess, ok := s.sessions.Get(store.SessionKey(respondentId, periodId))
	if !ok {
		return nil, ErrNoActiveSession
	}
	value, err := parseAnswerValue(req.Value)
	if err != nil {
		return nil, err
	}
	if err := sess.Engine.SetAnswer(value); err != nil {
		return nil, err
	}
	s.sessions.Save(sess)
	return s.viewResponse(periodId, sess.Engine.View()), nil
}

func (s *questionnaireService) Next(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.SessionViewResponse, error) {
	sess, ok := s.sessions.Get(store.SessionKey(respondentId, periodId))
	if !ok {
		return nil, ErrNoActiveSession
	}
	view := sess.Engine.Next(ctx)
	s.sessions.Save(sess)
	return s.viewResponse(periodId, view), nil
}

func (s *questionnaireService) Previous(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.SessionViewResponse, error) {
	sess, ok := s.sessions.Get(store.SessionKey(respondentId, periodId))
	if !ok {
		return nil, ErrNoActiveSession
	}
	view := sess.Engine.Previous()
	s.sessions.Save(sess)
	return s.viewResponse(periodId, view), nil
}

func (s *questionnaireService) Jump(ctx context.Context, respondentId, periodId uuid.UUID, req *dto.JumpRequest) (*dto.SessionViewResponse, error) {
	sess, ok := s.sessions.Get(store.SessionKey(respondentId, periodId))
	if !ok {
		return nil, ErrNoActiveSession
	}
	view := sess.Engine.Jump(req.QuestionId)
	s.sessions.Save(sess)
	return s.viewResponse(periodId, view), nil
}

// Submit finalizes the questionnaire: one batch write covering every
// question, untouched ones on their kind default. A submit already in
// flight makes this a no-op that just reports the current view. Success
// tears the live session down and announces the submission.
func (s *questionnaireService) Submit(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.SessionViewResponse, error) {
	key := store.SessionKey(respondentId, periodId)
	sess, ok := s.sessions.Get(key)
	if !ok {
		return nil, ErrNoActiveSession
	}

	err := sess.Engine.Submit(ctx)
	if errors.Is(err, questionnaire.ErrSubmitInFlight) {
		return s.viewResponse(periodId, sess.Engine.View()), nil
	}
	if err != nil {
		s.logger.Error("Questionnaire", "Submit failed", map[string]interface{}{
			"respondent_id": respondentId.String(),
			"period_id":     periodId.String(),
			"error":         err.Error(),
		})
		s.sessions.Save(sess)
		return nil, err
	}

	view := sess.Engine.View()
	s.sessions.Delete(key)
	s.publishSubmitted(ctx, respondentId, periodId, view)

	s.logger.Info("Questionnaire", "Questionnaire submitted", map[string]interface{}{
		"respondent_id": respondentId.String(),
		"period_id":     periodId.String(),
		"answered":      view.AnsweredCount,
	})
	return s.viewResponse(periodId, view), nil
}

// DismissSession drops the live engine. Commits already on the queue run
// to completion against the store; they just have no session left to ack.
func (s *questionnaireService) DismissSession(ctx context.Context, respondentId, periodId uuid.UUID) error {
	s.sessions.Delete(store.SessionKey(respondentId, periodId))
	return nil
}

func (s *questionnaireService) loadCatalog(ctx context.Context, uow unitofwork.UnitOfWork, periodId uuid.UUID) (*questionnaire.Catalog, error) {
	rows, err := uow.QuestionRepository().FindAll(ctx,
		specification.ByPeriodID{PeriodID: periodId},
		specification.OrderByPosition{},
	)
	if err != nil {
		return nil, err
	}
	questions := make([]questionnaire.Question, 0, len(rows))
	for _, q := range rows {
		questions = append(questions, questionnaire.Question{
			ID:       q.Id,
			Text:     q.Text,
			Kind:     questionnaire.Kind(q.Kind),
			Min:      q.ScaleMin,
			Max:      q.ScaleMax,
			Position: q.Position,
		})
	}
	return questionnaire.NewCatalog(questions)
}

func (s *questionnaireService) loadSnapshot(ctx context.Context, uow unitofwork.UnitOfWork, respondentId, periodId uuid.UUID) (map[uuid.UUID]questionnaire.Value, error) {
	rows, err := uow.AnswerRepository().FindAll(ctx,
		specification.ByRespondentAndPeriod{RespondentID: respondentId, PeriodID: periodId},
	)
	if err != nil {
		return nil, err
	}
	snapshot := make(map[uuid.UUID]questionnaire.Value, len(rows))
	for _, a := range rows {
		if v, ok := valueFromAnswer(a); ok {
			snapshot[a.QuestionId] = v
		}
	}
	return snapshot, nil
}

func (s *questionnaireService) refreshSnapshot(ctx context.Context, uow unitofwork.UnitOfWork, engine *questionnaire.Session) error {
	snapshot, err := s.loadSnapshot(ctx, uow, engine.RespondentID(), engine.PeriodID())
	if err != nil {
		return err
	}
	engine.RefreshSnapshot(snapshot)
	return nil
}

func (s *questionnaireService) navigationPolicy() questionnaire.NavigationPolicy {
	if s.engineCfg.Navigation == "unanswered" {
		return questionnaire.NavigateUnanswered
	}
	return questionnaire.NavigateAll
}

func (s *questionnaireService) progressPolicy() questionnaire.ProgressPolicy {
	if s.engineCfg.Progress == "persisted" {
		return questionnaire.ProgressPersisted
	}
	return questionnaire.ProgressEffective
}

func (s *questionnaireService) publishSubmitted(ctx context.Context, respondentId, periodId uuid.UUID, view questionnaire.View) {
	if s.natsPub == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	payload := map[string]interface{}{
		"user_id":        respondentId.String(),
		"period_id":      periodId.String(),
		"answered_count": view.AnsweredCount,
		"total_count":    view.Total,
		"progress":       view.Progress,
		"entity_type":    "answer_batch",
		"entity_id":      periodId.String(),
	}
	if respondent, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: respondentId}); err == nil && respondent != nil {
		payload["respondent_email"] = respondent.Email
		payload["full_name"] = respondent.FullName
	}
	if period, err := uow.PeriodRepository().FindOne(ctx, specification.ByID{ID: periodId}); err == nil && period != nil {
		payload["period_name"] = period.Name
	}

	evt := events.BaseEvent{
		Type:       events.TypeQuestionnaireSubmitted,
		Data:       payload,
		OccurredAt: time.Now(),
	}
	if err := s.natsPub.Publish(ctx, evt); err != nil {
		s.logger.Error("Questionnaire", "Failed to publish submission event", map[string]interface{}{
			"respondent_id": respondentId.String(),
			"error":         err.Error(),
		})
	}
}

// parseAnswerValue converts the raw JSON value of a set-answer request
// into an engine value. JSON gives us bool or float64; which one the
// current question actually takes is the engine's check, not ours.
func parseAnswerValue(raw interface{}) (questionnaire.Value, error) {
	switch v := raw.(type) {
	case bool:
		return questionnaire.BoolValue(v), nil
	case float64:
		return questionnaire.NumberValue(v), nil
	case nil:
		return questionnaire.Value{}, errors.New("value is required")
	default:
		return questionnaire.Value{}, errors.New("value must be a boolean or a number")
	}
}

func (s *questionnaireService) viewResponse(periodId uuid.UUID, view questionnaire.View) *dto.SessionViewResponse {
	res := &dto.SessionViewResponse{
		PeriodId:      periodId,
		Items:         make([]dto.SessionItem, 0, len(view.Items)),
		Index:         view.Index,
		TotalCount:    view.Total,
		AnsweredCount: view.AnsweredCount,
		Remaining:     view.Remaining,
		Progress:      view.Progress,
		IsFirst:       view.IsFirst,
		IsLast:        view.IsLast,
		IsComplete:    view.IsComplete,
		IsSubmitting:  view.IsSubmitting,
	}
	for _, item := range view.Items {
		res.Items = append(res.Items, sessionItemFrom(item))
	}
	if view.Current != nil {
		current := sessionItemFrom(*view.Current)
		res.Current = &current
	}
	return res
}

func sessionItemFrom(item questionnaire.Item) dto.SessionItem {
	q := dto.SessionQuestion{
		Id:       item.Question.ID,
		Text:     item.Question.Text,
		Kind:     string(item.Question.Kind),
		Position: item.Question.Position,
	}
	if item.Question.Kind == questionnaire.KindScale {
		min, max := item.Question.Min, item.Question.Max
		q.ScaleMin = &min
		q.ScaleMax = &max
	}

	out := dto.SessionItem{
		Question:  q,
		Standing:  string(item.Standing),
		LastError: item.LastErr,
	}
	if item.Value != nil {
		switch item.Value.Kind {
		case questionnaire.KindBoolean:
			out.Value = item.Value.Bool
		case questionnaire.KindScale:
			out.Value = item.Value.Number
		}
	}
	return out
}
