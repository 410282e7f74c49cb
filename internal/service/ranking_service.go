package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/pkg/logger"
	"topicmatch-be/internal/repository/specification"
	"topicmatch-be/internal/repository/unitofwork"
	"topicmatch-be/pkg/events"
	pktNats "topicmatch-be/pkg/nats"

	"github.com/google/uuid"
)

type IRankingService interface {
	Submit(ctx context.Context, respondentId, periodId uuid.UUID, req *dto.SubmitRankingRequest) (*dto.RankingResponse, error)
	Get(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.RankingResponse, error)
}

type rankingService struct {
	uowFactory unitofwork.RepositoryFactory
	natsPub    *pktNats.Publisher
	logger     logger.ILogger
}

func NewRankingService(uowFactory unitofwork.RepositoryFactory, natsPub *pktNats.Publisher, log logger.ILogger) IRankingService {
	return &rankingService{
		uowFactory: uowFactory,
		natsPub:    natsPub,
		logger:     log,
	}
}

// Submit stores the respondent's complete preference order for the
// period. The list must name every published topic exactly once; partial
// or padded lists are rejected, so stored rank values always form a
// permutation of 1..N. A resubmission replaces the previous order whole.
func (s *rankingService) Submit(ctx context.Context, respondentId, periodId uuid.UUID, req *dto.SubmitRankingRequest) (*dto.RankingResponse, error) {
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

	topics, err := uow.TopicRepository().FindAll(ctx,
		specification.ByPeriodID{PeriodID: periodId},
		specification.PublishedTopics{},
	)
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, errors.New("period has no published topics to rank")
	}

	known := make(map[uuid.UUID]*entity.Topic, len(topics))
	for _, t := range topics {
		known[t.Id] = t
	}
	if len(req.TopicIds) != len(topics) {
		return nil, fmt.Errorf("ranking must cover all %d topics, got %d", len(topics), len(req.TopicIds))
	}
	seen := make(map[uuid.UUID]bool, len(req.TopicIds))
	for _, id := range req.TopicIds {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("topic %s is not rankable in this period", id)
		}
		if seen[id] {
			return nil, fmt.Errorf("topic %s is ranked twice", id)
		}
		seen[id] = true
	}

	now := time.Now()
	rankings := make([]*entity.Ranking, 0, len(req.TopicIds))
	for i, topicId := range req.TopicIds {
		rankings = append(rankings, &entity.Ranking{
			Id:           uuid.New(),
			RespondentId: respondentId,
			PeriodId:     periodId,
			TopicId:      topicId,
			Rank:         i + 1,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()
	if err := uow.RankingRepository().ReplaceForRespondent(ctx, respondentId, periodId, rankings); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishRankingSubmitted(ctx, respondentId, periodId, period.Name, len(rankings))

	entries := make([]dto.RankingEntryResponse, 0, len(rankings))
	for _, r := range rankings {
		entry := dto.RankingEntryResponse{TopicId: r.TopicId, Rank: r.Rank}
		if t := known[r.TopicId]; t != nil {
			entry.TopicTitle = t.Title
		}
		entries = append(entries, entry)
	}
	return &dto.RankingResponse{
		PeriodId:    periodId,
		Entries:     entries,
		SubmittedAt: &now,
	}, nil
}

// Get returns the caller's stored ranking for the period, best first.
// An empty entry list means nothing has been submitted yet.
func (s *rankingService) Get(ctx context.Context, respondentId, periodId uuid.UUID) (*dto.RankingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rankings, err := uow.RankingRepository().FindAll(ctx,
		specification.ByRespondentAndPeriod{RespondentID: respondentId, PeriodID: periodId},
		specification.OrderByRank{},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.RankingResponse{
		PeriodId: periodId,
		Entries:  make([]dto.RankingEntryResponse, 0, len(rankings)),
	}
	if len(rankings) == 0 {
		return res, nil
	}

	topics, err := uow.TopicRepository().FindAll(ctx, specification.ByPeriodID{PeriodID: periodId})
	if err != nil {
		return nil, err
	}
	titles := make(map[uuid.UUID]string, len(topics))
	for _, t := range topics {
		titles[t.Id] = t.Title
	}

	var submittedAt time.Time
	for _, r := range rankings {
		res.Entries = append(res.Entries, dto.RankingEntryResponse{
			TopicId:    r.TopicId,
			TopicTitle: titles[r.TopicId],
			Rank:       r.Rank,
		})
		if r.UpdatedAt.After(submittedAt) {
			submittedAt = r.UpdatedAt
		}
	}
	res.SubmittedAt = &submittedAt
	return res, nil
}

func (s *rankingService) publishRankingSubmitted(ctx context.Context, respondentId, periodId uuid.UUID, periodName string, count int) {
	if s.natsPub == nil {
		return
	}
	evt := events.BaseEvent{
		Type: events.TypeRankingSubmitted,
		Data: map[string]interface{}{
			"user_id":     respondentId.String(),
			"period_id":   periodId.String(),
			"period_name": periodName,
			"topics":      count,
			"entity_type": "period",
			"entity_id":   periodId.String(),
		},
		OccurredAt: time.Now(),
	}
	if err := s.natsPub.Publish(ctx, evt); err != nil {
		s.logger.Error("Ranking", "Failed to publish ranking event", map[string]interface{}{
			"respondent_id": respondentId.String(),
			"error":         err.Error(),
		})
	}
}
