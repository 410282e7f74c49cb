package service

import (
	"context"
	"errors"
	"time"

	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/repository/specification"
	"topicmatch-be/internal/repository/unitofwork"
	adminEvents "topicmatch-be/pkg/admin/events"

	"github.com/google/uuid"
)

type ITopicService interface {
	GetPublished(ctx context.Context, periodId uuid.UUID) ([]*dto.TopicResponse, error)
	Create(ctx context.Context, req *dto.CreateTopicRequest) (*dto.TopicResponse, error)
	Update(ctx context.Context, req *dto.UpdateTopicRequest) (*dto.TopicResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type topicService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  adminEvents.Publisher
}

func NewTopicService(uowFactory unitofwork.RepositoryFactory, publisher adminEvents.Publisher) ITopicService {
	return &topicService{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// GetPublished lists the topics students can rank in the period, in
// display order.
func (s *topicService) GetPublished(ctx context.Context, periodId uuid.UUID) ([]*dto.TopicResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	topics, err := uow.TopicRepository().FindAll(ctx,
		specification.ByPeriodID{PeriodID: periodId},
		specification.PublishedTopics{},
		specification.OrderByPosition{},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TopicResponse, 0, len(topics))
	for _, t := range topics {
		result = append(result, topicResponseFrom(t))
	}
	return result, nil
}

func (s *topicService) Create(ctx context.Context, req *dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	period, err := uow.PeriodRepository().FindOne(ctx, specification.ByID{ID: req.PeriodId})
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, ErrPeriodNotFound
	}

	topic := entity.Topic{
		Id:          uuid.New(),
		PeriodId:    req.PeriodId,
		Title:       req.Title,
		Description: req.Description,
		Supervisor:  req.Supervisor,
		Capacity:    req.Capacity,
		Status:      entity.TopicStatusDraft,
		Position:    req.Position,
		CreatedAt:   time.Now(),
	}
	if err := uow.TopicRepository().Create(ctx, &topic); err != nil {
		return nil, err
	}
	return topicResponseFrom(&topic), nil
}

func (s *topicService) Update(ctx context.Context, req *dto.UpdateTopicRequest) (*dto.TopicResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	topic, err := uow.TopicRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, errors.New("topic not found")
	}

	wasPublished := topic.Status == entity.TopicStatusPublished

	if req.Title != "" {
		topic.Title = req.Title
	}
	if req.Description != nil {
		topic.Description = *req.Description
	}
	if req.Supervisor != nil {
		topic.Supervisor = *req.Supervisor
	}
	if req.Capacity != nil {
		topic.Capacity = *req.Capacity
	}
	if req.Position != nil {
		topic.Position = *req.Position
	}
	if req.Status != "" {
		topic.Status = entity.TopicStatus(req.Status)
	}
	now := time.Now()
	topic.UpdatedAt = &now

	if err := uow.TopicRepository().Update(ctx, topic); err != nil {
		return nil, err
	}

	if !wasPublished && topic.Status == entity.TopicStatusPublished && s.publisher != nil {
		s.publisher.PublishTopicPublished(ctx, topic.Id, topic.PeriodId, topic.Title)
	}
	return topicResponseFrom(topic), nil
}

func (s *topicService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	topic, err := uow.TopicRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if topic == nil {
		return nil
	}
	return uow.TopicRepository().Delete(ctx, id)
}

func topicResponseFrom(t *entity.Topic) *dto.TopicResponse {
	return &dto.TopicResponse{
		Id:          t.Id,
		PeriodId:    t.PeriodId,
		Title:       t.Title,
		Description: t.Description,
		Supervisor:  t.Supervisor,
		Capacity:    t.Capacity,
		Status:      string(t.Status),
		Position:    t.Position,
		CreatedAt:   t.CreatedAt,
	}
}
