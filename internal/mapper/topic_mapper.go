package mapper

import (
	"time"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/model"

	"gorm.io/gorm"
)

type TopicMapper struct{}

func NewTopicMapper() *TopicMapper {
	return &TopicMapper{}
}

func (m *TopicMapper) ToEntity(t *model.Topic) *entity.Topic {
	if t == nil {
		return nil
	}
	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		ts := t.DeletedAt.Time
		deletedAt = &ts
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ts := t.UpdatedAt
		updatedAt = &ts
	}

	return &entity.Topic{
		Id:          t.Id,
		PeriodId:    t.PeriodId,
		Title:       t.Title,
		Description: t.Description,
		Supervisor:  t.Supervisor,
		Capacity:    t.Capacity,
		Status:      entity.TopicStatus(t.Status),
		Position:    t.Position,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   t.DeletedAt.Valid,
	}
}

func (m *TopicMapper) ToModel(t *entity.Topic) *model.Topic {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Topic{
		Id:          t.Id,
		PeriodId:    t.PeriodId,
		Title:       t.Title,
		Description: t.Description,
		Supervisor:  t.Supervisor,
		Capacity:    t.Capacity,
		Status:      string(t.Status),
		Position:    t.Position,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *TopicMapper) ToEntities(topics []*model.Topic) []*entity.Topic {
	entities := make([]*entity.Topic, len(topics))
	for i, t := range topics {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
