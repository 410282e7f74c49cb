package mapper

import (
	"time"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/model"

	"gorm.io/gorm"
)

type QuestionMapper struct{}

func NewQuestionMapper() *QuestionMapper {
	return &QuestionMapper{}
}

func (m *QuestionMapper) ToEntity(q *model.Question) *entity.Question {
	if q == nil {
		return nil
	}
	// gorm.DeletedAt is struct { Time time.Time; Valid bool }
	var deletedAt *time.Time
	if q.DeletedAt.Valid {
		t := q.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !q.UpdatedAt.IsZero() {
		t := q.UpdatedAt
		updatedAt = &t
	}

	return &entity.Question{
		Id:        q.Id,
		PeriodId:  q.PeriodId,
		Text:      q.Text,
		Kind:      entity.QuestionKind(q.Kind),
		ScaleMin:  q.ScaleMin,
		ScaleMax:  q.ScaleMax,
		Position:  q.Position,
		CreatedAt: q.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: q.DeletedAt.Valid,
	}
}

func (m *QuestionMapper) ToModel(q *entity.Question) *model.Question {
	if q == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if q.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *q.DeletedAt, Valid: true}
	} else if q.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if q.UpdatedAt != nil {
		updatedAt = *q.UpdatedAt
	}

	return &model.Question{
		Id:        q.Id,
		PeriodId:  q.PeriodId,
		Text:      q.Text,
		Kind:      string(q.Kind),
		ScaleMin:  q.ScaleMin,
		ScaleMax:  q.ScaleMax,
		Position:  q.Position,
		CreatedAt: q.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *QuestionMapper) ToEntities(questions []*model.Question) []*entity.Question {
	entities := make([]*entity.Question, len(questions))
	for i, q := range questions {
		entities[i] = m.ToEntity(q)
	}
	return entities
}

func (m *QuestionMapper) ToModels(questions []*entity.Question) []*model.Question {
	models := make([]*model.Question, len(questions))
	for i, q := range questions {
		models[i] = m.ToModel(q)
	}
	return models
}
