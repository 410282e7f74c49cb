package mapper

import (
	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/model"
)

type AnswerMapper struct{}

func NewAnswerMapper() *AnswerMapper {
	return &AnswerMapper{}
}

func (m *AnswerMapper) ToEntity(a *model.Answer) *entity.Answer {
	if a == nil {
		return nil
	}
	return &entity.Answer{
		Id:           a.Id,
		RespondentId: a.RespondentId,
		PeriodId:     a.PeriodId,
		QuestionId:   a.QuestionId,
		Kind:         entity.QuestionKind(a.Kind),
		BoolValue:    a.BoolValue,
		NumberValue:  a.NumberValue,
		Submitted:    a.Submitted,
		SubmittedAt:  a.SubmittedAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *AnswerMapper) ToModel(a *entity.Answer) *model.Answer {
	if a == nil {
		return nil
	}
	return &model.Answer{
		Id:           a.Id,
		RespondentId: a.RespondentId,
		PeriodId:     a.PeriodId,
		QuestionId:   a.QuestionId,
		Kind:         string(a.Kind),
		BoolValue:    a.BoolValue,
		NumberValue:  a.NumberValue,
		Submitted:    a.Submitted,
		SubmittedAt:  a.SubmittedAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *AnswerMapper) ToEntities(answers []*model.Answer) []*entity.Answer {
	entities := make([]*entity.Answer, len(answers))
	for i, a := range answers {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

func (m *AnswerMapper) ToModels(answers []*entity.Answer) []*model.Answer {
	models := make([]*model.Answer, len(answers))
	for i, a := range answers {
		models[i] = m.ToModel(a)
	}
	return models
}
