package mapper

import (
	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/model"
)

type RankingMapper struct{}

func NewRankingMapper() *RankingMapper {
	return &RankingMapper{}
}

func (m *RankingMapper) ToEntity(r *model.Ranking) *entity.Ranking {
	if r == nil {
		return nil
	}
	return &entity.Ranking{
		Id:           r.Id,
		RespondentId: r.RespondentId,
		PeriodId:     r.PeriodId,
		TopicId:      r.TopicId,
		Rank:         r.Rank,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (m *RankingMapper) ToModel(r *entity.Ranking) *model.Ranking {
	if r == nil {
		return nil
	}
	return &model.Ranking{
		Id:           r.Id,
		RespondentId: r.RespondentId,
		PeriodId:     r.PeriodId,
		TopicId:      r.TopicId,
		Rank:         r.Rank,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (m *RankingMapper) ToEntities(rankings []*model.Ranking) []*entity.Ranking {
	entities := make([]*entity.Ranking, len(rankings))
	for i, r := range rankings {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func (m *RankingMapper) ToModels(rankings []*entity.Ranking) []*model.Ranking {
	models := make([]*model.Ranking, len(rankings))
	for i, r := range rankings {
		models[i] = m.ToModel(r)
	}
	return models
}
