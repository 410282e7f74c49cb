package mapper

import (
	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/model"
)

type PeriodMapper struct{}

func NewPeriodMapper() *PeriodMapper {
	return &PeriodMapper{}
}

func (m *PeriodMapper) ToEntity(p *model.Period) *entity.Period {
	if p == nil {
		return nil
	}
	return &entity.Period{
		Id:        p.Id,
		Name:      p.Name,
		Status:    entity.PeriodStatus(p.Status),
		OpensAt:   p.OpensAt,
		ClosesAt:  p.ClosesAt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PeriodMapper) ToModel(p *entity.Period) *model.Period {
	if p == nil {
		return nil
	}
	return &model.Period{
		Id:        p.Id,
		Name:      p.Name,
		Status:    string(p.Status),
		OpensAt:   p.OpensAt,
		ClosesAt:  p.ClosesAt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PeriodMapper) ToEntities(periods []*model.Period) []*entity.Period {
	entities := make([]*entity.Period, len(periods))
	for i, p := range periods {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
