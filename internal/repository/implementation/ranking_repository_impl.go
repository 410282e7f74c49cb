package implementation

import (
	"context"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/mapper"
	"topicmatch-be/internal/model"
	"topicmatch-be/internal/repository/contract"
	"topicmatch-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RankingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RankingMapper
}

func NewRankingRepository(db *gorm.DB) contract.RankingRepository {
	return &RankingRepositoryImpl{
		db:     db,
		mapper: mapper.NewRankingMapper(),
	}
}

func (r *RankingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// ReplaceForRespondent swaps the respondent's ranking for the period in one
// shot. Callers run it inside a unit of work so a failed insert does not leave
// the respondent without any ranking.
func (r *RankingRepositoryImpl) ReplaceForRespondent(ctx context.Context, respondentId, periodId uuid.UUID, rankings []*entity.Ranking) error {
	err := r.db.WithContext(ctx).
		Where("respondent_id = ? AND period_id = ?", respondentId, periodId).
		Delete(&model.Ranking{}).Error
	if err != nil {
		return err
	}
	if len(rankings) == 0 {
		return nil
	}
	models := make([]*model.Ranking, 0, len(rankings))
	for _, rk := range rankings {
		models = append(models, r.mapper.ToModel(rk))
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*rankings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *RankingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ranking, error) {
	var models []*model.Ranking
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RankingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Ranking{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RankingRepositoryImpl) CountRespondents(ctx context.Context, periodId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Ranking{}).
		Where("period_id = ?", periodId).
		Distinct("respondent_id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RankingRepositoryImpl) DeleteAllByRespondentAndPeriod(ctx context.Context, respondentId, periodId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("respondent_id = ? AND period_id = ?", respondentId, periodId).
		Delete(&model.Ranking{}).Error
}
