package implementation

import (
	"context"
	"errors"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/mapper"
	"topicmatch-be/internal/model"
	"topicmatch-be/internal/repository/contract"
	"topicmatch-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PeriodRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PeriodMapper
}

func NewPeriodRepository(db *gorm.DB) contract.PeriodRepository {
	return &PeriodRepositoryImpl{
		db:     db,
		mapper: mapper.NewPeriodMapper(),
	}
}

func (r *PeriodRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PeriodRepositoryImpl) Create(ctx context.Context, period *entity.Period) error {
	m := r.mapper.ToModel(period)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*period = *r.mapper.ToEntity(m)
	return nil
}

func (r *PeriodRepositoryImpl) Update(ctx context.Context, period *entity.Period) error {
	m := r.mapper.ToModel(period)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*period = *r.mapper.ToEntity(m)
	return nil
}

func (r *PeriodRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Period, error) {
	var m model.Period
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PeriodRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Period, error) {
	var models []*model.Period
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PeriodRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Period{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
