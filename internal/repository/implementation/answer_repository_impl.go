package implementation

import (
	"context"
	"errors"
	"time"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/mapper"
	"topicmatch-be/internal/model"
	"topicmatch-be/internal/repository/contract"
	"topicmatch-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// answerConflictTarget matches idx_answers_resp_period_question, so a redelivered
// commit lands on the existing row instead of raising a duplicate key error.
var answerConflictTarget = []clause.Column{
	{Name: "respondent_id"},
	{Name: "period_id"},
	{Name: "question_id"},
}

type AnswerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnswerMapper
}

func NewAnswerRepository(db *gorm.DB) contract.AnswerRepository {
	return &AnswerRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnswerMapper(),
	}
}

func (r *AnswerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert writes one answer row. It never touches the submitted columns:
// those belong to the batch path, and a commit that was dispatched before a
// submit may land after it.
func (r *AnswerRepositoryImpl) Upsert(ctx context.Context, answer *entity.Answer) error {
	m := r.mapper.ToModel(answer)
	m.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   answerConflictTarget,
			DoUpdates: clause.AssignmentColumns([]string{"kind", "bool_value", "number_value", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*answer = *r.mapper.ToEntity(m)
	return nil
}

func (r *AnswerRepositoryImpl) UpsertBatch(ctx context.Context, answers []*entity.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	models := make([]*model.Answer, 0, len(answers))
	now := time.Now()
	for _, a := range answers {
		m := r.mapper.ToModel(a)
		m.UpdatedAt = now
		models = append(models, m)
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   answerConflictTarget,
			DoUpdates: clause.AssignmentColumns([]string{"kind", "bool_value", "number_value", "submitted", "submitted_at", "updated_at"}),
		}).
		Create(&models).Error
	if err != nil {
		return err
	}
	for i, m := range models {
		*answers[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *AnswerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Answer, error) {
	var m model.Answer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AnswerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Answer, error) {
	var models []*model.Answer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AnswerRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Answer{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AnswerRepositoryImpl) CountRespondents(ctx context.Context, periodId uuid.UUID, submittedOnly bool) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&model.Answer{}).
		Where("period_id = ?", periodId)
	if submittedOnly {
		query = query.Where("submitted = ?", true)
	}
	err := query.Distinct("respondent_id").Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AnswerRepositoryImpl) DeleteAllByRespondentAndPeriod(ctx context.Context, respondentId, periodId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("respondent_id = ? AND period_id = ?", respondentId, periodId).
		Delete(&model.Answer{}).Error
}
