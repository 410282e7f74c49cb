package contract

import (
	"context"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	Update(ctx context.Context, question *entity.Question) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Question, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// MaxPosition returns the highest display position in the period, 0
	// when the period has no questions yet.
	MaxPosition(ctx context.Context, periodId uuid.UUID) (int, error)
}
