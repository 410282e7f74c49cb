package contract

import (
	"context"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/repository/specification"
)

type PeriodRepository interface {
	Create(ctx context.Context, period *entity.Period) error
	Update(ctx context.Context, period *entity.Period) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Period, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Period, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
