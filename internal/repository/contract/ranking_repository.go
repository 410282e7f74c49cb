package contract

import (
	"context"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RankingRepository interface {
	// ReplaceForRespondent swaps a respondent's entire preference order
	// for the period in one go. Rankings are always written as a full
	// permutation, never row by row.
	ReplaceForRespondent(ctx context.Context, respondentId, periodId uuid.UUID, rankings []*entity.Ranking) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ranking, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountRespondents counts distinct respondents with a stored ranking
	// in the period.
	CountRespondents(ctx context.Context, periodId uuid.UUID) (int64, error)
	DeleteAllByRespondentAndPeriod(ctx context.Context, respondentId, periodId uuid.UUID) error
}
