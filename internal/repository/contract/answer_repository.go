package contract

import (
	"context"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AnswerRepository interface {
	// Upsert writes one answer keyed on (respondent, period, question).
	// Re-sending the same value is a no-op on the stored row, which is
	// what makes redelivered commit messages safe.
	Upsert(ctx context.Context, answer *entity.Answer) error
	// UpsertBatch writes a full answer set in one statement, used by the
	// finalization path.
	UpsertBatch(ctx context.Context, answers []*entity.Answer) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Answer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Answer, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountRespondents counts distinct respondents holding at least one
	// stored answer in the period. submittedOnly narrows to finalized sets.
	CountRespondents(ctx context.Context, periodId uuid.UUID, submittedOnly bool) (int64, error)
	DeleteAllByRespondentAndPeriod(ctx context.Context, respondentId, periodId uuid.UUID) error
}
