package unitofwork

import (
	"context"

	"topicmatch-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PeriodRepository() contract.PeriodRepository
	QuestionRepository() contract.QuestionRepository
	AnswerRepository() contract.AnswerRepository
	TopicRepository() contract.TopicRepository
	RankingRepository() contract.RankingRepository
}
