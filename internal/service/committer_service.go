package service

import (
	"context"
	"encoding/json"
	"time"

	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/pkg/logger"
	"topicmatch-be/internal/repository/unitofwork"
	"topicmatch-be/pkg/questionnaire"

	"github.com/google/uuid"
)

// answerCommitter is the production questionnaire.Committer. Single
// answers go out as fire-and-forget work-queue messages; the finalization
// batch is written synchronously so its outcome can be reported to the
// caller and gate the submit flow.
type answerCommitter struct {
	publisher  IPublisherService
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAnswerCommitter(
	publisher IPublisherService,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) questionnaire.Committer {
	return &answerCommitter{
		publisher:  publisher,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (c *answerCommitter) Commit(ctx context.Context, req questionnaire.CommitRequest) error {
	msg := commitMessageFrom(req)
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := c.publisher.Publish(ctx, payload); err != nil {
		c.logger.Error("Committer", "Failed to enqueue answer commit", map[string]interface{}{
			"respondent_id": req.RespondentID.String(),
			"question_id":   req.QuestionID.String(),
			"error":         err.Error(),
		})
		return err
	}
	return nil
}

func (c *answerCommitter) Submit(ctx context.Context, batch questionnaire.SubmitBatch) error {
	now := time.Now()
	answers := make([]*entity.Answer, 0, len(batch.Answers))
	for _, req := range batch.Answers {
		a := answerEntityFrom(req)
		a.Submitted = true
		a.SubmittedAt = &now
		answers = append(answers, a)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.AnswerRepository().UpsertBatch(ctx, answers); err != nil {
		c.logger.Error("Committer", "Submit batch upsert failed", map[string]interface{}{
			"respondent_id": batch.RespondentID.String(),
			"period_id":     batch.PeriodID.String(),
			"error":         err.Error(),
		})
		return err
	}
	return uow.Commit()
}

func commitMessageFrom(req questionnaire.CommitRequest) dto.CommitAnswerMessage {
	msg := dto.CommitAnswerMessage{
		RespondentId: req.RespondentID,
		PeriodId:     req.PeriodID,
		QuestionId:   req.QuestionID,
		Kind:         string(req.Value.Kind),
	}
	switch req.Value.Kind {
	case questionnaire.KindBoolean:
		b := req.Value.Bool
		msg.BoolValue = &b
	case questionnaire.KindScale:
		n := req.Value.Number
		msg.NumberValue = &n
	}
	return msg
}

func answerEntityFrom(req questionnaire.CommitRequest) *entity.Answer {
	a := &entity.Answer{
		Id:           uuid.New(),
		RespondentId: req.RespondentID,
		PeriodId:     req.PeriodID,
		QuestionId:   req.QuestionID,
		Kind:         entity.QuestionKind(req.Value.Kind),
	}
	switch req.Value.Kind {
	case questionnaire.KindBoolean:
		b := req.Value.Bool
		a.BoolValue = &b
	case questionnaire.KindScale:
		n := req.Value.Number
		a.NumberValue = &n
	}
	return a
}

// valueFromAnswer rebuilds the engine value held in a stored answer row.
// Rows with a missing payload column are reported as absent rather than
// zero-valued.
func valueFromAnswer(a *entity.Answer) (questionnaire.Value, bool) {
	switch a.Kind {
	case entity.QuestionKindBoolean:
		if a.BoolValue == nil {
			return questionnaire.Value{}, false
		}
		return questionnaire.BoolValue(*a.BoolValue), true
	case entity.QuestionKindScale:
		if a.NumberValue == nil {
			return questionnaire.Value{}, false
		}
		return questionnaire.NumberValue(*a.NumberValue), true
	}
	return questionnaire.Value{}, false
}

func valueFromCommitMessage(msg *dto.CommitAnswerMessage) (questionnaire.Value, bool) {
	switch questionnaire.Kind(msg.Kind) {
	case questionnaire.KindBoolean:
		if msg.BoolValue == nil {
			return questionnaire.Value{}, false
		}
		return questionnaire.BoolValue(*msg.BoolValue), true
	case questionnaire.KindScale:
		if msg.NumberValue == nil {
			return questionnaire.Value{}, false
		}
		return questionnaire.NumberValue(*msg.NumberValue), true
	}
	return questionnaire.Value{}, false
}
