// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/repository/memory"
	"topicmatch-be/internal/repository/unitofwork"
	"topicmatch-be/pkg/questionnaire"
	"topicmatch-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the answer-commit queue: each message is one
// fire-and-forget write dispatched by a session's forward navigation.
// Delivery is at-least-once; the upsert key makes duplicates land on the
// same row, so redelivery is harmless.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionRepository
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		sessions:   sessions,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CommitAnswerMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal commit message: %v", err)
		msg.Ack() // poison message, retrying cannot fix it
		return
	}

	value, ok := valueFromCommitMessage(&payload)
	if !ok {
		log.Printf("[ERROR] Commit message for question %s carries no usable value", payload.QuestionId)
		msg.Ack()
		return
	}

	req := questionnaire.CommitRequest{
		RespondentID: payload.RespondentId,
		PeriodID:     payload.PeriodId,
		QuestionID:   payload.QuestionId,
		Value:        value,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AnswerRepository().Upsert(ctx, answerEntityFrom(req)); err != nil {
		log.Printf("[ERROR] Failed to persist answer %s/%s: %v", payload.RespondentId, payload.QuestionId, err)
		cs.ackSession(payload, func(engine *questionnaire.Session) {
			engine.FailCommit(payload.QuestionId, value, err)
		})
		msg.Nack() // storage hiccup, let the queue retry
		return
	}

	cs.ackSession(payload, func(engine *questionnaire.Session) {
		engine.ResolveCommit(payload.QuestionId, value)
	})

	log.Printf("[INFO] Answer committed for respondent %s question %s", payload.RespondentId, payload.QuestionId)
	msg.Ack()
}

// ackSession relays the write outcome into the live engine, if the
// respondent still has one. A dismissed or expired session simply misses
// the ack; the next snapshot refresh tells the same story.
func (cs *consumerService) ackSession(payload dto.CommitAnswerMessage, apply func(*questionnaire.Session)) {
	sess, ok := cs.sessions.Get(store.SessionKey(payload.RespondentId, payload.PeriodId))
	if !ok {
		return
	}
	apply(sess.Engine)
}
