package service

import (
	"context"
	"testing"

	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTopicFixture(t *testing.T) (*fakeUow, *recordingEvents, ITopicService) {
	t.Helper()
	uow := newFakeUow()
	events := &recordingEvents{}
	return uow, events, NewTopicService(&fakeFactory{uow: uow}, events)
}

func TestCreateTopicStartsAsDraft(t *testing.T) {
	ctx := context.Background()
	uow, _, svc := newTopicFixture(t)
	periodId := uuid.New()
	uow.periods.periods = []*entity.Period{{Id: periodId, Name: "Fall Intake", Status: entity.PeriodStatusDraft}}

	res, err := svc.Create(ctx, &dto.CreateTopicRequest{
		PeriodId:   periodId,
		Title:      "Campus Chat",
		Supervisor: "Dr. Reyes",
		Capacity:   4,
		Position:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", res.Status, "new topics stay hidden until published")
	assert.Equal(t, "Campus Chat", res.Title)

	_, err = svc.Create(ctx, &dto.CreateTopicRequest{PeriodId: uuid.New(), Title: "Orphan", Capacity: 1})
	assert.ErrorIs(t, err, ErrPeriodNotFound)
}

func TestPublishTopicEmitsEventOnce(t *testing.T) {
	ctx := context.Background()
	uow, events, svc := newTopicFixture(t)
	topic := &entity.Topic{
		Id:       uuid.New(),
		PeriodId: uuid.New(),
		Title:    "Sensor Fleet",
		Capacity: 4,
		Status:   entity.TopicStatusDraft,
	}
	uow.topics.topics = []*entity.Topic{topic}

	res, err := svc.Update(ctx, &dto.UpdateTopicRequest{Id: topic.Id, Status: "published"})
	require.NoError(t, err)
	assert.Equal(t, "published", res.Status)
	assert.Equal(t, []uuid.UUID{topic.Id}, events.topics)

	// editing an already published topic must not announce it again
	_, err = svc.Update(ctx, &dto.UpdateTopicRequest{Id: topic.Id, Title: "Sensor Fleet 2"})
	require.NoError(t, err)
	assert.Len(t, events.topics, 1)
}

func TestUpdateTopicUnknown(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newTopicFixture(t)

	_, err := svc.Update(ctx, &dto.UpdateTopicRequest{Id: uuid.New(), Title: "Ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteTopicMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newTopicFixture(t)
	assert.NoError(t, svc.Delete(ctx, uuid.New()))
}
