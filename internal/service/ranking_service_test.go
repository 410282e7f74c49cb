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

type rankingFixture struct {
	uow     *fakeUow
	service IRankingService

	respondentId uuid.UUID
	periodId     uuid.UUID
	topicIds     []uuid.UUID
}

// newRankingFixture seeds an open period with three published topics.
func newRankingFixture(t *testing.T) *rankingFixture {
	t.Helper()
	uow := newFakeUow()
	periodId := uuid.New()
	uow.periods.periods = []*entity.Period{{
		Id:     periodId,
		Name:   "Test Period",
		Status: entity.PeriodStatusOpen,
	}}

	titles := []string{"Compiler Playground", "Campus Chat", "Sensor Fleet"}
	topicIds := make([]uuid.UUID, 0, len(titles))
	for i, title := range titles {
		id := uuid.New()
		topicIds = append(topicIds, id)
		uow.topics.topics = append(uow.topics.topics, &entity.Topic{
			Id:       id,
			PeriodId: periodId,
			Title:    title,
			Capacity: 4,
			Status:   entity.TopicStatusPublished,
			Position: i + 1,
		})
	}

	return &rankingFixture{
		uow:          uow,
		service:      NewRankingService(&fakeFactory{uow: uow}, nil, nopLogger{}),
		respondentId: uuid.New(),
		periodId:     periodId,
		topicIds:     topicIds,
	}
}

func TestSubmitRankingStoresPermutation(t *testing.T) {
	ctx := context.Background()
	f := newRankingFixture(t)

	// preference order: last topic first
	order := []uuid.UUID{f.topicIds[2], f.topicIds[0], f.topicIds[1]}
	res, err := f.service.Submit(ctx, f.respondentId, f.periodId, &dto.SubmitRankingRequest{TopicIds: order})
	require.NoError(t, err)

	require.Len(t, res.Entries, 3)
	for i, entry := range res.Entries {
		assert.Equal(t, order[i], entry.TopicId)
		assert.Equal(t, i+1, entry.Rank, "rank follows list position, best first")
	}
	assert.Equal(t, "Sensor Fleet", res.Entries[0].TopicTitle)
	assert.NotNil(t, res.SubmittedAt)

	assert.Equal(t, 1, f.uow.rankings.replaceCount())
	assert.Equal(t, 1, f.uow.commits, "the replacement runs inside one transaction")
}

func TestSubmitRankingPeriodGates(t *testing.T) {
	ctx := context.Background()
	f := newRankingFixture(t)
	req := &dto.SubmitRankingRequest{TopicIds: f.topicIds}

	_, err := f.service.Submit(ctx, f.respondentId, uuid.New(), req)
	assert.ErrorIs(t, err, ErrPeriodNotFound)

	f.uow.periods.periods[0].Status = entity.PeriodStatusClosed
	_, err = f.service.Submit(ctx, f.respondentId, f.periodId, req)
	assert.ErrorIs(t, err, ErrPeriodNotOpen)
}

func TestSubmitRankingRequiresPublishedTopics(t *testing.T) {
	ctx := context.Background()
	f := newRankingFixture(t)
	f.uow.topics.topics = nil

	_, err := f.service.Submit(ctx, f.respondentId, f.periodId, &dto.SubmitRankingRequest{TopicIds: f.topicIds})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no published topics")
}

func TestSubmitRankingRejectsPartialList(t *testing.T) {
	ctx := context.Background()
	f := newRankingFixture(t)

	_, err := f.service.Submit(ctx, f.respondentId, f.periodId, &dto.SubmitRankingRequest{
		TopicIds: f.topicIds[:2],
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must cover all 3 topics")
	assert.Equal(t, 0, f.uow.rankings.replaceCount(), "an invalid list writes nothing")
}

func TestSubmitRankingRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newRankingFixture(t)

	_, err := f.service.Submit(ctx, f.respondentId, f.periodId, &dto.SubmitRankingRequest{
		TopicIds: []uuid.UUID{f.topicIds[0], f.topicIds[0], f.topicIds[1]},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ranked twice")
}

func TestSubmitRankingRejectsUnknownTopic(t *testing.T) {
	ctx := context.Background()
	f := newRankingFixture(t)

	_, err := f.service.Submit(ctx, f.respondentId, f.periodId, &dto.SubmitRankingRequest{
		TopicIds: []uuid.UUID{f.topicIds[0], f.topicIds[1], uuid.New()},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not rankable")
}

func TestResubmitReplacesWholeOrder(t *testing.T) {
	ctx := context.Background()
	f := newRankingFixture(t)

	_, err := f.service.Submit(ctx, f.respondentId, f.periodId, &dto.SubmitRankingRequest{TopicIds: f.topicIds})
	require.NoError(t, err)

	reversed := []uuid.UUID{f.topicIds[2], f.topicIds[1], f.topicIds[0]}
	_, err = f.service.Submit(ctx, f.respondentId, f.periodId, &dto.SubmitRankingRequest{TopicIds: reversed})
	require.NoError(t, err)
	assert.Equal(t, 2, f.uow.rankings.replaceCount())

	res, err := f.service.Get(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)
	require.Len(t, res.Entries, 3)
	assert.Equal(t, reversed[0], res.Entries[0].TopicId)
	assert.Equal(t, 1, res.Entries[0].Rank)
}

func TestGetRankingEmptyWhenNothingSubmitted(t *testing.T) {
	ctx := context.Background()
	f := newRankingFixture(t)

	res, err := f.service.Get(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	assert.Nil(t, res.SubmittedAt)
}
