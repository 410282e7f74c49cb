package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"topicmatch-be/internal/config"
	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/repository/memory"
	"topicmatch-be/pkg/questionnaire"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureCommitter records engine commit traffic without touching any
// queue or database.
type captureCommitter struct {
	mu        sync.Mutex
	commits   []questionnaire.CommitRequest
	batches   []questionnaire.SubmitBatch
	submitErr error
}

func (c *captureCommitter) Commit(_ context.Context, req questionnaire.CommitRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commits = append(c.commits, req)
	return nil
}

func (c *captureCommitter) Submit(_ context.Context, batch questionnaire.SubmitBatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, batch)
	return c.submitErr
}

func (c *captureCommitter) commitCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.commits)
}

func (c *captureCommitter) batchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}

type questionnaireFixture struct {
	uow       *fakeUow
	sessions  *memory.SessionRepository
	committer *captureCommitter
	service   IQuestionnaireService

	respondentId uuid.UUID
	periodId     uuid.UUID
}

// newQuestionnaireFixture seeds an open period with one boolean and one
// 1-5 scale question and wires the service over stub storage.
func newQuestionnaireFixture(t *testing.T) *questionnaireFixture {
	t.Helper()
	uow := newFakeUow()
	periodId := uuid.New()
	uow.periods.periods = []*entity.Period{{
		Id:     periodId,
		Name:   "Test Period",
		Status: entity.PeriodStatusOpen,
	}}
	uow.questions.questions = []*entity.Question{
		{Id: uuid.New(), PeriodId: periodId, Text: "Do you prefer backend work?", Kind: entity.QuestionKindBoolean, Position: 1},
		{Id: uuid.New(), PeriodId: periodId, Text: "Rate your Go experience", Kind: entity.QuestionKindScale, ScaleMin: 1, ScaleMax: 5, Position: 2},
	}

	committer := &captureCommitter{}
	sessions := memory.NewSessionRepository(time.Hour)
	svc := NewQuestionnaireService(
		&fakeFactory{uow: uow},
		sessions,
		committer,
		nil,
		config.EngineConfig{Navigation: "all", Progress: "effective"},
		nopLogger{},
	)
	return &questionnaireFixture{
		uow:          uow,
		sessions:     sessions,
		committer:    committer,
		service:      svc,
		respondentId: uuid.New(),
		periodId:     periodId,
	}
}

func TestStartSessionPeriodGates(t *testing.T) {
	ctx := context.Background()
	f := newQuestionnaireFixture(t)

	_, err := f.service.StartSession(ctx, f.respondentId, uuid.New())
	assert.ErrorIs(t, err, ErrPeriodNotFound)

	f.uow.periods.periods[0].Status = entity.PeriodStatusDraft
	_, err = f.service.StartSession(ctx, f.respondentId, f.periodId)
	assert.ErrorIs(t, err, ErrPeriodNotOpen)

	f.uow.periods.periods[0].Status = entity.PeriodStatusClosed
	_, err = f.service.StartSession(ctx, f.respondentId, f.periodId)
	assert.ErrorIs(t, err, ErrPeriodNotOpen)
}

func TestStartSessionRequiresQuestions(t *testing.T) {
	ctx := context.Background()
	f := newQuestionnaireFixture(t)
	f.uow.questions.questions = nil

	_, err := f.service.StartSession(ctx, f.respondentId, f.periodId)
	assert.ErrorIs(t, err, questionnaire.ErrNoQuestions)
}

func TestStartSessionResumesAtFirstUnanswered(t *testing.T) {
	ctx := context.Background()
	f := newQuestionnaireFixture(t)

	// the store already holds the boolean, answered in a previous visit
	answered := true
	f.uow.answers.answers = []*entity.Answer{{
		Id:           uuid.New(),
		RespondentId: f.respondentId,
		PeriodId:     f.periodId,
		QuestionId:   f.uow.questions.questions[0].Id,
		Kind:         entity.QuestionKindBoolean,
		BoolValue:    &answered,
	}}

	view, err := f.service.StartSession(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalCount)
	assert.Equal(t, 1, view.AnsweredCount)
	assert.Equal(t, 1, view.Index, "cursor starts on the first unanswered question")
	require.NotNil(t, view.Current)
	assert.Equal(t, f.uow.questions.questions[1].Id, view.Current.Question.Id)
	assert.Equal(t, "persisted", view.Items[0].Standing)
}

func TestStartSessionKeepsLiveOverlay(t *testing.T) {
	ctx := context.Background()
	f := newQuestionnaireFixture(t)

	_, err := f.service.StartSession(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)

	// an unsynced local edit, still pending when the page reloads
	_, err = f.service.SetAnswer(ctx, f.respondentId, f.periodId, &dto.SetAnswerRequest{Value: true})
	require.NoError(t, err)

	view, err := f.service.StartSession(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)
	assert.Equal(t, true, view.Items[0].Value, "resume must not drop the unsynced edit")
	assert.Equal(t, "pending", view.Items[0].Standing)
}

func TestOperationsRequireActiveSession(t *testing.T) {
	ctx := context.Background()
	f := newQuestionnaireFixture(t)

	_, err := f.service.GetSession(ctx, f.respondentId, f.periodId)
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = f.service.SetAnswer(ctx, f.respondentId, f.periodId, &dto.SetAnswerRequest{Value: true})
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = f.service.Next(ctx, f.respondentId, f.periodId)
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = f.service.Previous(ctx, f.respondentId, f.periodId)
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = f.service.Jump(ctx, f.respondentId, f.periodId, &dto.JumpRequest{QuestionId: uuid.New()})
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = f.service.Submit(ctx, f.respondentId, f.periodId)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSetAnswerValueParsing(t *testing.T) {
	ctx := context.Background()
	f := newQuestionnaireFixture(t)
	_, err := f.service.StartSession(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)

	_, err = f.service.SetAnswer(ctx, f.respondentId, f.periodId, &dto.SetAnswerRequest{Value: nil})
	assert.EqualError(t, err, "value is required")

	_, err = f.service.SetAnswer(ctx, f.respondentId, f.periodId, &dto.SetAnswerRequest{Value: "yes"})
	assert.EqualError(t, err, "value must be a boolean or a number")

	// a number on the current boolean question is the engine's complaint
	_, err = f.service.SetAnswer(ctx, f.respondentId, f.periodId, &dto.SetAnswerRequest{Value: float64(3)})
	assert.ErrorIs(t, err, questionnaire.ErrKindMismatch)

	view, err := f.service.SetAnswer(ctx, f.respondentId, f.periodId, &dto.SetAnswerRequest{Value: true})
	require.NoError(t, err)
	assert.Equal(t, true, view.Items[0].Value)
}

func TestNextDispatchesCommitAndAdvances(t *testing.T) {
	ctx := context.Background()
	f := newQuestionnaireFixture(t)
	_, err := f.service.StartSession(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)

	_, err = f.service.SetAnswer(ctx, f.respondentId, f.periodId, &dto.SetAnswerRequest{Value: true})
	require.NoError(t, err)

	view, err := f.service.Next(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Index)
	require.Equal(t, 1, f.committer.commitCount())

	f.committer.mu.Lock()
	commit := f.committer.commits[0]
	f.committer.mu.Unlock()
	assert.Equal(t, f.uow.questions.questions[0].Id, commit.QuestionID)
	assert.Equal(t, questionnaire.BoolValue(true), commit.Value)

	view, err = f.service.Previous(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, 1, f.committer.commitCount(), "previous never commits")
}

func TestJumpMovesCursor(t *testing.T) {
	ctx := context.Background()
	f := newQuestionnaireFixture(t)
	_, err := f.service.StartSession(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)

	view, err := f.service.Jump(ctx, f.respondentId, f.periodId, &dto.JumpRequest{
		QuestionId: f.uow.questions.questions[1].Id,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Index)

	view, err = f.service.Jump(ctx, f.respondentId, f.periodId, &dto.JumpRequest{QuestionId: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Index, "jump to an unknown question is a no-op")
}

func TestSubmitTearsDownSession(t *testing.T) {
	ctx := context.Background()
	f := newQuestionnaireFixture(t)
	_, err := f.service.StartSession(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)

	_, err = f.service.SetAnswer(ctx, f.respondentId, f.periodId, &dto.SetAnswerRequest{Value: true})
	require.NoError(t, err)

	view, err := f.service.Submit(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)
	require.Equal(t, 1, f.committer.batchCount())

	f.committer.mu.Lock()
	batch := f.committer.batches[0]
	f.committer.mu.Unlock()
	assert.Len(t, batch.Answers, 2, "the batch covers every question, defaults included")
	assert.Equal(t, f.respondentId, batch.RespondentID)

	assert.NotNil(t, view)
	_, err = f.service.GetSession(ctx, f.respondentId, f.periodId)
	assert.ErrorIs(t, err, ErrNoActiveSession, "a successful submit retires the session")
}

func TestSubmitFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	f := newQuestionnaireFixture(t)
	f.committer.submitErr = errors.New("store unavailable")

	_, err := f.service.StartSession(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)

	_, err = f.service.Submit(ctx, f.respondentId, f.periodId)
	require.Error(t, err)

	// the session survives, so the respondent can retry
	f.committer.submitErr = nil
	_, err = f.service.Submit(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)
	assert.Equal(t, 2, f.committer.batchCount())
}

func TestDismissSessionDropsEngine(t *testing.T) {
	ctx := context.Background()
	f := newQuestionnaireFixture(t)
	_, err := f.service.StartSession(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)

	require.NoError(t, f.service.DismissSession(ctx, f.respondentId, f.periodId))
	_, err = f.service.GetSession(ctx, f.respondentId, f.periodId)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestGetSessionRefreshesSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newQuestionnaireFixture(t)
	_, err := f.service.StartSession(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)

	// a commit consumed in the background lands in the store
	answered := true
	f.uow.answers.answers = []*entity.Answer{{
		Id:           uuid.New(),
		RespondentId: f.respondentId,
		PeriodId:     f.periodId,
		QuestionId:   f.uow.questions.questions[0].Id,
		Kind:         entity.QuestionKindBoolean,
		BoolValue:    &answered,
	}}

	view, err := f.service.GetSession(ctx, f.respondentId, f.periodId)
	require.NoError(t, err)
	assert.Equal(t, 1, view.AnsweredCount)
	assert.Equal(t, "persisted", view.Items[0].Standing)
}
