package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/entity"
	"topicmatch-be/pkg/admin/dashboard"
	"topicmatch-be/pkg/matching"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEvents counts the admin lifecycle events that went out.
type recordingEvents struct {
	mu       sync.Mutex
	opened   []uuid.UUID
	closed   []uuid.UUID
	topics   []uuid.UUID
	exported []uuid.UUID
}

func (r *recordingEvents) PublishPeriodOpened(ctx context.Context, periodId uuid.UUID, name string, closesAt *time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, periodId)
}

func (r *recordingEvents) PublishPeriodClosed(ctx context.Context, periodId uuid.UUID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, periodId)
}

func (r *recordingEvents) PublishTopicPublished(ctx context.Context, topicId, periodId uuid.UUID, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topicId)
}

func (r *recordingEvents) PublishMatchingExported(ctx context.Context, periodId uuid.UUID, name string, teams, agents int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exported = append(r.exported, periodId)
}

type adminFixture struct {
	uow     *fakeUow
	events  *recordingEvents
	service IAdminService
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	uow := newFakeUow()
	events := &recordingEvents{}
	svc := NewAdminService(
		&fakeFactory{uow: uow},
		nopLogger{},
		dashboard.NewAggregator(nopLogger{}),
		matching.NewBuilder(0, nopLogger{}),
		events,
		t.TempDir(),
	)
	return &adminFixture{uow: uow, events: events, service: svc}
}

func (f *adminFixture) seedPeriod(status entity.PeriodStatus) *entity.Period {
	p := &entity.Period{Id: uuid.New(), Name: "Fall Intake", Status: status}
	f.uow.periods.periods = append(f.uow.periods.periods, p)
	return p
}

func TestResetRespondentWipesAnswersAndRankings(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	p := f.seedPeriod(entity.PeriodStatusOpen)
	respondent := uuid.New()

	require.NoError(t, f.service.ResetRespondent(ctx, p.Id, respondent))
	assert.Equal(t, []uuid.UUID{respondent}, f.uow.answers.wiped)
	assert.Equal(t, []uuid.UUID{respondent}, f.uow.rankings.wiped)
	assert.Equal(t, 1, f.uow.commits, "both wipes ride one transaction")
}

func TestResetRespondentUnknownPeriod(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)

	err := f.service.ResetRespondent(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrPeriodNotFound)
	assert.Empty(t, f.uow.answers.wiped)
}

func TestCreatePeriodStartsAsDraft(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)

	res, err := f.service.CreatePeriod(ctx, &dto.CreatePeriodRequest{Name: "Spring Intake"})
	require.NoError(t, err)
	assert.Equal(t, "draft", res.Status)
	assert.Equal(t, "Spring Intake", res.Name)
	require.Len(t, f.uow.periods.periods, 1)
}

func TestPeriodLifecycleForwardOnly(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	p := f.seedPeriod(entity.PeriodStatusDraft)

	res, err := f.service.UpdatePeriodStatus(ctx, p.Id, "open")
	require.NoError(t, err)
	assert.Equal(t, "open", res.Status)
	assert.NotNil(t, res.OpensAt, "opening stamps the timestamp when none was set")
	assert.Equal(t, []uuid.UUID{p.Id}, f.events.opened)

	res, err = f.service.UpdatePeriodStatus(ctx, p.Id, "closed")
	require.NoError(t, err)
	assert.Equal(t, "closed", res.Status)
	assert.NotNil(t, res.ClosesAt)
	assert.Equal(t, []uuid.UUID{p.Id}, f.events.closed)

	// closed is terminal
	_, err = f.service.UpdatePeriodStatus(ctx, p.Id, "open")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move period")
	_, err = f.service.UpdatePeriodStatus(ctx, p.Id, "draft")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move period")
}

func TestPeriodCannotSkipOpen(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	p := f.seedPeriod(entity.PeriodStatusDraft)

	_, err := f.service.UpdatePeriodStatus(ctx, p.Id, "closed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move period")
	assert.Empty(t, f.events.closed)
}

func TestPeriodSameStatusIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	p := f.seedPeriod(entity.PeriodStatusOpen)

	res, err := f.service.UpdatePeriodStatus(ctx, p.Id, "open")
	require.NoError(t, err)
	assert.Equal(t, "open", res.Status)
	assert.Empty(t, f.uow.periods.updated, "repeating the current status writes nothing")
	assert.Empty(t, f.events.opened)
}

func TestUpdatePeriodStatusUnknownPeriod(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)

	_, err := f.service.UpdatePeriodStatus(ctx, uuid.New(), "open")
	assert.ErrorIs(t, err, ErrPeriodNotFound)
}

func TestCreateQuestionScaleDefaults(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	p := f.seedPeriod(entity.PeriodStatusDraft)

	res, err := f.service.CreateQuestion(ctx, p.Id, &dto.CreateQuestionRequest{
		Text: "Rate your database experience",
		Kind: "scale",
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.ScaleMin, "unspecified scale bounds default to 1-5")
	assert.Equal(t, 5.0, res.ScaleMax)
	assert.Equal(t, 1, res.Position, "first question lands on position 1")

	res, err = f.service.CreateQuestion(ctx, p.Id, &dto.CreateQuestionRequest{
		Text: "Would you lead a team?",
		Kind: "boolean",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Position, "auto position appends after the highest")
}

func TestCreateQuestionRejectsInvertedScale(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	p := f.seedPeriod(entity.PeriodStatusDraft)

	lo, hi := 10.0, 1.0
	_, err := f.service.CreateQuestion(ctx, p.Id, &dto.CreateQuestionRequest{
		Text:     "Broken scale",
		Kind:     "scale",
		ScaleMin: &lo,
		ScaleMax: &hi,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scale_min must be lower than scale_max")
}

func TestCreateQuestionUnknownPeriod(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)

	_, err := f.service.CreateQuestion(ctx, uuid.New(), &dto.CreateQuestionRequest{Text: "x", Kind: "boolean"})
	assert.ErrorIs(t, err, ErrPeriodNotFound)
}

func TestUpdateQuestionEditsInPlace(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	q := &entity.Question{
		Id:       uuid.New(),
		PeriodId: uuid.New(),
		Text:     "Rate your Go experience",
		Kind:     entity.QuestionKindScale,
		ScaleMin: 1,
		ScaleMax: 5,
		Position: 1,
	}
	f.uow.questions.questions = []*entity.Question{q}

	max := 10.0
	res, err := f.service.UpdateQuestion(ctx, &dto.UpdateQuestionRequest{
		Id:       q.Id,
		Text:     "Rate your backend experience",
		ScaleMax: &max,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rate your backend experience", res.Text)
	assert.Equal(t, 10.0, res.ScaleMax)
	assert.Equal(t, 1.0, res.ScaleMin, "untouched bound stays")

	badMin := 20.0
	_, err = f.service.UpdateQuestion(ctx, &dto.UpdateQuestionRequest{Id: q.Id, ScaleMin: &badMin})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scale_min must be lower than scale_max")

	_, err = f.service.UpdateQuestion(ctx, &dto.UpdateQuestionRequest{Id: uuid.New(), Text: "ghost"})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestDeleteQuestionMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)

	require.NoError(t, f.service.DeleteQuestion(ctx, uuid.New()))
	assert.Empty(t, f.uow.questions.deleted)
}

func TestMatchingExportWritesAuditFile(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	exportDir := t.TempDir()
	f.service = NewAdminService(
		&fakeFactory{uow: f.uow},
		nopLogger{},
		dashboard.NewAggregator(nopLogger{}),
		matching.NewBuilder(0, nopLogger{}),
		f.events,
		exportDir,
	)

	p := f.seedPeriod(entity.PeriodStatusClosed)
	topicA := &entity.Topic{Id: uuid.New(), PeriodId: p.Id, Title: "Campus Chat", Capacity: 4, Status: entity.TopicStatusPublished, Position: 1}
	topicB := &entity.Topic{Id: uuid.New(), PeriodId: p.Id, Title: "Sensor Fleet", Capacity: 4, Status: entity.TopicStatusPublished, Position: 2}
	f.uow.topics.topics = []*entity.Topic{topicA, topicB}

	respondent := uuid.New()
	f.uow.rankings.rankings = []*entity.Ranking{
		{Id: uuid.New(), RespondentId: respondent, PeriodId: p.Id, TopicId: topicB.Id, Rank: 1},
		{Id: uuid.New(), RespondentId: respondent, PeriodId: p.Id, TopicId: topicA.Id, Rank: 2},
	}

	input, err := f.service.GetMatchingExport(ctx, p.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, input.NumTeams)
	assert.Equal(t, 1, input.NumAgents)
	assert.Equal(t, []uuid.UUID{p.Id}, f.events.exported)

	entries, err := os.ReadDir(exportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "each export leaves one audit file behind")
	assert.Contains(t, entries[0].Name(), "matching_")
}

func TestMatchingExportUnknownPeriod(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)

	_, err := f.service.GetMatchingExport(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrPeriodNotFound)
}

func TestMatchingExportRequiresPublishedTopics(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	p := f.seedPeriod(entity.PeriodStatusClosed)

	_, err := f.service.GetMatchingExport(ctx, p.Id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no published topics")
}
