package matching

import (
	"context"
	"testing"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/repository/contract"
	"topicmatch-be/internal/repository/specification"
	"topicmatch-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Row stubs hand back their preloaded slice for every FindAll. The real
// repositories apply the specifications; tests preload what the filtered
// query would return, rankings in rank-ascending order.

type topicRows []*entity.Topic

func (r topicRows) Create(context.Context, *entity.Topic) error { return nil }
func (r topicRows) Update(context.Context, *entity.Topic) error { return nil }
func (r topicRows) Delete(context.Context, uuid.UUID) error     { return nil }
func (r topicRows) FindOne(context.Context, ...specification.Specification) (*entity.Topic, error) {
	return nil, nil
}
func (r topicRows) FindAll(context.Context, ...specification.Specification) ([]*entity.Topic, error) {
	return r, nil
}
func (r topicRows) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r)), nil
}

type questionRows []*entity.Question

func (r questionRows) Create(context.Context, *entity.Question) error { return nil }
func (r questionRows) Update(context.Context, *entity.Question) error { return nil }
func (r questionRows) Delete(context.Context, uuid.UUID) error        { return nil }
func (r questionRows) FindOne(context.Context, ...specification.Specification) (*entity.Question, error) {
	return nil, nil
}
func (r questionRows) FindAll(context.Context, ...specification.Specification) ([]*entity.Question, error) {
	return r, nil
}
func (r questionRows) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r)), nil
}
func (r questionRows) MaxPosition(context.Context, uuid.UUID) (int, error) { return 0, nil }

type rankingRows []*entity.Ranking

func (r rankingRows) ReplaceForRespondent(context.Context, uuid.UUID, uuid.UUID, []*entity.Ranking) error {
	return nil
}
func (r rankingRows) FindAll(context.Context, ...specification.Specification) ([]*entity.Ranking, error) {
	return r, nil
}
func (r rankingRows) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r)), nil
}
func (r rankingRows) CountRespondents(context.Context, uuid.UUID) (int64, error) { return 0, nil }
func (r rankingRows) DeleteAllByRespondentAndPeriod(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type answerRows []*entity.Answer

func (r answerRows) Upsert(context.Context, *entity.Answer) error        { return nil }
func (r answerRows) UpsertBatch(context.Context, []*entity.Answer) error { return nil }
func (r answerRows) FindOne(context.Context, ...specification.Specification) (*entity.Answer, error) {
	return nil, nil
}
func (r answerRows) FindAll(context.Context, ...specification.Specification) ([]*entity.Answer, error) {
	return r, nil
}
func (r answerRows) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r)), nil
}
func (r answerRows) CountRespondents(context.Context, uuid.UUID, bool) (int64, error) { return 0, nil }
func (r answerRows) DeleteAllByRespondentAndPeriod(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type stubUow struct {
	topics    topicRows
	questions questionRows
	rankings  rankingRows
	answers   answerRows
}

func (u *stubUow) Begin(ctx context.Context) error                 { return nil }
func (u *stubUow) Commit() error                                   { return nil }
func (u *stubUow) Rollback() error                                 { return nil }
func (u *stubUow) UserRepository() contract.UserRepository         { return nil }
func (u *stubUow) PeriodRepository() contract.PeriodRepository     { return nil }
func (u *stubUow) QuestionRepository() contract.QuestionRepository { return u.questions }
func (u *stubUow) AnswerRepository() contract.AnswerRepository     { return u.answers }
func (u *stubUow) TopicRepository() contract.TopicRepository       { return u.topics }
func (u *stubUow) RankingRepository() contract.RankingRepository   { return u.rankings }

var _ unitofwork.UnitOfWork = (*stubUow)(nil)

type builderFixture struct {
	periodId uuid.UUID
	topicA   *entity.Topic
	topicB   *entity.Topic
	q1       *entity.Question
	q2       *entity.Question
	uow      *stubUow
}

// newBuilderFixture seeds two published topics and a scale plus boolean
// question pair.
func newBuilderFixture() *builderFixture {
	periodId := uuid.New()
	f := &builderFixture{
		periodId: periodId,
		topicA:   &entity.Topic{Id: uuid.New(), PeriodId: periodId, Title: "Campus Chat", Capacity: 4, Status: entity.TopicStatusPublished, Position: 1},
		topicB:   &entity.Topic{Id: uuid.New(), PeriodId: periodId, Title: "Sensor Fleet", Capacity: 4, Status: entity.TopicStatusPublished, Position: 2},
		q1:       &entity.Question{Id: uuid.New(), PeriodId: periodId, Text: "Rate your Go experience", Kind: entity.QuestionKindScale, ScaleMin: 1, ScaleMax: 10, Position: 1},
		q2:       &entity.Question{Id: uuid.New(), PeriodId: periodId, Text: "Would you lead a team?", Kind: entity.QuestionKindBoolean, Position: 2},
	}
	f.uow = &stubUow{
		topics:    topicRows{f.topicA, f.topicB},
		questions: questionRows{f.q1, f.q2},
	}
	return f
}

func (f *builderFixture) rank(respondentId uuid.UUID, topicIds ...uuid.UUID) {
	for i, topicId := range topicIds {
		f.uow.rankings = append(f.uow.rankings, &entity.Ranking{
			Id:           uuid.New(),
			RespondentId: respondentId,
			PeriodId:     f.periodId,
			TopicId:      topicId,
			Rank:         i + 1,
		})
	}
}

func TestBuildMapsPreferencesToTopicIndexes(t *testing.T) {
	ctx := context.Background()
	f := newBuilderFixture()
	r1, r2 := uuid.New(), uuid.New()
	f.rank(r1, f.topicB.Id, f.topicA.Id)
	f.rank(r2, f.topicA.Id, f.topicB.Id)

	seven := 7.0
	leads := true
	f.uow.answers = answerRows{
		{Id: uuid.New(), RespondentId: r1, PeriodId: f.periodId, QuestionId: f.q1.Id, Kind: entity.QuestionKindScale, NumberValue: &seven},
		{Id: uuid.New(), RespondentId: r1, PeriodId: f.periodId, QuestionId: f.q2.Id, Kind: entity.QuestionKindBoolean, BoolValue: &leads},
		// answer for a question no longer in the catalog, must be ignored
		{Id: uuid.New(), RespondentId: r1, PeriodId: f.periodId, QuestionId: uuid.New(), Kind: entity.QuestionKindScale, NumberValue: &seven},
	}

	input, err := NewBuilder(0, nil).Build(ctx, f.uow, f.periodId)
	require.NoError(t, err)

	assert.Equal(t, 2, input.NumTeams)
	assert.Equal(t, 2, input.NumAgents)
	assert.Equal(t, 1, input.AgentsPerTeam, "derived team size is the ceiling of agents over teams")
	require.Len(t, input.Topics, 2)
	assert.Equal(t, 0, input.Topics[0].Index)
	assert.Equal(t, f.topicA.Id, input.Topics[0].Id)

	byRespondent := map[uuid.UUID]Agent{}
	for i, agent := range input.Agents {
		assert.Equal(t, i, agent.Id, "agent ids are the export's own zero-based indexes")
		byRespondent[agent.RespondentId] = agent
	}
	require.Contains(t, byRespondent, r1)
	require.Contains(t, byRespondent, r2)
	assert.Equal(t, []int{1, 0}, byRespondent[r1].Preferences, "best-first list carries topic indexes")
	assert.Equal(t, []int{0, 1}, byRespondent[r2].Preferences)

	assert.Equal(t, map[string]interface{}{"q1": 7.0, "q2": true}, byRespondent[r1].Attributes)
	assert.Equal(t, map[string]interface{}{}, byRespondent[r2].Attributes, "no answers still yields an empty map, not nil")
}

func TestBuildQuestionKeysFollowPosition(t *testing.T) {
	ctx := context.Background()
	f := newBuilderFixture()
	f.q1.Position = 3
	f.q2.Position = 7
	f.rank(uuid.New(), f.topicA.Id, f.topicB.Id)

	input, err := NewBuilder(0, nil).Build(ctx, f.uow, f.periodId)
	require.NoError(t, err)
	require.Len(t, input.Questions, 2)
	assert.Equal(t, "q3", input.Questions[0].Key)
	assert.Equal(t, "q7", input.Questions[1].Key)
	assert.Equal(t, f.q1.Id, input.Questions[0].Id)
}

func TestBuildSkipsStaleRanking(t *testing.T) {
	ctx := context.Background()
	f := newBuilderFixture()
	complete, stale := uuid.New(), uuid.New()
	f.rank(complete, f.topicA.Id, f.topicB.Id)
	// this respondent ranked a topic that was later retired
	f.rank(stale, f.topicA.Id, uuid.New())

	input, err := NewBuilder(0, nil).Build(ctx, f.uow, f.periodId)
	require.NoError(t, err)
	require.Equal(t, 1, input.NumAgents)
	assert.Equal(t, complete, input.Agents[0].RespondentId)
}

func TestBuildSkipsIncompleteRanking(t *testing.T) {
	ctx := context.Background()
	f := newBuilderFixture()
	complete, partial := uuid.New(), uuid.New()
	f.rank(complete, f.topicB.Id, f.topicA.Id)
	f.rank(partial, f.topicA.Id)

	input, err := NewBuilder(0, nil).Build(ctx, f.uow, f.periodId)
	require.NoError(t, err)
	require.Equal(t, 1, input.NumAgents)
	assert.Equal(t, complete, input.Agents[0].RespondentId)
}

func TestBuildRequiresPublishedTopics(t *testing.T) {
	ctx := context.Background()
	f := newBuilderFixture()
	f.uow.topics = nil

	_, err := NewBuilder(0, nil).Build(ctx, f.uow, f.periodId)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no published topics")
}

func TestAgentsPerTeam(t *testing.T) {
	fixed := NewBuilder(4, nil)
	assert.Equal(t, 4, fixed.agentsPerTeam(10, 3), "a configured team size wins")

	derived := NewBuilder(0, nil)
	assert.Equal(t, 3, derived.agentsPerTeam(5, 2), "derived size rounds up")
	assert.Equal(t, 1, derived.agentsPerTeam(2, 2))
	assert.Equal(t, 0, derived.agentsPerTeam(0, 0))
}
