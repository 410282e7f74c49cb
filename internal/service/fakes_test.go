package service

import (
	"context"
	"sync"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/pkg/logger"
	"topicmatch-be/internal/repository/contract"
	"topicmatch-be/internal/repository/specification"
	"topicmatch-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// nopLogger satisfies ILogger for tests that never inspect log output.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

// The stub repositories hold preloaded rows and hand them back untouched.
// Specification filtering is the real repository's job, so a test preloads
// exactly what the filtered query would return.

type stubUserRepo struct {
	mu    sync.Mutex
	users []*entity.User
}

func (r *stubUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
	return nil
}

func (r *stubUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *stubUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.users) == 0 {
		return nil, nil
	}
	return r.users[0], nil
}

func (r *stubUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users, nil
}

func (r *stubUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type stubPeriodRepo struct {
	mu      sync.Mutex
	periods []*entity.Period
	updated []*entity.Period
}

func (r *stubPeriodRepo) Create(ctx context.Context, period *entity.Period) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.periods = append(r.periods, period)
	return nil
}

func (r *stubPeriodRepo) Update(ctx context.Context, period *entity.Period) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, period)
	return nil
}

func (r *stubPeriodRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Period, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			for _, p := range r.periods {
				if p.Id == byID.ID {
					return p, nil
				}
			}
			return nil, nil
		}
	}
	if len(r.periods) == 0 {
		return nil, nil
	}
	return r.periods[0], nil
}

func (r *stubPeriodRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Period, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.periods, nil
}

func (r *stubPeriodRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.periods)), nil
}

type stubQuestionRepo struct {
	mu        sync.Mutex
	questions []*entity.Question
	updated   []*entity.Question
	deleted   []uuid.UUID
}

func (r *stubQuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions = append(r.questions, question)
	return nil
}

func (r *stubQuestionRepo) Update(ctx context.Context, question *entity.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, question)
	return nil
}

func (r *stubQuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubQuestionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			for _, q := range r.questions {
				if q.Id == byID.ID {
					return q, nil
				}
			}
			return nil, nil
		}
	}
	if len(r.questions) == 0 {
		return nil, nil
	}
	return r.questions[0], nil
}

func (r *stubQuestionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.questions, nil
}

func (r *stubQuestionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.questions)), nil
}

func (r *stubQuestionRepo) MaxPosition(ctx context.Context, periodId uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, q := range r.questions {
		if q.Position > max {
			max = q.Position
		}
	}
	return max, nil
}

type stubAnswerRepo struct {
	mu       sync.Mutex
	answers  []*entity.Answer
	upserts  []*entity.Answer
	batches  [][]*entity.Answer
	wiped    []uuid.UUID
	writeErr error
}

func (r *stubAnswerRepo) Upsert(ctx context.Context, answer *entity.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.upserts = append(r.upserts, answer)
	return nil
}

func (r *stubAnswerRepo) UpsertBatch(ctx context.Context, answers []*entity.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.batches = append(r.batches, answers)
	return nil
}

func (r *stubAnswerRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.answers) == 0 {
		return nil, nil
	}
	return r.answers[0], nil
}

func (r *stubAnswerRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.answers, nil
}

func (r *stubAnswerRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.answers)), nil
}

func (r *stubAnswerRepo) CountRespondents(ctx context.Context, periodId uuid.UUID, submittedOnly bool) (int64, error) {
	return 0, nil
}

func (r *stubAnswerRepo) DeleteAllByRespondentAndPeriod(ctx context.Context, respondentId, periodId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wiped = append(r.wiped, respondentId)
	return nil
}

func (r *stubAnswerRepo) upsertCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.upserts)
}

func (r *stubAnswerRepo) lastUpsert() *entity.Answer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.upserts[len(r.upserts)-1]
}

type stubTopicRepo struct {
	mu     sync.Mutex
	topics []*entity.Topic
}

func (r *stubTopicRepo) Create(ctx context.Context, topic *entity.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
	return nil
}

func (r *stubTopicRepo) Update(ctx context.Context, topic *entity.Topic) error { return nil }

func (r *stubTopicRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *stubTopicRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			for _, tp := range r.topics {
				if tp.Id == byID.ID {
					return tp, nil
				}
			}
			return nil, nil
		}
	}
	if len(r.topics) == 0 {
		return nil, nil
	}
	return r.topics[0], nil
}

func (r *stubTopicRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.topics, nil
}

func (r *stubTopicRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.topics)), nil
}

type stubRankingRepo struct {
	mu       sync.Mutex
	rankings []*entity.Ranking
	replaced [][]*entity.Ranking
	wiped    []uuid.UUID
}

func (r *stubRankingRepo) ReplaceForRespondent(ctx context.Context, respondentId, periodId uuid.UUID, rankings []*entity.Ranking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaced = append(r.replaced, rankings)
	r.rankings = rankings
	return nil
}

func (r *stubRankingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ranking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rankings, nil
}

func (r *stubRankingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rankings)), nil
}

func (r *stubRankingRepo) CountRespondents(ctx context.Context, periodId uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *stubRankingRepo) DeleteAllByRespondentAndPeriod(ctx context.Context, respondentId, periodId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wiped = append(r.wiped, respondentId)
	return nil
}

func (r *stubRankingRepo) replaceCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.replaced)
}

// fakeUow wires the stubs into the UnitOfWork surface. Begin, Commit and
// Rollback only count calls; the stubs have no real transactions.
type fakeUow struct {
	users     *stubUserRepo
	periods   *stubPeriodRepo
	questions *stubQuestionRepo
	answers   *stubAnswerRepo
	topics    *stubTopicRepo
	rankings  *stubRankingRepo

	mu        sync.Mutex
	begins    int
	commits   int
	rollbacks int
	beginErr  error
	commitErr error
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users:     &stubUserRepo{},
		periods:   &stubPeriodRepo{},
		questions: &stubQuestionRepo{},
		answers:   &stubAnswerRepo{},
		topics:    &stubTopicRepo{},
		rankings:  &stubRankingRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.begins++
	return u.beginErr
}

func (u *fakeUow) Commit() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.commits++
	return u.commitErr
}

func (u *fakeUow) Rollback() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.rollbacks++
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository         { return u.users }
func (u *fakeUow) PeriodRepository() contract.PeriodRepository     { return u.periods }
func (u *fakeUow) QuestionRepository() contract.QuestionRepository { return u.questions }
func (u *fakeUow) AnswerRepository() contract.AnswerRepository     { return u.answers }
func (u *fakeUow) TopicRepository() contract.TopicRepository       { return u.topics }
func (u *fakeUow) RankingRepository() contract.RankingRepository   { return u.rankings }

// fakeFactory hands out the same fakeUow on every request so tests can
// seed data first and inspect writes afterwards.
type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

var _ unitofwork.RepositoryFactory = (*fakeFactory)(nil)
