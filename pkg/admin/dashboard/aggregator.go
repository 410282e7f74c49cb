package dashboard

import (
	"context"
	"sort"
	"time"

	"topicmatch-be/internal/dto"
	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/pkg/logger"
	"topicmatch-be/internal/repository/specification"
	"topicmatch-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats retrieves dashboard statistics
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.AdminDashboardStats, error) {
	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalStudents, err := uow.UserRepository().Count(ctx, specification.ByRole{Role: string(entity.UserRoleStudent)})
	if err != nil {
		return nil, err
	}

	activeUsers, err := uow.UserRepository().Count(ctx, specification.ActiveUsers{})
	if err != nil {
		return nil, err
	}

	periods, err := uow.PeriodRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	openPeriods := 0
	periodStats := make([]dto.PeriodStats, 0, len(periods))
	for _, p := range periods {
		if p.Status == entity.PeriodStatusOpen {
			openPeriods++
		}
		st, err := a.periodStats(ctx, uow, p)
		if err != nil {
			return nil, err
		}
		periodStats = append(periodStats, *st)
	}

	return &dto.AdminDashboardStats{
		TotalUsers:    int(totalUsers),
		TotalStudents: int(totalStudents),
		ActiveUsers:   int(activeUsers),
		OpenPeriods:   openPeriods,
		Periods:       periodStats,
	}, nil
}

func (a *Aggregator) periodStats(ctx context.Context, uow unitofwork.UnitOfWork, p *entity.Period) (*dto.PeriodStats, error) {
	questionCount, err := uow.QuestionRepository().Count(ctx, specification.ByPeriodID{PeriodID: p.Id})
	if err != nil {
		return nil, err
	}
	topicCount, err := uow.TopicRepository().Count(ctx, specification.ByPeriodID{PeriodID: p.Id})
	if err != nil {
		return nil, err
	}
	respondents, err := uow.AnswerRepository().CountRespondents(ctx, p.Id, false)
	if err != nil {
		return nil, err
	}
	submitted, err := uow.AnswerRepository().CountRespondents(ctx, p.Id, true)
	if err != nil {
		return nil, err
	}
	ranked, err := uow.RankingRepository().CountRespondents(ctx, p.Id)
	if err != nil {
		return nil, err
	}

	completionRate := 0.0
	if respondents > 0 {
		completionRate = float64(submitted) / float64(respondents)
	}

	return &dto.PeriodStats{
		PeriodId:        p.Id,
		PeriodName:      p.Name,
		Status:          string(p.Status),
		QuestionCount:   int(questionCount),
		TopicCount:      int(topicCount),
		RespondentCount: int(respondents),
		SubmittedCount:  int(submitted),
		RankedCount:     int(ranked),
		CompletionRate:  completionRate,
	}, nil
}

// GetRespondentProgress lists every respondent who has touched the
// period, with answer counts, submission state and ranking coverage.
// Counts come from stored rows only; a value still sitting in an
// in-flight session does not show here until its commit lands.
func (a *Aggregator) GetRespondentProgress(ctx context.Context, uow unitofwork.UnitOfWork, periodId uuid.UUID) ([]*dto.RespondentProgressResponse, error) {
	totalQuestions, err := uow.QuestionRepository().Count(ctx, specification.ByPeriodID{PeriodID: periodId})
	if err != nil {
		return nil, err
	}

	answers, err := uow.AnswerRepository().FindAll(ctx, specification.ByPeriodID{PeriodID: periodId})
	if err != nil {
		return nil, err
	}
	rankings, err := uow.RankingRepository().FindAll(ctx, specification.ByPeriodID{PeriodID: periodId})
	if err != nil {
		return nil, err
	}

	type progress struct {
		answered     int
		submitted    bool
		ranked       int
		lastActivity time.Time
	}
	byRespondent := make(map[uuid.UUID]*progress)
	track := func(id uuid.UUID) *progress {
		p, ok := byRespondent[id]
		if !ok {
			p = &progress{}
			byRespondent[id] = p
		}
		return p
	}
	for _, ans := range answers {
		p := track(ans.RespondentId)
		p.answered++
		if ans.Submitted {
			p.submitted = true
		}
		if ans.UpdatedAt.After(p.lastActivity) {
			p.lastActivity = ans.UpdatedAt
		}
	}
	for _, r := range rankings {
		p := track(r.RespondentId)
		p.ranked++
		if r.UpdatedAt.After(p.lastActivity) {
			p.lastActivity = r.UpdatedAt
		}
	}

	if len(byRespondent) == 0 {
		return []*dto.RespondentProgressResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(byRespondent))
	for id := range byRespondent {
		ids = append(ids, id)
	}
	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	usersById := make(map[uuid.UUID]*entity.User, len(users))
	for _, u := range users {
		usersById[u.Id] = u
	}

	res := make([]*dto.RespondentProgressResponse, 0, len(byRespondent))
	for id, p := range byRespondent {
		row := &dto.RespondentProgressResponse{
			RespondentId:  id,
			AnsweredCount: p.answered,
			TotalCount:    int(totalQuestions),
			Submitted:     p.submitted,
			RankedTopics:  p.ranked,
		}
		if !p.lastActivity.IsZero() {
			t := p.lastActivity
			row.LastActivity = &t
		}
		if u, ok := usersById[id]; ok {
			row.Email = u.Email
			row.FullName = u.FullName
			row.StudentNumber = u.StudentNumber
		}
		res = append(res, row)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Email < res[j].Email
	})
	return res, nil
}

// GetSystemLogs retrieves system logs
func (a *Aggregator) GetSystemLogs(ctx context.Context, loggerSvc logger.ILogger, page, limit int, level string) ([]*dto.LogListResponse, error) {
	logs, err := loggerSvc.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	var res []*dto.LogListResponse
	for _, l := range logs {
		ts, _ := time.Parse(time.RFC3339, l.Timestamp)
		res = append(res, &dto.LogListResponse{
			Id:        l.Id,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		})
	}
	return res, nil
}

// GetLogDetail retrieves a single log entry
func (a *Aggregator) GetLogDetail(ctx context.Context, loggerSvc logger.ILogger, logId string) (*dto.LogDetailResponse, error) {
	l, err := loggerSvc.GetLogById(logId)
	if err != nil {
		return nil, err
	}

	ts, _ := time.Parse(time.RFC3339, l.Timestamp)

	return &dto.LogDetailResponse{
		LogListResponse: dto.LogListResponse{
			Id:        logId,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		},
		Details: l.Details,
	}, nil
}
