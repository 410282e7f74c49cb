package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"topicmatch-be/internal/entity"
	"topicmatch-be/internal/pkg/logger"
	"topicmatch-be/internal/repository/specification"
	"topicmatch-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Builder assembles solver input from a period's stored rankings and
// answers. It never runs the solver; it only shapes the data.
type Builder struct {
	teamSize int
	logger   logger.ILogger
}

// NewBuilder creates a matching input builder. teamSize is the uniform
// team headcount; zero means derive it from agent and team counts.
func NewBuilder(teamSize int, log logger.ILogger) *Builder {
	return &Builder{
		teamSize: teamSize,
		logger:   log,
	}
}

// Build produces the solver input for one period. Respondents whose
// ranking no longer covers every published topic (a topic was published
// or retired after they submitted) are left out with a warning; the
// solver requires full preference lists.
func (b *Builder) Build(ctx context.Context, uow unitofwork.UnitOfWork, periodId uuid.UUID) (*Input, error) {
	topics, err := uow.TopicRepository().FindAll(ctx,
		specification.ByPeriodID{PeriodID: periodId},
		specification.PublishedTopics{},
		specification.OrderByPosition{},
	)
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, errors.New("period has no published topics to match against")
	}

	topicIndex := make(map[uuid.UUID]int, len(topics))
	topicRefs := make([]TopicRef, 0, len(topics))
	for i, t := range topics {
		topicIndex[t.Id] = i
		topicRefs = append(topicRefs, TopicRef{
			Index:    i,
			Id:       t.Id,
			Title:    t.Title,
			Capacity: t.Capacity,
		})
	}

	questions, err := uow.QuestionRepository().FindAll(ctx,
		specification.ByPeriodID{PeriodID: periodId},
		specification.OrderByPosition{},
	)
	if err != nil {
		return nil, err
	}
	attrKeys := make(map[uuid.UUID]string, len(questions))
	questionRefs := make([]QuestionRef, 0, len(questions))
	for _, q := range questions {
		key := fmt.Sprintf("q%d", q.Position)
		attrKeys[q.Id] = key
		questionRefs = append(questionRefs, QuestionRef{
			Key:  key,
			Id:   q.Id,
			Text: q.Text,
			Kind: string(q.Kind),
		})
	}

	rankings, err := uow.RankingRepository().FindAll(ctx,
		specification.ByPeriodID{PeriodID: periodId},
		specification.OrderByRank{},
	)
	if err != nil {
		return nil, err
	}
	// Rows arrive rank-ascending, so per-respondent append order is
	// already best first.
	prefsByRespondent := make(map[uuid.UUID][]int)
	staleByRespondent := make(map[uuid.UUID]bool)
	for _, r := range rankings {
		idx, ok := topicIndex[r.TopicId]
		if !ok {
			staleByRespondent[r.RespondentId] = true
			continue
		}
		prefsByRespondent[r.RespondentId] = append(prefsByRespondent[r.RespondentId], idx)
	}

	answers, err := uow.AnswerRepository().FindAll(ctx, specification.ByPeriodID{PeriodID: periodId})
	if err != nil {
		return nil, err
	}
	attrsByRespondent := make(map[uuid.UUID]map[string]interface{})
	for _, a := range answers {
		key, ok := attrKeys[a.QuestionId]
		if !ok {
			continue
		}
		value := attributeValue(a)
		if value == nil {
			continue
		}
		attrs, ok := attrsByRespondent[a.RespondentId]
		if !ok {
			attrs = make(map[string]interface{})
			attrsByRespondent[a.RespondentId] = attrs
		}
		attrs[key] = value
	}

	respondentIds := make([]uuid.UUID, 0, len(prefsByRespondent))
	for id := range prefsByRespondent {
		respondentIds = append(respondentIds, id)
	}
	sort.Slice(respondentIds, func(i, j int) bool {
		return respondentIds[i].String() < respondentIds[j].String()
	})

	agents := make([]Agent, 0, len(respondentIds))
	for _, id := range respondentIds {
		prefs := prefsByRespondent[id]
		if staleByRespondent[id] || len(prefs) != len(topics) {
			b.warn("Skipping respondent with incomplete ranking", id, periodId)
			continue
		}
		attrs := attrsByRespondent[id]
		if attrs == nil {
			attrs = map[string]interface{}{}
		}
		agents = append(agents, Agent{
			Id:           len(agents),
			RespondentId: id,
			Preferences:  prefs,
			Attributes:   attrs,
		})
	}

	return &Input{
		PeriodId:      periodId,
		GeneratedAt:   time.Now(),
		NumTeams:      len(topics),
		NumAgents:     len(agents),
		AgentsPerTeam: b.agentsPerTeam(len(agents), len(topics)),
		Topics:        topicRefs,
		Questions:     questionRefs,
		Agents:        agents,
	}, nil
}

func (b *Builder) agentsPerTeam(numAgents, numTeams int) int {
	if b.teamSize > 0 {
		return b.teamSize
	}
	if numTeams == 0 {
		return 0
	}
	return (numAgents + numTeams - 1) / numTeams
}

func (b *Builder) warn(msg string, respondentId, periodId uuid.UUID) {
	if b.logger == nil {
		return
	}
	b.logger.Warn("Matching", msg, map[string]interface{}{
		"respondent_id": respondentId.String(),
		"period_id":     periodId.String(),
	})
}

func attributeValue(a *entity.Answer) interface{} {
	switch a.Kind {
	case entity.QuestionKindBoolean:
		if a.BoolValue != nil {
			return *a.BoolValue
		}
	case entity.QuestionKindScale:
		if a.NumberValue != nil {
			return *a.NumberValue
		}
	}
	return nil
}
