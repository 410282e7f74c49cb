package matching

import (
	"time"

	"github.com/google/uuid"
)

// Input is the payload handed to the external team-assignment solver.
// Teams are the period's published topics; agents are the respondents
// holding a complete ranking. Preferences are topic index lists, best
// first, so a preference list position doubles as the agent's regret
// rank for that topic.
type Input struct {
	PeriodId      uuid.UUID     `json:"period_id"`
	GeneratedAt   time.Time     `json:"generated_at"`
	NumTeams      int           `json:"num_teams"`
	NumAgents     int           `json:"num_agents"`
	AgentsPerTeam int           `json:"agents_per_team"`
	Topics        []TopicRef    `json:"topics"`
	Questions     []QuestionRef `json:"questions"`
	Agents        []Agent       `json:"agents"`
}

// TopicRef maps a team index back to the topic it stands for.
type TopicRef struct {
	Index    int       `json:"index"`
	Id       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Capacity int       `json:"capacity"`
}

// QuestionRef maps an agent attribute key back to its catalog question.
type QuestionRef struct {
	Key  string    `json:"key"`
	Id   uuid.UUID `json:"id"`
	Text string    `json:"text"`
	Kind string    `json:"kind"`
}

// Agent is one matchable respondent. Id is the agent's zero-based index
// in the export; RespondentId ties the solver's assignment back to the
// portal account.
type Agent struct {
	Id           int                    `json:"id"`
	RespondentId uuid.UUID              `json:"respondent_id"`
	Preferences  []int                  `json:"preferences"`
	Attributes   map[string]interface{} `json:"attributes"`
}
