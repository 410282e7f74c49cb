package questionnaire

import (
	"context"

	"github.com/google/uuid"
)

// AckState tracks a locally held answer's standing against the remote
// store.
type AckState int

const (
	// AckPending means the value has been handed to the committer and no
	// acknowledgment has arrived yet, or the value changed since the last
	// acknowledgment.
	AckPending AckState = iota
	// AckConfirmed means the remote store acknowledged exactly this value.
	AckConfirmed
	// AckFailed means the last commit attempt for exactly this value
	// reported an error. The value itself stays authoritative locally and
	// is retried on the next navigation step or submit.
	AckFailed
)

// CommitRequest is one fire-and-forget persistence order for a single
// answer. Deliveries are at-least-once; consumers upsert keyed on
// (RespondentID, PeriodID, QuestionID) so replays are harmless.
type CommitRequest struct {
	RespondentID uuid.UUID `json:"respondent_id"`
	PeriodID     uuid.UUID `json:"period_id"`
	QuestionID   uuid.UUID `json:"question_id"`
	Value        Value     `json:"value"`
}

// SubmitBatch is the finalization payload: every catalog question paired
// with its effective value, untouched ones filled with defaults.
type SubmitBatch struct {
	RespondentID uuid.UUID       `json:"respondent_id"`
	PeriodID     uuid.UUID       `json:"period_id"`
	Answers      []CommitRequest `json:"answers"`
}

// Committer receives persistence work the session dispatches without
// waiting. Implementations deliver the request to the remote store and
// later report the outcome back through Session.ResolveCommit or
// Session.FailCommit. Commit must not block on storage; queue and return.
type Committer interface {
	Commit(ctx context.Context, req CommitRequest) error
	Submit(ctx context.Context, batch SubmitBatch) error
}

// NopCommitter discards every request. Useful for read-only previews and
// tests that only exercise navigation.
type NopCommitter struct{}

func (NopCommitter) Commit(context.Context, CommitRequest) error { return nil }
func (NopCommitter) Submit(context.Context, SubmitBatch) error   { return nil }
