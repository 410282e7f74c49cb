package questionnaire

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// overlayEntry is one locally held answer and its standing against the
// remote store. Entries are created by user edits only and narrow over
// time (pending -> confirmed, pending -> failed -> pending again on a
// retry); nothing in the session widens one back to absent.
type overlayEntry struct {
	value Value
	state AckState
	err   error
}

// Config carries everything a session needs at construction time.
type Config struct {
	RespondentID uuid.UUID
	PeriodID     uuid.UUID
	Catalog      *Catalog
	// Snapshot is the remote store's view of already persisted answers
	// at session start. May be nil.
	Snapshot map[uuid.UUID]Value
	// Committer receives fire-and-forget persistence work. Defaults to
	// NopCommitter when nil.
	Committer  Committer
	Navigation NavigationPolicy
	Progress   ProgressPolicy
}

// Session is the per-respondent, per-period questionnaire engine. It
// merges the remote snapshot with a local overlay of unsynced edits,
// walks a cursor over the question sequence, and hands persistence work
// to the committer without ever waiting on it.
//
// All methods are safe for concurrent use. State transitions run as
// atomic steps under one mutex; only the committer calls happen outside
// it, so navigation never blocks on storage.
type Session struct {
	mu sync.Mutex

	respondentID uuid.UUID
	periodID     uuid.UUID
	catalog      *Catalog
	committer    Committer
	navigation   NavigationPolicy
	progress     ProgressPolicy

	snapshot map[uuid.UUID]Value
	overlay  map[uuid.UUID]overlayEntry

	index int

	submitting bool
	inFlight   map[uuid.UUID]Value
}

// NewSession builds a session over cfg.Catalog. The cursor starts on the
// first question without an effective answer, or on the first question
// when everything is already answered.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Catalog == nil || cfg.Catalog.Len() == 0 {
		return nil, ErrNoQuestions
	}
	committer := cfg.Committer
	if committer == nil {
		committer = NopCommitter{}
	}
	snapshot := make(map[uuid.UUID]Value, len(cfg.Snapshot))
	for id, v := range cfg.Snapshot {
		snapshot[id] = v
	}
	s := &Session{
		respondentID: cfg.RespondentID,
		periodID:     cfg.PeriodID,
		catalog:      cfg.Catalog,
		committer:    committer,
		navigation:   cfg.Navigation,
		progress:     cfg.Progress,
		snapshot:     snapshot,
		overlay:      make(map[uuid.UUID]overlayEntry),
	}
	s.index = s.initialIndex()
	return s, nil
}

// RespondentID returns the owning respondent.
func (s *Session) RespondentID() uuid.UUID { return s.respondentID }

// PeriodID returns the period the session answers for.
func (s *Session) PeriodID() uuid.UUID { return s.periodID }

// Catalog returns the question set the session runs over.
func (s *Session) Catalog() *Catalog { return s.catalog }

func (s *Session) initialIndex() int {
	nav := s.navigableLocked()
	for pos, ci := range nav {
		if s.effectiveLocked(s.catalog.At(ci).ID) == nil {
			return pos
		}
	}
	return 0
}

// navigableLocked returns the catalog indices the cursor currently walks
// over, in display order. Under NavigateUnanswered the slice shrinks as
// answers reach the remote store, so callers must treat its length as
// valid only for the current locked step.
func (s *Session) navigableLocked() []int {
	n := s.catalog.Len()
	nav := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if s.navigation == NavigateUnanswered && s.persistedLocked(s.catalog.At(i).ID) {
			continue
		}
		nav = append(nav, i)
	}
	return nav
}

// reclampLocked pins the cursor back inside the current sequence. The
// sequence can shrink between steps (a commit ack landing, a snapshot
// refresh), so every read re-derives a legal index instead of trusting
// the stored one.
func (s *Session) reclampLocked(navLen int) {
	if navLen == 0 {
		s.index = 0
		return
	}
	if s.index > navLen-1 {
		s.index = navLen - 1
	}
	if s.index < 0 {
		s.index = 0
	}
}

func (s *Session) effectiveLocked(id uuid.UUID) *Value {
	if e, ok := s.overlay[id]; ok {
		v := e.value
		return &v
	}
	if v, ok := s.snapshot[id]; ok {
		v := v
		return &v
	}
	return nil
}

// persistedLocked reports whether the remote store holds an answer for
// id: present in the snapshot, or locally confirmed by a commit ack that
// the next snapshot refresh simply has not caught up with yet.
func (s *Session) persistedLocked(id uuid.UUID) bool {
	if _, ok := s.snapshot[id]; ok {
		return true
	}
	if e, ok := s.overlay[id]; ok && e.state == AckConfirmed {
		return true
	}
	return false
}

func (s *Session) answeredLocked(id uuid.UUID) bool {
	if s.progress == ProgressPersisted {
		return s.persistedLocked(id)
	}
	return s.effectiveLocked(id) != nil
}

func (s *Session) answeredCountLocked() int {
	count := 0
	for _, q := range s.catalog.Questions() {
		if s.answeredLocked(q.ID) {
			count++
		}
	}
	return count
}

// EffectiveAnswer returns the merged answer for id: the local overlay
// wins over the remote snapshot, absence is reported as ok == false.
func (s *Session) EffectiveAnswer(id uuid.UUID) (Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v := s.effectiveLocked(id); v != nil {
		return *v, true
	}
	return Value{}, false
}

// SetAnswer records v as the answer to the current question. The write
// is local only; persistence is triggered by the next forward navigation
// or by Submit.
func (s *Session) SetAnswer(v Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	nav := s.navigableLocked()
	s.reclampLocked(len(nav))
	if len(nav) == 0 {
		return ErrNoCurrentQuestion
	}
	q := s.catalog.At(nav[s.index])
	if err := q.Accepts(v); err != nil {
		return err
	}
	s.overlay[q.ID] = overlayEntry{value: v, state: AckPending}
	return nil
}

// SetAnswerFor records v as the answer to the question with the given
// id, regardless of where the cursor stands.
func (s *Session) SetAnswerFor(id uuid.UUID, v Value) error {
	q, ok := s.catalog.Question(id)
	if !ok {
		return ErrUnknownQuestion
	}
	if err := q.Accepts(v); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay[id] = overlayEntry{value: v, state: AckPending}
	return nil
}

// Next hands the current question's effective answer to the committer,
// fire-and-forget, then advances the cursor one step, clamped to the end
// of the sequence as known before the commit can possibly resolve. A
// failed dispatch marks the answer failed locally and is retried on the
// next forward step or on Submit; it never blocks or rewinds navigation.
func (s *Session) Next(ctx context.Context) View {
	s.mu.Lock()
	nav := s.navigableLocked()
	s.reclampLocked(len(nav))

	var req *CommitRequest
	if len(nav) > 0 {
		q := s.catalog.At(nav[s.index])
		if v := s.effectiveLocked(q.ID); v != nil {
			req = &CommitRequest{
				RespondentID: s.respondentID,
				PeriodID:     s.periodID,
				QuestionID:   q.ID,
				Value:        *v,
			}
		}
		if s.index < len(nav)-1 {
			s.index++
		}
	}
	s.mu.Unlock()

	if req != nil {
		if err := s.committer.Commit(ctx, *req); err != nil {
			s.FailCommit(req.QuestionID, req.Value, err)
		}
	}
	return s.View()
}

// Previous moves the cursor one step back, floored at the first
// question. Moving backward is reviewing, not changing, so no commit is
// triggered; an edited value is picked up by the next forward step.
func (s *Session) Previous() View {
	s.mu.Lock()
	nav := s.navigableLocked()
	s.reclampLocked(len(nav))
	if s.index > 0 {
		s.index--
	}
	s.mu.Unlock()
	return s.View()
}

// Jump moves the cursor to the question with the given id. When the
// question is not part of the current sequence the call is a no-op.
func (s *Session) Jump(id uuid.UUID) View {
	s.mu.Lock()
	nav := s.navigableLocked()
	s.reclampLocked(len(nav))
	for pos, ci := range nav {
		if s.catalog.At(ci).ID == id {
			s.index = pos
			break
		}
	}
	s.mu.Unlock()
	return s.View()
}

// ResolveCommit records a successful write acknowledgment. The ack is
// conditional: it confirms the overlay entry only when the acknowledged
// value is still the one held locally. A stale ack for a value the user
// has since replaced is ignored, otherwise a slow early write could mask
// a newer pending one.
func (s *Session) ResolveCommit(id uuid.UUID, v Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.overlay[id]
	if !ok || e.value != v {
		return
	}
	e.state = AckConfirmed
	e.err = nil
	s.overlay[id] = e
}

// FailCommit records a failed write attempt. The local value stays
// authoritative; only its displayed standing changes so the respondent
// can see it has not landed. Failures for values no longer held, or for
// entries already confirmed by a duplicate delivery, are ignored.
func (s *Session) FailCommit(id uuid.UUID, v Value, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.overlay[id]
	if !ok || e.value != v || e.state == AckConfirmed {
		return
	}
	e.state = AckFailed
	e.err = err
	s.overlay[id] = e
}

// RefreshSnapshot replaces the remote snapshot with a fresh read.
// Overlay entries survive the refresh unless they are confirmed AND the
// new snapshot contains their question; only then has the remote read
// caught up enough to hand authority back. Unconfirmed entries are never
// dropped: a snapshot that lags the user's latest edit must not make the
// session forget it.
func (s *Session) RefreshSnapshot(snapshot map[uuid.UUID]Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make(map[uuid.UUID]Value, len(snapshot))
	for id, v := range snapshot {
		next[id] = v
	}
	s.snapshot = next
	for id, e := range s.overlay {
		if e.state != AckConfirmed {
			continue
		}
		if _, ok := next[id]; ok {
			delete(s.overlay, id)
		}
	}
	nav := s.navigableLocked()
	s.reclampLocked(len(nav))
}

// BeginSubmit opens the finalization batch: every catalog question with
// its effective answer, untouched ones filled with their kind default.
// While the returned batch is outstanding further calls return
// ErrSubmitInFlight, which callers treat as a no-op. Pair every
// successful BeginSubmit with exactly one FinishSubmit.
func (s *Session) BeginSubmit() (SubmitBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return SubmitBatch{}, ErrSubmitInFlight
	}
	s.submitting = true
	batch := SubmitBatch{
		RespondentID: s.respondentID,
		PeriodID:     s.periodID,
		Answers:      make([]CommitRequest, 0, s.catalog.Len()),
	}
	s.inFlight = make(map[uuid.UUID]Value, s.catalog.Len())
	for _, q := range s.catalog.Questions() {
		v := q.DefaultValue()
		if eff := s.effectiveLocked(q.ID); eff != nil {
			v = *eff
		}
		batch.Answers = append(batch.Answers, CommitRequest{
			RespondentID: s.respondentID,
			PeriodID:     s.periodID,
			QuestionID:   q.ID,
			Value:        v,
		})
		s.inFlight[q.ID] = v
	}
	return batch, nil
}

// FinishSubmit closes the batch opened by BeginSubmit. On success every
// overlay entry whose value went out in the batch is confirmed; filled
// defaults stay out of the overlay, which holds explicit user edits
// only. On failure nothing is discarded and the submitting guard is
// released so the caller can retry.
func (s *Session) FinishSubmit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err == nil {
		for id, v := range s.inFlight {
			if e, ok := s.overlay[id]; ok && e.value == v {
				e.state = AckConfirmed
				e.err = nil
				s.overlay[id] = e
			}
		}
	}
	s.inFlight = nil
}

// Submit sends the full answer set as one batch through the committer
// and reports its outcome. A call while a previous batch is outstanding
// returns ErrSubmitInFlight and issues nothing.
func (s *Session) Submit(ctx context.Context) error {
	batch, err := s.BeginSubmit()
	if err != nil {
		return err
	}
	err = s.committer.Submit(ctx, batch)
	s.FinishSubmit(err)
	return err
}

// IsSubmitting reports whether a finalization batch is outstanding.
func (s *Session) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}
