package questionnaire

// AnswerStanding is the per-question answer state the presentation layer
// renders: absent, pending (held locally, not yet acknowledged), failed
// (last write attempt errored, value still held), or persisted.
type AnswerStanding string

const (
	StandingAbsent    AnswerStanding = "absent"
	StandingPending   AnswerStanding = "pending"
	StandingFailed    AnswerStanding = "failed"
	StandingPersisted AnswerStanding = "persisted"
)

// Item pairs a question with its merged answer and standing.
type Item struct {
	Question Question
	Value    *Value
	Standing AnswerStanding
	// LastErr carries the most recent commit failure for this question,
	// empty otherwise.
	LastErr string
}

// View is a point-in-time, side-effect-free projection of the session.
// Everything in it is derived from the catalog, the snapshot, the
// overlay and the cursor; recomputing it never mutates the session.
type View struct {
	Items         []Item
	Index         int
	Current       *Item
	Total         int
	Remaining     int
	AnsweredCount int
	Progress      float64
	IsFirst       bool
	IsLast        bool
	IsComplete    bool
	IsSubmitting  bool
}

// View projects the current session state. The cursor is re-clamped
// against the live sequence first, so the returned index is always legal
// even right after an ack or refresh shrank the sequence.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	nav := s.navigableLocked()
	s.reclampLocked(len(nav))

	total := s.catalog.Len()
	items := make([]Item, 0, total)
	for _, q := range s.catalog.Questions() {
		items = append(items, s.itemLocked(q))
	}

	answered := s.answeredCountLocked()
	v := View{
		Items:         items,
		Index:         s.index,
		Total:         total,
		Remaining:     len(nav),
		AnsweredCount: answered,
		IsFirst:       s.index == 0,
		IsLast:        len(nav) == 0 || s.index == len(nav)-1,
		IsComplete:    answered == total,
		IsSubmitting:  s.submitting,
	}
	if total > 0 {
		v.Progress = float64(answered) / float64(total) * 100
	}
	if len(nav) > 0 {
		current := items[nav[s.index]]
		v.Current = &current
	}
	return v
}

func (s *Session) itemLocked(q Question) Item {
	item := Item{Question: q, Standing: StandingAbsent}
	if e, ok := s.overlay[q.ID]; ok {
		val := e.value
		item.Value = &val
		switch e.state {
		case AckConfirmed:
			item.Standing = StandingPersisted
		case AckFailed:
			item.Standing = StandingFailed
			if e.err != nil {
				item.LastErr = e.err.Error()
			}
		default:
			item.Standing = StandingPending
		}
		return item
	}
	if val, ok := s.snapshot[q.ID]; ok {
		item.Value = &val
		item.Standing = StandingPersisted
	}
	return item
}
