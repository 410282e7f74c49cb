package questionnaire

// NavigationPolicy selects which questions the cursor walks over.
type NavigationPolicy int

const (
	// NavigateAll walks the full catalog in display order. Answering a
	// question never changes the list, so the cursor is stable under its
	// feet. This is the default.
	NavigateAll NavigationPolicy = iota
	// NavigateUnanswered walks only the questions that still lack an
	// effective answer. The list shrinks as answers land, so every index
	// read re-clamps against the current length.
	NavigateUnanswered
)

// ProgressPolicy selects which answers count as "done" for the progress
// ratio and the completion gate. Both derive from the same policy so the
// bar a respondent watches and the gate a submit checks never disagree.
type ProgressPolicy int

const (
	// ProgressEffective counts an answer as done once it exists locally,
	// whether or not the remote store confirmed it yet. This is the
	// default: the respondent sees their own actions immediately.
	ProgressEffective ProgressPolicy = iota
	// ProgressPersisted counts an answer only once the remote store holds
	// it (present in the snapshot or confirmed by a commit ack).
	ProgressPersisted
)
