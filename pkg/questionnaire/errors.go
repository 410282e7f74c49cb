package questionnaire

import "errors"

var (
	// ErrNoQuestions is returned when a catalog or session is built over
	// an empty question set.
	ErrNoQuestions = errors.New("questionnaire: no questions")

	// ErrUnknownQuestion is returned when an operation names a question
	// ID the catalog does not contain.
	ErrUnknownQuestion = errors.New("questionnaire: unknown question")

	// ErrKindMismatch is returned when an answer value's kind differs
	// from the question's kind.
	ErrKindMismatch = errors.New("questionnaire: answer kind mismatch")

	// ErrValueOutOfRange is returned when a scale answer falls outside
	// the question's [Min, Max] bounds.
	ErrValueOutOfRange = errors.New("questionnaire: scale value out of range")

	// ErrNoCurrentQuestion is returned when an operation needs a current
	// question and the navigable sequence is exhausted.
	ErrNoCurrentQuestion = errors.New("questionnaire: no current question")

	// ErrSubmitInFlight is returned when a submission is started while a
	// previous one has not finished yet.
	ErrSubmitInFlight = errors.New("questionnaire: submission already in flight")
)
