package questionnaire

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind discriminates the two supported answer shapes.
type Kind string

const (
	KindBoolean Kind = "boolean"
	KindScale   Kind = "scale"
)

// Value is the tagged answer payload. Exactly one of Bool/Number is
// meaningful, selected by Kind. The struct is comparable on purpose:
// commit acknowledgments are matched against the value that was in
// flight, so equality must be cheap and exact.
type Value struct {
	Kind   Kind    `json:"kind"`
	Bool   bool    `json:"bool,omitempty"`
	Number float64 `json:"number,omitempty"`
}

// BoolValue builds a boolean answer value.
func BoolValue(v bool) Value {
	return Value{Kind: KindBoolean, Bool: v}
}

// NumberValue builds a scale answer value.
func NumberValue(n float64) Value {
	return Value{Kind: KindScale, Number: n}
}

// Question is one catalog item. Immutable once loaded; identity is ID,
// Position is the sole sort key (ties keep catalog arrival order).
type Question struct {
	ID       uuid.UUID
	Text     string
	Kind     Kind
	Min      float64 // scale lower bound, unused for boolean
	Max      float64 // scale upper bound, unused for boolean
	Position int
}

// Accepts reports whether v is a well-formed answer for the question:
// matching kind and, for scales, inside the bounds.
func (q Question) Accepts(v Value) error {
	if v.Kind != q.Kind {
		return fmt.Errorf("%w: got %s, question %s is %s", ErrKindMismatch, v.Kind, q.ID, q.Kind)
	}
	if q.Kind == KindScale && (v.Number < q.Min || v.Number > q.Max) {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrValueOutOfRange, v.Number, q.Min, q.Max)
	}
	return nil
}

// DefaultValue is the value assigned to a question the respondent never
// touched when the whole set is submitted: scale midpoint, boolean false.
// Submission is always possible even with incomplete interaction.
func (q Question) DefaultValue() Value {
	if q.Kind == KindScale {
		return NumberValue((q.Min + q.Max) / 2)
	}
	return BoolValue(false)
}
