package questionnaire

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewCatalogOrdersByPosition(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	cat, err := NewCatalog([]Question{
		{ID: c, Text: "third", Kind: KindBoolean, Position: 30},
		{ID: a, Text: "first", Kind: KindBoolean, Position: 10},
		{ID: b, Text: "second", Kind: KindScale, Min: 0, Max: 10, Position: 20},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if cat.Len() != 3 {
		t.Fatalf("Len = %d, want 3", cat.Len())
	}
	wantOrder := []uuid.UUID{a, b, c}
	for i, want := range wantOrder {
		if got := cat.At(i).ID; got != want {
			t.Errorf("At(%d).ID = %v, want %v", i, got, want)
		}
		if got := cat.IndexOf(want); got != i {
			t.Errorf("IndexOf(%v) = %d, want %d", want, got, i)
		}
	}
	if got := cat.IndexOf(uuid.New()); got != -1 {
		t.Errorf("IndexOf(unknown) = %d, want -1", got)
	}
}

func TestNewCatalogRejectsEmpty(t *testing.T) {
	if _, err := NewCatalog(nil); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("NewCatalog(nil) err = %v, want ErrNoQuestions", err)
	}
}

func TestNewCatalogDropsDuplicateIDs(t *testing.T) {
	id := uuid.New()
	cat, err := NewCatalog([]Question{
		{ID: id, Text: "kept", Kind: KindBoolean, Position: 1},
		{ID: id, Text: "dropped", Kind: KindBoolean, Position: 2},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Len = %d, want 1", cat.Len())
	}
	if cat.At(0).Text != "kept" {
		t.Errorf("kept question = %q, want the first occurrence", cat.At(0).Text)
	}
}

func TestQuestionAccepts(t *testing.T) {
	boolQ := Question{ID: uuid.New(), Kind: KindBoolean}
	scaleQ := Question{ID: uuid.New(), Kind: KindScale, Min: 1, Max: 5}

	tests := []struct {
		name    string
		q       Question
		v       Value
		wantErr error
	}{
		{"boolean ok", boolQ, BoolValue(true), nil},
		{"scale ok", scaleQ, NumberValue(3), nil},
		{"scale at lower bound", scaleQ, NumberValue(1), nil},
		{"scale at upper bound", scaleQ, NumberValue(5), nil},
		{"kind mismatch", boolQ, NumberValue(3), ErrKindMismatch},
		{"scale below range", scaleQ, NumberValue(0), ErrValueOutOfRange},
		{"scale above range", scaleQ, NumberValue(6), ErrValueOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Accepts(tt.v)
			if tt.wantErr == nil && err != nil {
				t.Errorf("Accepts = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Accepts = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuestionDefaultValue(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		want Value
	}{
		{"scale midpoint", Question{Kind: KindScale, Min: 0, Max: 10}, NumberValue(5)},
		{"scale midpoint odd range", Question{Kind: KindScale, Min: 1, Max: 5}, NumberValue(3)},
		{"boolean false", Question{Kind: KindBoolean}, BoolValue(false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.DefaultValue(); got != tt.want {
				t.Errorf("DefaultValue = %+v, want %+v", got, tt.want)
			}
		})
	}
}
