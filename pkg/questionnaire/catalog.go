package questionnaire

import (
	"sort"

	"github.com/google/uuid"
)

// Catalog is the ordered, immutable question set a session runs over.
// Build it once per period via NewCatalog; sessions share it read-only.
type Catalog struct {
	questions []Question
	byID      map[uuid.UUID]int
}

// NewCatalog sorts the questions by Position (stable, so equal positions
// keep their given order), drops duplicate IDs keeping the first, and
// indexes them. An empty input is rejected: a session without questions
// has no current item to stand on.
func NewCatalog(questions []Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].Position < qs[j].Position })

	byID := make(map[uuid.UUID]int, len(qs))
	deduped := qs[:0]
	for _, q := range qs {
		if _, seen := byID[q.ID]; seen {
			continue
		}
		byID[q.ID] = len(deduped)
		deduped = append(deduped, q)
	}
	return &Catalog{questions: deduped, byID: byID}, nil
}

// Len returns the number of questions.
func (c *Catalog) Len() int { return len(c.questions) }

// At returns the question at index i in display order.
func (c *Catalog) At(i int) Question { return c.questions[i] }

// IndexOf returns the display index of id, or -1 when absent.
func (c *Catalog) IndexOf(id uuid.UUID) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

// Question looks a question up by ID.
func (c *Catalog) Question(id uuid.UUID) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// Questions returns the ordered questions. Callers must not mutate.
func (c *Catalog) Questions() []Question { return c.questions }
