package catalog

import (
	"fmt"

	"careercompass/internal/model"
)

// Catalog is the immutable static input bundle: the ordered question
// sequence, the population norms table and the career catalog. Built
// once at startup, validated, then shared by reference. Nothing here
// is mutated after New returns.
type Catalog struct {
	questions   []model.Question
	byID        map[string]int
	norms       model.Norms
	careers     []model.Career
	mirrorIndex int // 0-based position of the dynamic slot
}

// New validates the static inputs and builds the catalog. Any
// violation is a configuration error: the engine must refuse to serve
// rather than run on a broken bundle.
func New(questions []model.Question, norms model.Norms, careers []model.Career) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question catalog", model.ErrConfiguration)
	}

	ordered := make([]model.Question, len(questions))
	seen := make(map[int]bool, len(questions))
	for _, q := range questions {
		if q.Order < 1 || q.Order > len(questions) {
			return nil, fmt.Errorf("%w: question %q order %d outside 1..%d", model.ErrConfiguration, q.ID, q.Order, len(questions))
		}
		if seen[q.Order] {
			return nil, fmt.Errorf("%w: duplicate order index %d", model.ErrConfiguration, q.Order)
		}
		seen[q.Order] = true
		ordered[q.Order-1] = q
	}

	c := &Catalog{
		questions:   ordered,
		byID:        make(map[string]int, len(ordered)),
		norms:       norms,
		careers:     careers,
		mirrorIndex: -1,
	}

	for i := range ordered {
		q := &ordered[i]
		if q.ID == "" {
			return nil, fmt.Errorf("%w: question at order %d has no id", model.ErrConfiguration, q.Order)
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate question id %q", model.ErrConfiguration, q.ID)
		}
		c.byID[q.ID] = i

		if q.Section < 1 || q.Section > 5 {
			return nil, fmt.Errorf("%w: question %q section %d outside 1..5", model.ErrConfiguration, q.ID, q.Section)
		}
		if !q.Primary.Valid() {
			return nil, fmt.Errorf("%w: question %q has unknown primary dimension %q", model.ErrConfiguration, q.ID, q.Primary)
		}

		switch q.Type {
		case model.QuestionTypeRating:
			if q.Range == nil || q.Range.Min >= q.Range.Max {
				return nil, fmt.Errorf("%w: question %q has an invalid rating range", model.ErrConfiguration, q.ID)
			}
		case model.QuestionTypeSingleChoice, model.QuestionTypeBinary:
			if err := validateOptions(q); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: question %q has unknown type %q", model.ErrConfiguration, q.ID, q.Type)
		}

		if q.Dynamic {
			if c.mirrorIndex >= 0 {
				return nil, fmt.Errorf("%w: more than one dynamic question", model.ErrConfiguration)
			}
			if i <= len(ordered)/2 {
				return nil, fmt.Errorf("%w: dynamic question %q at order %d is not past the midpoint", model.ErrConfiguration, q.ID, q.Order)
			}
			if q.Type != model.QuestionTypeSingleChoice {
				return nil, fmt.Errorf("%w: dynamic question %q must be single_choice", model.ErrConfiguration, q.ID)
			}
			c.mirrorIndex = i
		}
	}
	if c.mirrorIndex < 0 {
		return nil, fmt.Errorf("%w: no dynamic question in catalog", model.ErrConfiguration)
	}

	for _, d := range model.Dimensions {
		n, ok := norms[d]
		if !ok {
			return nil, fmt.Errorf("%w: norms table missing dimension %s", model.ErrConfiguration, d)
		}
		if n.SD <= 0 {
			return nil, fmt.Errorf("%w: norms for dimension %s have sd <= 0", model.ErrConfiguration, d)
		}
	}

	careerIDs := make(map[string]bool, len(careers))
	for _, career := range careers {
		if career.ID == "" {
			return nil, fmt.Errorf("%w: career %q has no id", model.ErrConfiguration, career.Title)
		}
		if careerIDs[career.ID] {
			return nil, fmt.Errorf("%w: duplicate career id %q", model.ErrConfiguration, career.ID)
		}
		careerIDs[career.ID] = true
		for _, d := range model.Dimensions {
			if _, ok := career.Profile[d]; !ok {
				return nil, fmt.Errorf("%w: career %q missing dimension %s", model.ErrConfiguration, career.ID, d)
			}
		}
	}

	return c, nil
}

func validateOptions(q *model.Question) error {
	min := 2
	if q.Type == model.QuestionTypeBinary {
		if len(q.Options) != 2 {
			return fmt.Errorf("%w: binary question %q needs exactly 2 options", model.ErrConfiguration, q.ID)
		}
	} else if len(q.Options) < min {
		return fmt.Errorf("%w: question %q needs at least %d options", model.ErrConfiguration, q.ID, min)
	}
	values := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.Value == "" {
			return fmt.Errorf("%w: question %q has an option without a value token", model.ErrConfiguration, q.ID)
		}
		if values[opt.Value] {
			return fmt.Errorf("%w: question %q has duplicate option value %q", model.ErrConfiguration, q.ID, opt.Value)
		}
		values[opt.Value] = true
		for d := range opt.Scores {
			if !d.Valid() {
				return fmt.Errorf("%w: question %q option %q scores unknown dimension %q", model.ErrConfiguration, q.ID, opt.Value, d)
			}
		}
	}
	return nil
}

// Len returns the number of questions N.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// QuestionAt returns the question at the 0-based index, or nil when
// out of range.
func (c *Catalog) QuestionAt(i int) *model.Question {
	if i < 0 || i >= len(c.questions) {
		return nil
	}
	return &c.questions[i]
}

// QuestionByID returns the question with the given id, or nil.
func (c *Catalog) QuestionByID(id string) *model.Question {
	i, ok := c.byID[id]
	if !ok {
		return nil
	}
	return &c.questions[i]
}

// MirrorIndex returns the 0-based index of the dynamic slot.
func (c *Catalog) MirrorIndex() int {
	return c.mirrorIndex
}

// Norms returns the population norms table.
func (c *Catalog) Norms() model.Norms {
	return c.norms
}

// Careers returns the career catalog in catalog order.
func (c *Catalog) Careers() []model.Career {
	return c.careers
}

// SectionBoundary reports whether advancing the pointer to the given
// 0-based index closed a section, and which section that was. The
// final question closes the last section.
func (c *Catalog) SectionBoundary(pointer int) (int, bool) {
	if pointer < 1 || pointer > len(c.questions) {
		return 0, false
	}
	prev := c.questions[pointer-1].Section
	if pointer == len(c.questions) || c.questions[pointer].Section != prev {
		return prev, true
	}
	return 0, false
}
