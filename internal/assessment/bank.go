package assessment

import "strings"

// Category is one of the four question sections of the assessment.
type Category string

const (
	CategoryPrerequisites Category = "prerequisites"
	CategoryEnvironment   Category = "environment"
	CategorySocial        Category = "social"
	CategoryGovernance    Category = "governance"
)

// Categories lists the sections in wizard order.
func Categories() []Category {
	return []Category{CategoryPrerequisites, CategoryEnvironment, CategorySocial, CategoryGovernance}
}

// ScoredCategories lists the sections whose answers contribute to the score.
// Prerequisites responses pass through as raw numeric values.
func ScoredCategories() []Category {
	return []Category{CategoryEnvironment, CategorySocial, CategoryGovernance}
}

func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryPrerequisites:
		return CategoryPrerequisites, true
	case CategoryEnvironment:
		return CategoryEnvironment, true
	case CategorySocial:
		return CategorySocial, true
	case CategoryGovernance:
		return CategoryGovernance, true
	}
	return "", false
}

func (c Category) Scored() bool {
	return c == CategoryEnvironment || c == CategorySocial || c == CategoryGovernance
}

// Option is one selectable choice of a scored question. SubMark is the
// partial credit the option contributes to the question score.
type Option struct {
	Text    Text    `json:"text"`
	SubMark float64 `json:"subMark"`
}

// IsOptOut reports whether the option is the mutually exclusive
// "None of the above" choice.
func (o Option) IsOptOut() bool {
	return IsOptOutText(o.Text.EN) || IsOptOutText(o.Text.MS)
}

// Question is a single normalized question of the bank. Prerequisites
// questions carry no options and expect a raw numeric response.
type Question struct {
	ID            string   `json:"id"`
	Category      Category `json:"category"`
	SubCategory   string   `json:"subCategory"`
	Text          Text     `json:"text"`
	Info          Text     `json:"infoDescription"`
	Weight        float64  `json:"weight"`
	AllowMultiple bool     `json:"allowMultiple"`
	Options       []Option `json:"options,omitempty"`
}

// TotalSubMarks is the sum of all option sub-marks of the question.
func (q Question) TotalSubMarks() float64 {
	total := 0.0
	for _, o := range q.Options {
		total += o.SubMark
	}
	return total
}

// OptOutIndex returns the index of the question's opt-out option, or -1.
func (q Question) OptOutIndex() int {
	for i, o := range q.Options {
		if o.IsOptOut() {
			return i
		}
	}
	return -1
}

// Bank groups a flat question list into the fixed categories. Records
// with an unrecognized category are dropped; they contribute to neither
// display nor scoring. Construction is pure and idempotent.
type Bank struct {
	byCategory map[Category][]Question
	index      map[Category]map[string]int
}

func NewBank(questions []Question) *Bank {
	b := &Bank{
		byCategory: make(map[Category][]Question, 4),
		index:      make(map[Category]map[string]int, 4),
	}
	for _, c := range Categories() {
		b.byCategory[c] = nil
		b.index[c] = make(map[string]int)
	}
	for _, q := range questions {
		cat, ok := ParseCategory(string(q.Category))
		if !ok {
			continue
		}
		q.Category = cat
		if _, dup := b.index[cat][q.ID]; dup {
			continue
		}
		b.index[cat][q.ID] = len(b.byCategory[cat])
		b.byCategory[cat] = append(b.byCategory[cat], q)
	}
	return b
}

// Questions returns the questions of one category in bank order.
func (b *Bank) Questions(cat Category) []Question {
	return b.byCategory[cat]
}

// Lookup finds a question by category and id.
func (b *Bank) Lookup(cat Category, id string) (Question, bool) {
	idx, ok := b.index[cat]
	if !ok {
		return Question{}, false
	}
	i, ok := idx[id]
	if !ok {
		return Question{}, false
	}
	return b.byCategory[cat][i], true
}

// Count returns the number of questions in one category.
func (b *Bank) Count(cat Category) int {
	return len(b.byCategory[cat])
}

// Size returns the total number of questions across all categories.
func (b *Bank) Size() int {
	n := 0
	for _, qs := range b.byCategory {
		n += len(qs)
	}
	return n
}
