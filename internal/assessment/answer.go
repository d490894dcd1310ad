package assessment

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AnswerKind tags the variant stored in an AnswerValue.
type AnswerKind int

const (
	// KindInvalid marks a value that could not be decoded; the draft
	// validator drops such entries.
	KindInvalid AnswerKind = iota
	// KindNumeric is a raw numeric string, used for Prerequisites.
	KindNumeric
	// KindSingle is a single option index.
	KindSingle
	// KindMulti is a set of option indices for allow_multiple questions.
	KindMulti
)

// AnswerValue is the tagged union of the three legal answer shapes:
// Numeric(string) for Prerequisites, SingleChoice(int) and
// MultiChoice([]int) for scored questions. Index 0 is a valid answer;
// "unanswered" is the absence of a key in the AnswerSet, never a falsy value.
type AnswerValue struct {
	kind    AnswerKind
	numeric string
	single  int
	multi   []int
}

func Numeric(raw string) AnswerValue {
	return AnswerValue{kind: KindNumeric, numeric: raw}
}

func SingleChoice(index int) AnswerValue {
	return AnswerValue{kind: KindSingle, single: index}
}

func MultiChoice(indices []int) AnswerValue {
	cp := make([]int, len(indices))
	copy(cp, indices)
	return AnswerValue{kind: KindMulti, multi: cp}
}

func (v AnswerValue) Kind() AnswerKind { return v.kind }

func (v AnswerValue) Raw() string { return v.numeric }

func (v AnswerValue) Index() int { return v.single }

// Indices returns the selected option indices: the single index for
// KindSingle, a copy of the set for KindMulti, nil otherwise.
func (v AnswerValue) Indices() []int {
	switch v.kind {
	case KindSingle:
		return []int{v.single}
	case KindMulti:
		cp := make([]int, len(v.multi))
		copy(cp, v.multi)
		return cp
	}
	return nil
}

// IsEmpty reports whether the value counts as "not answered" despite the
// key being present: an empty numeric string or an empty index set.
func (v AnswerValue) IsEmpty() bool {
	switch v.kind {
	case KindNumeric:
		return strings.TrimSpace(v.numeric) == ""
	case KindSingle:
		return false
	case KindMulti:
		return len(v.multi) == 0
	}
	return true
}

func (v AnswerValue) contains(index int) bool {
	for _, i := range v.Indices() {
		if i == index {
			return true
		}
	}
	return false
}

// MarshalJSON reproduces the wire shapes of the stored drafts: a JSON
// string for numeric, a number for single-choice, an array for multi-choice.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumeric:
		return json.Marshal(v.numeric)
	case KindSingle:
		return json.Marshal(v.single)
	case KindMulti:
		if v.multi == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.multi)
	}
	return nil, fmt.Errorf("assessment: cannot marshal invalid answer value")
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Numeric(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = SingleChoice(int(n))
		return nil
	}
	var arr []int
	if err := json.Unmarshal(data, &arr); err == nil {
		*v = MultiChoice(arr)
		return nil
	}
	// Unknown shape: keep the entry so the draft validator can count it.
	*v = AnswerValue{}
	return nil
}

// AnswerSet maps category -> question id -> answer value. It is owned by
// the caller and passed explicitly; there is no ambient answer state.
type AnswerSet map[Category]map[string]AnswerValue

func NewAnswerSet() AnswerSet {
	return make(AnswerSet)
}

// Set overwrites the value for one question, used for Prerequisites
// numeric entry and for restoring validated drafts.
func (a AnswerSet) Set(cat Category, questionID string, v AnswerValue) {
	if a[cat] == nil {
		a[cat] = make(map[string]AnswerValue)
	}
	a[cat][questionID] = v
}

func (a AnswerSet) Get(cat Category, questionID string) (AnswerValue, bool) {
	v, ok := a[cat][questionID]
	return v, ok
}

func (a AnswerSet) Delete(cat Category, questionID string) {
	delete(a[cat], questionID)
}

// Answered reports whether the question has a non-empty value. The check
// is presence-based: a selection of option index 0 counts as answered.
func (a AnswerSet) Answered(cat Category, questionID string) bool {
	v, ok := a[cat][questionID]
	return ok && !v.IsEmpty()
}

// CountAnswered returns how many of the bank's questions in cat have answers.
func (a AnswerSet) CountAnswered(bank *Bank, cat Category) int {
	n := 0
	for _, q := range bank.Questions(cat) {
		if a.Answered(cat, q.ID) {
			n++
		}
	}
	return n
}

// ToggleOption applies the selection semantics of one option click:
//
//   - single-select questions replace any prior value;
//   - toggling the opt-out option on clears every other selection, toggling
//     it off empties the set;
//   - toggling another option while opt-out is selected replaces the
//     opt-out with that option alone;
//   - otherwise the index is added if absent, removed if present.
func (a AnswerSet) ToggleOption(q Question, optionIndex int) {
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return
	}

	if !q.AllowMultiple {
		a.Set(q.Category, q.ID, SingleChoice(optionIndex))
		return
	}

	current, _ := a.Get(q.Category, q.ID)
	selected := current.Indices()

	if q.Options[optionIndex].IsOptOut() {
		if current.contains(optionIndex) {
			a.Set(q.Category, q.ID, MultiChoice(nil))
		} else {
			a.Set(q.Category, q.ID, MultiChoice([]int{optionIndex}))
		}
		return
	}

	optOut := q.OptOutIndex()
	if optOut >= 0 && current.contains(optOut) {
		a.Set(q.Category, q.ID, MultiChoice([]int{optionIndex}))
		return
	}

	next := make([]int, 0, len(selected)+1)
	removed := false
	for _, i := range selected {
		if i == optionIndex {
			removed = true
			continue
		}
		next = append(next, i)
	}
	if !removed {
		next = append(next, optionIndex)
	}
	a.Set(q.Category, q.ID, MultiChoice(next))
}

// Clone deep-copies the answer set.
func (a AnswerSet) Clone() AnswerSet {
	out := NewAnswerSet()
	for cat, m := range a {
		for id, v := range m {
			out.Set(cat, id, v)
		}
	}
	return out
}
