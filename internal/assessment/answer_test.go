package assessment

import (
	"encoding/json"
	"reflect"
	"testing"
)

func multiQuestion(allowMultiple bool, optionTexts ...string) Question {
	q := Question{
		ID:            "q1",
		Category:      CategoryEnvironment,
		Weight:        10,
		AllowMultiple: allowMultiple,
	}
	for _, text := range optionTexts {
		q.Options = append(q.Options, Option{Text: NewText(text, ""), SubMark: 5})
	}
	return q
}

func selection(t *testing.T, a AnswerSet, q Question) []int {
	t.Helper()
	v, ok := a.Get(q.Category, q.ID)
	if !ok {
		return nil
	}
	return v.Indices()
}

func TestToggleOptionSingleSelectReplaces(t *testing.T) {
	q := multiQuestion(false, "A", "B", "C")
	answers := NewAnswerSet()

	answers.ToggleOption(q, 0)
	if got := selection(t, answers, q); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("after first toggle got %v, want [0]", got)
	}
	if !answers.Answered(q.Category, q.ID) {
		t.Fatal("index 0 selection must count as answered")
	}

	answers.ToggleOption(q, 2)
	if got := selection(t, answers, q); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("second toggle must replace, got %v", got)
	}
}

func TestToggleOptionMultiSelect(t *testing.T) {
	q := multiQuestion(true, "A", "B", "C")
	answers := NewAnswerSet()

	answers.ToggleOption(q, 0)
	answers.ToggleOption(q, 2)
	if got := selection(t, answers, q); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("got %v, want [0 2]", got)
	}

	// Toggling a selected option removes it.
	answers.ToggleOption(q, 0)
	if got := selection(t, answers, q); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("got %v, want [2]", got)
	}

	// Removing the last selection leaves the question unanswered.
	answers.ToggleOption(q, 2)
	if answers.Answered(q.Category, q.ID) {
		t.Fatal("empty selection must not count as answered")
	}
}

func TestToggleOptionOptOutExclusion(t *testing.T) {
	q := multiQuestion(true, "A", "B", "None of the above")
	answers := NewAnswerSet()

	// Selecting the opt-out clears prior selections.
	answers.ToggleOption(q, 0)
	answers.ToggleOption(q, 2)
	if got := selection(t, answers, q); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("opt-out must clear others, got %v", got)
	}

	// Selecting any other option clears the opt-out.
	answers.ToggleOption(q, 1)
	if got := selection(t, answers, q); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("other option must clear opt-out, got %v", got)
	}

	// Toggling the opt-out off empties the selection.
	answers.ToggleOption(q, 2)
	answers.ToggleOption(q, 2)
	if got := selection(t, answers, q); len(got) != 0 {
		t.Fatalf("opt-out off must empty selection, got %v", got)
	}
}

// The opt-out invariant must hold after every toggle sequence.
func TestOptOutInvariant(t *testing.T) {
	q := multiQuestion(true, "A", "B", "Tiada di atas", "C")
	answers := NewAnswerSet()

	sequence := []int{0, 1, 2, 3, 2, 0, 2, 2, 1, 3, 2}
	for step, idx := range sequence {
		answers.ToggleOption(q, idx)
		sel := selection(t, answers, q)
		hasOptOut := false
		for _, i := range sel {
			if i == 2 {
				hasOptOut = true
			}
		}
		if hasOptOut && len(sel) != 1 {
			t.Fatalf("step %d: opt-out selected together with others: %v", step, sel)
		}
	}
}

func TestToggleOptionOutOfRange(t *testing.T) {
	q := multiQuestion(true, "A", "B")
	answers := NewAnswerSet()

	answers.ToggleOption(q, -1)
	answers.ToggleOption(q, 2)
	if answers.Answered(q.Category, q.ID) {
		t.Fatal("out-of-range toggles must not create an answer")
	}
}

func TestAnswerValueJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   AnswerValue
		wire string
	}{
		{name: "numeric", in: Numeric("120"), wire: `"120"`},
		{name: "single index zero", in: SingleChoice(0), wire: `0`},
		{name: "multi", in: MultiChoice([]int{2, 0}), wire: `[2,0]`},
		{name: "empty multi", in: MultiChoice(nil), wire: `[]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tc.wire {
				t.Fatalf("wire = %s, want %s", data, tc.wire)
			}
			var back AnswerValue
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back.Kind() != tc.in.Kind() || !reflect.DeepEqual(back.Indices(), tc.in.Indices()) || back.Raw() != tc.in.Raw() {
				t.Fatalf("round trip mismatch: got %#v, want %#v", back, tc.in)
			}
		})
	}
}

func TestAnswerSetAnsweredPresence(t *testing.T) {
	answers := NewAnswerSet()

	if answers.Answered(CategoryPrerequisites, "p1") {
		t.Fatal("missing key must be unanswered")
	}

	answers.Set(CategoryPrerequisites, "p1", Numeric("0"))
	if !answers.Answered(CategoryPrerequisites, "p1") {
		t.Fatal(`numeric "0" must count as answered`)
	}

	answers.Set(CategoryPrerequisites, "p2", Numeric("  "))
	if answers.Answered(CategoryPrerequisites, "p2") {
		t.Fatal("blank numeric must not count as answered")
	}

	answers.Set(CategoryEnvironment, "q1", SingleChoice(0))
	if !answers.Answered(CategoryEnvironment, "q1") {
		t.Fatal("single choice of index 0 must count as answered")
	}
}
