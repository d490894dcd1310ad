package assessment

import (
	"encoding/json"
	"reflect"
	"testing"
)

func testBank() *Bank {
	questions := []Question{
		{ID: "p1", Category: CategoryPrerequisites, Weight: 0},
		{ID: "e1", Category: CategoryEnvironment, Weight: 10, AllowMultiple: true, Options: []Option{
			{Text: NewText("Solar", ""), SubMark: 5},
			{Text: NewText("Recycling", ""), SubMark: 5},
			{Text: NewText("None of the above", ""), SubMark: 0},
		}},
		{ID: "s1", Category: CategorySocial, Weight: 5, Options: []Option{
			{Text: NewText("Yes", ""), SubMark: 1},
			{Text: NewText("No", ""), SubMark: 0},
		}},
		{ID: "g1", Category: CategoryGovernance, Weight: 5, Options: []Option{
			{Text: NewText("Yes", ""), SubMark: 1},
			{Text: NewText("No", ""), SubMark: 0},
		}},
	}
	return NewBank(questions)
}

func TestValidateDraftAnswersRemovedQuestion(t *testing.T) {
	bank := testBank()
	draft := NewAnswerSet()
	draft.Set(CategoryEnvironment, "e1", MultiChoice([]int{0}))
	draft.Set(CategoryEnvironment, "q-deleted", SingleChoice(1))

	result := ValidateDraftAnswers(draft, bank)

	if result.RemovedQuestions != 1 {
		t.Fatalf("removed = %d, want 1", result.RemovedQuestions)
	}
	if result.InvalidAnswers != 0 {
		t.Fatalf("invalid = %d, want 0", result.InvalidAnswers)
	}
	if _, ok := result.Answers.Get(CategoryEnvironment, "q-deleted"); ok {
		t.Fatal("deleted question id must be absent from validated answers")
	}
	if !result.Answers.Answered(CategoryEnvironment, "e1") {
		t.Fatal("live answer must survive validation")
	}
}

func TestValidateDraftAnswersValueShapes(t *testing.T) {
	bank := testBank()

	tests := []struct {
		name        string
		cat         Category
		questionID  string
		value       AnswerValue
		wantKept    bool
		wantInvalid int
	}{
		{name: "prerequisite valid number", cat: CategoryPrerequisites, questionID: "p1", value: Numeric("42.5"), wantKept: true},
		{name: "prerequisite zero", cat: CategoryPrerequisites, questionID: "p1", value: Numeric("0"), wantKept: true},
		{name: "prerequisite negative", cat: CategoryPrerequisites, questionID: "p1", value: Numeric("-3"), wantInvalid: 1},
		{name: "prerequisite garbage", cat: CategoryPrerequisites, questionID: "p1", value: Numeric("abc"), wantInvalid: 1},
		{name: "single in range", cat: CategorySocial, questionID: "s1", value: SingleChoice(1), wantKept: true},
		{name: "single out of range", cat: CategorySocial, questionID: "s1", value: SingleChoice(5), wantInvalid: 1},
		{name: "scalar string index", cat: CategorySocial, questionID: "s1", value: Numeric("1"), wantKept: true},
		{name: "scalar string out of range", cat: CategorySocial, questionID: "s1", value: Numeric("9"), wantInvalid: 1},
		{name: "multi fully stale", cat: CategoryEnvironment, questionID: "e1", value: MultiChoice([]int{7, 8}), wantInvalid: 1},
		{name: "undecodable value", cat: CategorySocial, questionID: "s1", value: AnswerValue{}, wantInvalid: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			draft := NewAnswerSet()
			draft.Set(tc.cat, tc.questionID, tc.value)

			result := ValidateDraftAnswers(draft, bank)
			if result.InvalidAnswers != tc.wantInvalid {
				t.Fatalf("invalid = %d, want %d", result.InvalidAnswers, tc.wantInvalid)
			}
			if _, ok := result.Answers.Get(tc.cat, tc.questionID); ok != tc.wantKept {
				t.Fatalf("kept = %v, want %v", ok, tc.wantKept)
			}
		})
	}
}

func TestValidateDraftAnswersFiltersPartiallyStaleMulti(t *testing.T) {
	bank := testBank()
	draft := NewAnswerSet()
	draft.Set(CategoryEnvironment, "e1", MultiChoice([]int{0, 9}))

	result := ValidateDraftAnswers(draft, bank)
	if result.InvalidAnswers != 0 || result.RemovedQuestions != 0 {
		t.Fatalf("counts = %d/%d, want 0/0", result.InvalidAnswers, result.RemovedQuestions)
	}
	v, _ := result.Answers.Get(CategoryEnvironment, "e1")
	if got := v.Indices(); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("filtered indices = %v, want [0]", got)
	}
}

func TestValidateDraftAnswersEmptyCategoryInBank(t *testing.T) {
	bank := NewBank(nil)
	draft := NewAnswerSet()
	draft.Set(CategoryEnvironment, "e1", SingleChoice(0))
	draft.Set(CategoryEnvironment, "e2", SingleChoice(1))

	result := ValidateDraftAnswers(draft, bank)
	if result.RemovedQuestions != 2 {
		t.Fatalf("removed = %d, want 2", result.RemovedQuestions)
	}
	if len(result.Answers) != 0 {
		t.Fatalf("validated answers must be empty, got %v", result.Answers)
	}
}

// Running the validator on its own output must yield zero additional counts.
func TestValidateDraftAnswersIdempotent(t *testing.T) {
	bank := testBank()
	draft := NewAnswerSet()
	draft.Set(CategoryPrerequisites, "p1", Numeric("10"))
	draft.Set(CategoryEnvironment, "e1", MultiChoice([]int{0, 9}))
	draft.Set(CategorySocial, "s1", Numeric("0"))
	draft.Set(CategoryGovernance, "g1", SingleChoice(3))
	draft.Set(CategoryGovernance, "gone", SingleChoice(0))

	first := ValidateDraftAnswers(draft, bank)
	second := ValidateDraftAnswers(first.Answers, bank)

	if !second.Clean() {
		t.Fatalf("second pass counts = %d/%d, want 0/0", second.InvalidAnswers, second.RemovedQuestions)
	}
	if !reflect.DeepEqual(first.Answers, second.Answers) {
		t.Fatalf("second pass changed answers: %v vs %v", first.Answers, second.Answers)
	}
}

// Persisting a draft and validating it against the unchanged bank must
// reproduce the answers exactly with zero counts.
func TestDraftRoundTrip(t *testing.T) {
	bank := testBank()
	answers := NewAnswerSet()
	answers.Set(CategoryPrerequisites, "p1", Numeric("250"))
	answers.Set(CategoryEnvironment, "e1", MultiChoice([]int{0, 1}))
	answers.Set(CategorySocial, "s1", SingleChoice(0))
	answers.Set(CategoryGovernance, "g1", SingleChoice(1))

	data, err := json.Marshal(answers)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored AnswerSet
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	result := ValidateDraftAnswers(restored, bank)
	if !result.Clean() {
		t.Fatalf("counts = %d/%d, want 0/0", result.InvalidAnswers, result.RemovedQuestions)
	}
	if !reflect.DeepEqual(result.Answers, answers) {
		t.Fatalf("round trip mismatch:\n got %v\nwant %v", result.Answers, answers)
	}
}
