package assessment

import (
	"math"
	"testing"
)

func TestQuestionScoreProportional(t *testing.T) {
	q := Question{
		ID:       "q1",
		Category: CategoryEnvironment,
		Weight:   10,
		Options: []Option{
			{Text: NewText("A", ""), SubMark: 5},
			{Text: NewText("B", ""), SubMark: 5},
		},
	}

	tests := []struct {
		name  string
		value AnswerValue
		want  float64
	}{
		{name: "option 0 only", value: SingleChoice(0), want: 5},
		{name: "both options", value: MultiChoice([]int{0, 1}), want: 10},
		{name: "none selected", value: MultiChoice(nil), want: 0},
		{name: "no value at all", value: AnswerValue{}, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := QuestionScore(q, tc.value); got != tc.want {
				t.Fatalf("score = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestQuestionScoreUnevenSubMarks(t *testing.T) {
	q := Question{
		ID:       "q2",
		Category: CategorySocial,
		Weight:   8,
		Options: []Option{
			{Text: NewText("A", ""), SubMark: 3},
			{Text: NewText("B", ""), SubMark: 1},
		},
	}

	got := QuestionScore(q, SingleChoice(0))
	want := 3.0 / 4.0 * 8.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", got, want)
	}
}

func TestQuestionScoreZeroTotalSubMarks(t *testing.T) {
	q := Question{
		ID:       "q3",
		Category: CategoryGovernance,
		Weight:   10,
		Options: []Option{
			{Text: NewText("A", ""), SubMark: 0},
			{Text: NewText("B", ""), SubMark: 0},
		},
	}

	if got := QuestionScore(q, MultiChoice([]int{0, 1})); got != 0 {
		t.Fatalf("malformed question must score 0, got %v", got)
	}
}

func TestQuestionScorePrerequisitesUnscored(t *testing.T) {
	q := Question{ID: "p1", Category: CategoryPrerequisites, Weight: 10}
	if got := QuestionScore(q, Numeric("500")); got != 0 {
		t.Fatalf("prerequisites must not be scored, got %v", got)
	}
}

// Adding a selected option with a positive sub-mark never decreases the
// score, and the score stays within [0, weight].
func TestQuestionScoreMonotonicAndBounded(t *testing.T) {
	q := Question{
		ID:            "q4",
		Category:      CategoryEnvironment,
		Weight:        12,
		AllowMultiple: true,
		Options: []Option{
			{Text: NewText("A", ""), SubMark: 2},
			{Text: NewText("B", ""), SubMark: 4},
			{Text: NewText("C", ""), SubMark: 1},
			{Text: NewText("D", ""), SubMark: 3},
		},
	}

	var selected []int
	prev := 0.0
	for _, idx := range []int{2, 0, 3, 1} {
		selected = append(selected, idx)
		score := QuestionScore(q, MultiChoice(selected))
		if score < prev {
			t.Fatalf("score decreased from %v to %v after adding option %d", prev, score, idx)
		}
		if score < 0 || score > q.Weight {
			t.Fatalf("score %v out of [0, %v]", score, q.Weight)
		}
		prev = score
	}
	if math.Abs(prev-q.Weight) > 1e-9 {
		t.Fatalf("full selection score = %v, want %v", prev, q.Weight)
	}
}

func TestCategoryProgress(t *testing.T) {
	bank := testBank()
	answers := NewAnswerSet()

	if got := CategoryProgress(bank, answers, CategoryEnvironment); got != 0 {
		t.Fatalf("empty progress = %v, want 0", got)
	}

	answers.Set(CategoryEnvironment, "e1", SingleChoice(0))
	if got := CategoryProgress(bank, answers, CategoryEnvironment); got != 100 {
		t.Fatalf("progress = %v, want 100", got)
	}
}

func TestBuildSubmission(t *testing.T) {
	bank := testBank()
	answers := NewAnswerSet()
	answers.Set(CategoryPrerequisites, "p1", Numeric("120"))
	answers.Set(CategoryEnvironment, "e1", MultiChoice([]int{0, 1}))
	answers.Set(CategorySocial, "s1", SingleChoice(0))
	answers.Set(CategoryGovernance, "g1", SingleChoice(1))

	records, totals := BuildSubmission(bank, answers)

	if len(records) != 4 {
		t.Fatalf("records = %d, want 4", len(records))
	}
	if records[0].Category != CategoryPrerequisites || records[0].Score != 0 || records[0].MaxScore != 0 {
		t.Fatalf("prerequisite record must carry zero score, got %+v", records[0])
	}
	// e1: both scoring options of 5/10 total -> full weight 10.
	if records[1].Score != 10 || records[1].MaxScore != 10 {
		t.Fatalf("environment record = %+v", records[1])
	}
	// s1: option 0 carries the full sub-mark -> 5; g1: option 1 carries none -> 0.
	if totals.TotalScore != 15 || totals.MaxScore != 20 {
		t.Fatalf("totals = %+v, want 15/20", totals)
	}
}
