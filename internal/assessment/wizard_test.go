package assessment

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func socialBank(n int) *Bank {
	questions := []Question{{ID: "p1", Category: CategoryPrerequisites}}
	for i := 0; i < n; i++ {
		questions = append(questions, Question{
			ID:       fmt.Sprintf("s%d", i+1),
			Category: CategorySocial,
			Weight:   5,
			Options: []Option{
				{Text: NewText("Yes", ""), SubMark: 1},
				{Text: NewText("No", ""), SubMark: 0},
			},
		})
	}
	return NewBank(questions)
}

func TestNextRequiresYear(t *testing.T) {
	bank := testBank()
	session := NewSession()

	if err := session.Next(bank); !errors.Is(err, ErrYearRequired) {
		t.Fatalf("err = %v, want ErrYearRequired", err)
	}
	if session.Stage != StageYearSelection {
		t.Fatalf("stage moved to %v", session.Stage)
	}

	if err := session.SelectYear(2025); err != nil {
		t.Fatalf("SelectYear: %v", err)
	}
	if err := session.Next(bank); err != nil {
		t.Fatalf("Next after year: %v", err)
	}
	if session.Stage != StagePrerequisites {
		t.Fatalf("stage = %v, want prerequisites", session.Stage)
	}
}

func TestNextBlocksOnFirstUnanswered(t *testing.T) {
	bank := socialBank(5)
	session := NewSession()
	session.Year = 2025
	session.Stage = StageSocial

	// 3 of 5 answered; question 4 is the first gap.
	session.Answers.Set(CategorySocial, "s1", SingleChoice(0))
	session.Answers.Set(CategorySocial, "s2", SingleChoice(1))
	session.Answers.Set(CategorySocial, "s3", SingleChoice(0))
	session.Answers.Set(CategorySocial, "s5", SingleChoice(0))

	err := session.Next(bank)
	var incomplete *IncompleteStageError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteStageError", err)
	}
	if incomplete.QuestionID != "s4" || incomplete.Position != 3 {
		t.Fatalf("highlight target = %s/%d, want s4/3", incomplete.QuestionID, incomplete.Position)
	}
	if session.Stage != StageSocial {
		t.Fatalf("stage must not advance, got %v", session.Stage)
	}
}

func TestPrevUnconditional(t *testing.T) {
	bank := testBank()
	session := NewSession()
	session.Year = 2025
	session.Stage = StagePrerequisites

	if err := session.Prev(); err != nil {
		t.Fatalf("Prev: %v", err)
	}
	if session.Stage != StageYearSelection {
		t.Fatalf("stage = %v, want year selection", session.Stage)
	}

	// Prev never validates answers.
	session.Stage = StageGovernance
	if err := session.Prev(); err != nil || session.Stage != StageSocial {
		t.Fatalf("Prev from governance: err=%v stage=%v", err, session.Stage)
	}
	_ = bank
}

func TestJumpRules(t *testing.T) {
	bank := testBank()
	session := NewSession()
	session.Year = 2025
	session.Stage = StageEnvironment

	// Backward jumps always allowed.
	if err := session.JumpTo(bank, StageYearSelection); err != nil {
		t.Fatalf("backward jump: %v", err)
	}

	// Forward jump to an unanswered stage is locked.
	if err := session.JumpTo(bank, StageGovernance); !errors.Is(err, ErrStageLocked) {
		t.Fatalf("err = %v, want ErrStageLocked", err)
	}

	// Forward jump to a completed-ahead-of-order stage is allowed.
	session.Answers.Set(CategoryGovernance, "g1", SingleChoice(0))
	if err := session.JumpTo(bank, StageGovernance); err != nil {
		t.Fatalf("completed-ahead jump: %v", err)
	}
	if session.Stage != StageGovernance {
		t.Fatalf("stage = %v, want governance", session.Stage)
	}

	// Finish is never a jump target.
	if err := session.JumpTo(bank, StageFinish); !errors.Is(err, ErrStageLocked) {
		t.Fatalf("err = %v, want ErrStageLocked", err)
	}
}

func completeSession(bank *Bank) *Session {
	session := NewSession()
	session.Year = 2025
	session.Stage = StageGovernance
	session.Answers.Set(CategoryPrerequisites, "p1", Numeric("10"))
	session.Answers.Set(CategoryEnvironment, "e1", MultiChoice([]int{0}))
	session.Answers.Set(CategorySocial, "s1", SingleChoice(0))
	session.Answers.Set(CategoryGovernance, "g1", SingleChoice(0))
	return session
}

func TestSubmitTerminal(t *testing.T) {
	bank := testBank()
	session := completeSession(bank)

	records, totals, err := session.Submit(bank)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("records = %d, want 4", len(records))
	}
	if totals.MaxScore != 20 {
		t.Fatalf("max score = %v, want 20", totals.MaxScore)
	}
	if session.Stage != StageFinish || !session.Submitted {
		t.Fatalf("session not terminal: stage=%v submitted=%v", session.Stage, session.Submitted)
	}

	// Finish is one-way: no navigation or edits afterwards.
	if err := session.Prev(); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("Prev after submit: %v", err)
	}
	if err := session.JumpTo(bank, StageSocial); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("Jump after submit: %v", err)
	}
	if err := session.SetAnswer(CategoryPrerequisites, "p1", Numeric("1")); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("SetAnswer after submit: %v", err)
	}
	if _, _, err := session.Submit(bank); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("second Submit: %v", err)
	}
}

func TestSubmitGuards(t *testing.T) {
	bank := testBank()

	session := completeSession(bank)
	session.Stage = StageSocial
	if _, _, err := session.Submit(bank); !errors.Is(err, ErrNotAtFinalStage) {
		t.Fatalf("err = %v, want ErrNotAtFinalStage", err)
	}

	session = completeSession(bank)
	session.Answers.Delete(CategoryEnvironment, "e1")
	var incomplete *IncompleteStageError
	if _, _, err := session.Submit(bank); !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteStageError", err)
	} else if incomplete.Category != CategoryEnvironment {
		t.Fatalf("incomplete category = %v, want environment", incomplete.Category)
	}
}

func TestProgressFormula(t *testing.T) {
	bank := socialBank(5)
	session := NewSession()

	if got := session.Progress(bank); got != 0 {
		t.Fatalf("year selection progress = %v, want 0", got)
	}

	session.Year = 2025
	session.Stage = StageSocial
	session.Answers.Set(CategorySocial, "s1", SingleChoice(0))
	session.Answers.Set(CategorySocial, "s2", SingleChoice(0))

	// Three slots behind (year, prerequisites, environment) plus 2/5 of the
	// social slot: 60 + 40*0.2 = 68.
	want := 68.0
	if got := session.Progress(bank); math.Abs(got-want) > 1e-9 {
		t.Fatalf("progress = %v, want %v", got, want)
	}

	session.Stage = StageFinish
	if got := session.Progress(bank); got != 100 {
		t.Fatalf("finish progress = %v, want 100", got)
	}
}

func TestResumeValidatesDraft(t *testing.T) {
	bank := testBank()
	draft := NewAnswerSet()
	draft.Set(CategoryEnvironment, "e1", MultiChoice([]int{0}))
	draft.Set(CategoryEnvironment, "q-deleted", SingleChoice(0))

	session, validation := Resume(bank, 2025, draft, "environment")

	if validation.RemovedQuestions != 1 {
		t.Fatalf("removed = %d, want 1", validation.RemovedQuestions)
	}
	if session.Stage != StageEnvironment || session.Year != 2025 {
		t.Fatalf("session = stage %v year %d", session.Stage, session.Year)
	}
	if !session.Answers.Answered(CategoryEnvironment, "e1") {
		t.Fatal("valid draft answer must be restored")
	}

	// A draft without a year restarts at year selection.
	session, _ = Resume(bank, 0, draft, "social")
	if session.Stage != StageYearSelection {
		t.Fatalf("stage = %v, want year selection", session.Stage)
	}
}
