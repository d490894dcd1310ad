package assessment

import (
	"errors"
	"fmt"
)

// Stage is one step of the assessment wizard.
type Stage int

const (
	StageYearSelection Stage = iota
	StagePrerequisites
	StageEnvironment
	StageSocial
	StageGovernance
	StageFinish
)

var stageNames = map[Stage]string{
	StageYearSelection: "year_selection",
	StagePrerequisites: "prerequisites",
	StageEnvironment:   "environment",
	StageSocial:        "social",
	StageGovernance:    "governance",
	StageFinish:        "finish",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

func ParseStage(name string) (Stage, bool) {
	for s, n := range stageNames {
		if n == name {
			return s, true
		}
	}
	return StageYearSelection, false
}

// Category returns the question category backing a stage, when it has one.
func (s Stage) Category() (Category, bool) {
	switch s {
	case StagePrerequisites:
		return CategoryPrerequisites, true
	case StageEnvironment:
		return CategoryEnvironment, true
	case StageSocial:
		return CategorySocial, true
	case StageGovernance:
		return CategoryGovernance, true
	}
	return "", false
}

var (
	ErrYearRequired     = errors.New("assessment year must be selected first")
	ErrAlreadySubmitted = errors.New("assessment already submitted")
	ErrNotAtFinalStage  = errors.New("submission is only allowed from the final stage")
	ErrStageLocked      = errors.New("stage is not reachable yet")
)

// IncompleteStageError blocks forward navigation and names the first
// unanswered question so the caller can highlight it.
type IncompleteStageError struct {
	Category   Category
	QuestionID string
	// Position is the zero-based index of the question within its category.
	Position int
}

func (e *IncompleteStageError) Error() string {
	return fmt.Sprintf("stage %s incomplete: question %s (position %d) unanswered", e.Category, e.QuestionID, e.Position+1)
}

// FirstUnanswered finds the first question of cat without an answer.
func FirstUnanswered(bank *Bank, answers AnswerSet, cat Category) (Question, int, bool) {
	for i, q := range bank.Questions(cat) {
		if !answers.Answered(cat, q.ID) {
			return q, i, true
		}
	}
	return Question{}, -1, false
}

// StageComplete reports whether every question of the stage is answered.
// Stages without questions are complete.
func StageComplete(bank *Bank, answers AnswerSet, s Stage) bool {
	cat, ok := s.Category()
	if !ok {
		return true
	}
	_, _, unanswered := FirstUnanswered(bank, answers, cat)
	return !unanswered
}

// Session is the explicit wizard state for one (user, year) run. It is
// created by the caller and threaded through every operation; there is no
// hidden global state. Persistence of the session is an explicit
// save/load boundary owned by the service layer.
type Session struct {
	Year      int       `json:"assessmentYear"`
	Stage     Stage     `json:"activeStage"`
	Answers   AnswerSet `json:"answers"`
	Submitted bool      `json:"submitted"`
}

func NewSession() *Session {
	return &Session{Stage: StageYearSelection, Answers: NewAnswerSet()}
}

// Resume rebuilds a session from a persisted draft, reconciling the saved
// answers against the live bank. Stale entries are dropped and counted in
// the returned validation, never repaired.
func Resume(bank *Bank, year int, draft AnswerSet, activeTab string) (*Session, DraftValidation) {
	validation := ValidateDraftAnswers(draft, bank)

	stage := StagePrerequisites
	if s, ok := ParseStage(activeTab); ok && s != StageFinish {
		stage = s
	}
	if year == 0 {
		stage = StageYearSelection
	}

	return &Session{
		Year:    year,
		Stage:   stage,
		Answers: validation.Answers,
	}, validation
}

// SelectYear fixes the assessment year. Allowed only before submission.
func (s *Session) SelectYear(year int) error {
	if s.Submitted {
		return ErrAlreadySubmitted
	}
	s.Year = year
	return nil
}

// Next advances one stage. Leaving YearSelection requires a chosen year;
// leaving a question stage requires every question answered, otherwise the
// first unanswered question is returned as the highlight target and the
// stage does not change.
func (s *Session) Next(bank *Bank) error {
	if s.Submitted {
		return ErrAlreadySubmitted
	}
	switch s.Stage {
	case StageYearSelection:
		if s.Year == 0 {
			return ErrYearRequired
		}
	case StageGovernance, StageFinish:
		// Governance exits through Submit only.
		return ErrNotAtFinalStage
	default:
		cat, _ := s.Stage.Category()
		if q, pos, unanswered := FirstUnanswered(bank, s.Answers, cat); unanswered {
			return &IncompleteStageError{Category: cat, QuestionID: q.ID, Position: pos}
		}
	}
	s.Stage++
	return nil
}

// Prev moves to the prior stage unconditionally. No validation applies on
// the way back.
func (s *Session) Prev() error {
	if s.Submitted {
		return ErrAlreadySubmitted
	}
	if s.Stage > StageYearSelection && s.Stage < StageFinish {
		s.Stage--
	}
	return nil
}

// JumpTo moves directly to a stage. Allowed targets are stages at or
// before the current one, and any later question stage that is already
// fully answered. Finish is only reachable through Submit.
func (s *Session) JumpTo(bank *Bank, target Stage) error {
	if s.Submitted {
		return ErrAlreadySubmitted
	}
	if target == StageFinish {
		return ErrStageLocked
	}
	if target <= s.Stage {
		s.Stage = target
		return nil
	}
	if target > StageYearSelection && s.Year == 0 {
		return ErrYearRequired
	}
	if !StageComplete(bank, s.Answers, target) {
		return ErrStageLocked
	}
	s.Stage = target
	return nil
}

// Submit finalizes the run. It is only allowed from Governance with every
// question stage complete, builds the response records and moves the
// session to Finish as a terminal state: no further navigation or answer
// changes are accepted afterwards.
func (s *Session) Submit(bank *Bank) ([]ResponseRecord, SubmissionTotals, error) {
	if s.Submitted {
		return nil, SubmissionTotals{}, ErrAlreadySubmitted
	}
	if s.Stage != StageGovernance {
		return nil, SubmissionTotals{}, ErrNotAtFinalStage
	}
	for _, stage := range []Stage{StagePrerequisites, StageEnvironment, StageSocial, StageGovernance} {
		cat, _ := stage.Category()
		if q, pos, unanswered := FirstUnanswered(bank, s.Answers, cat); unanswered {
			return nil, SubmissionTotals{}, &IncompleteStageError{Category: cat, QuestionID: q.ID, Position: pos}
		}
	}

	records, totals := BuildSubmission(bank, s.Answers)
	s.Stage = StageFinish
	s.Submitted = true
	return records, totals, nil
}

// Progress is the overall wizard completion percentage over five
// 20%-wide slots: year selection plus the four question stages. The
// current stage contributes its own answered percentage scaled into its
// slot.
func (s *Session) Progress(bank *Bank) float64 {
	if s.Stage == StageFinish {
		return 100
	}
	completed := float64(int(s.Stage)) * 20
	if cat, ok := s.Stage.Category(); ok {
		completed += CategoryProgress(bank, s.Answers, cat) * 20 / 100
	}
	return completed
}

// SetAnswer stores a raw numeric response, used for Prerequisites entry.
func (s *Session) SetAnswer(cat Category, questionID string, v AnswerValue) error {
	if s.Submitted {
		return ErrAlreadySubmitted
	}
	s.Answers.Set(cat, questionID, v)
	return nil
}

// Toggle applies one option click to the session's answers.
func (s *Session) Toggle(q Question, optionIndex int) error {
	if s.Submitted {
		return ErrAlreadySubmitted
	}
	s.Answers.ToggleOption(q, optionIndex)
	return nil
}
