package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"esg_assessment_backend/internal/assessment"
	"esg_assessment_backend/internal/model"
	"esg_assessment_backend/internal/repository"
	"esg_assessment_backend/internal/util"
	"esg_assessment_backend/pkg/logger"
	"esg_assessment_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	wizardSessionPrefix = "esg:wizard:"
	wizardSessionTTL    = 24 * time.Hour
)

// AssessmentService drives the multi-step assessment wizard. The engine
// session for one (user, year) run is held in Redis; drafts and
// submissions are the durable records.
type AssessmentService struct {
	Questions   *QuestionService
	Drafts      *repository.DraftRepository
	Submissions *repository.SubmissionRepository
	Redis       *redis.Client
}

func NewAssessmentService(questions *QuestionService, drafts *repository.DraftRepository, submissions *repository.SubmissionRepository, rdb *redis.Client) *AssessmentService {
	return &AssessmentService{
		Questions:   questions,
		Drafts:      drafts,
		Submissions: submissions,
		Redis:       rdb,
	}
}

// DraftNotice reports what the draft validator discarded on resume, so the
// UI can warn the user about stale entries.
type DraftNotice struct {
	Resumed          bool `json:"resumed"`
	InvalidAnswers   int  `json:"invalidAnswersCount"`
	RemovedQuestions int  `json:"removedQuestionsCount"`
}

// WizardState is the client-facing view of one wizard session.
type WizardState struct {
	AssessmentYear int                  `json:"assessmentYear"`
	ActiveStage    string               `json:"activeStage"`
	Progress       float64              `json:"progress"`
	Submitted      bool                 `json:"submitted"`
	Answers        assessment.AnswerSet `json:"answers"`
	StageProgress  map[string]float64   `json:"stageProgress"`
	Draft          *DraftNotice         `json:"draft,omitempty"`
}

func (s *AssessmentService) state(bank *assessment.Bank, session *assessment.Session, notice *DraftNotice) *WizardState {
	stageProgress := make(map[string]float64, 4)
	for _, cat := range assessment.Categories() {
		stageProgress[string(cat)] = assessment.CategoryProgress(bank, session.Answers, cat)
	}
	return &WizardState{
		AssessmentYear: session.Year,
		ActiveStage:    session.Stage.String(),
		Progress:       session.Progress(bank),
		Submitted:      session.Submitted,
		Answers:        session.Answers,
		StageProgress:  stageProgress,
		Draft:          notice,
	}
}

// StartWizard opens (or resumes) the wizard run for one assessment year.
// An existing draft is reconciled against the live bank; what the
// validator dropped is reported in the returned state, never repaired.
func (s *AssessmentService) StartWizard(ctx context.Context, userID uint, year int) (*WizardState, error) {
	existing, err := s.Submissions.FindByUserAndYear(userID, year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrAlreadySubmitted
	}

	bank, err := s.Questions.LoadBank(ctx, year)
	if err != nil {
		return nil, err
	}
	if bank.Size() == 0 {
		return nil, util.ErrEmptyQuestionBank
	}

	draft, err := s.Drafts.Find(userID, year)
	if err != nil {
		return nil, err
	}

	var session *assessment.Session
	var notice *DraftNotice

	if draft != nil {
		answers := assessment.NewAnswerSet()
		if len(draft.Answers) > 0 {
			if err := json.Unmarshal(draft.Answers, &answers); err != nil {
				logger.Log.Warn("draft answers undecodable, starting clean",
					zap.Uint("userId", userID), zap.Int("year", year), zap.Error(err))
				answers = assessment.NewAnswerSet()
			}
		}
		var validation assessment.DraftValidation
		session, validation = assessment.Resume(bank, year, answers, draft.ActiveTab)
		notice = &DraftNotice{
			Resumed:          true,
			InvalidAnswers:   validation.InvalidAnswers,
			RemovedQuestions: validation.RemovedQuestions,
		}
	} else {
		session = assessment.NewSession()
		if err := session.SelectYear(year); err != nil {
			return nil, err
		}
		if err := session.Next(bank); err != nil {
			return nil, err
		}
	}

	if err := s.saveSession(ctx, userID, session); err != nil {
		return nil, err
	}
	return s.state(bank, session, notice), nil
}

// GetState returns the current wizard state without mutating it.
func (s *AssessmentService) GetState(ctx context.Context, userID uint, year int) (*WizardState, error) {
	session, err := s.loadSession(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	bank, err := s.Questions.LoadBank(ctx, year)
	if err != nil {
		return nil, err
	}
	return s.state(bank, session, nil), nil
}

// SetAnswer overwrites the answer of one question, used for the raw
// numeric Prerequisites entries.
func (s *AssessmentService) SetAnswer(ctx context.Context, userID uint, year int, category, questionID string, value assessment.AnswerValue) (*WizardState, error) {
	session, err := s.loadSession(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	bank, err := s.Questions.LoadBank(ctx, year)
	if err != nil {
		return nil, err
	}

	cat, ok := assessment.ParseCategory(category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", util.ErrInvalidQuestionData, category)
	}
	if _, ok := bank.Lookup(cat, questionID); !ok {
		return nil, util.ErrQuestionNotFound
	}
	if value.Kind() == assessment.KindInvalid {
		return nil, fmt.Errorf("%w: unrecognized answer shape", util.ErrInvalidQuestionData)
	}

	if err := session.SetAnswer(cat, questionID, value); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, userID, session); err != nil {
		return nil, err
	}
	return s.state(bank, session, nil), nil
}

// ToggleOption applies one option click with the engine's selection
// semantics (single-select replace, multi-select toggle, opt-out
// exclusivity).
func (s *AssessmentService) ToggleOption(ctx context.Context, userID uint, year int, category, questionID string, optionIndex int) (*WizardState, error) {
	session, err := s.loadSession(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	bank, err := s.Questions.LoadBank(ctx, year)
	if err != nil {
		return nil, err
	}

	cat, ok := assessment.ParseCategory(category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", util.ErrInvalidQuestionData, category)
	}
	q, ok := bank.Lookup(cat, questionID)
	if !ok {
		return nil, util.ErrQuestionNotFound
	}

	if err := session.Toggle(q, optionIndex); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, userID, session); err != nil {
		return nil, err
	}
	return s.state(bank, session, nil), nil
}

// Navigate moves the wizard: "next", "prev", or "jump" to a named stage.
// A blocked "next" returns the engine's IncompleteStageError so the
// caller can highlight the first unanswered question; the stage does not
// change.
func (s *AssessmentService) Navigate(ctx context.Context, userID uint, year int, action, target string) (*WizardState, error) {
	session, err := s.loadSession(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	bank, err := s.Questions.LoadBank(ctx, year)
	if err != nil {
		return nil, err
	}

	switch action {
	case "next":
		err = session.Next(bank)
	case "prev":
		err = session.Prev()
	case "jump":
		stage, ok := assessment.ParseStage(target)
		if !ok {
			return nil, fmt.Errorf("unknown stage %q", target)
		}
		err = session.JumpTo(bank, stage)
	default:
		return nil, fmt.Errorf("unknown navigation action %q", action)
	}
	if err != nil {
		return nil, err
	}

	if err := s.saveSession(ctx, userID, session); err != nil {
		return nil, err
	}
	return s.state(bank, session, nil), nil
}

// SaveDraft persists the session's answers as the (user, year) draft.
// The upsert is idempotent.
func (s *AssessmentService) SaveDraft(ctx context.Context, userID uint, year int) (*model.AssessmentDraft, error) {
	session, err := s.loadSession(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	if session.Submitted {
		return nil, util.ErrAlreadySubmitted
	}

	answers, err := json.Marshal(session.Answers)
	if err != nil {
		return nil, err
	}

	draft := &model.AssessmentDraft{
		UserID:         userID,
		AssessmentYear: year,
		Answers:        answers,
		ActiveTab:      session.Stage.String(),
	}
	if err := s.Drafts.Upsert(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// DraftSummary is one entry of the "continue where you left off" list.
type DraftSummary struct {
	AssessmentYear int       `json:"assessmentYear"`
	ActiveTab      string    `json:"activeTab"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (s *AssessmentService) ListDrafts(userID uint) ([]DraftSummary, error) {
	drafts, err := s.Drafts.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]DraftSummary, len(drafts))
	for i, d := range drafts {
		summaries[i] = DraftSummary{
			AssessmentYear: d.AssessmentYear,
			ActiveTab:      d.ActiveTab,
			UpdatedAt:      d.UpdatedAt,
		}
	}
	return summaries, nil
}

func (s *AssessmentService) DeleteDraft(userID uint, year int) error {
	draft, err := s.Drafts.Find(userID, year)
	if err != nil {
		return err
	}
	if draft == nil {
		return util.ErrDraftNotFound
	}
	return s.Drafts.Delete(userID, year)
}

// Submit finalizes the run: the engine builds the scored response records,
// the submission is persisted, and the obsolete draft is deleted
// best-effort. A failed draft delete is logged and swallowed; it never
// rolls back the submission.
func (s *AssessmentService) Submit(ctx context.Context, userID uint, year int) (*model.AssessmentSubmission, error) {
	session, err := s.loadSession(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	bank, err := s.Questions.LoadBank(ctx, year)
	if err != nil {
		return nil, err
	}

	records, totals, err := session.Submit(bank)
	if err != nil {
		return nil, err
	}

	responses, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}

	submission := &model.AssessmentSubmission{
		UserID:         userID,
		AssessmentYear: year,
		Responses:      responses,
		TotalScore:     totals.TotalScore,
		MaxScore:       totals.MaxScore,
		Status:         "submitted",
		SubmittedAt:    time.Now(),
	}

	existing, err := s.Submissions.FindByUserAndYear(userID, year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Responses = submission.Responses
		existing.TotalScore = submission.TotalScore
		existing.MaxScore = submission.MaxScore
		existing.SubmittedAt = submission.SubmittedAt
		if err := s.Submissions.Update(existing); err != nil {
			return nil, err
		}
		submission = existing
	} else {
		if err := s.Submissions.Create(submission); err != nil {
			return nil, err
		}
	}

	monitoring.SubmissionCounter.WithLabelValues(strconv.Itoa(year)).Inc()

	if err := s.saveSession(ctx, userID, session); err != nil {
		logger.Log.Warn("failed to persist terminal wizard session", zap.Error(err))
	}

	if err := s.Drafts.Delete(userID, year); err != nil {
		logger.Log.Warn("failed to delete draft after submission",
			zap.Uint("userId", userID), zap.Int("year", year), zap.Error(err))
	}

	return submission, nil
}

// Result returns the finalized submission for (user, year), or nil.
func (s *AssessmentService) Result(userID uint, year int) (*model.AssessmentSubmission, error) {
	return s.Submissions.FindByUserAndYear(userID, year)
}

func (s *AssessmentService) ListResults(userID uint) ([]model.AssessmentSubmission, error) {
	return s.Submissions.ListByUser(userID)
}

func sessionKey(userID uint, year int) string {
	return fmt.Sprintf("%s%d:%d", wizardSessionPrefix, userID, year)
}

func (s *AssessmentService) loadSession(ctx context.Context, userID uint, year int) (*assessment.Session, error) {
	data, err := s.Redis.Get(ctx, sessionKey(userID, year)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrWizardNotStarted
	}
	if err != nil {
		return nil, err
	}

	var session assessment.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	if session.Answers == nil {
		session.Answers = assessment.NewAnswerSet()
	}
	return &session, nil
}

func (s *AssessmentService) saveSession(ctx context.Context, userID uint, session *assessment.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, sessionKey(userID, session.Year), data, wizardSessionTTL).Err()
}
