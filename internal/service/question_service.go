package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"esg_assessment_backend/internal/assessment"
	"esg_assessment_backend/internal/model"
	"esg_assessment_backend/internal/repository"
	"esg_assessment_backend/internal/util"
	"esg_assessment_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	questionBankCachePrefix = "esg:questions:"
	questionBankCacheTTL    = 10 * time.Minute
)

// QuestionService owns the ESG question bank: admin CRUD plus the
// normalized, cached bank the wizard runs against.
type QuestionService struct {
	Repo  *repository.AssessmentRepository
	Redis *redis.Client
}

func NewQuestionService(repo *repository.AssessmentRepository, rdb *redis.Client) *QuestionService {
	return &QuestionService{Repo: repo, Redis: rdb}
}

type QuestionRequest struct {
	AssessmentYear  int             `json:"assessmentYear" binding:"required"`
	Category        string          `json:"category" binding:"required"`
	SubCategory     string          `json:"subCategory"`
	Text            json.RawMessage `json:"text" binding:"required"`
	InfoDescription json.RawMessage `json:"infoDescription"`
	Weight          float64         `json:"weight"`
	AllowMultiple   bool            `json:"allowMultiple"`
	Options         json.RawMessage `json:"options"`
	Order           int             `json:"order"`
}

func (r *QuestionRequest) validate() error {
	cat, ok := assessment.ParseCategory(r.Category)
	if !ok {
		return fmt.Errorf("%w: unknown category %q", util.ErrInvalidQuestionData, r.Category)
	}

	var text assessment.Text
	if err := json.Unmarshal(r.Text, &text); err != nil || text.IsEmpty() {
		return fmt.Errorf("%w: text must be a string or an {en, ms} object", util.ErrInvalidQuestionData)
	}

	if cat.Scored() {
		var options []assessment.Option
		if err := json.Unmarshal(r.Options, &options); err != nil || len(options) == 0 {
			return fmt.Errorf("%w: scored questions need at least one option", util.ErrInvalidQuestionData)
		}
	}

	return nil
}

func (s *QuestionService) CreateQuestion(ctx context.Context, req QuestionRequest) (*model.AssessmentQuestion, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	cat, _ := assessment.ParseCategory(req.Category)
	q := &model.AssessmentQuestion{
		AssessmentYear:  req.AssessmentYear,
		Category:        string(cat),
		SubCategory:     req.SubCategory,
		Text:            req.Text,
		InfoDescription: req.InfoDescription,
		Weight:          req.Weight,
		AllowMultiple:   req.AllowMultiple,
		Options:         req.Options,
		Order:           req.Order,
	}
	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	s.invalidateBankCache(ctx, q.AssessmentYear)
	return q, nil
}

func (s *QuestionService) GetQuestion(id string) (*model.AssessmentQuestion, error) {
	return s.Repo.FindQuestionByID(id)
}

func (s *QuestionService) ListQuestions(year int, category string, page, limit int) ([]model.AssessmentQuestion, int64, error) {
	return s.Repo.ListQuestionsPaged(year, category, page, limit)
}

func (s *QuestionService) ListYears() ([]int, error) {
	return s.Repo.ListYears()
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, req QuestionRequest) (*model.AssessmentQuestion, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	q, err := s.Repo.FindQuestionByID(id)
	if err != nil {
		return nil, err
	}

	oldYear := q.AssessmentYear
	cat, _ := assessment.ParseCategory(req.Category)

	q.AssessmentYear = req.AssessmentYear
	q.Category = string(cat)
	q.SubCategory = req.SubCategory
	q.Text = req.Text
	q.InfoDescription = req.InfoDescription
	q.Weight = req.Weight
	q.AllowMultiple = req.AllowMultiple
	q.Options = req.Options
	q.Order = req.Order

	if err := s.Repo.UpdateQuestion(q); err != nil {
		return nil, err
	}
	s.invalidateBankCache(ctx, oldYear)
	if q.AssessmentYear != oldYear {
		s.invalidateBankCache(ctx, q.AssessmentYear)
	}
	return q, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	q, err := s.Repo.FindQuestionByID(id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteQuestion(id); err != nil {
		return err
	}
	s.invalidateBankCache(ctx, q.AssessmentYear)
	return nil
}

// LoadBank returns the normalized question bank for one assessment year,
// served from Redis when warm.
func (s *QuestionService) LoadBank(ctx context.Context, year int) (*assessment.Bank, error) {
	cacheKey := fmt.Sprintf("%s%d", questionBankCachePrefix, year)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var questions []assessment.Question
			if err := json.Unmarshal([]byte(cached), &questions); err == nil {
				return assessment.NewBank(questions), nil
			}
		}
	}

	records, err := s.Repo.ListQuestions(year)
	if err != nil {
		return nil, err
	}

	questions := make([]assessment.Question, 0, len(records))
	for _, record := range records {
		q, err := toEngineQuestion(record)
		if err != nil {
			logger.Log.Warn("skipping malformed question record",
				zap.String("id", record.ID), zap.Error(err))
			continue
		}
		questions = append(questions, q)
	}

	if s.Redis != nil {
		if data, err := json.Marshal(questions); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, questionBankCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache question bank", zap.Error(err))
			}
		}
	}

	return assessment.NewBank(questions), nil
}

// CategoryQuestions is the grouped user-facing view of the bank.
type CategoryQuestions struct {
	Category  assessment.Category   `json:"category"`
	Questions []assessment.Question `json:"questions"`
}

func (s *QuestionService) GroupedBank(ctx context.Context, year int) ([]CategoryQuestions, error) {
	bank, err := s.LoadBank(ctx, year)
	if err != nil {
		return nil, err
	}
	if bank.Size() == 0 {
		return nil, util.ErrEmptyQuestionBank
	}

	grouped := make([]CategoryQuestions, 0, 4)
	for _, cat := range assessment.Categories() {
		grouped = append(grouped, CategoryQuestions{
			Category:  cat,
			Questions: bank.Questions(cat),
		})
	}
	return grouped, nil
}

func (s *QuestionService) invalidateBankCache(ctx context.Context, year int) {
	if s.Redis == nil {
		return
	}
	cacheKey := fmt.Sprintf("%s%d", questionBankCachePrefix, year)
	if err := s.Redis.Del(ctx, cacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate question bank cache", zap.Error(err))
	}
}

func toEngineQuestion(record model.AssessmentQuestion) (assessment.Question, error) {
	q := assessment.Question{
		ID:            record.ID,
		Category:      assessment.Category(record.Category),
		SubCategory:   record.SubCategory,
		Weight:        record.Weight,
		AllowMultiple: record.AllowMultiple,
	}

	if len(record.Text) > 0 {
		if err := json.Unmarshal(record.Text, &q.Text); err != nil {
			return assessment.Question{}, fmt.Errorf("text: %w", err)
		}
	}
	if len(record.InfoDescription) > 0 {
		if err := json.Unmarshal(record.InfoDescription, &q.Info); err != nil {
			return assessment.Question{}, fmt.Errorf("info description: %w", err)
		}
	}
	if len(record.Options) > 0 {
		if err := json.Unmarshal(record.Options, &q.Options); err != nil {
			return assessment.Question{}, fmt.Errorf("options: %w", err)
		}
	}

	return q, nil
}
