package service

import (
	"encoding/json"
	"fmt"

	"esg_assessment_backend/internal/assessment"
	"esg_assessment_backend/internal/model"
	"esg_assessment_backend/internal/repository"
	"esg_assessment_backend/internal/util"
)

type FAQService struct {
	Repo *repository.FAQRepository
}

func NewFAQService(repo *repository.FAQRepository) *FAQService {
	return &FAQService{Repo: repo}
}

type FAQRequest struct {
	Question    json.RawMessage `json:"question" binding:"required"`
	Answer      json.RawMessage `json:"answer" binding:"required"`
	Order       int             `json:"order"`
	IsPublished bool            `json:"isPublished"`
}

func (r *FAQRequest) validate() error {
	var q, a assessment.Text
	if err := json.Unmarshal(r.Question, &q); err != nil || q.IsEmpty() {
		return fmt.Errorf("%w: question must be a string or an {en, ms} object", util.ErrInvalidQuestionData)
	}
	if err := json.Unmarshal(r.Answer, &a); err != nil || a.IsEmpty() {
		return fmt.Errorf("%w: answer must be a string or an {en, ms} object", util.ErrInvalidQuestionData)
	}
	return nil
}

func (s *FAQService) Create(req FAQRequest) (*model.FAQ, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	faq := &model.FAQ{
		Question:    req.Question,
		Answer:      req.Answer,
		Order:       req.Order,
		IsPublished: req.IsPublished,
	}
	if err := s.Repo.Create(faq); err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *FAQService) List(publishedOnly bool) ([]model.FAQ, error) {
	return s.Repo.List(publishedOnly)
}

func (s *FAQService) Update(id uint, req FAQRequest) (*model.FAQ, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	faq, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	faq.Question = req.Question
	faq.Answer = req.Answer
	faq.Order = req.Order
	faq.IsPublished = req.IsPublished

	if err := s.Repo.Update(faq); err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *FAQService) Delete(id uint) error {
	return s.Repo.Delete(id)
}
