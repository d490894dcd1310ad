package repository

import (
	"esg_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) CreateQuestion(q *model.AssessmentQuestion) error {
	return r.DB.Create(q).Error
}

func (r *AssessmentRepository) FindQuestionByID(id string) (*model.AssessmentQuestion, error) {
	var q model.AssessmentQuestion
	err := r.DB.Where("id = ?", id).First(&q).Error
	return &q, err
}

// ListQuestions returns one assessment edition's question bank in display order.
func (r *AssessmentRepository) ListQuestions(year int) ([]model.AssessmentQuestion, error) {
	var qs []model.AssessmentQuestion
	query := r.DB.Model(&model.AssessmentQuestion{})
	if year > 0 {
		query = query.Where("assessment_year = ?", year)
	}
	err := query.Order("`order` asc, created_at asc").Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) ListQuestionsPaged(year int, category string, page, limit int) ([]model.AssessmentQuestion, int64, error) {
	var qs []model.AssessmentQuestion
	var total int64

	query := r.DB.Model(&model.AssessmentQuestion{})
	if year > 0 {
		query = query.Where("assessment_year = ?", year)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("`order` asc, created_at asc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *AssessmentRepository) ListYears() ([]int, error) {
	var years []int
	err := r.DB.Model(&model.AssessmentQuestion{}).
		Distinct("assessment_year").
		Order("assessment_year desc").
		Pluck("assessment_year", &years).Error
	return years, err
}

func (r *AssessmentRepository) UpdateQuestion(q *model.AssessmentQuestion) error {
	return r.DB.Save(q).Error
}

func (r *AssessmentRepository) DeleteQuestion(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.AssessmentQuestion{}).Error
}
