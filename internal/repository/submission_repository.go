package repository

import (
	"errors"

	"esg_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(s *model.AssessmentSubmission) error {
	return r.DB.Create(s).Error
}

func (r *SubmissionRepository) Update(s *model.AssessmentSubmission) error {
	return r.DB.Save(s).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.AssessmentSubmission, error) {
	var s model.AssessmentSubmission
	err := r.DB.Preload("User").Where("id = ?", id).First(&s).Error
	return &s, err
}

// FindByUserAndYear returns (nil, nil) when the user has not submitted for the year.
func (r *SubmissionRepository) FindByUserAndYear(userID uint, year int) (*model.AssessmentSubmission, error) {
	var s model.AssessmentSubmission
	err := r.DB.Where("user_id = ? AND assessment_year = ?", userID, year).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) ListByUser(userID uint) ([]model.AssessmentSubmission, error) {
	var subs []model.AssessmentSubmission
	err := r.DB.Where("user_id = ?", userID).Order("assessment_year desc").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) List(page, limit int, year int, companyName string) ([]model.AssessmentSubmission, int64, error) {
	var subs []model.AssessmentSubmission
	var total int64

	query := r.DB.Model(&model.AssessmentSubmission{}).
		Joins("LEFT JOIN users ON users.id = assessment_submissions.user_id").
		Where("users.deleted_at IS NULL")
	if year > 0 {
		query = query.Where("assessment_submissions.assessment_year = ?", year)
	}
	if companyName != "" {
		query = query.Where("users.company_name LIKE ?", "%"+companyName+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("User").
		Order("assessment_submissions.submitted_at desc").
		Offset(offset).Limit(limit).
		Find(&subs).Error
	return subs, total, err
}
