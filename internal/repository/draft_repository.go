package repository

import (
	"errors"

	"esg_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type DraftRepository struct {
	DB *gorm.DB
}

func NewDraftRepository(db *gorm.DB) *DraftRepository {
	return &DraftRepository{DB: db}
}

// Find returns the draft for (user, year), or (nil, nil) when none exists.
func (r *DraftRepository) Find(userID uint, year int) (*model.AssessmentDraft, error) {
	var d model.AssessmentDraft
	err := r.DB.Where("user_id = ? AND assessment_year = ?", userID, year).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DraftRepository) ListByUser(userID uint) ([]model.AssessmentDraft, error) {
	var drafts []model.AssessmentDraft
	err := r.DB.Where("user_id = ?", userID).Order("assessment_year desc").Find(&drafts).Error
	return drafts, err
}

// Upsert saves the draft for (user, year), overwriting an existing one.
// The operation is idempotent.
func (r *DraftRepository) Upsert(draft *model.AssessmentDraft) error {
	existing, err := r.Find(draft.UserID, draft.AssessmentYear)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.DB.Create(draft).Error
	}
	existing.Answers = draft.Answers
	existing.ActiveTab = draft.ActiveTab
	if err := r.DB.Save(existing).Error; err != nil {
		return err
	}
	draft.ID = existing.ID
	return nil
}

// Delete removes the draft for (user, year). Safe to call when none exists.
func (r *DraftRepository) Delete(userID uint, year int) error {
	return r.DB.Where("user_id = ? AND assessment_year = ?", userID, year).
		Delete(&model.AssessmentDraft{}).Error
}
