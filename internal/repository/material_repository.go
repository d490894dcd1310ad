package repository

import (
	"esg_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(m *model.LearningMaterial) error {
	return r.DB.Create(m).Error
}

func (r *MaterialRepository) FindByID(id uint) (*model.LearningMaterial, error) {
	var m model.LearningMaterial
	err := r.DB.First(&m, id).Error
	return &m, err
}

func (r *MaterialRepository) List(page, limit int, materialType string, publishedOnly bool) ([]model.LearningMaterial, int64, error) {
	var materials []model.LearningMaterial
	var total int64

	query := r.DB.Model(&model.LearningMaterial{})
	if materialType != "" {
		query = query.Where("type = ?", materialType)
	}
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&materials).Error
	return materials, total, err
}

func (r *MaterialRepository) Update(m *model.LearningMaterial) error {
	return r.DB.Save(m).Error
}

func (r *MaterialRepository) Delete(id uint) error {
	return r.DB.Delete(&model.LearningMaterial{}, id).Error
}
