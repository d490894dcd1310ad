package repository

import (
	"esg_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type FAQRepository struct {
	DB *gorm.DB
}

func NewFAQRepository(db *gorm.DB) *FAQRepository {
	return &FAQRepository{DB: db}
}

func (r *FAQRepository) Create(f *model.FAQ) error {
	return r.DB.Create(f).Error
}

func (r *FAQRepository) FindByID(id uint) (*model.FAQ, error) {
	var f model.FAQ
	err := r.DB.First(&f, id).Error
	return &f, err
}

func (r *FAQRepository) List(publishedOnly bool) ([]model.FAQ, error) {
	var faqs []model.FAQ
	query := r.DB.Model(&model.FAQ{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Order("`order` asc, created_at asc").Find(&faqs).Error
	return faqs, err
}

func (r *FAQRepository) Update(f *model.FAQ) error {
	return r.DB.Save(f).Error
}

func (r *FAQRepository) Delete(id uint) error {
	return r.DB.Delete(&model.FAQ{}, id).Error
}
