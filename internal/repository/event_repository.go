package repository

import (
	"esg_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(e *model.Event) error {
	return r.DB.Create(e).Error
}

func (r *EventRepository) FindByID(id uint) (*model.Event, error) {
	var e model.Event
	err := r.DB.First(&e, id).Error
	return &e, err
}

func (r *EventRepository) List(page, limit int, publishedOnly bool) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	query := r.DB.Model(&model.Event{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("start_at desc").Offset(offset).Limit(limit).Find(&events).Error
	return events, total, err
}

func (r *EventRepository) Update(e *model.Event) error {
	return r.DB.Save(e).Error
}

func (r *EventRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Event{}, id).Error
}
