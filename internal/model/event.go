package model

import "time"

// swagger:model Event
type Event struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Location    string     `gorm:"size:255" json:"location"`
	StartAt     time.Time  `json:"startAt"`
	EndAt       *time.Time `json:"endAt,omitempty"`
	BannerURL   string     `gorm:"size:255" json:"bannerUrl"`
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
}

func (Event) TableName() string {
	return "events"
}
