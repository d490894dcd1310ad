package model

import "encoding/json"

// FAQ question and answer are bilingual JSON, same shape as question text.
// swagger:model FAQ
type FAQ struct {
	BaseModel
	Question    json.RawMessage `gorm:"type:json;not null" json:"question"`
	Answer      json.RawMessage `gorm:"type:json;not null" json:"answer"`
	Order       int             `gorm:"default:0" json:"order"`
	IsPublished bool            `gorm:"default:true" json:"isPublished"`
}

func (FAQ) TableName() string {
	return "faqs"
}
