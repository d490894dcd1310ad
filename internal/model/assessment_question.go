package model

import "encoding/json"

// AssessmentQuestion is one record of the ESG question bank. Text,
// InfoDescription and option texts are bilingual JSON: either a plain
// string or an {en, ms} object. Options is a JSON array of
// {text, subMark}; Prerequisites questions carry no options and expect a
// raw numeric response.
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	UUIDBase
	AssessmentYear  int             `gorm:"index;not null" json:"assessmentYear"`
	Category        string          `gorm:"size:30;index;not null" json:"category"` // prerequisites, environment, social, governance
	SubCategory     string          `gorm:"size:255" json:"subCategory"`
	Text            json.RawMessage `gorm:"type:json;not null" json:"text"`
	InfoDescription json.RawMessage `gorm:"type:json" json:"infoDescription,omitempty"`
	Weight          float64         `gorm:"default:0" json:"weight"`
	AllowMultiple   bool            `gorm:"default:false" json:"allowMultiple"`
	Options         json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	Order           int             `gorm:"default:0" json:"order"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}
