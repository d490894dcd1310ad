package model

import (
	"encoding/json"
	"time"
)

// swagger:model AssessmentSubmission
type AssessmentSubmission struct {
	UUIDBase
	UserID         uint            `gorm:"index:idx_submission_user_year,unique;not null" json:"userId"`
	User           *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AssessmentYear int             `gorm:"index:idx_submission_user_year,unique;not null" json:"assessmentYear"`
	Responses      json.RawMessage `gorm:"type:json" json:"responses"`
	TotalScore     float64         `gorm:"default:0" json:"totalScore"`
	MaxScore       float64         `gorm:"default:0" json:"maxScore"`
	Status         string          `gorm:"size:20;default:'submitted'" json:"status"`
	SubmittedAt    time.Time       `json:"submittedAt"`
}

func (AssessmentSubmission) TableName() string {
	return "assessment_submissions"
}
