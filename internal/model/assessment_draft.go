package model

import "encoding/json"

// AssessmentDraft is the resumable snapshot of one user's in-progress
// wizard run, keyed by (user, assessment year). Answers holds the raw
// answer map; it is validated against the live question bank on resume.
// swagger:model AssessmentDraft
type AssessmentDraft struct {
	UUIDBase
	UserID         uint            `gorm:"index:idx_draft_user_year,unique;not null" json:"userId"`
	AssessmentYear int             `gorm:"index:idx_draft_user_year,unique;not null" json:"assessmentYear"`
	Answers        json.RawMessage `gorm:"type:json" json:"answers"`
	ActiveTab      string          `gorm:"size:30" json:"activeTab"`
}

func (AssessmentDraft) TableName() string {
	return "assessment_drafts"
}
