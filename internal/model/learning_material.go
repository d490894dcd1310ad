package model

// swagger:model LearningMaterial
type LearningMaterial struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Type        string `gorm:"size:20;not null" json:"type"` // pdf, video, link
	FileURL     string `gorm:"size:500" json:"fileUrl"`
	Language    string `gorm:"size:10;default:'en'" json:"language"`
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
	UploaderID  uint   `gorm:"index" json:"uploaderId"`
}

func (LearningMaterial) TableName() string {
	return "learning_materials"
}
