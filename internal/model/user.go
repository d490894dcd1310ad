package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name                  string    `gorm:"size:100;not null" json:"name"`
	Email                 string    `gorm:"size:100;unique;not null" json:"email"`
	Password              string    `gorm:"size:100;not null" json:"-"`
	Role                  UserRole  `gorm:"type:enum('user','admin');default:'user'" json:"role"`
	CompanyName           string    `gorm:"size:255" json:"companyName"`
	CompanyRegistrationNo string    `gorm:"size:50" json:"companyRegistrationNo"`
	Sector                string    `gorm:"size:100" json:"sector"`
	Language              string    `gorm:"size:10;default:'en'" json:"language"`
	Avatar                string    `gorm:"size:255" json:"avatar"`
	Disabled              bool      `gorm:"default:false" json:"disabled"`
	LastLogin             time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen              time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
