package models

import "time"

type User struct {
	ID                     int                     `gorm:"primary_key" json:"id"`
	Name                   string                  `gorm:"size:100;not null" json:"name" binding:"required"`
	Email                  string                  `gorm:"size:100;not null;unique" json:"email" binding:"required,email"`
	IsActive               *bool                   `gorm:"not null;default:true" json:"is_active"`
	NotificationPreference *NotificationPreference `gorm:"foreignKey:UserId" json:"notification_preference,omitempty"`
	CreatedAt              time.Time               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time               `gorm:"autoUpdateTime" json:"updated_at"`
}
