package models

import (
	"context"
	"errors"
	"time"

	"github.com/fuelchain/stationlog_backend/config"
)

// Member links a user to exactly one organization with a role. Role is stored
// as a free-form string; the sweep package owns the closed classification of
// recognized roles into tiers.
type Member struct {
	ID             int       `gorm:"primary_key" json:"id"`
	OrganizationId int       `gorm:"index;not null" json:"organization_id" binding:"required"`
	UserId         int       `gorm:"index;not null" json:"user_id" binding:"required"`
	User           User      `gorm:"foreignKey:UserId" json:"user"`
	Role           string    `gorm:"size:20;not null;default:member" json:"role"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ListOrganizationMembers returns every member of the organization with the
// user profile and (when present) the user's notification preference loaded.
func ListOrganizationMembers(ctx context.Context, organizationId int) ([]Member, error) {
	db := config.GetDB()
	if db == nil {
		return nil, errors.New("database not ready")
	}

	var members []Member
	err := db.WithContext(ctx).
		Model(&Member{}).
		Where("organization_id = ?", organizationId).
		Preload("User").
		Preload("User.NotificationPreference").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
