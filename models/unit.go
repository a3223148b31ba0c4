package models

import (
	"context"
	"errors"
	"time"

	"github.com/fuelchain/stationlog_backend/config"
)

// Unit is one gas station expected to submit one entry per calendar day.
// OrganizationId == 0 means the unit has not been assigned to an organization
// yet; such units cannot be routed to any recipient and are excluded from the
// missing-entry sweep.
type Unit struct {
	ID             int       `gorm:"primary_key" json:"id"`
	OrganizationId int       `gorm:"index" json:"organization_id"`
	Name           string    `gorm:"index;size:100;not null" json:"name" binding:"required"`
	Code           string    `gorm:"size:20;not null;unique" json:"code" binding:"required"`
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ListActiveUnits returns all active units, optionally scoped to one
// organization (organizationId <= 0 means all organizations).
func ListActiveUnits(ctx context.Context, organizationId int) ([]Unit, error) {
	db := config.GetDB()
	if db == nil {
		return nil, errors.New("database not ready")
	}

	q := db.WithContext(ctx).Model(&Unit{}).Where("is_active = ?", true)
	if organizationId > 0 {
		q = q.Where("organization_id = ?", organizationId)
	}

	var units []Unit
	if err := q.Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}
