package models

import "time"

// NotificationPreference stores a user's explicit opt-in flags. A user
// without a row gets both flags treated as true: opt-out is explicit,
// opt-in is implicit.
type NotificationPreference struct {
	ID                        int       `gorm:"primary_key" json:"id"`
	UserId                    int       `gorm:"index;not null;unique" json:"user_id" binding:"required"`
	MissingEntryAlertsEnabled bool      `gorm:"not null;default:true" json:"missing_entry_alerts_enabled"`
	EscalationEnabled         bool      `gorm:"not null;default:true" json:"escalation_enabled"`
	CreatedAt                 time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                 time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
