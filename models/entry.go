package models

import (
	"context"
	"errors"
	"time"

	"github.com/fuelchain/stationlog_backend/config"
)

// Entry is the daily record a unit submits. The sweep only ever checks its
// existence for a (unit, date) pair; the payload is opaque to it.
type Entry struct {
	ID        int       `gorm:"primary_key" json:"id"`
	UnitId    int       `gorm:"index:idx_entries_unit_date,unique;not null" json:"unit_id" binding:"required"`
	EntryDate time.Time `gorm:"index:idx_entries_unit_date,unique;type:date;not null" json:"entry_date" binding:"required"`
	Payload   string    `gorm:"type:text" json:"payload"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ListEntriesByDate returns every entry recorded for the given calendar date.
// Comparison is date-only; the time-of-day component of date is ignored.
func ListEntriesByDate(ctx context.Context, date time.Time) ([]Entry, error) {
	db := config.GetDB()
	if db == nil {
		return nil, errors.New("database not ready")
	}

	var entries []Entry
	err := db.WithContext(ctx).
		Model(&Entry{}).
		Where("entry_date = ?", date.Format("2006-01-02")).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
