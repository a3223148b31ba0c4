package sweep

import (
	"context"
	"fmt"
	"time"
)

// MissingUnit is one active unit with no entry for the swept date.
type MissingUnit struct {
	UnitId         int    `json:"unit_id"`
	UnitName       string `json:"unit_name"`
	UnitCode       string `json:"unit_code"`
	OrganizationId int    `json:"organization_id"`
}

// DetectMissingEntries computes the set of active units that have no entry
// for the given date. date must already be normalized to midnight in the
// scheduling timezone; entries are matched on the calendar date alone.
//
// Units without an organization cannot be routed to anyone and are dropped
// here (a data-quality gap, not an error). Result order is not significant.
func (e *Engine) DetectMissingEntries(ctx context.Context, date time.Time) ([]MissingUnit, error) {
	units, err := e.Store.ListActiveUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active units: %w", err)
	}

	entries, err := e.Store.ListEntriesByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list entries for %s: %w", date.Format("2006-01-02"), err)
	}

	submitted := make(map[int]bool, len(entries))
	for _, en := range entries {
		submitted[en.UnitId] = true
	}

	var missing []MissingUnit
	for _, u := range units {
		if u.OrganizationId == 0 {
			continue
		}
		if submitted[u.ID] {
			continue
		}
		missing = append(missing, MissingUnit{
			UnitId:         u.ID,
			UnitName:       u.Name,
			UnitCode:       u.Code,
			OrganizationId: u.OrganizationId,
		})
	}
	return missing, nil
}
