package sweep

import (
	"context"
	"time"

	"github.com/fuelchain/stationlog_backend/models"
)

// Store is the read-only query surface the sweep consumes. The engine never
// writes through it; execution outcomes go to the in-process ExecutionLog.
type Store interface {
	ListActiveUnits(ctx context.Context) ([]models.Unit, error)
	ListEntriesByDate(ctx context.Context, date time.Time) ([]models.Entry, error)
	ListOrganizationMembers(ctx context.Context, organizationId int) ([]models.Member, error)
}

type dbStore struct{}

// NewStore returns the GORM-backed Store. Queries resolve the global DB at
// call time, so the store can be constructed before the connection is up.
func NewStore() Store {
	return dbStore{}
}

func (dbStore) ListActiveUnits(ctx context.Context) ([]models.Unit, error) {
	return models.ListActiveUnits(ctx, 0)
}

func (dbStore) ListEntriesByDate(ctx context.Context, date time.Time) ([]models.Entry, error) {
	return models.ListEntriesByDate(ctx, date)
}

func (dbStore) ListOrganizationMembers(ctx context.Context, organizationId int) ([]models.Member, error) {
	return models.ListOrganizationMembers(ctx, organizationId)
}
