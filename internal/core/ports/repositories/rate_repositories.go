package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
)

// RateSnapshotReader loads the current rate snapshot.
type RateSnapshotReader interface {
	// LoadSnapshot returns the last saved snapshot. A store that was never written
	// returns an empty snapshot, not an error.
	LoadSnapshot(ctx context.Context) (*domain.RateSnapshot, error)
}

// RateSnapshotWriter stores fetched rates.
type RateSnapshotWriter interface {
	// SaveSnapshot merges rates into the stored snapshot and stamps it with refreshedAt.
	SaveSnapshot(ctx context.Context, rates []domain.ExchangeRate, refreshedAt time.Time) error

	// AppendHistory appends records to the rate history log.
	AppendHistory(ctx context.Context, records []domain.RateHistoryRecord) error
}

// RateRepositoryFacade combines all rate storage operations.
type RateRepositoryFacade interface {
	RateSnapshotReader
	RateSnapshotWriter
}
