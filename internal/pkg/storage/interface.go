package storage

import (
	"context"

	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// FeedStorage persists normalization results between runs.
type FeedStorage interface {
	// StoreSnapshot upserts every article of the snapshot by URL and records
	// the snapshot itself as one run row.
	StoreSnapshot(ctx context.Context, snapshot *models.FeedSnapshot) error

	// GetLatestSnapshot returns the most recently stored snapshot,
	// or nil when none exists yet.
	GetLatestSnapshot(ctx context.Context) (*models.FeedSnapshot, error)

	// Close closes the database connection.
	Close() error
}
