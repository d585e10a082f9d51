package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/savelyev/oddsfeed/internal/pkg/config"
	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// Ensure PostgresFeedStorage implements FeedStorage
var _ FeedStorage = (*PostgresFeedStorage)(nil)

// PostgresFeedStorage stores normalized articles and per-run feed snapshots.
type PostgresFeedStorage struct {
	db *sql.DB
}

// NewPostgresFeedStorage opens the connection, verifies it and creates the
// schema when missing.
func NewPostgresFeedStorage(cfg *config.PostgresConfig) (*PostgresFeedStorage, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresFeedStorage{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL feed storage initialized successfully")
	return s, nil
}

func (s *PostgresFeedStorage) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS articles (
		id SERIAL PRIMARY KEY,
		url VARCHAR(1000) NOT NULL UNIQUE,
		title VARCHAR(1000) NOT NULL,
		pub_date VARCHAR(100) NOT NULL DEFAULT '',
		category VARCHAR(200) NOT NULL DEFAULT '',
		sport VARCHAR(50) NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		payload JSONB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_articles_sport ON articles(sport);
	CREATE INDEX IF NOT EXISTS idx_articles_updated_at ON articles(updated_at DESC);

	CREATE TABLE IF NOT EXISTS feed_snapshots (
		id SERIAL PRIMARY KEY,
		title VARCHAR(500) NOT NULL,
		link VARCHAR(1000) NOT NULL,
		item_count INTEGER NOT NULL,
		last_updated TIMESTAMP NOT NULL,
		payload JSONB NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_feed_snapshots_created_at ON feed_snapshots(created_at DESC);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// StoreSnapshot upserts every article by URL, then inserts one snapshot row
// for the run. Articles without a URL cannot be keyed and are skipped with a
// warning.
func (s *PostgresFeedStorage) StoreSnapshot(ctx context.Context, snapshot *models.FeedSnapshot) error {
	for i := range snapshot.Items {
		if err := s.storeArticle(ctx, &snapshot.Items[i]); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
	INSERT INTO feed_snapshots (title, link, item_count, last_updated, payload)
	VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(ctx, query,
		snapshot.Title, snapshot.Link, len(snapshot.Items), snapshot.LastUpdated, payload)
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

func (s *PostgresFeedStorage) storeArticle(ctx context.Context, article *models.NormalizedArticle) error {
	if article.URL == "" {
		slog.Warn("skipping article without URL", "title", article.Title)
		return nil
	}

	payload, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("failed to marshal article: %w", err)
	}

	query := `
	INSERT INTO articles (url, title, pub_date, category, sport, error, payload, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	ON CONFLICT (url) DO UPDATE SET
		title = EXCLUDED.title,
		pub_date = EXCLUDED.pub_date,
		category = EXCLUDED.category,
		sport = EXCLUDED.sport,
		error = EXCLUDED.error,
		payload = EXCLUDED.payload,
		updated_at = NOW()
	`
	_, err = s.db.ExecContext(ctx, query,
		article.URL, article.Title, article.PubDate, article.Category,
		article.Sport.String(), article.Error, payload)
	if err != nil {
		return fmt.Errorf("failed to store article %s: %w", article.URL, err)
	}
	return nil
}

// GetLatestSnapshot returns the most recent run's snapshot, or nil when the
// table is empty.
func (s *PostgresFeedStorage) GetLatestSnapshot(ctx context.Context) (*models.FeedSnapshot, error) {
	query := `SELECT payload FROM feed_snapshots ORDER BY created_at DESC LIMIT 1`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	var snapshot models.FeedSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// Close closes the database connection.
func (s *PostgresFeedStorage) Close() error {
	return s.db.Close()
}
