package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/savelyev/oddsfeed/internal/pkg/config"
	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// Client produces an opaque annotation for a normalized article. Annotations
// are attached after normalization and never alter the normalized fields.
type Client interface {
	Annotate(ctx context.Context, article models.NormalizedArticle) (*models.Annotation, error)
	Name() string
}

// NewClient picks the enrichment provider from config. With nothing
// configured enrichment is disabled; an API key without a matching provider
// falls back to the mock.
func NewClient(cfg config.EnrichConfig, logger *slog.Logger) Client {
	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		if cfg.APIKey == "" {
			return NoopClient{}
		}
		provider = "mock"
	}

	switch provider {
	case "mock":
		return NewMockClient()
	case "none":
		return NoopClient{}
	default:
		logger.Warn("unknown enrichment provider, using mock", "provider", provider)
		return NewMockClient()
	}
}

// NoopClient disables enrichment: articles keep a nil annotation.
type NoopClient struct{}

func (NoopClient) Annotate(context.Context, models.NormalizedArticle) (*models.Annotation, error) {
	return nil, nil
}

func (NoopClient) Name() string { return "none" }

// MockClient returns a deterministic canned summary, so tests and keyless
// deployments behave predictably.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Annotate(_ context.Context, article models.NormalizedArticle) (*models.Annotation, error) {
	summary := fmt.Sprintf("%s: %d key odds, %d picks, %d insights",
		article.Title, len(article.Odds.KeyOdds), len(article.Picks), len(article.KeyInsights))
	return &models.Annotation{
		Provider:  m.Name(),
		Summary:   summary,
		UpdatedAt: time.Now(),
	}, nil
}

func (m *MockClient) Name() string { return "mock" }
