package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// Export represents the export format
type Export struct {
	Timestamp     string               `json:"timestamp"`
	TotalArticles int                  `json:"total_articles"`
	WithOdds      int                  `json:"with_odds"`
	WithErrors    int                  `json:"with_errors"`
	Snapshot      *models.FeedSnapshot `json:"snapshot"`
}

// Exporter handles the export format
type Exporter struct{}

// NewExporter creates a new exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportSnapshot wraps a feed snapshot with run metadata
func (e *Exporter) ExportSnapshot(snapshot *models.FeedSnapshot) *Export {
	export := &Export{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		TotalArticles: len(snapshot.Items),
		Snapshot:      snapshot,
	}

	for i := range snapshot.Items {
		if snapshot.Items[i].Odds.HasLines() {
			export.WithOdds++
		}
		if snapshot.Items[i].Error != "" {
			export.WithErrors++
		}
	}

	return export
}

// ExportToJSON exports a snapshot to JSON format
func (e *Exporter) ExportToJSON(snapshot *models.FeedSnapshot) ([]byte, error) {
	export := e.ExportSnapshot(snapshot)
	return json.MarshalIndent(export, "", "  ")
}

// WriteFile writes the JSON export to the given path
func (e *Exporter) WriteFile(snapshot *models.FeedSnapshot, path string) error {
	data, err := e.ExportToJSON(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}

// PrintSummary prints a summary of the export
func (e *Exporter) PrintSummary(export *Export) {
	fmt.Printf("=== Export Summary ===\n")
	fmt.Printf("Timestamp: %s\n", export.Timestamp)
	fmt.Printf("Total Articles: %d\n", export.TotalArticles)
	fmt.Printf("With Odds: %d\n", export.WithOdds)
	fmt.Printf("With Errors: %d\n", export.WithErrors)

	sportCount := make(map[string]int)
	for i := range export.Snapshot.Items {
		sportCount[export.Snapshot.Items[i].Sport.String()]++
	}

	fmt.Printf("\nSports:\n")
	for sport, count := range sportCount {
		fmt.Printf("  %s: %d\n", sport, count)
	}
}
