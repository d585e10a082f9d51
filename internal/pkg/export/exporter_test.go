package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/savelyev/oddsfeed/internal/pkg/enums"
	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

func sampleSnapshot() *models.FeedSnapshot {
	return &models.FeedSnapshot{
		Title: "OddsShark",
		Link:  "https://www.oddsshark.com",
		Items: []models.NormalizedArticle{
			{
				Title: "Chiefs vs Bills Preview",
				URL:   "https://www.oddsshark.com/nfl/chiefs-bills",
				Sport: enums.Football,
				Odds: models.NormalizedOdds{
					Moneyline: []models.MoneylineEntry{{Team: "Chiefs", Odds: "-140"}},
				},
			},
			{
				Title: "Lakers vs Warriors Preview",
				URL:   "https://www.oddsshark.com/nba/lakers-warriors",
				Sport: enums.Basketball,
			},
			{
				Title: "Broken Article",
				URL:   "https://www.oddsshark.com/broken",
				Error: "normalization failed: boom",
			},
		},
	}
}

func TestExportSnapshotCounts(t *testing.T) {
	export := NewExporter().ExportSnapshot(sampleSnapshot())

	if export.TotalArticles != 3 {
		t.Errorf("TotalArticles = %d, want 3", export.TotalArticles)
	}
	if export.WithOdds != 1 {
		t.Errorf("WithOdds = %d, want 1", export.WithOdds)
	}
	if export.WithErrors != 1 {
		t.Errorf("WithErrors = %d, want 1", export.WithErrors)
	}
	if export.Timestamp == "" {
		t.Error("Timestamp is empty")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.json")

	if err := NewExporter().WriteFile(sampleSnapshot(), path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export file: %v", err)
	}

	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("export file is not valid JSON: %v", err)
	}
	if export.TotalArticles != 3 {
		t.Errorf("TotalArticles = %d, want 3", export.TotalArticles)
	}
	if len(export.Snapshot.Items) != 3 {
		t.Errorf("len(Snapshot.Items) = %d, want 3", len(export.Snapshot.Items))
	}
}
