package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/savelyev/oddsfeed/internal/normalize"
	"github.com/savelyev/oddsfeed/internal/pkg/export"
	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

func main() {
	fmt.Println("📊 Starting offline normalization...")

	var inPath, outPath string
	flag.StringVar(&inPath, "in", "bundles.json", "Path to JSON file with raw article bundles")
	flag.StringVar(&outPath, "out", "snapshot.json", "Path for the normalized snapshot JSON")
	flag.Parse()

	data, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	var bundles []models.RawArticleBundle
	if err := json.Unmarshal(data, &bundles); err != nil {
		log.Fatalf("Failed to parse input file: %v", err)
	}
	fmt.Printf("📥 Loaded %d article bundles from %s\n", len(bundles), inPath)

	normalizer, err := normalize.NewNormalizer(normalize.DefaultDictionaries(), slog.Default())
	if err != nil {
		log.Fatalf("Failed to build normalizer: %v", err)
	}

	articles := make([]models.NormalizedArticle, 0, len(bundles))
	for _, bundle := range bundles {
		articles = append(articles, normalizer.NormalizeArticle(bundle))
	}

	meta := models.ChannelMeta{Title: "offline normalization"}
	snapshot := normalize.NewFeedAssembler().AssembleFeed(meta, articles)

	fmt.Printf("💾 Writing snapshot to %s\n", outPath)
	exporter := export.NewExporter()
	if err := exporter.WriteFile(&snapshot, outPath); err != nil {
		log.Fatalf("Failed to write snapshot: %v", err)
	}

	exporter.PrintSummary(exporter.ExportSnapshot(&snapshot))
	fmt.Println("\n✅ Offline normalization completed successfully!")
}
