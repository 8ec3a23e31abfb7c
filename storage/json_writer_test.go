package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"catalog-converter/models"
	"catalog-converter/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

func sampleCatalog() *models.Catalog {
	return &models.Catalog{
		Success:     true,
		Timestamp:   "2025-09-01T12:00:00+03:00",
		GeneratedAt: "01.09.2025 12:00:00",
		TotalItems:  1,
		Statistics:  models.Statistics{InStock: 1, TotalCategories: 1, TotalBrands: 1},
		Categories:  []string{"display"},
		Brands:      []string{"Apple"},
		Items: []models.CatalogItem{{
			ID:         "123",
			Name:       "Дисплей для iPhone 11",
			Stock:      5,
			Brand:      "Apple",
			Model:      "iPhone 11",
			Category:   "display",
			Price:      3500,
			InStock:    true,
			SearchText: "дисплей для iphone 11 123",
		}},
	}
}

func TestPublishWritesAllTargets(t *testing.T) {
	dir := t.TempDir()
	targets := []string{
		filepath.Join(dir, "a", "catalog.json"),
		filepath.Join(dir, "b", "catalog.json"),
	}

	w := NewJSONWriter(targets, "", nil, newTestLogger())
	if err := w.Publish(sampleCatalog()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	for _, target := range targets {
		if _, err := os.Stat(target); err != nil {
			t.Errorf("target %s missing: %v", target, err)
		}
	}
}

func TestPublishPrettyCompactRoundTrip(t *testing.T) {
	dir := t.TempDir()
	pretty := filepath.Join(dir, "catalog.json")
	compact := filepath.Join(dir, "catalog.min.json")

	w := NewJSONWriter([]string{pretty}, compact, nil, newTestLogger())
	if err := w.Publish(sampleCatalog()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	var fromPretty, fromCompact models.Catalog
	decode(t, pretty, &fromPretty)
	decode(t, compact, &fromCompact)

	if !reflect.DeepEqual(fromPretty, fromCompact) {
		t.Error("pretty and compact encodings decode to different documents")
	}

	prettyData, _ := os.ReadFile(pretty)
	compactData, _ := os.ReadFile(compact)
	if !strings.Contains(string(prettyData), "\n  ") {
		t.Error("pretty output should be indented")
	}
	if strings.Contains(strings.TrimSpace(string(compactData)), "\n") {
		t.Error("compact output should be a single line")
	}
	// Cyrillic must survive unescaped for human diffing.
	if !strings.Contains(string(prettyData), "Дисплей") {
		t.Error("pretty output should contain raw Cyrillic text")
	}
}

func TestPublishLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "catalog.json")

	w := NewJSONWriter([]string{target}, "", nil, newTestLogger())
	if err := w.Publish(sampleCatalog()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if _, err := os.Stat(target + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away after publish")
	}
}

func TestPublishBacksUpPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "catalog.json")
	backupDir := filepath.Join(dir, "backups")

	keeper := NewBackupKeeper(backupDir, "catalog", 5, newTestLogger())
	w := NewJSONWriter([]string{target}, "", keeper, newTestLogger())

	if err := w.Publish(sampleCatalog()); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	// First publish has nothing to back up.
	if entries, _ := os.ReadDir(backupDir); len(entries) != 0 {
		t.Errorf("unexpected backups after first publish: %d", len(entries))
	}

	if err := w.Publish(sampleCatalog()); err != nil {
		t.Fatalf("second publish: %v", err)
	}
	entries, err := os.ReadDir(backupDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("backups after second publish = %d (%v); want 1", len(entries), err)
	}
	if !strings.HasPrefix(entries[0].Name(), "catalog_") || !strings.HasSuffix(entries[0].Name(), ".json") {
		t.Errorf("backup name = %q; want catalog_<timestamp>.json", entries[0].Name())
	}
}

func decode(t *testing.T, path string, into *models.Catalog) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
}
