package storage

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func TestBackupRetentionKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	target := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(target, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	keeper := NewBackupKeeper(backupDir, "catalog", 5, newTestLogger())

	// Advance a fake clock so every backup gets a distinct timestamp.
	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	keeper.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	for i := 0; i < 8; i++ {
		if err := keeper.Backup(target); err != nil {
			t.Fatalf("backup %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 {
		t.Fatalf("backups = %d; want exactly 5", len(entries))
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	// The survivors must be the 5 most recent, i.e. ticks 4..8.
	if names[0] != "catalog_"+base.Add(4*time.Second).Format(backupTimeFormat)+".json" {
		t.Errorf("oldest surviving backup = %q; want tick 4", names[0])
	}
	if names[4] != "catalog_"+base.Add(8*time.Second).Format(backupTimeFormat)+".json" {
		t.Errorf("newest surviving backup = %q; want tick 8", names[4])
	}
}

func TestBackupIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		t.Fatal(err)
	}
	foreign := filepath.Join(backupDir, "notes.txt")
	if err := os.WriteFile(foreign, []byte("keep me"), 0644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(target, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	keeper := NewBackupKeeper(backupDir, "catalog", 1, newTestLogger())
	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	keeper.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	for i := 0; i < 3; i++ {
		if err := keeper.Backup(target); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := os.Stat(foreign); err != nil {
		t.Errorf("pruning must not touch files outside the backup scheme: %v", err)
	}
}

func TestBackupMissingSourceFileFails(t *testing.T) {
	keeper := NewBackupKeeper(t.TempDir(), "catalog", 5, newTestLogger())
	if err := keeper.Backup(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("backing up a missing file should fail")
	}
}
