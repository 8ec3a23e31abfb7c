package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"catalog-converter/utils"
)

const backupTimeFormat = "20060102_150405"

// BackupKeeper copies previous catalog outputs into a backup directory and
// prunes old copies beyond a fixed retention count. Backup filenames embed
// the build timestamp, so lexical order is also chronological.
type BackupKeeper struct {
	Dir       string
	Name      string // logical catalog name, used as the filename prefix
	Retention int

	logger *utils.Logger
	now    func() time.Time
}

// NewBackupKeeper creates a BackupKeeper. A retention of 0 or less falls
// back to keeping 5 copies.
func NewBackupKeeper(dir, name string, retention int, logger *utils.Logger) *BackupKeeper {
	if retention <= 0 {
		retention = 5
	}
	return &BackupKeeper{
		Dir:       dir,
		Name:      name,
		Retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Backup copies the file at path into the backup directory under a
// timestamped name, then prunes copies beyond the retention count.
func (k *BackupKeeper) Backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("backup: read %q: %w", path, err)
	}

	if err := os.MkdirAll(k.Dir, 0755); err != nil {
		return fmt.Errorf("backup: create dir %q: %w", k.Dir, err)
	}

	name := fmt.Sprintf("%s_%s.json", k.Name, k.now().Format(backupTimeFormat))
	dest := filepath.Join(k.Dir, name)
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("backup: write %q: %w", dest, err)
	}
	k.logger.Info("[output] Previous catalog backed up to %s", dest)

	k.prune()
	return nil
}

// prune deletes the oldest backups beyond the retention count. Failures are
// logged only: a full backup directory must not block publishing.
func (k *BackupKeeper) prune() {
	entries, err := os.ReadDir(k.Dir)
	if err != nil {
		k.logger.Warn("[output] Cannot list backup dir %q: %v", k.Dir, err)
		return
	}

	var backups []string
	prefix := k.Name + "_"
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) && strings.HasSuffix(e.Name(), ".json") {
			backups = append(backups, e.Name())
		}
	}

	if len(backups) <= k.Retention {
		return
	}

	sort.Strings(backups)
	for _, old := range backups[:len(backups)-k.Retention] {
		path := filepath.Join(k.Dir, old)
		if err := os.Remove(path); err != nil {
			k.logger.Warn("[output] Cannot remove old backup %s: %v", path, err)
			continue
		}
		k.logger.Info("[output] Removed old backup %s", path)
	}
}
