package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"catalog-converter/utils"
)

// JSONWriter publishes a catalog document to one or more target paths as
// pretty-printed JSON, plus an optional compact encoding of the identical
// document. Writes are atomic per target: content goes to a temporary file
// first, the previous output is backed up, then the temporary file is
// renamed over the target.
type JSONWriter struct {
	Targets     []string
	CompactPath string

	backups *BackupKeeper
	logger  *utils.Logger
}

// NewJSONWriter creates a JSONWriter. backups may be nil to disable the
// backup policy.
func NewJSONWriter(targets []string, compactPath string, backups *BackupKeeper, logger *utils.Logger) *JSONWriter {
	return &JSONWriter{
		Targets:     targets,
		CompactPath: compactPath,
		backups:     backups,
		logger:      logger,
	}
}

// Publish writes doc to every configured target. A backup failure is logged
// and publishing continues; a write or rename failure aborts.
func (w *JSONWriter) Publish(doc any) error {
	pretty, err := encode(doc, true)
	if err != nil {
		return fmt.Errorf("json: encode: %w", err)
	}

	for _, target := range w.Targets {
		if err := w.writeTarget(target, pretty); err != nil {
			return err
		}
		w.logger.Info("[output] Catalog written to %s", target)
	}

	if w.CompactPath != "" {
		compact, err := encode(doc, false)
		if err != nil {
			return fmt.Errorf("json: encode compact: %w", err)
		}
		if err := w.writeTarget(w.CompactPath, compact); err != nil {
			return err
		}
		w.logger.Info("[output] Compact catalog written to %s", w.CompactPath)
	}

	return nil
}

// writeTarget performs the safe write sequence for one target path:
// temp write → backup of the existing file → atomic rename.
func (w *JSONWriter) writeTarget(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("json: create output dir for %q: %w", target, err)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("json: write temp file %q: %w", tmp, err)
	}

	if w.backups != nil {
		if _, err := os.Stat(target); err == nil {
			if err := w.backups.Backup(target); err != nil {
				w.logger.Warn("[output] Backup of %s failed: %v — publishing without backup", target, err)
			}
		}
	}

	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("json: replace %q: %w", target, err)
	}
	return nil
}

// encode marshals doc without HTML escaping, pretty-printed or compact.
// Product names contain Cyrillic and the output must stay human-diffable.
func encode(doc any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
