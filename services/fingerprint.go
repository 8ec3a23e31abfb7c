package services

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"catalog-converter/utils"
)

// Detector decides whether the source file changed since the last recorded
// run by comparing content digests. The last digest is persisted in a small
// text file next to the run logs.
type Detector struct {
	StorePath string
	Logger    *utils.Logger
}

// NewDetector creates a Detector persisting digests at storePath.
func NewDetector(storePath string, logger *utils.Logger) *Detector {
	return &Detector{StorePath: storePath, Logger: logger}
}

// Changed reports whether sourcePath differs from the last processed file.
// An unchanged file returns false and leaves the store untouched. A new
// digest is persisted before returning true. Any I/O failure fails open:
// the file is treated as changed so a needed rebuild is never skipped.
func (d *Detector) Changed(sourcePath string) bool {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		d.Logger.Error("[fingerprint] Cannot read source %s: %v", sourcePath, err)
		return true
	}
	sum := md5.Sum(data)
	current := hex.EncodeToString(sum[:])

	if prev, err := os.ReadFile(d.StorePath); err == nil {
		if strings.TrimSpace(string(prev)) == current {
			d.Logger.Info("[fingerprint] Source unchanged, skipping conversion")
			return false
		}
	} else if !os.IsNotExist(err) {
		d.Logger.Error("[fingerprint] Cannot read digest store %s: %v", d.StorePath, err)
	}

	if err := os.MkdirAll(filepath.Dir(d.StorePath), 0755); err != nil {
		d.Logger.Error("[fingerprint] Cannot create store dir: %v", err)
		return true
	}
	if err := os.WriteFile(d.StorePath, []byte(current), 0644); err != nil {
		d.Logger.Error("[fingerprint] Cannot persist digest: %v", err)
	}
	return true
}
