package services

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"catalog-converter/utils"
)

// Fetcher downloads the source export over HTTP before a conversion run,
// for deployments where the file is pulled from a shared server rather than
// pushed into place.
type Fetcher struct {
	URL      string
	DestPath string
	Retries  int

	client *http.Client
	logger *utils.Logger
}

// NewFetcher creates a Fetcher writing to destPath.
func NewFetcher(url, destPath string, retries int, logger *utils.Logger) *Fetcher {
	return &Fetcher{
		URL:      url,
		DestPath: destPath,
		Retries:  retries,
		client:   &http.Client{Timeout: 60 * time.Second},
		logger:   logger,
	}
}

// Fetch downloads the export with exponential back-off retry. The download
// goes to a temporary file and is renamed into place only on success, so a
// failed fetch never clobbers the previous source file.
func (f *Fetcher) Fetch() error {
	return utils.Retry("source download", f.Retries, 2*time.Second, f.logger, f.fetchOnce)
}

func (f *Fetcher) fetchOnce() error {
	resp, err := f.client.Get(f.URL)
	if err != nil {
		return fmt.Errorf("fetch: get %q: %w", f.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch: get %q: unexpected status %s", f.URL, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(f.DestPath), 0755); err != nil {
		return fmt.Errorf("fetch: create source dir: %w", err)
	}

	tmp := f.DestPath + ".download"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("fetch: create temp file: %w", err)
	}

	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("fetch: download body: %w", err)
	}

	if err := os.Rename(tmp, f.DestPath); err != nil {
		return fmt.Errorf("fetch: move download into place: %w", err)
	}

	f.logger.Info("[fetch] Downloaded %d bytes to %s", n, f.DestPath)
	return nil
}
