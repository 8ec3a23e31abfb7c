package storage

import (
	"encoding/json"
	"fmt"
	"os"
)

// Verify reads a published catalog file back and checks that it is valid
// JSON carrying the required top-level fields. Used as a post-publish sanity
// check; a verification failure flags the run but does not roll it back.
func Verify(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("verify: read %q: %w", path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("verify: %q is not valid JSON: %w", path, err)
	}

	for _, field := range []string{"generated_at", "total_items", "items"} {
		if _, ok := doc[field]; !ok {
			return fmt.Errorf("verify: %q is missing required field %q", path, field)
		}
	}
	return nil
}
