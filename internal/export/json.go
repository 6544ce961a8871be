// Package export writes finished batches to disk in the formats the CLI
// supports: JSON, CSV, and a queryable SQLite database.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"genie/synthdata-api/internal/domain"
)

// WriteJSON writes the batch as a pretty-printed JSON array.
func WriteJSON(path string, batch []domain.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(batch); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
