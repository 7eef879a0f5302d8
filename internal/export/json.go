package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

// WriteJSON writes the whole BatchResult, summary included, to path.
func WriteJSON(path string, result *ivr.BatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return f.Close()
}
