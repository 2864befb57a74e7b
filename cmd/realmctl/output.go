package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// printJSON renders command output on stdout. Logs go to stderr, so output
// stays pipeable into jq and friends.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
