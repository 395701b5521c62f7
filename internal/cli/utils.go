// Package cli provides CLI utilities for devicematch.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/activlink/devicematch/internal/models"
)

// OutputFormat is the format for match result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteMatchResult writes a match response to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteMatchResult(w io.Writer, resp *models.MatchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	default:
		fmt.Fprintf(w, "Category:   %s\n", resp.Category)
		fmt.Fprintf(w, "Similarity: %.4f\n", resp.Similarity)
		if resp.LocaleTitle != nil {
			fmt.Fprintf(w, "Title:      %s\n", *resp.LocaleTitle)
		}
		return nil
	}
}

// BuildQuery joins all positional args with spaces so multi-word queries work
// the same with or without shell quoting.
func BuildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
