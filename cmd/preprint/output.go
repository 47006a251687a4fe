package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/preprint/internal/paper"
)

// Title truncation length for list-style human output.
const listTitleMaxLen = 70

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Key    string `json:"key,omitempty"`
	Count  int    `json:"count,omitempty"`
}

// PapersResponse wraps a list of papers with its length.
type PapersResponse struct {
	Papers []paper.Paper `json:"papers"`
	Count  int           `json:"count"`
}

// printPaperLine prints a one-line human summary of a paper.
func printPaperLine(i int, p *paper.Paper) {
	fmt.Printf("%d. %s\n", i+1, p.UniqueKey())
	fmt.Printf("   %s\n", truncateString(p.Title, listTitleMaxLen))
	fmt.Printf("   %s\n\n", formatAuthorsShort(p.Authors, 3))
}

// printPaperDetail prints a full human-readable view of a paper.
func printPaperDetail(p *paper.Paper) {
	fmt.Println(p.UniqueKey())
	fmt.Println(strings.Repeat("═", 70))
	fmt.Println()

	fmt.Printf("Title:      %s\n", p.Title)
	if len(p.Authors) > 0 {
		fmt.Printf("Authors:    %s\n", strings.Join(p.Authors, ", "))
	}
	if len(p.Categories) > 0 {
		fmt.Printf("Categories: %s\n", strings.Join(p.Categories, ", "))
	}
	if !p.Published.IsZero() {
		fmt.Printf("Published:  %s\n", p.Published)
	}
	if !p.Updated.IsZero() {
		fmt.Printf("Updated:    %s\n", p.Updated)
	}
	if p.PDFURL != "" {
		fmt.Printf("PDF:        %s\n", p.PDFURL)
	}
	if p.SourceURL != "" {
		fmt.Printf("Source:     %s\n", p.SourceURL)
	}
	if p.Abstract != "" {
		fmt.Printf("\n%s\n", p.Abstract)
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatAuthorsShort formats authors with "et al." for more than maxCount.
func formatAuthorsShort(authors []string, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}
	if len(authors) <= maxCount {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:maxCount], ", ") + ", et al."
}

// formatBytes formats bytes in a human-readable way.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
