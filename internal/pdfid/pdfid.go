// Package pdfid extracts arXiv identifiers from local PDF files.
package pdfid

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// arXiv id patterns: new-style "arXiv:2301.00001v2" and old-style
// "arXiv:hep-th/9901001". The "arXiv:" prefix keeps the match anchored to
// the stamp arXiv prints in the margin of every paper.
var (
	newStylePattern = regexp.MustCompile(`arXiv:(\d{4}\.\d{4,5}(?:v\d+)?)`)
	oldStylePattern = regexp.MustCompile(`arXiv:([a-z\-]+(?:\.[A-Z]{2})?/\d{7}(?:v\d+)?)`)
)

// ExtractID extracts an arXiv identifier from a PDF file. It searches the
// first few pages, where arXiv stamps the id. Returns "" when no id is
// found (not an error).
func ExtractID(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// The stamp is on page 1; scan a couple more for robustness.
	maxPages := 3
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if id := FindID(text); id != "" {
			return id, nil
		}
	}

	return "", nil
}

// FindID finds an arXiv identifier in text.
func FindID(text string) string {
	if m := newStylePattern.FindStringSubmatch(text); m != nil {
		return cleanID(m[1])
	}
	if m := oldStylePattern.FindStringSubmatch(text); m != nil {
		return cleanID(m[1])
	}
	return ""
}

func cleanID(id string) string {
	return strings.TrimRight(id, ".,;:)")
}
