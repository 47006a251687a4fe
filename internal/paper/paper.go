// Package paper defines the canonical record for one version of an arXiv paper.
package paper

import "regexp"

// Paper is the normalized representation of a single version of a paper.
// Keywords, Summary, and Embedding are reserved for downstream enrichment
// and are never populated by the ingestion pipeline.
type Paper struct {
	ArXivID    string         `json:"arxiv_id"`
	Version    string         `json:"version"`
	Title      string         `json:"title"`
	Authors    []string       `json:"authors"`
	Abstract   string         `json:"abstract"`
	Categories []string       `json:"categories"`
	Published  Timestamp      `json:"published"`
	Updated    Timestamp      `json:"updated"`
	PDFURL     string         `json:"pdf_url"`
	SourceURL  string         `json:"source_url"`
	Keywords   []string       `json:"keywords,omitempty"`
	Summary    string         `json:"summary,omitempty"`
	Embedding  []float64      `json:"embedding,omitempty"`
	Extra      map[string]any `json:"extra,omitempty"`
}

// UniqueKey returns the storage identity of the record: arXiv id
// concatenated with version. Records sharing a key collapse to one
// (last write wins); same id with different versions coexist.
func (p *Paper) UniqueKey() string {
	return p.ArXivID + p.Version
}

// versionSuffix matches a trailing version tag like "v2".
var versionSuffix = regexp.MustCompile(`v\d+$`)

// ParseIDVersion splits an arXiv identifier into its version-free id and
// version tag. "2301.00001v2" yields ("2301.00001", "v2"); an id with no
// suffix defaults to version "v1". No other validation is performed:
// malformed ids pass through unchanged.
func ParseIDVersion(id string) (string, string) {
	if m := versionSuffix.FindString(id); m != "" && len(m) < len(id) {
		return id[:len(id)-len(m)], m
	}
	return id, "v1"
}
