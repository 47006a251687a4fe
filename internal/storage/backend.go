// Package storage persists normalized paper records. Two backends share
// one contract: a durable SQLite store and an ephemeral in-memory store.
package storage

import (
	"math"
	"sort"

	"github.com/matsen/preprint/internal/paper"
)

// Backend is the persistence contract. Both implementations behave
// identically; callers must not depend on backend-specific types.
type Backend interface {
	// Save upserts a record keyed by its unique key. The last write
	// replaces all fields; saving the same key twice leaves one record.
	Save(p *paper.Paper) error

	// Get returns the record for a unique key, or nil when absent.
	Get(uniqueKey string) (*paper.Paper, error)

	// Exists reports whether a record with the key is stored.
	Exists(uniqueKey string) (bool, error)

	// Delete removes a record, reporting whether one was actually removed.
	Delete(uniqueKey string) (bool, error)

	// List returns stored records ordered per opts.
	List(opts ListOptions) ([]paper.Paper, error)

	// Versions returns all records sharing the arXiv id, ordered by
	// version ascending regardless of save order.
	Versions(arxivID string) ([]paper.Paper, error)

	// Count returns the total number of stored records.
	Count() (int, error)

	// Stats returns aggregate statistics including the top categories.
	Stats() (*Stats, error)

	// CategoryStats returns the unfiltered category frequency map.
	CategoryStats() (map[string]int, error)
}

// ListOptions controls List pagination and ordering. Out-of-allow-list
// SortBy and Order values are coerced to safe defaults, never rejected.
type ListOptions struct {
	Limit  int
	Offset int
	SortBy string // created_at, title, published, updated, arxiv_id
	Order  string // asc or desc
}

// DefaultListLimit bounds List when no limit is given.
const DefaultListLimit = 100

// Default sort values.
const (
	SortByCreated = "created_at"
	OrderDesc     = "desc"
	OrderAsc      = "asc"
)

// validSortFields is the allow-list of sortable columns. Anything else
// falls back to creation time so caller input never reaches SQL verbatim.
var validSortFields = map[string]bool{
	"created_at": true,
	"title":      true,
	"published":  true,
	"updated":    true,
	"arxiv_id":   true,
}

// normalizeListOptions coerces options to the allow-lists and defaults.
func normalizeListOptions(opts ListOptions) ListOptions {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if !validSortFields[opts.SortBy] {
		opts.SortBy = SortByCreated
	}
	if opts.Order != OrderAsc && opts.Order != OrderDesc {
		opts.Order = OrderDesc
	}
	return opts
}

// Stats contains aggregate statistics for a backend.
type Stats struct {
	TotalPapers int             `json:"total_papers"`
	SizeBytes   int64           `json:"db_size_bytes"`
	SizeMB      float64         `json:"db_size_mb"`
	Categories  []CategoryCount `json:"categories"`
}

// CategoryCount is a category tag with its record count.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// topCategories reduces a frequency map to the topN entries by descending
// count, ties broken by name for stable output.
func topCategories(counts map[string]int, topN int) []CategoryCount {
	result := make([]CategoryCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, CategoryCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	if len(result) > topN {
		result = result[:topN]
	}
	return result
}

// sizeMB converts bytes to megabytes rounded to two decimals.
func sizeMB(bytes int64) float64 {
	return math.Round(float64(bytes)/(1024*1024)*100) / 100
}
