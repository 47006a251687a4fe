package storage

import (
	"sort"
	"sync"

	"github.com/matsen/preprint/internal/paper"
)

// Memory is the ephemeral backend: a single map from unique key to record.
// Nothing persists across process lifetime; reported storage size is
// always zero. Intended for tests and ephemeral use.
type Memory struct {
	mu     sync.RWMutex
	papers map[string]paper.Paper
}

var _ Backend = (*Memory)(nil)

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{papers: make(map[string]paper.Paper)}
}

// Save upserts a record keyed by its unique key.
func (m *Memory) Save(p *paper.Paper) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.papers[p.UniqueKey()] = *p
	return nil
}

// Get retrieves a record by unique key, or nil when absent.
func (m *Memory) Get(uniqueKey string) (*paper.Paper, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.papers[uniqueKey]; ok {
		return &p, nil
	}
	return nil, nil
}

// Exists reports whether a record with the key is stored.
func (m *Memory) Exists(uniqueKey string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.papers[uniqueKey]
	return ok, nil
}

// Delete removes a record, reporting whether one was removed.
func (m *Memory) Delete(uniqueKey string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.papers[uniqueKey]; !ok {
		return false, nil
	}
	delete(m.papers, uniqueKey)
	return true, nil
}

// List returns records ordered per opts. The backend tracks no creation
// time, so the created_at default (and any out-of-allow-list value)
// falls back to arxiv_id ordering.
func (m *Memory) List(opts ListOptions) ([]paper.Paper, error) {
	opts = normalizeListOptions(opts)

	papers := m.snapshot()

	var key func(p *paper.Paper) string
	switch opts.SortBy {
	case "title":
		key = func(p *paper.Paper) string { return p.Title }
	case "published":
		key = func(p *paper.Paper) string { return p.Published.String() }
	case "updated":
		key = func(p *paper.Paper) string { return p.Updated.String() }
	default: // arxiv_id, created_at
		key = func(p *paper.Paper) string { return p.ArXivID }
	}

	reverse := opts.Order == OrderDesc
	sort.Slice(papers, func(i, j int) bool {
		ki, kj := key(&papers[i]), key(&papers[j])
		if reverse {
			return ki > kj
		}
		return ki < kj
	})

	if opts.Offset >= len(papers) {
		return nil, nil
	}
	papers = papers[opts.Offset:]
	if len(papers) > opts.Limit {
		papers = papers[:opts.Limit]
	}
	return papers, nil
}

// Versions returns all records sharing the arXiv id, version ascending,
// matching the durable backend's ordering.
func (m *Memory) Versions(arxivID string) ([]paper.Paper, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var versions []paper.Paper
	for _, p := range m.papers {
		if p.ArXivID == arxivID {
			versions = append(versions, p)
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Version < versions[j].Version
	})
	return versions, nil
}

// Count returns the total number of stored records.
func (m *Memory) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.papers), nil
}

// Stats returns aggregate statistics. Size is always zero for this backend.
func (m *Memory) Stats() (*Stats, error) {
	counts, err := m.CategoryStats()
	if err != nil {
		return nil, err
	}
	total, _ := m.Count()
	return &Stats{
		TotalPapers: total,
		SizeBytes:   0,
		SizeMB:      0,
		Categories:  topCategories(counts, 10),
	}, nil
}

// CategoryStats returns the category frequency map over all records.
func (m *Memory) CategoryStats() (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int)
	for _, p := range m.papers {
		for _, cat := range p.Categories {
			counts[cat]++
		}
	}
	return counts, nil
}

func (m *Memory) snapshot() []paper.Paper {
	m.mu.RLock()
	defer m.mu.RUnlock()
	papers := make([]paper.Paper, 0, len(m.papers))
	for _, p := range m.papers {
		papers = append(papers, p)
	}
	return papers
}
