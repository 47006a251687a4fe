package storage

import (
	"sync"
	"testing"
)

func TestMemoryStatsSizeAlwaysZero(t *testing.T) {
	m := NewMemory()
	mustSave(t, m, testPaper("2301.00001", "v1", "A Paper"))

	stats, err := m.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.SizeBytes != 0 || stats.SizeMB != 0 {
		t.Errorf("Stats() size = (%d, %g), want (0, 0) for memory backend",
			stats.SizeBytes, stats.SizeMB)
	}
	if stats.TotalPapers != 1 {
		t.Errorf("Stats() TotalPapers = %d, want 1", stats.TotalPapers)
	}
}

func TestMemoryListDefaultSortsByArXivID(t *testing.T) {
	m := NewMemory()
	mustSave(t, m, testPaper("2301.00002", "v1", "B"))
	mustSave(t, m, testPaper("2301.00001", "v1", "A"))
	mustSave(t, m, testPaper("2301.00003", "v1", "C"))

	// No creation time is tracked, so the created_at default becomes
	// arxiv_id ordering.
	papers, err := m.List(ListOptions{Order: OrderAsc})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for i, want := range []string{"2301.00001", "2301.00002", "2301.00003"} {
		if papers[i].ArXivID != want {
			t.Errorf("List()[%d].ArXivID = %q, want %q", i, papers[i].ArXivID, want)
		}
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			p := testPaper("2301.00001", "v1", "Racing Paper")
			if err := m.Save(p); err != nil {
				t.Errorf("Save() error = %v", err)
			}
			if _, err := m.Get("2301.00001v1"); err != nil {
				t.Errorf("Get() error = %v", err)
			}
			if _, err := m.CategoryStats(); err != nil {
				t.Errorf("CategoryStats() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	count, err := m.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d after concurrent saves of one key, want 1", count)
	}
}
