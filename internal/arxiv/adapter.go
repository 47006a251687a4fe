// Package arxiv ingests bibliographic records from the arXiv Atom API.
//
// The Adapter composes a politeness rate limiter with an optional storage
// backend: every outbound call is gated to the configured minimum
// interval, results are normalized into paper.Paper records, and — when a
// backend is configured — persisted. Remote failures surface to the
// caller unchanged; there is no retry loop.
package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matsen/preprint/internal/paper"
	"github.com/matsen/preprint/internal/ratelimit"
	"github.com/matsen/preprint/internal/storage"
)

// Adapter is a rate-limited client for the arXiv Atom API with optional
// persistence. The limiter's timestamp is the only mutable state shared
// across calls; concurrent callers serialize through it.
type Adapter struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	storage    storage.Backend
	baseURL    string
	userAgent  string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithStorage sets the storage backend. Without one, fetch and search
// still succeed but skip persistence, and version lookups return empty.
func WithStorage(b storage.Backend) Option {
	return func(a *Adapter) {
		a.storage = b
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *Adapter) {
		a.httpClient = hc
	}
}

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(url string) Option {
	return func(a *Adapter) {
		a.baseURL = url
	}
}

// WithUserAgent sets the User-Agent attached to outbound calls.
func WithUserAgent(ua string) Option {
	return func(a *Adapter) {
		a.userAgent = ua
	}
}

// WithMinInterval sets the minimum spacing between outbound calls.
func WithMinInterval(d time.Duration) Option {
	return func(a *Adapter) {
		a.limiter = ratelimit.New(d)
	}
}

// New creates an Adapter. Defaults: no storage, 3s request spacing, the
// public arXiv API endpoint.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    ratelimit.New(ratelimit.DefaultInterval),
		baseURL:    BaseURL,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Storage returns the configured backend, or nil.
func (a *Adapter) Storage() storage.Backend {
	return a.storage
}

// Fetch retrieves a single paper by arXiv id. A trailing version tag on
// the id selects the version recorded on the result (default "v1"); the
// query itself always uses the version-free id. Returns nil when the API
// has no matching entry. Side effect: one save per successful fetch.
func (a *Adapter) Fetch(ctx context.Context, id string) (*paper.Paper, error) {
	cleanID, version := paper.ParseIDVersion(id)

	params := url.Values{}
	params.Set("id_list", cleanID)

	feed, err := a.query(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(feed.Entries) == 0 {
		return nil, nil
	}

	// Record the explicitly requested version, not the version embedded
	// in the entry's own id.
	p := entryToPaper(feed.Entries[0], version)

	if a.storage != nil {
		if err := a.storage.Save(&p); err != nil {
			return nil, fmt.Errorf("persisting %s: %w", p.UniqueKey(), err)
		}
	}

	return &p, nil
}

// Search queries the API by free text, optionally restricted to
// categories, newest submissions first. Every result is normalized with
// version "v1" and persisted (search always re-saves; it performs no
// dedup). Returns at most maxResults records.
func (a *Adapter) Search(ctx context.Context, query string, maxResults int, categories []string) ([]paper.Paper, error) {
	if maxResults <= 0 {
		maxResults = DefaultSearchLimit
	}

	searchQuery := query
	if len(categories) > 0 {
		catQueries := make([]string, len(categories))
		for i, cat := range categories {
			catQueries[i] = "cat:" + cat
		}
		searchQuery = "(" + query + ") AND (" + strings.Join(catQueries, " OR ") + ")"
	}

	params := url.Values{}
	params.Set("search_query", searchQuery)
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	feed, err := a.query(ctx, params)
	if err != nil {
		return nil, err
	}

	papers := make([]paper.Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		papers = append(papers, entryToPaper(entry, "v1"))
	}

	if a.storage != nil {
		for i := range papers {
			if err := a.storage.Save(&papers[i]); err != nil {
				return nil, fmt.Errorf("persisting %s: %w", papers[i].UniqueKey(), err)
			}
		}
	}

	return papers, nil
}

// Subscribe polls a category listing, newest first, and returns only the
// entries not yet in storage. Each new record is persisted and then
// passed to onNew synchronously before the next entry is considered.
// Without storage every entry counts as new on every call.
func (a *Adapter) Subscribe(ctx context.Context, category string, onNew func(paper.Paper), maxResults int) ([]paper.Paper, error) {
	if maxResults <= 0 {
		maxResults = DefaultSubscribeLimit
	}

	params := url.Values{}
	params.Set("search_query", "cat:"+category)
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	feed, err := a.query(ctx, params)
	if err != nil {
		return nil, err
	}

	var newPapers []paper.Paper
	for _, entry := range feed.Entries {
		p := feedEntryToPaper(entry)

		if a.storage != nil {
			seen, err := a.storage.Exists(p.UniqueKey())
			if err != nil {
				return nil, fmt.Errorf("checking %s: %w", p.UniqueKey(), err)
			}
			if seen {
				continue
			}
			if err := a.storage.Save(&p); err != nil {
				return nil, fmt.Errorf("persisting %s: %w", p.UniqueKey(), err)
			}
		}

		newPapers = append(newPapers, p)
		if onNew != nil {
			onNew(p)
		}
	}

	return newPapers, nil
}

// Versions returns all stored versions of a paper, version ascending.
// Without storage the result is empty.
func (a *Adapter) Versions(arxivID string) ([]paper.Paper, error) {
	if a.storage == nil {
		return nil, nil
	}
	return a.storage.Versions(arxivID)
}
