package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matsen/preprint/internal/paper"
)

const (
	// BaseURL is the arXiv Atom API endpoint.
	BaseURL = "https://export.arxiv.org/api/query"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies this tool per the arXiv API politeness
	// guidelines. Override it with WithUserAgent for deployments.
	DefaultUserAgent = "preprint/0.1.0 (https://github.com/matsen/preprint)"

	// Default limits for search and subscription polling.
	DefaultSearchLimit    = 10
	DefaultSubscribeLimit = 100
)

// query performs one rate-limited GET against the Atom API.
func (a *Adapter) query(ctx context.Context, params url.Values) (*atomFeed, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := a.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: parsing feed: %v", ErrInvalidResponse, err)
	}

	return &feed, nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}
	return nil
}

// Atom feed structures for the arXiv API.

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
	Links      []atomLink     `xml:"link"`
	Published  string         `xml:"published"`
	Updated    string         `xml:"updated"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
}

// entryArXivID extracts the versioned arXiv id from an entry's id URL
// (e.g. http://arxiv.org/abs/2301.00001v2 -> 2301.00001v2).
func entryArXivID(entry atomEntry) string {
	if idx := strings.LastIndex(entry.ID, "/"); idx >= 0 {
		return entry.ID[idx+1:]
	}
	return entry.ID
}

// pdfLink returns the entry's PDF link when the feed carries one.
func pdfLink(entry atomEntry) string {
	for _, l := range entry.Links {
		if l.Title == "pdf" || strings.Contains(l.Href, "/pdf/") {
			return l.Href
		}
	}
	return ""
}

// entryToPaper normalizes an Atom entry into a Paper with the given
// version tag. The version-free id comes from the entry's own id URL.
func entryToPaper(entry atomEntry, version string) paper.Paper {
	id, _ := paper.ParseIDVersion(entryArXivID(entry))

	authors := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		authors = append(authors, a.Name)
	}

	categories := make([]string, 0, len(entry.Categories))
	for _, c := range entry.Categories {
		categories = append(categories, c.Term)
	}

	pdfURL := pdfLink(entry)
	if pdfURL == "" {
		pdfURL = "https://arxiv.org/pdf/" + id + version
	}

	return paper.Paper{
		ArXivID:    id,
		Version:    version,
		Title:      strings.TrimSpace(entry.Title),
		Authors:    authors,
		Abstract:   strings.TrimSpace(entry.Summary),
		Categories: categories,
		Published:  paper.RawTimestamp(entry.Published),
		Updated:    paper.RawTimestamp(entry.Updated),
		PDFURL:     pdfURL,
		SourceURL:  entry.ID,
	}
}

// feedEntryToPaper normalizes a category-feed entry, taking the version
// from the entry's own trailing version tag (default "v1").
func feedEntryToPaper(entry atomEntry) paper.Paper {
	_, version := paper.ParseIDVersion(entryArXivID(entry))
	return entryToPaper(entry, version)
}
