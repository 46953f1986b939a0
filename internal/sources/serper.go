package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/nichejobs/internal/types"
)

const serperBaseURL = "https://google.serper.dev/search"

// Serper discovers job listings via the serper.dev Google search API.
// Results are web search hits, not structured postings, so titles and
// organizations are inferred with the shared discovery heuristics.
type Serper struct {
	hc     *http.Client
	apiKey string

	// BaseURL is overridable for tests.
	BaseURL string
}

// NewSerper returns a Serper adapter. apiKey may be empty, in which case
// Search no-ops with a warning.
func NewSerper(hc *http.Client, apiKey string) *Serper {
	if hc == nil {
		hc = NewHTTPClient()
	}
	return &Serper{hc: hc, apiKey: apiKey, BaseURL: serperBaseURL}
}

// Enabled reports whether the adapter has credentials to run.
func (s *Serper) Enabled() bool { return s.apiKey != "" }

type serperOrganic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
}

type serperResponse struct {
	Organic []serperOrganic `json:"organic"`
}

// Search runs one query and maps job-listing-shaped organic results to
// RawJobs. Non-listing hits (articles, index pages) are filtered out.
func (s *Serper) Search(ctx context.Context, query string) ([]types.RawJob, error) {
	if !s.Enabled() {
		log.Printf("[serper] skipping: SERPER_API_KEY not set")
		return []types.RawJob{}, nil
	}

	payload, err := json.Marshal(map[string]any{"q": query, "num": 30})
	if err != nil {
		return nil, fmt.Errorf("serper: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("serper: %w", err)
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		log.Printf("[serper] quota exhausted")
		return []types.RawJob{}, nil
	case res.StatusCode < 200 || res.StatusCode >= 300:
		return nil, &StatusError{Source: "serper", URL: s.BaseURL, StatusCode: res.StatusCode}
	}

	var data serperResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("serper: decode: %w", err)
	}

	out := make([]types.RawJob, 0, len(data.Organic))
	for _, r := range data.Organic {
		if r.Title == "" || r.Link == "" || !LooksLikeJobListing(r.Title, r.Link) {
			continue
		}

		raw := types.RawJob{
			Title:              CleanTitle(r.Title),
			HiringOrganization: types.Organization{Name: ExtractCompany(r.Title, r.Link)},
			JobLocationType:    types.TelecommuteIf(DetectRemote(r.Title + " " + r.Snippet)),
			ApplyURL:           r.Link,
			Source:             types.SourceSerper,
			SourceID:           fmt.Sprintf("serp-%s", hashString(r.Link)),
			Skills:             []string{},
		}
		if r.Snippet != "" {
			raw.Description = types.Ptr(r.Snippet)
		}
		if r.Date != "" {
			raw.DatePosted = types.Ptr(r.Date)
		}
		out = append(out, raw)
	}
	return out, nil
}
