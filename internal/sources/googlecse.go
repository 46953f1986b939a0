package sources

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jonathan/nichejobs/internal/types"
)

// GoogleCSE discovers job listings through a Programmable Search Engine
// via the official Custom Search JSON API. Preferred over Serper when both
// are configured: the daily free quota is predictable and the engine can
// be scoped to job-board sites.
type GoogleCSE struct {
	svc *customsearch.Service
	cx  string
}

// SearchOptions tune a single CSE query.
type SearchOptions struct {
	// DateRestrict limits result age using CSE syntax ("d7", "m1", ...).
	DateRestrict string
	// SiteSearch restricts results to one site.
	SiteSearch string
}

// NewGoogleCSE builds the adapter. apiKey and cx may be empty, in which
// case the adapter reports itself disabled. Extra client options override
// the API-key credential, which lets tests point the service at a local
// HTTP server.
func NewGoogleCSE(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*GoogleCSE, error) {
	if len(opts) == 0 {
		if apiKey == "" || cx == "" {
			return &GoogleCSE{cx: cx}, nil
		}
		opts = []option.ClientOption{option.WithAPIKey(apiKey)}
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google_cse: %w", err)
	}
	return &GoogleCSE{svc: svc, cx: cx}, nil
}

// Enabled reports whether the adapter has credentials to run.
func (g *GoogleCSE) Enabled() bool { return g.svc != nil && g.cx != "" }

// Search runs one query against the configured engine and maps
// job-listing-shaped results to RawJobs.
func (g *GoogleCSE) Search(ctx context.Context, query string, opts SearchOptions) ([]types.RawJob, error) {
	if !g.Enabled() {
		log.Printf("[google_cse] skipping: GOOGLE_CSE_API_KEY / GOOGLE_CSE_CX not set")
		return []types.RawJob{}, nil
	}

	call := g.svc.Cse.List().Context(ctx).Q(query).Cx(g.cx).Num(10)
	if opts.DateRestrict != "" {
		call = call.DateRestrict(opts.DateRestrict)
	}
	if opts.SiteSearch != "" {
		call = call.SiteSearch(opts.SiteSearch)
	}

	res, err := call.Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == 429 || apiErr.Code == 403) {
			log.Printf("[google_cse] quota exhausted (status %d)", apiErr.Code)
			return []types.RawJob{}, nil
		}
		return nil, fmt.Errorf("google_cse: %w", err)
	}

	out := make([]types.RawJob, 0, len(res.Items))
	for _, item := range res.Items {
		if item.Title == "" || item.Link == "" || !LooksLikeJobListing(item.Title, item.Link) {
			continue
		}

		raw := types.RawJob{
			Title:              CleanTitle(item.Title),
			HiringOrganization: types.Organization{Name: ExtractCompany(item.Title, item.Link)},
			JobLocationType:    types.TelecommuteIf(DetectRemote(item.Title + " " + item.Snippet)),
			ApplyURL:           item.Link,
			Source:             types.SourceGoogleCSE,
			SourceID:           fmt.Sprintf("gcse-%s", hashString(item.Link)),
			Skills:             []string{},
		}
		if item.Snippet != "" {
			raw.Description = types.Ptr(item.Snippet)
		}
		out = append(out, raw)
	}
	return out, nil
}

// DefaultMaxQueries bounds a batch run so a long query list cannot burn the
// whole daily quota in one aggregation.
const DefaultMaxQueries = 20

// SearchBatch runs up to maxQueries queries (capped at DefaultMaxQueries
// when maxQueries <= 0), restricted to the last month, and dedups results
// by URL across queries. Per-query failures are logged and skipped; the
// batch itself never fails once the adapter is enabled.
func (g *GoogleCSE) SearchBatch(ctx context.Context, queries []string, maxQueries int) ([]types.RawJob, error) {
	if !g.Enabled() {
		log.Printf("[google_cse] skipping: GOOGLE_CSE_API_KEY / GOOGLE_CSE_CX not set")
		return []types.RawJob{}, nil
	}
	if maxQueries <= 0 {
		maxQueries = DefaultMaxQueries
	}
	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}

	seen := make(map[string]bool)
	var out []types.RawJob
	for _, q := range queries {
		jobs, err := g.Search(ctx, q, SearchOptions{DateRestrict: "m1"})
		if err != nil {
			log.Printf("[google_cse] query %q failed: %v", q, err)
			continue
		}
		for _, j := range jobs {
			if seen[j.ApplyURL] {
				continue
			}
			seen[j.ApplyURL] = true
			out = append(out, j)
		}
	}
	if out == nil {
		out = []types.RawJob{}
	}
	return out, nil
}
