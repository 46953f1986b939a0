// Package aggregate orchestrates one full ingestion run for a niche: every
// configured source is fetched in sequence, each job is fingerprinted,
// tagged, validated, and inserted, and the run is summarised.
//
// Failure policy: one broken source never aborts a run. Source-level
// failures are collected as strings in the summary; only context
// cancellation stops the sequence.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/nichejobs/internal/fingerprint"
	"github.com/jonathan/nichejobs/internal/llm"
	"github.com/jonathan/nichejobs/internal/store"
	"github.com/jonathan/nichejobs/internal/tags"
	"github.com/jonathan/nichejobs/internal/types"
)

// JobStore is the persistence boundary. Satisfied by *store.Store.
type JobStore interface {
	InsertJob(ctx context.Context, job *types.Job) (string, error)
}

// BoardSource fetches one ATS board by identifier.
type BoardSource interface {
	Fetch(ctx context.Context, boardID string) ([]types.RawJob, error)
}

// NamedBoardSource additionally resolves a display name for the board;
// used to replace slug-valued organization names after fetching.
type NamedBoardSource interface {
	BoardSource
	BoardName(ctx context.Context, boardID string) string
}

// FilteredSource fetches a sector API with field filters.
type FilteredSource interface {
	Fetch(ctx context.Context, filters map[string][]string) ([]types.RawJob, error)
}

// Searcher runs one discovery query. Satisfied by *sources.Serper.
type Searcher interface {
	Enabled() bool
	Search(ctx context.Context, query string) ([]types.RawJob, error)
}

// BatchSearcher runs a deduplicated batch of discovery queries. Satisfied
// by *sources.GoogleCSE.
type BatchSearcher interface {
	Enabled() bool
	SearchBatch(ctx context.Context, queries []string, maxQueries int) ([]types.RawJob, error)
}

// PageScraper runs the fetch-and-extract loop over configured URLs.
// Satisfied by *scraper.Scraper.
type PageScraper interface {
	Scrape(ctx context.Context, urls []string, taxonomy types.TagTaxonomy) ([]llm.Result, []string)
}

// Summary is the outcome of one run.
type Summary struct {
	Niche      string        `json:"niche"`
	Fetched    int           `json:"fetched"`
	Inserted   int           `json:"inserted"`
	Duplicates int           `json:"duplicates"`
	Errors     []string      `json:"errors"`
	Duration   time.Duration `json:"duration"`
}

// Aggregator wires the sources to the store. Any nil source is skipped,
// so partial deployments (no LLM key, no search credits) degrade to the
// sources that are configured.
type Aggregator struct {
	Store           JobStore
	ReliefWeb       FilteredSource
	Greenhouse      NamedBoardSource
	Lever           NamedBoardSource
	Ashby           BoardSource
	SmartRecruiters BoardSource
	GoogleCSE       BatchSearcher
	Serper          Searcher
	Scraper         PageScraper

	// Now is the ingestion clock; time.Now when nil.
	Now func() time.Time
}

func (a *Aggregator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Run executes one full aggregation for niche and returns its summary.
func (a *Aggregator) Run(ctx context.Context, niche *types.NicheConfig) *Summary {
	started := a.now()
	sum := &Summary{Niche: niche.ID, Errors: []string{}}
	log.Printf("[aggregate] starting run for niche %q", niche.ID)

	a.runAPISources(ctx, niche, sum)
	a.runBoards(ctx, niche, sum)
	a.runDiscovery(ctx, niche, sum)
	a.runScraper(ctx, niche, sum)

	sum.Duration = a.now().Sub(started)
	log.Printf("[aggregate] niche %q: fetched=%d inserted=%d duplicates=%d errors=%d in %s",
		niche.ID, sum.Fetched, sum.Inserted, sum.Duplicates, len(sum.Errors), sum.Duration)
	return sum
}

func (a *Aggregator) runAPISources(ctx context.Context, niche *types.NicheConfig, sum *Summary) {
	for _, src := range niche.APISources {
		if src.Type != "reliefweb" {
			sum.Errors = append(sum.Errors, fmt.Sprintf("unknown api source type %q", src.Type))
			continue
		}
		if a.ReliefWeb == nil {
			continue
		}
		jobs, err := a.ReliefWeb.Fetch(ctx, src.Filters)
		if err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("reliefweb: %v", err))
			continue
		}
		a.ingestAll(ctx, niche, jobs, nil, sum)
	}
}

func (a *Aggregator) runBoards(ctx context.Context, niche *types.NicheConfig, sum *Summary) {
	runNamed := func(name string, src NamedBoardSource, ids []string) {
		if src == nil {
			return
		}
		for _, id := range ids {
			jobs, err := src.Fetch(ctx, id)
			if err != nil {
				sum.Errors = append(sum.Errors, fmt.Sprintf("%s [%s]: %v", name, id, err))
				continue
			}
			// Adapters fall back to the board identifier as the org name;
			// replace it with the resolved display name where possible.
			if len(jobs) > 0 {
				displayName := src.BoardName(ctx, id)
				for i := range jobs {
					if jobs[i].HiringOrganization.Name == id {
						jobs[i].HiringOrganization.Name = displayName
					}
				}
			}
			a.ingestAll(ctx, niche, jobs, nil, sum)
		}
	}
	runPlain := func(name string, src BoardSource, ids []string) {
		if src == nil {
			return
		}
		for _, id := range ids {
			jobs, err := src.Fetch(ctx, id)
			if err != nil {
				sum.Errors = append(sum.Errors, fmt.Sprintf("%s [%s]: %v", name, id, err))
				continue
			}
			a.ingestAll(ctx, niche, jobs, nil, sum)
		}
	}

	runNamed("greenhouse", a.Greenhouse, niche.ATSBoards.Greenhouse)
	runNamed("lever", a.Lever, niche.ATSBoards.Lever)
	runPlain("ashby", a.Ashby, niche.ATSBoards.Ashby)
	runPlain("smartrecruiters", a.SmartRecruiters, niche.ATSBoards.SmartRecruiters)
}

// runDiscovery prefers Google CSE when configured; Serper is the fallback
// engine for the same queries.
func (a *Aggregator) runDiscovery(ctx context.Context, niche *types.NicheConfig, sum *Summary) {
	if len(niche.SerpQueries) == 0 {
		return
	}

	if a.GoogleCSE != nil && a.GoogleCSE.Enabled() {
		jobs, err := a.GoogleCSE.SearchBatch(ctx, niche.SerpQueries, 0)
		if err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("google_cse: %v", err))
			return
		}
		a.ingestAll(ctx, niche, jobs, nil, sum)
		return
	}

	if a.Serper != nil && a.Serper.Enabled() {
		for _, q := range niche.SerpQueries {
			jobs, err := a.Serper.Search(ctx, q)
			if err != nil {
				sum.Errors = append(sum.Errors, fmt.Sprintf("serper [%s]: %v", q, err))
				continue
			}
			a.ingestAll(ctx, niche, jobs, nil, sum)
		}
		return
	}

	log.Printf("[aggregate] no search discovery configured, skipping %d queries", len(niche.SerpQueries))
}

func (a *Aggregator) runScraper(ctx context.Context, niche *types.NicheConfig, sum *Summary) {
	if len(niche.ScraperURLs) == 0 {
		return
	}
	if a.Scraper == nil {
		log.Printf("[aggregate] scraper not configured, skipping %d urls", len(niche.ScraperURLs))
		return
	}

	results, errs := a.Scraper.Scrape(ctx, niche.ScraperURLs, niche.Tags)
	sum.Errors = append(sum.Errors, errs...)
	for _, res := range results {
		a.ingest(ctx, niche, *res.Job, res.Tags, sum)
	}
}

func (a *Aggregator) ingestAll(ctx context.Context, niche *types.NicheConfig, jobs []types.RawJob, llmTags []string, sum *Summary) {
	for _, job := range jobs {
		a.ingest(ctx, niche, job, llmTags, sum)
	}
}

// ingest folds one RawJob into a persisted row. LLM-provided tags win over
// the keyword tagger when present; the tagger is the fallback for sources
// that carry no model output.
func (a *Aggregator) ingest(ctx context.Context, niche *types.NicheConfig, job types.RawJob, llmTags []string, sum *Summary) {
	sum.Fetched++

	if err := types.ValidateRawJob(&job); err != nil {
		sum.Errors = append(sum.Errors, fmt.Sprintf("invalid job %s/%s: %v", job.Source, job.SourceID, err))
		return
	}

	jobTags := llmTags
	if len(jobTags) == 0 {
		jobTags = tags.TagJob(&job, niche.Tags)
	}

	record := &types.Job{
		Niche:       niche.ID,
		ScrapedAt:   a.now(),
		Status:      types.StatusActive,
		Fingerprint: fingerprint.Generate(&job),
		Tags:        jobTags,
		RawJob:      job,
	}

	if _, err := a.Store.InsertJob(ctx, record); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			sum.Duplicates++
			return
		}
		sum.Errors = append(sum.Errors, fmt.Sprintf("insert %s/%s: %v", job.Source, job.SourceID, err))
		return
	}
	sum.Inserted++
}
