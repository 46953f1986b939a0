// Package scraper drives LLM extraction over the configured scrape URLs:
// fetch a page, hand its text view to the extractor, collect results. URLs
// are worked sequentially with a politeness delay so target sites never see
// burst traffic from a run.
package scraper

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonathan/nichejobs/internal/llm"
	"github.com/jonathan/nichejobs/internal/pagefetch"
	"github.com/jonathan/nichejobs/internal/types"
)

// DefaultDelay is the pause between consecutive page fetches.
const DefaultDelay = 1000 * time.Millisecond

// MinPageChars is the minimum text length worth sending to the extractor.
// Shorter pages are error shells or bot walls.
const MinPageChars = 100

// PageFetcher retrieves one page. Satisfied by *pagefetch.Fetcher.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*pagefetch.Page, error)
}

// Extractor extracts a job from page text. Satisfied by *llm.Extractor.
type Extractor interface {
	Extract(ctx context.Context, pageText, pageURL string, taxonomy types.TagTaxonomy) (*llm.Result, error)
}

// Scraper runs the fetch-then-extract loop.
type Scraper struct {
	fetcher   PageFetcher
	extractor Extractor
	limiter   *rate.Limiter
}

// New builds a Scraper. delay <= 0 falls back to DefaultDelay.
func New(fetcher PageFetcher, extractor Extractor, delay time.Duration) *Scraper {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scraper{
		fetcher:   fetcher,
		extractor: extractor,
		limiter:   rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Scrape works through urls in order. Per-URL failures and skips are
// collected as strings so one broken page never aborts the batch; only a
// cancelled context stops the loop early.
func (s *Scraper) Scrape(ctx context.Context, urls []string, taxonomy types.TagTaxonomy) ([]llm.Result, []string) {
	var results []llm.Result
	var errs []string

	for _, url := range urls {
		if err := s.limiter.Wait(ctx); err != nil {
			errs = append(errs, fmt.Sprintf("scrape aborted: %v", err))
			break
		}

		page, err := s.fetcher.Fetch(ctx, url)
		if err != nil {
			errs = append(errs, fmt.Sprintf("fetch %s: %v", url, err))
			continue
		}
		if len(page.Text) < MinPageChars {
			errs = append(errs, fmt.Sprintf("skip %s: page text too short (%d chars)", url, len(page.Text)))
			continue
		}

		res, err := s.extractor.Extract(ctx, page.Text, url, taxonomy)
		if err != nil {
			errs = append(errs, fmt.Sprintf("extract %s: %v", url, err))
			continue
		}
		if res == nil {
			log.Printf("[scraper] %s: no job posting found", url)
			errs = append(errs, fmt.Sprintf("%s: no job posting extracted", url))
			continue
		}
		results = append(results, *res)
	}
	return results, errs
}
