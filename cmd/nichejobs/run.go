package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/nichejobs/internal/aggregate"
	"github.com/jonathan/nichejobs/internal/llm"
	"github.com/jonathan/nichejobs/internal/observability"
	"github.com/jonathan/nichejobs/internal/pagefetch"
	"github.com/jonathan/nichejobs/internal/scraper"
	"github.com/jonathan/nichejobs/internal/sources"
	"github.com/jonathan/nichejobs/internal/store"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run one full aggregation for a niche",
	Long: `Fetches every configured source for the niche in sequence (sector APIs,
ATS boards, search discovery, scraped pages), deduplicates against the
store, and prints a run summary as JSON.`,
	RunE: runAggregation,
}

var (
	runNiche       string
	runNichesDir   string
	runDatabaseURL string
	runAPIKey      string
	runUseBrowser  bool
	runDelayMillis int
	runVerbose     bool
)

func init() {
	runCommand.Flags().StringVar(&runNiche, "niche", "", "Niche id (defaults to NICHE_ID env var)")
	runCommand.Flags().StringVar(&runNichesDir, "niches-dir", defaultNichesDir, "Directory of niche YAML configs")
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Render thin pages in headless Chrome before extraction")
	runCommand.Flags().IntVar(&runDelayMillis, "delay", 0, "Milliseconds between scraped page fetches (default 1000)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print a formatted run summary instead of JSON")

	rootCmd.AddCommand(runCommand)
}

func runAggregation(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, _, err := loadNiche(runNichesDir, runNiche)
	if err != nil {
		return err
	}

	databaseURL := envOr(runDatabaseURL, "DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (--db-url or DATABASE_URL)")
	}
	st, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	agg, closeAgg, err := buildAggregator(ctx, st)
	if err != nil {
		return err
	}
	defer closeAgg()

	if runVerbose {
		observability.NewPrinter(os.Stdout).PrintNiche(cfg)
	}

	sum := agg.Run(ctx, cfg)

	if runVerbose {
		observability.NewPrinter(os.Stdout).PrintRunSummary(sum)
		return nil
	}
	out, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// buildAggregator wires every source the environment has credentials for.
// Sources without credentials stay nil and are skipped by the run.
func buildAggregator(ctx context.Context, st *store.Store) (*aggregate.Aggregator, func(), error) {
	hc := sources.NewHTTPClient()

	agg := &aggregate.Aggregator{
		Store:           st,
		ReliefWeb:       sources.NewReliefWeb(hc, os.Getenv("RELIEFWEB_APPNAME")),
		Greenhouse:      sources.NewGreenhouse(hc),
		Lever:           sources.NewLever(hc),
		Ashby:           sources.NewAshby(hc),
		SmartRecruiters: sources.NewSmartRecruiters(hc),
		Serper:          sources.NewSerper(hc, os.Getenv("SERPER_API_KEY")),
	}

	cse, err := sources.NewGoogleCSE(ctx, os.Getenv("GOOGLE_CSE_API_KEY"), os.Getenv("GOOGLE_CSE_CX"))
	if err != nil {
		return nil, nil, err
	}
	agg.GoogleCSE = cse

	closeFn := func() {}
	apiKey := envOr(runAPIKey, "GEMINI_API_KEY")
	if apiKey == "" {
		log.Printf("[run] GEMINI_API_KEY not set, page scraping disabled")
		return agg, closeFn, nil
	}

	client, err := llm.NewGeminiClient(ctx, apiKey, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		return nil, nil, err
	}
	extractor, err := llm.NewExtractor(client)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	var fetchOpts []pagefetch.Option
	if runUseBrowser {
		fetchOpts = append(fetchOpts, pagefetch.WithBrowser(&pagefetch.ChromeRenderer{}))
	}
	agg.Scraper = scraper.New(
		pagefetch.New(fetchOpts...),
		extractor,
		time.Duration(runDelayMillis)*time.Millisecond,
	)
	return agg, func() { _ = client.Close() }, nil
}
