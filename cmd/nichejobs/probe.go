package main

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/nichejobs/internal/sources"
	"github.com/jonathan/nichejobs/internal/types"
)

var probeCommand = &cobra.Command{
	Use:   "probe",
	Short: "Check every configured ATS board for a niche",
	Long: `Fetches all configured boards concurrently and reports how many open
postings each currently has. Boards that 404 report zero; use this to
spot renamed or retired boards before a run quietly skips them.`,
	RunE: runProbe,
}

var (
	probeNiche     string
	probeNichesDir string
)

func init() {
	probeCommand.Flags().StringVar(&probeNiche, "niche", "", "Niche id (defaults to NICHE_ID env var)")
	probeCommand.Flags().StringVar(&probeNichesDir, "niches-dir", defaultNichesDir, "Directory of niche YAML configs")

	rootCmd.AddCommand(probeCommand)
}

// probeResult is one board's health line.
type probeResult struct {
	platform string
	board    string
	count    int
	err      error
}

func runProbe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, _, err := loadNiche(probeNichesDir, probeNiche)
	if err != nil {
		return err
	}

	hc := sources.NewHTTPClient()
	fetchers := []struct {
		platform string
		boards   []string
		fetch    func(ctx context.Context, id string) ([]types.RawJob, error)
	}{
		{"greenhouse", cfg.ATSBoards.Greenhouse, sources.NewGreenhouse(hc).Fetch},
		{"lever", cfg.ATSBoards.Lever, sources.NewLever(hc).Fetch},
		{"ashby", cfg.ATSBoards.Ashby, sources.NewAshby(hc).Fetch},
		{"smartrecruiters", cfg.ATSBoards.SmartRecruiters, sources.NewSmartRecruiters(hc).Fetch},
	}

	var mu sync.Mutex
	var results []probeResult

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, f := range fetchers {
		for _, board := range f.boards {
			g.Go(func() error {
				jobs, err := f.fetch(gctx, board)
				mu.Lock()
				results = append(results, probeResult{f.platform, board, len(jobs), err})
				mu.Unlock()
				// Probe failures are reported, not fatal.
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].platform != results[j].platform {
			return results[i].platform < results[j].platform
		}
		return results[i].board < results[j].board
	})

	var broken int
	for _, r := range results {
		switch {
		case r.err != nil:
			broken++
			fmt.Printf("%-16s %-30s ERROR: %v\n", r.platform, r.board, r.err)
		case r.count == 0:
			fmt.Printf("%-16s %-30s 0 postings (renamed or retired?)\n", r.platform, r.board)
		default:
			fmt.Printf("%-16s %-30s %d postings\n", r.platform, r.board, r.count)
		}
	}
	fmt.Printf("\n%d boards probed, %d failing\n", len(results), broken)
	return nil
}
