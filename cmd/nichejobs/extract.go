package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/nichejobs/internal/llm"
	"github.com/jonathan/nichejobs/internal/pagefetch"
)

var extractCommand = &cobra.Command{
	Use:   "extract <url>",
	Short: "Fetch one page and extract a job posting from it",
	Long: `Runs the scraper path for a single URL without touching the store:
fetches the page, sends its text to the model, and prints the extracted
job (or reports that the page is not a job posting). Useful for vetting
candidate scraper URLs before adding them to a niche config.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var (
	extractNiche      string
	extractNichesDir  string
	extractAPIKey     string
	extractUseBrowser bool
)

func init() {
	extractCommand.Flags().StringVar(&extractNiche, "niche", "", "Niche id for the tag taxonomy (defaults to NICHE_ID env var)")
	extractCommand.Flags().StringVar(&extractNichesDir, "niches-dir", defaultNichesDir, "Directory of niche YAML configs")
	extractCommand.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	extractCommand.Flags().BoolVar(&extractUseBrowser, "use-browser", false, "Render thin pages in headless Chrome before extraction")

	rootCmd.AddCommand(extractCommand)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	url := args[0]

	cfg, _, err := loadNiche(extractNichesDir, extractNiche)
	if err != nil {
		return err
	}

	apiKey := envOr(extractAPIKey, "GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("Gemini API key is required (--api-key or GEMINI_API_KEY)")
	}
	client, err := llm.NewGeminiClient(ctx, apiKey, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	extractor, err := llm.NewExtractor(client)
	if err != nil {
		return err
	}

	var fetchOpts []pagefetch.Option
	if extractUseBrowser {
		fetchOpts = append(fetchOpts, pagefetch.WithBrowser(&pagefetch.ChromeRenderer{}))
	}
	page, err := pagefetch.New(fetchOpts...).Fetch(ctx, url)
	if err != nil {
		return err
	}

	res, err := extractor.Extract(ctx, page.Text, url, cfg.Tags)
	if err != nil {
		return err
	}
	if res == nil {
		fmt.Println("no job posting found on page")
		return nil
	}

	out, err := json.MarshalIndent(map[string]any{"job": res.Job, "tags": res.Tags}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
