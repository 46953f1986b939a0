// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/nichejobs/internal/aggregate"
	"github.com/jonathan/nichejobs/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunSummary outputs a human-readable summary of one aggregation run.
func (p *Printer) PrintRunSummary(sum *aggregate.Summary) {
	if sum == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Niche:      %s\n", sum.Niche))
	sb.WriteString(fmt.Sprintf("Fetched:    %d\n", sum.Fetched))
	sb.WriteString(fmt.Sprintf("Inserted:   %d\n", sum.Inserted))
	sb.WriteString(fmt.Sprintf("Duplicates: %d\n", sum.Duplicates))
	sb.WriteString(fmt.Sprintf("Duration:   %s", sum.Duration.Round(1e6)))

	if len(sum.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("\n\nErrors (%d):\n", len(sum.Errors)))
		count := min(len(sum.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", sum.Errors[i]))
		}
		if len(sum.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(sum.Errors)-maxItemsToShow))
		}
	}

	p.printBox("AGGREGATION RUN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNiche outputs the source counts configured for a niche.
func (p *Printer) PrintNiche(cfg *types.NicheConfig) {
	if cfg == nil {
		return
	}

	boards := len(cfg.ATSBoards.Greenhouse) + len(cfg.ATSBoards.Lever) +
		len(cfg.ATSBoards.Ashby) + len(cfg.ATSBoards.SmartRecruiters)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:          %s\n", cfg.Name))
	sb.WriteString(fmt.Sprintf("ATS boards:    %d\n", boards))
	sb.WriteString(fmt.Sprintf("API sources:   %d\n", len(cfg.APISources)))
	sb.WriteString(fmt.Sprintf("Search queries: %d\n", len(cfg.SerpQueries)))
	sb.WriteString(fmt.Sprintf("Scraper URLs:  %d\n", len(cfg.ScraperURLs)))
	sb.WriteString(fmt.Sprintf("Tags:          %d", len(cfg.Tags)))

	p.printBox("NICHE "+strings.ToUpper(cfg.ID), sb.String())
}
