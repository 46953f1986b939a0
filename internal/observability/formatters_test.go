package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/nichejobs/internal/aggregate"
	"github.com/jonathan/nichejobs/internal/types"
)

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(&aggregate.Summary{
		Niche:      "ngo",
		Fetched:    42,
		Inserted:   30,
		Duplicates: 10,
		Errors:     []string{"greenhouse [acme]: status 500"},
	})

	out := buf.String()
	assert.Contains(t, out, "AGGREGATION RUN")
	assert.Contains(t, out, "Fetched:    42")
	assert.Contains(t, out, "greenhouse [acme]")
}

func TestPrintRunSummaryTruncatesErrorList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sum := &aggregate.Summary{Niche: "ngo"}
	for i := 0; i < 8; i++ {
		sum.Errors = append(sum.Errors, "source failed")
	}
	p.PrintRunSummary(sum)

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintRunSummaryNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRunSummary(nil)
	assert.Zero(t, buf.Len())
}

func TestPrintNiche(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintNiche(&types.NicheConfig{
		ID:   "ngo",
		Name: "NGO Jobs",
		ATSBoards: types.ATSBoards{
			Greenhouse: []string{"a", "b"},
			Lever:      []string{"c"},
		},
		SerpQueries: []string{"q"},
	})

	out := buf.String()
	assert.Contains(t, out, "NICHE NGO")
	assert.Contains(t, out, "ATS boards:    3")
	assert.True(t, strings.HasPrefix(out, "┌"))
}
