package sources

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/nichejobs/internal/types"
)

const leverBaseURL = "https://api.lever.co/v0/postings"

// Lever pulls a public Lever postings feed. No auth required.
type Lever struct {
	hc *http.Client

	// BaseURL is overridable for tests.
	BaseURL string
}

// NewLever returns a Lever adapter using hc, or a default client when hc
// is nil.
func NewLever(hc *http.Client) *Lever {
	if hc == nil {
		hc = NewHTTPClient()
	}
	return &Lever{hc: hc, BaseURL: leverBaseURL}
}

type leverPosting struct {
	ID         string `json:"id"`
	Text       string `json:"text"` // title
	Categories struct {
		Location   string `json:"location"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
	Description      string `json:"description"`
	DescriptionPlain string `json:"descriptionPlain"`
	HostedURL        string `json:"hostedUrl"`
	CreatedAt        int64  `json:"createdAt"` // ms epoch
}

// Fetch lists all postings for a company slug.
func (l *Lever) Fetch(ctx context.Context, companySlug string) ([]types.RawJob, error) {
	url := fmt.Sprintf("%s/%s?mode=json", l.BaseURL, companySlug)

	var postings []leverPosting
	status, err := getJSON(ctx, l.hc, url, &postings)
	if err != nil {
		return nil, fmt.Errorf("lever [%s]: %w", companySlug, err)
	}
	switch {
	case status == http.StatusNotFound:
		log.Printf("[lever] company not found: %s", companySlug)
		return []types.RawJob{}, nil
	case status == http.StatusTooManyRequests:
		log.Printf("[lever] rate limited on %s", companySlug)
		return []types.RawJob{}, nil
	case status < 200 || status >= 300:
		return nil, &StatusError{Source: "lever", URL: url, StatusCode: status}
	}

	out := make([]types.RawJob, 0, len(postings))
	for _, p := range postings {
		location := strings.TrimSpace(p.Categories.Location)
		isRemote := strings.Contains(strings.ToLower(location), "remote") ||
			strings.Contains(strings.ToLower(p.Categories.Commitment), "remote")

		raw := types.RawJob{
			Title:              p.Text,
			HiringOrganization: types.Organization{Name: companySlug},
			JobLocationType:    types.TelecommuteIf(isRemote),
			ApplyURL:           p.HostedURL,
			Source:             types.SourceLever,
			SourceID:           fmt.Sprintf("lv-%s-%s", companySlug, p.ID),
			Skills:             []string{},
		}
		switch {
		case p.Description != "":
			raw.Description = types.Ptr(p.Description)
		case p.DescriptionPlain != "":
			raw.Description = types.Ptr(p.DescriptionPlain)
		}
		if p.CreatedAt > 0 {
			raw.DatePosted = types.Ptr(time.UnixMilli(p.CreatedAt).UTC().Format(time.RFC3339))
		}
		if location != "" {
			raw.JobLocation = &types.Location{Address: types.Ptr(location)}
		}
		out = append(out, raw)
	}
	return out, nil
}

// BoardName derives a display name for a company slug. Lever has no
// dedicated company-name endpoint, so this degrades to title-casing the
// slug ("sierraclub" → "Sierraclub", "green-alliance" → "Green Alliance").
func (l *Lever) BoardName(ctx context.Context, companySlug string) string {
	// Probe the feed so a renamed slug can at least be logged upstream,
	// but the answer is always derived from the slug itself.
	var probe []leverPosting
	_, _ = getJSON(ctx, l.hc, fmt.Sprintf("%s/%s?mode=json&limit=1", l.BaseURL, companySlug), &probe)
	return TitleCaseSlug(companySlug)
}

var (
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	wordStart     = regexp.MustCompile(`\b[a-z]`)
)

// TitleCaseSlug turns an ATS slug into a best-effort display name:
// camelCase and kebab/snake separators become spaces, words are
// capitalised.
func TitleCaseSlug(slug string) string {
	s := camelBoundary.ReplaceAllString(slug, "$1 $2")
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return wordStart.ReplaceAllStringFunc(s, strings.ToUpper)
}
