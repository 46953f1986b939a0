package sources

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/nichejobs/internal/types"
)

const ashbyBaseURL = "https://api.ashbyhq.com/posting-api/job-board"

// Ashby pulls a public Ashby job board. No auth required; the board slug
// is the company identifier (e.g. "rmi").
type Ashby struct {
	hc *http.Client

	// BaseURL is overridable for tests.
	BaseURL string
}

// NewAshby returns an Ashby adapter using hc, or a default client when hc
// is nil.
func NewAshby(hc *http.Client) *Ashby {
	if hc == nil {
		hc = NewHTTPClient()
	}
	return &Ashby{hc: hc, BaseURL: ashbyBaseURL}
}

type ashbyJob struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Location         string `json:"location"`
	EmploymentType   string `json:"employmentType"`
	IsRemote         bool   `json:"isRemote"`
	PublishedDate    string `json:"publishedDate"`
	DescriptionHTML  string `json:"descriptionHtml"`
	DescriptionPlain string `json:"descriptionPlain"`
	JobURL           string `json:"jobUrl"`
	IsListed         *bool  `json:"isListed"`
}

type ashbyResponse struct {
	Jobs []ashbyJob `json:"jobs"`
}

// Fetch lists all listed jobs for a board slug.
func (a *Ashby) Fetch(ctx context.Context, boardSlug string) ([]types.RawJob, error) {
	url := fmt.Sprintf("%s/%s", a.BaseURL, boardSlug)

	var data ashbyResponse
	status, err := getJSON(ctx, a.hc, url, &data)
	if err != nil {
		return nil, fmt.Errorf("ashby [%s]: %w", boardSlug, err)
	}
	switch {
	case status == http.StatusNotFound:
		log.Printf("[ashby] board not found: %s", boardSlug)
		return []types.RawJob{}, nil
	case status == http.StatusTooManyRequests:
		log.Printf("[ashby] rate limited on %s", boardSlug)
		return []types.RawJob{}, nil
	case status < 200 || status >= 300:
		return nil, &StatusError{Source: "ashby", URL: url, StatusCode: status}
	}

	if data.Jobs == nil {
		log.Printf("[ashby] %s: unexpected response format", boardSlug)
		return []types.RawJob{}, nil
	}

	out := make([]types.RawJob, 0, len(data.Jobs))
	for _, j := range data.Jobs {
		if j.IsListed != nil && !*j.IsListed {
			continue
		}

		raw := types.RawJob{
			Title:              j.Title,
			EmploymentType:     types.ParseEmploymentType(j.EmploymentType),
			HiringOrganization: types.Organization{Name: boardSlug},
			JobLocationType:    types.TelecommuteIf(j.IsRemote),
			ApplyURL:           j.JobURL,
			Source:             types.SourceAshby,
			SourceID:           fmt.Sprintf("ab-%s-%s", boardSlug, j.ID),
			Skills:             []string{},
		}
		switch {
		case j.DescriptionHTML != "":
			raw.Description = types.Ptr(j.DescriptionHTML)
		case j.DescriptionPlain != "":
			raw.Description = types.Ptr(j.DescriptionPlain)
		}
		if j.PublishedDate != "" {
			raw.DatePosted = types.Ptr(j.PublishedDate)
		}
		if loc := strings.TrimSpace(j.Location); loc != "" {
			raw.JobLocation = &types.Location{Address: types.Ptr(loc)}
		}
		out = append(out, raw)
	}
	return out, nil
}
