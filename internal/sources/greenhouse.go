package sources

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/nichejobs/internal/types"
)

const greenhouseBaseURL = "https://boards-api.greenhouse.io/v1/boards"

// Greenhouse pulls a public Greenhouse board via the boards API.
// No auth required.
type Greenhouse struct {
	hc *http.Client

	// BaseURL is overridable for tests.
	BaseURL string
}

// NewGreenhouse returns a Greenhouse adapter using hc, or a default client
// when hc is nil.
func NewGreenhouse(hc *http.Client) *Greenhouse {
	if hc == nil {
		hc = NewHTTPClient()
	}
	return &Greenhouse{hc: hc, BaseURL: greenhouseBaseURL}
}

type greenhouseJob struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Content     string `json:"content"`
	UpdatedAt   string `json:"updated_at"`
	AbsoluteURL string `json:"absolute_url"`
}

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

// Fetch lists all open jobs for a board token. A 404 means the board was
// renamed or retired: empty result, warning log.
func (g *Greenhouse) Fetch(ctx context.Context, boardToken string) ([]types.RawJob, error) {
	url := fmt.Sprintf("%s/%s/jobs?content=true", g.BaseURL, boardToken)

	var data greenhouseResponse
	status, err := getJSON(ctx, g.hc, url, &data)
	if err != nil {
		return nil, fmt.Errorf("greenhouse [%s]: %w", boardToken, err)
	}
	switch {
	case status == http.StatusNotFound:
		log.Printf("[greenhouse] board not found: %s", boardToken)
		return []types.RawJob{}, nil
	case status == http.StatusTooManyRequests:
		log.Printf("[greenhouse] rate limited on board %s", boardToken)
		return []types.RawJob{}, nil
	case status < 200 || status >= 300:
		return nil, &StatusError{Source: "greenhouse", URL: url, StatusCode: status}
	}

	out := make([]types.RawJob, 0, len(data.Jobs))
	for _, j := range data.Jobs {
		locName := strings.TrimSpace(j.Location.Name)
		// Crude remote heuristic: Greenhouse encodes remote work in the
		// location name ("Remote", "Remote - UK", ...).
		isRemote := strings.Contains(strings.ToLower(locName), "remote")

		raw := types.RawJob{
			Title:              j.Title,
			HiringOrganization: types.Organization{Name: boardToken},
			JobLocationType:    types.TelecommuteIf(isRemote),
			ApplyURL:           j.AbsoluteURL,
			Source:             types.SourceGreenhouse,
			SourceID:           fmt.Sprintf("gh-%s-%d", boardToken, j.ID),
			Skills:             []string{},
		}
		if j.Content != "" {
			raw.Description = types.Ptr(j.Content)
		}
		if j.UpdatedAt != "" {
			raw.DatePosted = types.Ptr(j.UpdatedAt)
		}
		if locName != "" {
			raw.JobLocation = &types.Location{Address: types.Ptr(locName)}
		}
		out = append(out, raw)
	}
	return out, nil
}

// BoardName fetches the board's human-readable company name, falling back
// to the raw token on any failure. A name lookup must never fail a run.
func (g *Greenhouse) BoardName(ctx context.Context, boardToken string) string {
	var data struct {
		Name string `json:"name"`
	}
	status, err := getJSON(ctx, g.hc, fmt.Sprintf("%s/%s", g.BaseURL, boardToken), &data)
	if err != nil || status != http.StatusOK || data.Name == "" {
		return boardToken
	}
	return data.Name
}
