package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/nichejobs/internal/types"
)

const reliefWebBaseURL = "https://api.reliefweb.int/v2/jobs"

// ReliefWeb pulls humanitarian-sector jobs from the ReliefWeb v2 API.
// The API is free but requires a registered appname; without one the
// adapter no-ops with a warning instead of failing the run.
type ReliefWeb struct {
	hc      *http.Client
	appname string

	// BaseURL is overridable for tests.
	BaseURL string
}

// NewReliefWeb returns a ReliefWeb adapter. appname may be empty, in which
// case Fetch returns no results.
func NewReliefWeb(hc *http.Client, appname string) *ReliefWeb {
	if hc == nil {
		hc = NewHTTPClient()
	}
	return &ReliefWeb{hc: hc, appname: appname, BaseURL: reliefWebBaseURL}
}

type reliefWebJob struct {
	ID     int64 `json:"id"`
	Fields struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		URL   string `json:"url"`
		Date  struct {
			Created string `json:"created"`
			Closing string `json:"closing"`
		} `json:"date"`
		Source []struct {
			Name     string `json:"name"`
			Homepage string `json:"homepage"`
		} `json:"source"`
		Country []struct {
			Name string `json:"name"`
			ISO3 string `json:"iso3"`
		} `json:"country"`
		Theme []struct {
			Name string `json:"name"`
		} `json:"theme"`
	} `json:"fields"`
}

type reliefWebResponse struct {
	Data []reliefWebJob `json:"data"`
}

// Fetch queries ReliefWeb with the niche's filter conditions (field name →
// accepted values, OR-combined per field).
func (r *ReliefWeb) Fetch(ctx context.Context, filters map[string][]string) ([]types.RawJob, error) {
	if r.appname == "" {
		log.Printf("[reliefweb] skipping: RELIEFWEB_APPNAME not set (register at https://apidoc.reliefweb.int/parameters#appname)")
		return []types.RawJob{}, nil
	}

	body := map[string]any{
		"limit": 1000,
		"fields": map[string]any{
			"include": []string{"title", "body", "url", "date", "source", "country", "type", "theme"},
		},
		"sort": []string{"date.created:desc"},
	}
	if len(filters) > 0 {
		var conditions []map[string]any
		for field, values := range filters {
			conditions = append(conditions, map[string]any{
				"field":    field + ".name",
				"value":    values,
				"operator": "OR",
			})
		}
		body["filter"] = map[string]any{"conditions": conditions}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("reliefweb: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s?appname=%s", r.BaseURL, url.QueryEscape(r.appname))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("reliefweb: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := r.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reliefweb: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		log.Printf("[reliefweb] rate limited")
		return []types.RawJob{}, nil
	case res.StatusCode < 200 || res.StatusCode >= 300:
		return nil, &StatusError{Source: "reliefweb", URL: r.BaseURL, StatusCode: res.StatusCode}
	}

	var data reliefWebResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("reliefweb: decode: %w", err)
	}

	out := make([]types.RawJob, 0, len(data.Data))
	for _, item := range data.Data {
		f := item.Fields

		raw := types.RawJob{
			Title:              f.Title,
			HiringOrganization: types.Organization{Name: "Unknown Organization"},
			ApplyURL:           f.URL,
			Source:             types.SourceReliefWeb,
			SourceID:           fmt.Sprintf("rw-%d", item.ID),
			Skills:             []string{},
		}
		if f.Body != "" {
			raw.Description = types.Ptr(f.Body)
		}
		if f.Date.Created != "" {
			raw.DatePosted = types.Ptr(f.Date.Created)
		}
		if f.Date.Closing != "" {
			raw.ValidThrough = types.Ptr(f.Date.Closing)
		}
		if len(f.Source) > 0 {
			raw.HiringOrganization.Name = f.Source[0].Name
			if f.Source[0].Homepage != "" {
				raw.HiringOrganization.SameAs = types.Ptr(f.Source[0].Homepage)
			}
		}
		if len(f.Country) > 0 {
			names := make([]string, 0, len(f.Country))
			for _, c := range f.Country {
				names = append(names, c.Name)
			}
			loc := &types.Location{Address: types.Ptr(strings.Join(names, ", "))}
			if f.Country[0].ISO3 != "" {
				loc.AddressCountry = types.Ptr(f.Country[0].ISO3)
			}
			raw.JobLocation = loc
		}
		if len(f.Theme) > 0 {
			themes := make([]string, 0, len(f.Theme))
			for _, t := range f.Theme {
				themes = append(themes, t.Name)
			}
			raw.Industry = types.Ptr(strings.Join(themes, ", "))
		}
		out = append(out, raw)
	}
	return out, nil
}
