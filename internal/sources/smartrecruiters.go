package sources

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/nichejobs/internal/types"
)

const (
	smartRecruitersBaseURL  = "https://api.smartrecruiters.com/v1/companies"
	smartRecruitersPageSize = 100
)

// SmartRecruiters pulls a public SmartRecruiters company board. The list
// endpoint is paginated and carries partial fields; the detail endpoint
// has the full job ad, fetched per item with a graceful per-item fallback.
//
// API docs: https://dev.smartrecruiters.com/customer-api/live-docs/posting-api/
type SmartRecruiters struct {
	hc *http.Client

	// BaseURL is overridable for tests.
	BaseURL string
}

// NewSmartRecruiters returns an adapter using hc, or a default client when
// hc is nil.
func NewSmartRecruiters(hc *http.Client) *SmartRecruiters {
	if hc == nil {
		hc = NewHTTPClient()
	}
	return &SmartRecruiters{hc: hc, BaseURL: smartRecruitersBaseURL}
}

type srLabel struct {
	Label string `json:"label"`
}

type srJob struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UUID      string `json:"uuid"`
	Location  struct {
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
		Remote  bool   `json:"remote"`
	} `json:"location"`
	Industry         *srLabel `json:"industry"`
	TypeOfEmployment *srLabel `json:"typeOfEmployment"`
	ReleasedDate     string   `json:"releasedDate"`
	Company          struct {
		Name       string `json:"name"`
		Identifier string `json:"identifier"`
	} `json:"company"`
}

type srJobDetail struct {
	srJob
	JobAd struct {
		Sections struct {
			CompanyDescription    srSection `json:"companyDescription"`
			JobDescription        srSection `json:"jobDescription"`
			Qualifications        srSection `json:"qualifications"`
			AdditionalInformation srSection `json:"additionalInformation"`
		} `json:"sections"`
	} `json:"jobAd"`
}

type srSection struct {
	Text string `json:"text"`
}

type srListResponse struct {
	TotalFound int     `json:"totalFound"`
	Content    []srJob `json:"content"`
}

// Fetch lists all postings for a company identifier, following pagination
// until the reported total is reached or a short page arrives, then
// hydrates each posting from the detail endpoint.
func (s *SmartRecruiters) Fetch(ctx context.Context, companyID string) ([]types.RawJob, error) {
	var all []srJob
	for offset := 0; ; offset += smartRecruitersPageSize {
		url := fmt.Sprintf("%s/%s/postings?offset=%d&limit=%d", s.BaseURL, companyID, offset, smartRecruitersPageSize)

		var page srListResponse
		status, err := getJSON(ctx, s.hc, url, &page)
		if err != nil {
			return nil, fmt.Errorf("smartrecruiters [%s]: %w", companyID, err)
		}
		switch {
		case status == http.StatusNotFound:
			log.Printf("[smartrecruiters] board not found: %s", companyID)
			return []types.RawJob{}, nil
		case status == http.StatusTooManyRequests:
			log.Printf("[smartrecruiters] rate limited on %s", companyID)
			return []types.RawJob{}, nil
		case status < 200 || status >= 300:
			return nil, &StatusError{Source: "smartrecruiters", URL: url, StatusCode: status}
		}

		if len(page.Content) == 0 {
			break
		}
		all = append(all, page.Content...)
		if len(all) >= page.TotalFound || len(page.Content) < smartRecruitersPageSize {
			break
		}
	}

	out := make([]types.RawJob, 0, len(all))
	for _, j := range all {
		detail, err := s.fetchDetail(ctx, companyID, j.UUID)
		if err != nil || detail == nil {
			// Detail fetch is best-effort; keep the list-derived fields.
			out = append(out, s.mapJob(companyID, &srJobDetail{srJob: j}))
			continue
		}
		out = append(out, s.mapJob(companyID, detail))
	}
	return out, nil
}

func (s *SmartRecruiters) fetchDetail(ctx context.Context, companyID, jobUUID string) (*srJobDetail, error) {
	var detail srJobDetail
	status, err := getJSON(ctx, s.hc, fmt.Sprintf("%s/%s/postings/%s", s.BaseURL, companyID, jobUUID), &detail)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, nil
	}
	return &detail, nil
}

func (s *SmartRecruiters) mapJob(companyID string, j *srJobDetail) types.RawJob {
	orgName := j.Company.Name
	if orgName == "" {
		orgName = companyID
	}

	raw := types.RawJob{
		Title:              j.Name,
		HiringOrganization: types.Organization{Name: orgName},
		JobLocationType:    types.TelecommuteIf(j.Location.Remote),
		ApplyURL:           fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", companyID, j.UUID),
		Source:             types.SourceSmartRecruiters,
		SourceID:           fmt.Sprintf("sr-%s-%s", companyID, j.UUID),
		Skills:             []string{},
	}

	if j.TypeOfEmployment != nil {
		raw.EmploymentType = types.ParseEmploymentType(j.TypeOfEmployment.Label)
	}
	if j.Industry != nil && j.Industry.Label != "" {
		raw.Industry = types.Ptr(j.Industry.Label)
	}
	if j.ReleasedDate != "" {
		raw.DatePosted = types.Ptr(j.ReleasedDate)
	}

	var parts []string
	for _, p := range []string{j.Location.City, j.Location.Region, j.Location.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		loc := &types.Location{Address: types.Ptr(strings.Join(parts, ", "))}
		if j.Location.Region != "" {
			loc.AddressRegion = types.Ptr(j.Location.Region)
		}
		if j.Location.Country != "" {
			loc.AddressCountry = types.Ptr(j.Location.Country)
		}
		raw.JobLocation = loc
	}

	var sections []string
	for _, sec := range []srSection{
		j.JobAd.Sections.CompanyDescription,
		j.JobAd.Sections.JobDescription,
		j.JobAd.Sections.Qualifications,
		j.JobAd.Sections.AdditionalInformation,
	} {
		if sec.Text != "" {
			sections = append(sections, sec.Text)
		}
	}
	if len(sections) > 0 {
		raw.Description = types.Ptr(strings.Join(sections, "\n"))
	}

	return raw
}
