package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/nichejobs/internal/types"
)

// resultSchema structurally validates the model's response before mapping.
// Deliberately loose on values: enum fields are plain strings here because
// out-of-enum values are coerced by the mapping code, not rejected.
const resultSchema = `{
	"type": "object",
	"properties": {
		"isJobPosting": {"type": "boolean"},
		"title": {"type": "string"},
		"organization": {"type": "string"},
		"description": {"type": "string"},
		"datePosted": {"type": ["string", "null"]},
		"validThrough": {"type": ["string", "null"]},
		"employmentType": {"type": ["string", "null"]},
		"remote": {"type": "boolean"},
		"address": {"type": ["string", "null"]},
		"region": {"type": ["string", "null"]},
		"country": {"type": ["string", "null"]},
		"salaryCurrency": {"type": ["string", "null"]},
		"salaryMin": {"type": ["number", "null"]},
		"salaryMax": {"type": ["number", "null"]},
		"salaryUnit": {"type": ["string", "null"]},
		"skills": {"type": "array", "items": {"type": "string"}},
		"industry": {"type": ["string", "null"]},
		"tags": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["title"]
}`

// extracted mirrors the JSON shape the prompt asks the model for.
type extracted struct {
	IsJobPosting   bool     `json:"isJobPosting"`
	Title          string   `json:"title"`
	Organization   string   `json:"organization"`
	Description    string   `json:"description"`
	DatePosted     *string  `json:"datePosted"`
	ValidThrough   *string  `json:"validThrough"`
	EmploymentType *string  `json:"employmentType"`
	Remote         bool     `json:"remote"`
	Address        *string  `json:"address"`
	Region         *string  `json:"region"`
	Country        *string  `json:"country"`
	SalaryCurrency *string  `json:"salaryCurrency"`
	SalaryMin      *float64 `json:"salaryMin"`
	SalaryMax      *float64 `json:"salaryMax"`
	SalaryUnit     *string  `json:"salaryUnit"`
	Skills         []string `json:"skills"`
	Industry       *string  `json:"industry"`
	Tags           []string `json:"tags"`
}

// Result is one successful extraction: the job plus the model's topic tags.
type Result struct {
	Job  *types.RawJob
	Tags []string
}

// Extractor turns fetched page text into a RawJob via the LLM. A page that
// is not a job posting, or a response the model garbles beyond repair,
// yields (nil, nil) rather than an error: unextractable pages are an
// expected outcome, not a pipeline failure.
type Extractor struct {
	client Client
	schema *gojsonschema.Schema
}

// NewExtractor builds an Extractor around client.
func NewExtractor(client Client) (*Extractor, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(resultSchema))
	if err != nil {
		return nil, fmt.Errorf("extractor: compile schema: %w", err)
	}
	return &Extractor{client: client, schema: schema}, nil
}

// Extract prompts the model with the page text and maps its JSON response
// to a RawJob. Only a transport-level client error is returned as error.
func (e *Extractor) Extract(ctx context.Context, pageText, pageURL string, taxonomy types.TagTaxonomy) (*Result, error) {
	raw, err := e.client.GenerateJSON(ctx, buildPrompt(pageText, pageURL, taxonomy))
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", pageURL, err)
	}

	cleaned := CleanJSONBlock(raw)
	validation, err := e.schema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil || !validation.Valid() {
		log.Printf("[llm] %s: response failed structural validation, skipping", pageURL)
		return nil, nil
	}

	var ex extracted
	if err := json.Unmarshal([]byte(cleaned), &ex); err != nil {
		log.Printf("[llm] %s: unparseable response, skipping", pageURL)
		return nil, nil
	}

	if !ex.IsJobPosting || strings.TrimSpace(ex.Title) == "" {
		return nil, nil
	}

	job := &types.RawJob{
		Title:              strings.TrimSpace(ex.Title),
		HiringOrganization: types.Organization{Name: orgName(ex.Organization)},
		JobLocationType:    types.TelecommuteIf(ex.Remote),
		ApplyURL:           pageURL,
		Source:             types.SourceScraper,
		SourceID:           "llm-" + hashURL(pageURL),
		Skills:             capSkills(ex.Skills),
	}
	if ex.Description != "" {
		job.Description = types.Ptr(ex.Description)
	}
	job.DatePosted = nonEmpty(ex.DatePosted)
	job.ValidThrough = nonEmpty(ex.ValidThrough)
	job.Industry = nonEmpty(ex.Industry)

	// Out-of-enum employment types are dropped, not stored.
	if ex.EmploymentType != nil && types.ValidEmploymentType(*ex.EmploymentType) {
		et := types.EmploymentType(*ex.EmploymentType)
		job.EmploymentType = &et
	}

	// Location is all-or-nothing: at least one component or none at all.
	loc := &types.Location{
		Address:        nonEmpty(ex.Address),
		AddressRegion:  nonEmpty(ex.Region),
		AddressCountry: nonEmpty(ex.Country),
	}
	if !loc.Empty() {
		job.JobLocation = loc
	}

	// Salary requires a currency and at least one bound. The model garbles
	// unit labels ("ANNUAL", "per year") far more often than amounts, so a
	// bad unit defaults to YEAR instead of discarding the salary.
	if ex.SalaryCurrency != nil && len(*ex.SalaryCurrency) == 3 &&
		(ex.SalaryMin != nil || ex.SalaryMax != nil) {
		unit := types.UnitYear
		if ex.SalaryUnit != nil && types.ValidSalaryUnit(*ex.SalaryUnit) {
			unit = types.SalaryUnit(*ex.SalaryUnit)
		}
		job.BaseSalary = &types.Salary{
			Currency: strings.ToUpper(*ex.SalaryCurrency),
			MinValue: ex.SalaryMin,
			MaxValue: ex.SalaryMax,
			UnitText: unit,
		}
	}

	return &Result{Job: job, Tags: knownTags(ex.Tags, taxonomy)}, nil
}

func buildPrompt(pageText, pageURL string, taxonomy types.TagTaxonomy) string {
	var tags []string
	for _, cat := range taxonomy {
		tags = append(tags, cat.Tag)
	}

	var b strings.Builder
	b.WriteString("You are a job posting extractor. Analyze the following web page text and decide whether it is a single job posting.\n\n")
	b.WriteString("Respond with exactly one JSON object, no other text, with these fields:\n")
	b.WriteString(`{
  "isJobPosting": boolean,
  "title": string (the job title, "" if not a job posting),
  "organization": string (the hiring organization name),
  "description": string (a faithful summary of the role, max 2000 chars),
  "datePosted": string or null (ISO 8601 if stated),
  "validThrough": string or null (application deadline, ISO 8601 if stated),
  "employmentType": one of FULL_TIME, PART_TIME, CONTRACT, TEMPORARY, INTERN, VOLUNTEER, or null,
  "remote": boolean (true only if the posting explicitly allows remote work),
  "address": string or null (city or full address),
  "region": string or null (state/province),
  "country": string or null,
  "salaryCurrency": string or null (3-letter ISO code),
  "salaryMin": number or null,
  "salaryMax": number or null,
  "salaryUnit": one of YEAR, MONTH, DAY, HOUR, or null,
  "skills": array of strings (most important first, max 15),
  "industry": string or null,
  "tags": array of strings drawn ONLY from the allowed tag list
}`)
	b.WriteString("\n\nOnly state facts present in the page. Never invent salary, dates, or locations.\n")
	if len(tags) > 0 {
		b.WriteString("\nAllowed tags: " + strings.Join(tags, ", ") + "\n")
	}
	b.WriteString("\nPage URL: " + pageURL + "\n")
	b.WriteString("\nPage text:\n" + pageText + "\n")
	return b.String()
}

func orgName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Unknown"
	}
	return strings.TrimSpace(name)
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// capSkills keeps the first MaxSkills entries; the prompt asks for most
// important first.
func capSkills(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	if len(skills) > types.MaxSkills {
		return skills[:types.MaxSkills]
	}
	return skills
}

// knownTags drops any model-suggested tag not in the taxonomy.
func knownTags(tags []string, taxonomy types.TagTaxonomy) []string {
	allowed := make(map[string]bool, len(taxonomy))
	for _, cat := range taxonomy {
		allowed[cat.Tag] = true
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if allowed[tag] {
			out = append(out, tag)
		}
	}
	return out
}

func hashURL(url string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}
