// Package types defines the canonical job data model shared by every
// adapter, the aggregation pipeline, the store, and the query API.
//
// The shape is aligned with the Google JobPosting schema
// (https://schema.org/JobPosting) so a persisted Job can be rendered
// directly as JSON-LD by a consuming frontend.
package types

import (
	"strings"
	"time"
)

// JobSource identifies the adapter that produced a job.
type JobSource string

// Known job sources. Each adapter owns exactly one value.
const (
	SourceGreenhouse      JobSource = "greenhouse"
	SourceLever           JobSource = "lever"
	SourceAshby           JobSource = "ashby"
	SourceSmartRecruiters JobSource = "smartrecruiters"
	SourceReliefWeb       JobSource = "reliefweb"
	SourceSerper          JobSource = "serper"
	SourceGoogleCSE       JobSource = "google_cse"
	SourceScraper         JobSource = "scraper"
)

// EmploymentType is the fixed JobPosting employment enum.
type EmploymentType string

// Employment type values.
const (
	FullTime  EmploymentType = "FULL_TIME"
	PartTime  EmploymentType = "PART_TIME"
	Contract  EmploymentType = "CONTRACT"
	Temporary EmploymentType = "TEMPORARY"
	Intern    EmploymentType = "INTERN"
	Volunteer EmploymentType = "VOLUNTEER"
)

// EmploymentTypes lists every valid EmploymentType value.
var EmploymentTypes = []EmploymentType{FullTime, PartTime, Contract, Temporary, Intern, Volunteer}

// ParseEmploymentType maps a free-form label ("full-time", "Fulltime",
// "internship", ...) to the fixed enum, or nil when it doesn't fit.
func ParseEmploymentType(raw string) *EmploymentType {
	if v, ok := employmentLabels[normalizeLabel(raw)]; ok {
		return &v
	}
	return nil
}

// ValidEmploymentType reports whether raw is exactly one of the enum values.
func ValidEmploymentType(raw string) bool {
	for _, v := range EmploymentTypes {
		if string(v) == raw {
			return true
		}
	}
	return false
}

// SalaryUnit is the pay-period unit of a base salary.
type SalaryUnit string

// Salary unit values.
const (
	UnitYear  SalaryUnit = "YEAR"
	UnitMonth SalaryUnit = "MONTH"
	UnitDay   SalaryUnit = "DAY"
	UnitHour  SalaryUnit = "HOUR"
)

// ValidSalaryUnit reports whether raw is one of the fixed salary units.
func ValidSalaryUnit(raw string) bool {
	switch SalaryUnit(raw) {
	case UnitYear, UnitMonth, UnitDay, UnitHour:
		return true
	}
	return false
}

// Telecommute is the single jobLocationType value. A nil jobLocationType
// means "not asserted remote", not "not remote".
const Telecommute = "TELECOMMUTE"

// JobStatus is the lifecycle state of a persisted job.
type JobStatus string

// Job statuses.
const (
	StatusActive    JobStatus = "active"
	StatusExpired   JobStatus = "expired"
	StatusDuplicate JobStatus = "duplicate"
)

// MaxSkills caps the skills list on any job. Adapters and the LLM
// extractor truncate from the front, keeping the earliest-listed skills.
const MaxSkills = 15

// Organization is the hiring organization of a posting.
type Organization struct {
	Name   string  `json:"name" validate:"required"`
	SameAs *string `json:"sameAs" validate:"omitempty,url"`
	Logo   *string `json:"logo" validate:"omitempty,url"`
}

// Location is a job's place of work. The whole struct is nil on a RawJob
// when no location signal exists; it is never present with every field nil.
type Location struct {
	Address        *string `json:"address"`
	PostalCode     *string `json:"postalCode"`
	AddressRegion  *string `json:"addressRegion"`
	AddressCountry *string `json:"addressCountry"`
}

// Empty reports whether the location carries no signal at all.
func (l *Location) Empty() bool {
	if l == nil {
		return true
	}
	return l.Address == nil && l.PostalCode == nil && l.AddressRegion == nil && l.AddressCountry == nil
}

// Salary is a base salary range. Currency is required whenever a salary is
// present; min/max may each be absent.
type Salary struct {
	Currency string     `json:"currency" validate:"required,len=3"`
	MinValue *float64   `json:"minValue"`
	MaxValue *float64   `json:"maxValue"`
	UnitText SalaryUnit `json:"unitText" validate:"required,oneof=YEAR MONTH DAY HOUR"`
}

// RawJob is the canonical intermediate shape every adapter produces.
// It exists only in memory, between an adapter call and the upsert that
// folds it into a persisted Job row.
type RawJob struct {
	Title              string          `json:"title" validate:"required"`
	Description        *string         `json:"description"`
	DatePosted         *string         `json:"datePosted"`
	ValidThrough       *string         `json:"validThrough"`
	EmploymentType     *EmploymentType `json:"employmentType" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT TEMPORARY INTERN VOLUNTEER"`
	HiringOrganization Organization    `json:"hiringOrganization"`
	JobLocation        *Location       `json:"jobLocation"`
	JobLocationType    *string         `json:"jobLocationType" validate:"omitempty,oneof=TELECOMMUTE"`
	BaseSalary         *Salary         `json:"baseSalary"`
	ApplyURL           string          `json:"applyUrl" validate:"required,url"`
	Source             JobSource       `json:"source" validate:"required"`
	SourceID           string          `json:"source_id" validate:"required"`
	Skills             []string        `json:"skills" validate:"max=15"`
	Industry           *string         `json:"industry"`
}

// Remote reports whether the job is explicitly flagged TELECOMMUTE.
func (j *RawJob) Remote() bool {
	return j.JobLocationType != nil && *j.JobLocationType == Telecommute
}

// Job is the persisted, canonical job record: a RawJob plus the internal
// fields assigned by the ingestion pipeline and the store.
type Job struct {
	ID          string    `json:"id"`
	Niche       string    `json:"niche"`
	ScrapedAt   time.Time `json:"scraped_at"`
	Status      JobStatus `json:"status"`
	Fingerprint string    `json:"fingerprint"`
	Tags        []string  `json:"tags"`

	RawJob
}

// Ptr returns a pointer to v. Convenience for building nullable fields.
func Ptr[T any](v T) *T { return &v }

// TelecommuteIf returns a TELECOMMUTE location type when remote is true,
// nil otherwise.
func TelecommuteIf(remote bool) *string {
	if remote {
		return Ptr(Telecommute)
	}
	return nil
}

var employmentLabels = map[string]EmploymentType{
	"fulltime":   FullTime,
	"full-time":  FullTime,
	"full_time":  FullTime,
	"parttime":   PartTime,
	"part-time":  PartTime,
	"part_time":  PartTime,
	"contract":   Contract,
	"contractor": Contract,
	"temporary":  Temporary,
	"temp":       Temporary,
	"intern":     Intern,
	"internship": Intern,
	"volunteer":  Volunteer,
}

func normalizeLabel(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(s, " ", "-")
}
