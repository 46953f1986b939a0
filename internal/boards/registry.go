// Package boards holds the registry of known job-board domains. The
// search-discovery adapters use it to classify SERP results and to reject
// board names masquerading as employers.
package boards

import (
	"net/url"
	"strings"
)

// Region buckets a board by the market it serves.
type Region string

// Regions.
const (
	RegionUK       Region = "uk"
	RegionUS       Region = "us"
	RegionGlobal   Region = "global"
	RegionScotland Region = "scotland"
	RegionEurope   Region = "europe"
)

// Sector buckets a board by topical focus.
type Sector string

// Sectors.
const (
	SectorNGO     Sector = "ngo"
	SectorClimate Sector = "climate"
	SectorGeneral Sector = "general"
	SectorIntlDev Sector = "international-dev"
	SectorCharity Sector = "charity"
)

// Entry describes one known job board.
type Entry struct {
	Domain string
	Name   string
	Region Region
	Sector Sector
	HasAPI bool
	Notes  string
}

// Registry lists every board we know about. Kept in one place so the
// discovery heuristics stay in sync.
var Registry = []Entry{
	// UK charity
	{Domain: "charityjob.co.uk", Name: "CharityJob", Region: RegionUK, Sector: SectorCharity},
	{Domain: "goodmoves.org", Name: "Goodmoves", Region: RegionScotland, Sector: SectorCharity, Notes: "Run by SCVO, Scotland-specific"},
	{Domain: "charitycareersscotland.co.uk", Name: "Charity Careers Scotland", Region: RegionScotland, Sector: SectorCharity},
	{Domain: "thirdsector.co.uk", Name: "Third Sector", Region: RegionUK, Sector: SectorCharity},
	{Domain: "civilsociety.co.uk", Name: "Civil Society", Region: RegionUK, Sector: SectorCharity},
	{Domain: "harrishill.co.uk", Name: "Harris Hill", Region: RegionUK, Sector: SectorCharity, Notes: "Charity recruitment agency"},
	{Domain: "tpp.co.uk", Name: "TPP Recruitment", Region: RegionUK, Sector: SectorCharity, Notes: "Not-for-profit recruitment"},

	// Climate / environment
	{Domain: "climatebase.org", Name: "Climatebase", Region: RegionGlobal, Sector: SectorClimate},
	{Domain: "climatecareers.com", Name: "Climate Careers", Region: RegionGlobal, Sector: SectorClimate},
	{Domain: "climatechangecareers.com", Name: "Climate Change Careers", Region: RegionGlobal, Sector: SectorClimate},
	{Domain: "environmentjob.co.uk", Name: "Environmentjob", Region: RegionUK, Sector: SectorClimate},
	{Domain: "greenjobs.co.uk", Name: "Green Jobs", Region: RegionUK, Sector: SectorClimate},
	{Domain: "conservationjobboard.com", Name: "Conservation Job Board", Region: RegionGlobal, Sector: SectorClimate},
	{Domain: "environmentalcareer.com", Name: "Environmental Career", Region: RegionUS, Sector: SectorClimate},

	// International development / humanitarian
	{Domain: "reliefweb.int", Name: "ReliefWeb", Region: RegionGlobal, Sector: SectorIntlDev, HasAPI: true, Notes: "Free API v2"},
	{Domain: "devex.com", Name: "Devex", Region: RegionGlobal, Sector: SectorIntlDev},
	{Domain: "impactpool.org", Name: "Impactpool", Region: RegionGlobal, Sector: SectorIntlDev},
	{Domain: "idealist.org", Name: "Idealist", Region: RegionGlobal, Sector: SectorNGO},
	{Domain: "workforgood.co.uk", Name: "Work for Good", Region: RegionUK, Sector: SectorNGO},
	{Domain: "bond.org.uk", Name: "Bond", Region: RegionUK, Sector: SectorIntlDev, Notes: "UK network for international development"},
	{Domain: "fontes.nl", Name: "Fontes", Region: RegionEurope, Sector: SectorIntlDev},
	{Domain: "unjobs.org", Name: "UN Jobs", Region: RegionGlobal, Sector: SectorIntlDev},
	{Domain: "uncareer.net", Name: "UN Career", Region: RegionGlobal, Sector: SectorIntlDev},
	{Domain: "humentum.org", Name: "Humentum", Region: RegionGlobal, Sector: SectorIntlDev},
	{Domain: "coordinationsud.org", Name: "Coordination SUD", Region: RegionEurope, Sector: SectorIntlDev},

	// General boards that carry NGO jobs
	{Domain: "indeed.com", Name: "Indeed", Region: RegionGlobal, Sector: SectorGeneral},
	{Domain: "uk.indeed.com", Name: "Indeed UK", Region: RegionUK, Sector: SectorGeneral},
	{Domain: "linkedin.com", Name: "LinkedIn", Region: RegionGlobal, Sector: SectorGeneral},
	{Domain: "glassdoor.com", Name: "Glassdoor", Region: RegionGlobal, Sector: SectorGeneral},
	{Domain: "glassdoor.co.uk", Name: "Glassdoor UK", Region: RegionUK, Sector: SectorGeneral},
	{Domain: "reed.co.uk", Name: "Reed", Region: RegionUK, Sector: SectorGeneral},
	{Domain: "s1jobs.com", Name: "s1jobs", Region: RegionScotland, Sector: SectorGeneral, Notes: "Scottish jobs board"},
	{Domain: "myjobscotland.gov.uk", Name: "myjobscotland", Region: RegionScotland, Sector: SectorGeneral, Notes: "Scottish public sector"},
	{Domain: "cv-library.co.uk", Name: "CV-Library", Region: RegionUK, Sector: SectorGeneral},
	{Domain: "totaljobs.com", Name: "Totaljobs", Region: RegionUK, Sector: SectorGeneral},
	{Domain: "jobs.theguardian.com", Name: "Guardian Jobs", Region: RegionUK, Sector: SectorGeneral},

	// ATS platforms we also pull directly via API
	{Domain: "boards.greenhouse.io", Name: "Greenhouse", Region: RegionGlobal, Sector: SectorGeneral, HasAPI: true},
	{Domain: "jobs.lever.co", Name: "Lever", Region: RegionGlobal, Sector: SectorGeneral, HasAPI: true},
	{Domain: "jobs.ashbyhq.com", Name: "Ashby", Region: RegionGlobal, Sector: SectorGeneral, HasAPI: true},
	{Domain: "jobs.smartrecruiters.com", Name: "SmartRecruiters", Region: RegionGlobal, Sector: SectorGeneral, HasAPI: true},
}

// IsJobBoardURL reports whether a URL points at a known job board.
func IsJobBoardURL(raw string) bool {
	return Lookup(raw) != nil
}

// Lookup returns the registry entry for a URL, or nil.
func Lookup(raw string) *Entry {
	host := hostname(raw)
	if host == "" {
		return nil
	}
	for i := range Registry {
		if host == Registry[i].Domain || strings.HasSuffix(host, "."+Registry[i].Domain) {
			return &Registry[i]
		}
	}
	return nil
}

// IsKnownBoardName reports whether a heuristically extracted company name
// is actually a job board rather than an employer.
func IsKnownBoardName(name string) bool {
	lower := strings.ToLower(name)
	for _, b := range Registry {
		if strings.Contains(lower, strings.ToLower(b.Name)) ||
			strings.Contains(lower, strings.SplitN(b.Domain, ".", 2)[0]) {
			return true
		}
	}
	return false
}

func hostname(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
