package types

// NicheConfig is a named topic configuration partitioning the dataset.
// Configs are loaded once at process start from static YAML files and are
// immutable afterwards.
type NicheConfig struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Domain      string      `yaml:"domain" json:"domain"`
	Tagline     string      `yaml:"tagline" json:"tagline"`
	Keywords    []string    `yaml:"keywords" json:"keywords"`
	SerpQueries []string    `yaml:"serp_queries" json:"serpQueries"`
	ATSBoards   ATSBoards   `yaml:"ats_boards" json:"atsBoards"`
	ScraperURLs []string    `yaml:"scraper_urls" json:"scraperUrls"`
	APISources  []APISource `yaml:"api_sources" json:"apiSources"`
	Tags        TagTaxonomy `yaml:"tags" json:"tags"`
	Theme       Theme       `yaml:"theme" json:"theme"`
	SEO         SEO         `yaml:"seo" json:"seo"`
}

// ATSBoards lists the board identifiers to pull per ATS platform.
type ATSBoards struct {
	Greenhouse      []string `yaml:"greenhouse" json:"greenhouse"`
	Lever           []string `yaml:"lever" json:"lever"`
	Ashby           []string `yaml:"ashby" json:"ashby"`
	SmartRecruiters []string `yaml:"smartrecruiters" json:"smartrecruiters"`
}

// APISource configures one upstream sector API pull.
type APISource struct {
	Type    string              `yaml:"type" json:"type"` // currently only "reliefweb"
	Filters map[string][]string `yaml:"filters" json:"filters"`
}

// TagCategory maps one topic tag to the keywords that signal it.
type TagCategory struct {
	Tag      string   `yaml:"tag" json:"tag"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// TagTaxonomy is an ordered tag → keywords mapping. It is a slice rather
// than a map so tagger output order is stable across runs.
type TagTaxonomy []TagCategory

// Theme holds presentation metadata consumed by the frontend.
type Theme struct {
	PrimaryColor string `yaml:"primary_color" json:"primaryColor"`
	AccentColor  string `yaml:"accent_color" json:"accentColor"`
}

// SEO holds search metadata consumed by the frontend.
type SEO struct {
	TitleTemplate string `yaml:"title_template" json:"titleTemplate"`
	Description   string `yaml:"description" json:"description"`
}
