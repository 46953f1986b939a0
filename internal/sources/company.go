package sources

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/jonathan/nichejobs/internal/boards"
)

// Heuristics shared by the search-discovery adapters (Serper, Google CSE).
// Search results only carry a title, a snippet, and a link, so organization
// names and listing-ness have to be inferred.

// titleSeparator matches the patterns job boards use to join a role with
// its organization: " - ", " | ", " – ", " at ", " @ ".
var titleSeparator = regexp.MustCompile(`\s+[-|–]\s+|\s+at\s+|\s+@\s+`)

// ExtractCompany pulls a best-effort organization name out of a search
// result title like "Program Officer - Oxfam | Idealist". The title is
// split on all separators at once and segments are tried from the end,
// skipping any that name a known job board (the last segment is usually
// the board itself). Falls back to the link's hostname, then "Unknown".
func ExtractCompany(title, link string) string {
	segments := titleSeparator.Split(title, -1)
	if len(segments) >= 2 {
		for i := len(segments) - 1; i >= 1; i-- {
			candidate := strings.TrimSpace(segments[i])
			if candidate != "" && !boards.IsKnownBoardName(candidate) {
				return candidate
			}
		}
	}

	if u, err := url.Parse(link); err == nil && u.Hostname() != "" {
		host := strings.TrimPrefix(u.Hostname(), "www.")
		if !boards.IsJobBoardURL(link) {
			if seg, _, ok := strings.Cut(host, "."); ok && seg != "" {
				return TitleCaseSlug(seg)
			}
		}
	}
	return "Unknown"
}

var trailingBoardName = regexp.MustCompile(`(?i)\s*[-|–]\s*[^-|–]*$`)

// CleanTitle strips a trailing board or company suffix from a search
// result title ("Grants Manager - Idealist" → "Grants Manager") when the
// suffix names a known job board. Otherwise the title is returned intact.
func CleanTitle(title string) string {
	loc := trailingBoardName.FindStringIndex(title)
	if loc == nil {
		return strings.TrimSpace(title)
	}
	suffix := strings.TrimSpace(strings.TrimLeft(title[loc[0]:], " -|–"))
	if boards.IsKnownBoardName(suffix) {
		return strings.TrimSpace(title[:loc[0]])
	}
	return strings.TrimSpace(title)
}

var listingPathPatterns = []string{
	"/job/", "/jobs/", "/careers/", "/career/", "/position/", "/positions/",
	"/opening/", "/openings/", "/vacancy/", "/vacancies/", "/opportunity/",
	"/opportunities/", "/posting/", "/postings/", "/employment/",
}

var listingTitleKeywords = []string{
	"hiring", "job", "career", "position", "vacancy", "opening",
	"opportunity", "employment", "recruit",
}

// LooksLikeJobListing classifies a search result as an individual job
// listing rather than a listings index, an article, or a company homepage.
// Known job-board hosts pass on host alone; everything else needs a
// listing-shaped path or a job keyword in the title.
func LooksLikeJobListing(title, link string) bool {
	if boards.IsJobBoardURL(link) {
		return true
	}

	lowerLink := strings.ToLower(link)
	for _, p := range listingPathPatterns {
		if strings.Contains(lowerLink, p) {
			return true
		}
	}

	lowerTitle := strings.ToLower(title)
	for _, kw := range listingTitleKeywords {
		if strings.Contains(lowerTitle, kw) {
			return true
		}
	}
	return false
}

// DetectRemote applies the shared crude remote heuristic to free text.
func DetectRemote(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "remote") || strings.Contains(lower, "work from home")
}
