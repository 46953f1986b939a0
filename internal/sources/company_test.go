package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCompany(t *testing.T) {
	tests := []struct {
		name  string
		title string
		link  string
		want  string
	}{
		{
			name:  "dash separator",
			title: "Program Officer - Oxfam",
			link:  "https://example.org/jobs/1",
			want:  "Oxfam",
		},
		{
			name:  "board suffix rejected, second to last wins",
			title: "Program Officer - Oxfam | Idealist",
			link:  "https://www.idealist.org/en/nonprofit-job/1",
			want:  "Oxfam",
		},
		{
			name:  "at separator",
			title: "Grants Manager at Mercy Corps",
			link:  "https://example.org/jobs/2",
			want:  "Mercy Corps",
		},
		{
			name:  "no separator falls back to hostname",
			title: "Grants Manager",
			link:  "https://mercycorps.org/careers/2",
			want:  "Mercycorps",
		},
		{
			name:  "board hostname gives unknown",
			title: "Grants Manager",
			link:  "https://www.idealist.org/en/nonprofit-job/2",
			want:  "Unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCompany(tt.title, tt.link))
		})
	}
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "Grants Manager", CleanTitle("Grants Manager - Idealist"))
	assert.Equal(t, "Program Officer - Oxfam", CleanTitle("Program Officer - Oxfam"),
		"non-board suffixes are kept")
	assert.Equal(t, "Field Coordinator", CleanTitle("  Field Coordinator  "))
}

func TestLooksLikeJobListing(t *testing.T) {
	assert.True(t, LooksLikeJobListing("Anything", "https://www.idealist.org/en/nonprofit-job/1"),
		"known board host passes on host alone")
	assert.True(t, LooksLikeJobListing("Anything", "https://example.org/careers/analyst"))
	assert.True(t, LooksLikeJobListing("We're hiring an analyst", "https://example.org/about"))
	assert.False(t, LooksLikeJobListing("Annual report 2025", "https://example.org/reports/2025"))
}

func TestDetectRemote(t *testing.T) {
	assert.True(t, DetectRemote("Fully REMOTE position"))
	assert.True(t, DetectRemote("Flexible Work From Home arrangement"))
	assert.False(t, DetectRemote("Office-based in Nairobi"))
}
