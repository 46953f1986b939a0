// Package tags implements the keyword fallback classifier. It is used only
// when a job arrives without LLM-derived tags; the orchestrator prefers the
// extractor's semantic tags when they exist.
package tags

import (
	"strings"

	"github.com/jonathan/nichejobs/internal/types"
)

// TagJob returns every tag from the taxonomy whose keyword list has at
// least one case-insensitive substring hit against the job's title and
// description. Order follows the taxonomy; a job matching nothing returns
// an empty, non-nil slice.
func TagJob(job *types.RawJob, taxonomy types.TagTaxonomy) []string {
	text := job.Title
	if job.Description != nil {
		text += " " + *job.Description
	}
	text = strings.ToLower(text)

	matched := []string{}
	for _, cat := range taxonomy {
		for _, kw := range cat.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				matched = append(matched, cat.Tag)
				break
			}
		}
	}
	return matched
}
