// Package fingerprint derives the content hash used to recognise the same
// real-world posting across sources. The same job frequently appears
// verbatim on multiple boards and again via search discovery; the
// fingerprint is the cross-source dedup key, independent of source_id.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/jonathan/nichejobs/internal/types"
)

// hexLen is the length of the hex prefix kept from the hash. 16 hex chars
// (64 bits) is plenty of collision resistance at this dataset scale; this
// is a practical engineering choice, not a security boundary.
const hexLen = 16

// Generate returns the dedup fingerprint of a job: a truncated SHA-256 of
// the normalised title, organization name, and location address. Jobs with
// no location hash as the literal string "remote".
func Generate(job *types.RawJob) string {
	location := "remote"
	if job.JobLocation != nil && job.JobLocation.Address != nil {
		location = *job.JobLocation.Address
	}

	normalized := strings.Join([]string{
		collapse(job.Title),
		collapse(job.HiringOrganization.Name),
		strings.ToLower(strings.TrimSpace(location)),
	}, "|")

	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:hexLen]
}

func collapse(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
