package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRawJob checks a RawJob against the canonical schema rules before
// it is persisted: non-empty title and org name, a real apply URL, enum
// membership, the skills cap, and the all-or-nothing location/salary
// invariants.
func ValidateRawJob(j *RawJob) error {
	if err := validate.Struct(j); err != nil {
		return fmt.Errorf("job %s/%s: %w", j.Source, j.SourceID, err)
	}
	if j.JobLocation != nil && j.JobLocation.Empty() {
		return fmt.Errorf("job %s/%s: jobLocation present but empty", j.Source, j.SourceID)
	}
	return nil
}
