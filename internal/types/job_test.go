package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJob() *RawJob {
	return &RawJob{
		Title:              "Grants Manager",
		HiringOrganization: Organization{Name: "Acme Foundation"},
		ApplyURL:           "https://example.org/jobs/1",
		Source:             SourceGreenhouse,
		SourceID:           "gh-acme-1",
	}
}

func TestValidateRawJob(t *testing.T) {
	require.NoError(t, ValidateRawJob(validJob()))
}

func TestValidateRawJobRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawJob)
	}{
		{"empty title", func(j *RawJob) { j.Title = "" }},
		{"empty org name", func(j *RawJob) { j.HiringOrganization.Name = "" }},
		{"apply url not a url", func(j *RawJob) { j.ApplyURL = "not a url" }},
		{"missing source id", func(j *RawJob) { j.SourceID = "" }},
		{"bad employment type", func(j *RawJob) {
			et := EmploymentType("PERMANENT")
			j.EmploymentType = &et
		}},
		{"bad location type", func(j *RawJob) { j.JobLocationType = Ptr("HYBRID") }},
		{"salary without currency", func(j *RawJob) {
			j.BaseSalary = &Salary{MinValue: Ptr(50000.0), UnitText: UnitYear}
		}},
		{"salary with bad unit", func(j *RawJob) {
			j.BaseSalary = &Salary{Currency: "USD", UnitText: "WEEK"}
		}},
		{"too many skills", func(j *RawJob) {
			for i := 0; i < MaxSkills+1; i++ {
				j.Skills = append(j.Skills, "skill")
			}
		}},
		{"empty location struct", func(j *RawJob) { j.JobLocation = &Location{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := validJob()
			tt.mutate(j)
			assert.Error(t, ValidateRawJob(j))
		})
	}
}

func TestParseEmploymentType(t *testing.T) {
	tests := []struct {
		raw  string
		want *EmploymentType
	}{
		{"full-time", Ptr(FullTime)},
		{"Fulltime", Ptr(FullTime)},
		{"FULL TIME", Ptr(FullTime)},
		{"internship", Ptr(Intern)},
		{"temp", Ptr(Temporary)},
		{"permanent", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParseEmploymentType(tt.raw)
		if tt.want == nil {
			assert.Nil(t, got, tt.raw)
			continue
		}
		require.NotNil(t, got, tt.raw)
		assert.Equal(t, *tt.want, *got, tt.raw)
	}
}

func TestRemote(t *testing.T) {
	j := validJob()
	assert.False(t, j.Remote())

	j.JobLocationType = TelecommuteIf(true)
	assert.True(t, j.Remote())

	assert.Nil(t, TelecommuteIf(false))
}

func TestLocationEmpty(t *testing.T) {
	var l *Location
	assert.True(t, l.Empty())
	assert.True(t, (&Location{}).Empty())
	assert.False(t, (&Location{AddressCountry: Ptr("US")}).Empty())
}
