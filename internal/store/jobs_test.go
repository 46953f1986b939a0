package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/nichejobs/internal/types"
)

func TestBuildListQueryEmpty(t *testing.T) {
	where, args := buildListQuery(Filters{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildListQueryAllFilters(t *testing.T) {
	remote := true
	where, args := buildListQuery(Filters{
		Niche:  "ngo",
		Status: types.StatusActive,
		Query:  "grant manager",
		Tags:   []string{"grant-management"},
		Remote: &remote,
	})

	assert.Equal(t,
		"WHERE niche = $1 AND status = $2 AND fts @@ websearch_to_tsquery('english', $3)"+
			" AND tags @> $4::jsonb AND job_location_type = $5",
		where)
	assert.Equal(t, []any{
		"ngo", "active", "grant manager", []string{"grant-management"}, types.Telecommute,
	}, args)
}

func TestBuildListQueryOnsiteFilter(t *testing.T) {
	remote := false
	where, args := buildListQuery(Filters{Remote: &remote})

	assert.Contains(t, where, "IS DISTINCT FROM")
	assert.Equal(t, []any{types.Telecommute}, args)
}

func TestBuildListQueryPlaceholderNumbering(t *testing.T) {
	where, args := buildListQuery(Filters{Status: types.StatusActive, Query: "wash"})

	// Status skipped nothing, so placeholders must stay dense.
	assert.Equal(t, "WHERE status = $1 AND fts @@ websearch_to_tsquery('english', $2)", where)
	assert.Len(t, args, 2)
}
