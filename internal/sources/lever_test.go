package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nichejobs/internal/types"
)

func TestLeverFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/green-alliance", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("mode"))
		_, _ = w.Write([]byte(`[
			{"id":"abc-123","text":"Climate Analyst",
			 "categories":{"location":"Remote","commitment":"Full-time"},
			 "description":"<p>Analyse things.</p>","descriptionPlain":"Analyse things.",
			 "hostedUrl":"https://jobs.lever.co/green-alliance/abc-123",
			 "createdAt":1754006400000},
			{"id":"def-456","text":"Office Manager",
			 "categories":{"location":"London","commitment":"Part-time"},
			 "description":"","descriptionPlain":"Run the office.",
			 "hostedUrl":"https://jobs.lever.co/green-alliance/def-456",
			 "createdAt":0}
		]`))
	}))
	defer ts.Close()

	l := NewLever(ts.Client())
	l.BaseURL = ts.URL

	jobs, err := l.Fetch(context.Background(), "green-alliance")
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	remote := jobs[0]
	assert.Equal(t, "lv-green-alliance-abc-123", remote.SourceID)
	assert.Equal(t, types.SourceLever, remote.Source)
	require.NotNil(t, remote.JobLocationType)
	require.NotNil(t, remote.DatePosted)
	assert.Equal(t, "2025-08-01T00:00:00Z", *remote.DatePosted)
	require.NotNil(t, remote.Description)
	assert.Contains(t, *remote.Description, "<p>")

	onsite := jobs[1]
	assert.Nil(t, onsite.JobLocationType)
	assert.Nil(t, onsite.DatePosted)
	require.NotNil(t, onsite.Description)
	assert.Equal(t, "Run the office.", *onsite.Description)
}

func TestLeverFetchCompanyGone(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	l := NewLever(ts.Client())
	l.BaseURL = ts.URL

	jobs, err := l.Fetch(context.Background(), "gone")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestTitleCaseSlug(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"sierraclub", "Sierraclub"},
		{"green-alliance", "Green Alliance"},
		{"oceanCleanup", "Ocean Cleanup"},
		{"save_the_children", "Save The Children"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleCaseSlug(tt.slug), tt.slug)
	}
}
