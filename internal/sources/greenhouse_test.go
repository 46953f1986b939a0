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

func TestGreenhouseFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme/jobs", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("content"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs":[
			{"id":123,"title":"Program Officer","location":{"name":"Remote - UK"},
			 "content":"<p>Do good work.</p>","updated_at":"2026-08-01T00:00:00Z",
			 "absolute_url":"https://boards.greenhouse.io/acme/jobs/123"},
			{"id":456,"title":"Field Coordinator","location":{"name":"Nairobi, Kenya"},
			 "content":"","updated_at":"","absolute_url":"https://boards.greenhouse.io/acme/jobs/456"}
		]}`))
	}))
	defer ts.Close()

	g := NewGreenhouse(ts.Client())
	g.BaseURL = ts.URL

	jobs, err := g.Fetch(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	first := jobs[0]
	assert.Equal(t, "Program Officer", first.Title)
	assert.Equal(t, "gh-acme-123", first.SourceID)
	assert.Equal(t, types.SourceGreenhouse, first.Source)
	require.NotNil(t, first.JobLocationType)
	assert.Equal(t, types.Telecommute, *first.JobLocationType)
	require.NotNil(t, first.Description)
	assert.Contains(t, *first.Description, "Do good work")

	second := jobs[1]
	assert.Equal(t, "gh-acme-456", second.SourceID)
	assert.Nil(t, second.JobLocationType)
	assert.Nil(t, second.Description)
	require.NotNil(t, second.JobLocation)
	assert.Equal(t, "Nairobi, Kenya", *second.JobLocation.Address)
}

func TestGreenhouseFetchBoardGone(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	g := NewGreenhouse(ts.Client())
	g.BaseURL = ts.URL

	jobs, err := g.Fetch(context.Background(), "retired-board")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestGreenhouseFetchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	g := NewGreenhouse(ts.Client())
	g.BaseURL = ts.URL

	_, err := g.Fetch(context.Background(), "acme")
	require.Error(t, err)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestGreenhouseSourceIDStable(t *testing.T) {
	body := `{"jobs":[{"id":99,"title":"Analyst","location":{"name":"Geneva"},
		"content":"x","updated_at":"2026-08-01T00:00:00Z","absolute_url":"https://example.org/99"}]}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	g := NewGreenhouse(ts.Client())
	g.BaseURL = ts.URL

	first, err := g.Fetch(context.Background(), "acme")
	require.NoError(t, err)
	second, err := g.Fetch(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, first[0].SourceID, second[0].SourceID)
}

func TestGreenhouseBoardName(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/acme" {
			_, _ = w.Write([]byte(`{"name":"Acme Foundation"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	g := NewGreenhouse(ts.Client())
	g.BaseURL = ts.URL

	assert.Equal(t, "Acme Foundation", g.BoardName(context.Background(), "acme"))
	assert.Equal(t, "gone", g.BoardName(context.Background(), "gone"))
}
