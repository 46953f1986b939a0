package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nichejobs/internal/types"
)

func TestSerperSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-API-KEY"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ngo program officer jobs", body["q"])
		assert.EqualValues(t, 30, body["num"])

		_, _ = w.Write([]byte(`{"organic":[
			{"title":"Program Officer at Oxfam","link":"https://example.org/jobs/program-officer",
			 "snippet":"Remote role supporting grants.","date":"2 days ago"},
			{"title":"What NGOs do","link":"https://example.org/blog/what-ngos-do",
			 "snippet":"An explainer article."}
		]}`))
	}))
	defer ts.Close()

	s := NewSerper(ts.Client(), "secret")
	s.BaseURL = ts.URL

	jobs, err := s.Search(context.Background(), "ngo program officer jobs")
	require.NoError(t, err)
	require.Len(t, jobs, 1, "non-listing results are filtered out")

	job := jobs[0]
	assert.Equal(t, types.SourceSerper, job.Source)
	assert.Equal(t, "Oxfam", job.HiringOrganization.Name)
	assert.Contains(t, job.SourceID, "serp-")
	require.NotNil(t, job.JobLocationType, "snippet mentions remote")
	require.NotNil(t, job.DatePosted)
	assert.Equal(t, "2 days ago", *job.DatePosted)
}

func TestSerperMissingKey(t *testing.T) {
	s := NewSerper(nil, "")
	s.BaseURL = "http://127.0.0.1:0" // must never be dialed

	jobs, err := s.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.False(t, s.Enabled())
}

func TestSerperQuotaExhausted(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	s := NewSerper(ts.Client(), "secret")
	s.BaseURL = ts.URL

	jobs, err := s.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestSerperSourceIDStable(t *testing.T) {
	body := `{"organic":[{"title":"Grants Manager job","link":"https://example.org/jobs/1","snippet":"x"}]}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	s := NewSerper(ts.Client(), "secret")
	s.BaseURL = ts.URL

	first, err := s.Search(context.Background(), "q")
	require.NoError(t, err)
	second, err := s.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, first[0].SourceID, second[0].SourceID)
}
