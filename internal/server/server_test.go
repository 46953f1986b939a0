package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nichejobs/internal/niche"
	"github.com/jonathan/nichejobs/internal/store"
	"github.com/jonathan/nichejobs/internal/types"
)

type fakeReader struct {
	jobs    []types.Job
	total   int
	lastF   store.Filters
	byID    map[string]*types.Job
	listErr error
}

func (f *fakeReader) ListJobs(ctx context.Context, filters store.Filters) ([]types.Job, int, error) {
	f.lastF = filters
	return f.jobs, f.total, f.listErr
}

func (f *fakeReader) GetJob(ctx context.Context, id string) (*types.Job, error) {
	if job, ok := f.byID[id]; ok {
		return job, nil
	}
	return nil, store.ErrNotFound
}

func testRegistry(t *testing.T) *niche.Registry {
	t.Helper()
	dir := t.TempDir()
	cfg := `id: ngo
name: NGO Jobs
tags:
  - tag: grant-management
    keywords: ["grant manager"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ngo.yml"), []byte(cfg), 0o644))
	reg, err := niche.LoadDir(dir)
	require.NoError(t, err)
	return reg
}

func newTestServer(t *testing.T, reader *fakeReader) *httptest.Server {
	t.Helper()
	srv := New(Config{Port: 0}, reader, testRegistry(t))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
	return res.StatusCode
}

func TestListJobsFiltersAndPagination(t *testing.T) {
	reader := &fakeReader{
		jobs: []types.Job{{
			ID:     "1",
			Niche:  "ngo",
			Status: types.StatusActive,
			RawJob: types.RawJob{Title: "Grants Manager"},
		}},
		total: 41,
	}
	ts := newTestServer(t, reader)

	var body jobsResponse
	status := getJSON(t, ts.URL+"/jobs?niche=ngo&q=grants&tags=grant-management,field-work&remote=true&page=3&limit=10", &body)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 41, body.Total)
	assert.Equal(t, 3, body.Page)
	require.Len(t, body.Jobs, 1)
	assert.Equal(t, "Grants Manager", body.Jobs[0].Title)

	f := reader.lastF
	assert.Equal(t, "ngo", f.Niche)
	assert.Equal(t, types.StatusActive, f.Status)
	assert.Equal(t, "grants", f.Query)
	assert.Equal(t, []string{"grant-management", "field-work"}, f.Tags)
	require.NotNil(t, f.Remote)
	assert.True(t, *f.Remote)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 20, f.Offset)
}

func TestListJobsDefaults(t *testing.T) {
	reader := &fakeReader{}
	ts := newTestServer(t, reader)

	var body jobsResponse
	status := getJSON(t, ts.URL+"/jobs", &body)

	require.Equal(t, http.StatusOK, status)
	assert.NotNil(t, body.Jobs, "empty result is [], not null")
	assert.Equal(t, types.StatusActive, reader.lastF.Status, "only active jobs by default")
	assert.Equal(t, store.DefaultLimit, reader.lastF.Limit)
	assert.Zero(t, reader.lastF.Offset)
}

func TestListJobsBadParams(t *testing.T) {
	ts := newTestServer(t, &fakeReader{})

	for _, path := range []string{
		"/jobs?remote=maybe",
		"/jobs?page=0",
		"/jobs?limit=-5",
	} {
		var body map[string]string
		status := getJSON(t, ts.URL+path, &body)
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.NotEmpty(t, body["error"], path)
	}
}

func TestGetJob(t *testing.T) {
	const id = "0b86a2f1-6f0e-4a3d-9c6e-2b1d4f8a9c01"
	reader := &fakeReader{byID: map[string]*types.Job{
		id: {ID: id, RawJob: types.RawJob{Title: "Field Coordinator"}},
	}}
	ts := newTestServer(t, reader)

	var job types.Job
	status := getJSON(t, ts.URL+"/jobs/"+id, &job)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Field Coordinator", job.Title)

	var errBody map[string]string
	status = getJSON(t, ts.URL+"/jobs/93e1f2aa-0000-4000-8000-000000000000", &errBody)
	assert.Equal(t, http.StatusNotFound, status)

	status = getJSON(t, ts.URL+"/jobs/not-a-uuid", &errBody)
	assert.Equal(t, http.StatusNotFound, status, "malformed ids never reach the store")
}

func TestGetNiche(t *testing.T) {
	ts := newTestServer(t, &fakeReader{})

	var cfg types.NicheConfig
	status := getJSON(t, ts.URL+"/niches/ngo", &cfg)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "NGO Jobs", cfg.Name)

	var errBody map[string]string
	status = getJSON(t, ts.URL+"/niches/nope", &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, errBody["error"], "unknown niche")
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &fakeReader{})

	var body map[string]string
	status := getJSON(t, ts.URL+"/health", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestCORSHeaders(t *testing.T) {
	ts := newTestServer(t, &fakeReader{})

	res, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}
