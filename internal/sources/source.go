// Package sources implements the upstream job source adapters. Every
// adapter converts one external wire format into the canonical RawJob
// shape and derives a deterministic source_id, so repeated runs rediscover
// the same listings under the same upsert key.
//
// Shared error policy: a 404 from a board lookup means the board was
// renamed or retired, so adapters return an empty list and warn. A 429
// means a quota ran out and gets the same treatment. Anything else
// non-2xx propagates as a StatusError for the orchestrator to record.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"
	"time"
)

const userAgent = "Mozilla/5.0 (compatible; NicheJobs/1.0; +https://nichejobs.dev)"

// DefaultTimeout bounds every adapter HTTP call. No adapter retries; a
// failed call is recorded and the run proceeds.
const DefaultTimeout = 20 * time.Second

// NewHTTPClient returns the client adapters share within a run.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// StatusError is a non-2xx upstream response that is neither a board-gone
// 404 nor a quota 429.
type StatusError struct {
	Source     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d for %s", e.Source, e.StatusCode, e.URL)
}

// getJSON issues a GET and decodes the body into v. The caller inspects
// the returned status code before trusting v.
func getJSON(ctx context.Context, hc *http.Client, url string, v any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		return res.StatusCode, nil
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return res.StatusCode, fmt.Errorf("decode %s: %w", url, err)
	}
	return res.StatusCode, nil
}

// hashString returns a short stable base-36 digest of s, used to build
// deterministic source_ids from URLs.
func hashString(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}
