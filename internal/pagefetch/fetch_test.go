package pagefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<html><head>
<script>window.track()</script>
<style>body{color:red}</style>
</head><body>
<nav>Home | Jobs | About</nav>
<header>NGO Careers</header>
<main><h1>Program   Officer</h1>
<p>Support   grant programs in East Africa.</p></main>
<form><input name="q"></form>
<footer>© 2026</footer>
</body></html>`

func TestFetchBuildsBothViews(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(samplePage))
	}))
	defer ts.Close()

	f := New(WithHTTPClient(ts.Client()))
	page, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Contains(t, page.Text, "Program Officer")
	assert.Contains(t, page.Text, "Support grant programs in East Africa.")
	assert.NotContains(t, page.Text, "window.track")
	assert.NotContains(t, page.Text, "Home | Jobs")
	assert.NotContains(t, page.Text, "© 2026")

	assert.Contains(t, page.HTML, "<nav>")
	assert.NotContains(t, page.HTML, "window.track")
	assert.NotContains(t, page.HTML, "color:red")
}

func TestFetchInvalidURL(t *testing.T) {
	f := New()
	_, err := f.Fetch(context.Background(), "not a url")
	require.Error(t, err)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
}

func TestFetchNonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	f := New(WithHTTPClient(ts.Client()))
	_, err := f.Fetch(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestTextViewTruncates(t *testing.T) {
	long := "<html><body><p>" + strings.Repeat("words and more words ", 2000) + "</p></body></html>"
	text, err := TextView(long)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(text), MaxTextLength+len(TruncationMarker))
	assert.True(t, strings.HasSuffix(text, TruncationMarker))
}

type fakeRenderer struct {
	html  string
	calls int
}

func (f *fakeRenderer) Render(ctx context.Context, url string) (string, error) {
	f.calls++
	return f.html, nil
}

func TestFetchBrowserFallbackForThinPages(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="root"></div></body></html>`))
	}))
	defer ts.Close()

	renderer := &fakeRenderer{html: "<html><body><main>" +
		strings.Repeat("Rendered job description. ", 40) + "</main></body></html>"}
	f := New(WithHTTPClient(ts.Client()), WithBrowser(renderer))

	page, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls)
	assert.Contains(t, page.Text, "Rendered job description.")
}

func TestFetchNoBrowserFallbackForFullPages(t *testing.T) {
	full := "<html><body><main>" + strings.Repeat("Plenty of static content here. ", 40) + "</main></body></html>"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(full))
	}))
	defer ts.Close()

	renderer := &fakeRenderer{}
	f := New(WithHTTPClient(ts.Client()), WithBrowser(renderer))

	_, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Zero(t, renderer.calls)
}
