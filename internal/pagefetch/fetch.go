// Package pagefetch retrieves arbitrary job posting pages and reduces them
// to the two views the extraction pipeline needs: a cleaned plain-text view
// sized for an LLM prompt and a lightly stripped HTML view for storage.
package pagefetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent identifies the fetcher to origin servers.
const DefaultUserAgent = "Mozilla/5.0 (compatible; NicheJobsBot/1.0; +https://nichejobs.dev/bot)"

// MaxTextLength caps the prompt text view. Long pages are truncated with a
// marker so the extractor knows content was cut.
const MaxTextLength = 20000

// TruncationMarker is appended when the text view is cut at MaxTextLength.
const TruncationMarker = "\n[TRUNCATED]"

// MaxHTMLLength caps the stored HTML view.
const MaxHTMLLength = 50000

// Page is one fetched posting page in both views.
type Page struct {
	URL  string
	Text string
	HTML string
}

// Error wraps a fetch failure with the URL it happened on.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Fetcher retrieves pages over plain HTTP, optionally falling back to a
// headless browser when a page looks JavaScript-rendered.
type Fetcher struct {
	hc        *http.Client
	userAgent string
	browser   Renderer
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) { f.hc = hc }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithBrowser enables the headless-browser fallback for thin pages.
func WithBrowser(r Renderer) Option {
	return func(f *Fetcher) { f.browser = r }
}

// New returns a Fetcher with the default timeout and user agent.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		hc:        &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves a page and builds both views. When the static text view
// comes back suspiciously thin and a browser renderer is configured, the
// page is re-rendered headlessly and re-extracted.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	html, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	page, err := buildPage(rawURL, html)
	if err != nil {
		return nil, err
	}

	if f.browser != nil && looksRendered(page.Text) {
		rendered, rerr := f.browser.Render(ctx, rawURL)
		if rerr == nil {
			if repage, perr := buildPage(rawURL, rendered); perr == nil {
				return repage, nil
			}
		}
	}
	return page, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "build request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	res, err := f.hc.Do(req)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "request failed", Cause: err}
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", &Error{URL: rawURL, Message: fmt.Sprintf("status %d", res.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "parse HTML", Cause: err}
	}
	html, err := doc.Html()
	if err != nil {
		return "", &Error{URL: rawURL, Message: "serialize HTML", Cause: err}
	}
	return html, nil
}

func buildPage(rawURL, html string) (*Page, error) {
	text, err := TextView(html)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "extract text", Cause: err}
	}
	stored, err := HTMLView(html)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "strip HTML", Cause: err}
	}
	return &Page{URL: rawURL, Text: text, HTML: stored}, nil
}

// TextView reduces HTML to whitespace-collapsed visible text for the
// extraction prompt: chrome elements (nav, footer, forms, ...) are removed
// along with non-content tags, and the result is capped at MaxTextLength.
func TextView(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, iframe, svg, nav, footer, header, aside, form").Remove()

	text := collapseWhitespace(doc.Find("body").Text())
	if text == "" {
		text = collapseWhitespace(doc.Text())
	}
	if len(text) > MaxTextLength {
		text = text[:MaxTextLength] + TruncationMarker
	}
	return text, nil
}

// HTMLView strips only non-content tags, keeping the page structure for
// storage, capped at MaxHTMLLength.
func HTMLView(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, iframe, svg").Remove()

	out, err := doc.Html()
	if err != nil {
		return "", err
	}
	if len(out) > MaxHTMLLength {
		out = out[:MaxHTMLLength]
	}
	return out, nil
}

func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
