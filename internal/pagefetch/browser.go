package pagefetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the text length below which a statically fetched page
// is assumed to be a JavaScript-rendered shell worth re-rendering.
const MinContentLength = 500

// BrowserTimeout bounds one headless render.
const BrowserTimeout = 30 * time.Second

func looksRendered(text string) bool {
	return len(strings.TrimSpace(text)) < MinContentLength
}

// Renderer renders a URL to HTML. Satisfied by ChromeRenderer; tests
// substitute fakes.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// ChromeRenderer renders pages in headless Chrome via chromedp. Requires
// Chrome or Chromium on the host.
type ChromeRenderer struct {
	// Timeout per render; BrowserTimeout when zero.
	Timeout time.Duration
}

// Render navigates to url, waits for the page to settle, and returns the
// rendered document HTML.
func (c *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	log.Printf("[pagefetch] rendering %s in headless browser", url)

	timeout := c.Timeout
	if timeout == 0 {
		timeout = BrowserTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to fill the page in.
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser render %s: %w", url, err)
	}
	return html, nil
}
