// internal/fetcher/browser.go
package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/hwcatalog/harvester/internal/logging"
)

// Renderer retrieves pages through headless Chrome for sources whose markup
// is assembled by JavaScript. One Renderer holds one browser allocator and is
// reused across navigations.
type Renderer struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
	log         logging.Logger
}

// NewRenderer starts a headless Chrome allocator.
func NewRenderer(timeout time.Duration, log logging.Logger) *Renderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox, // Docker environments
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Renderer{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		timeout:     timeout,
		log:         log,
	}
}

// Render navigates to the URL, waits for the document body and returns the
// fully rendered markup.
func (r *Renderer) Render(ctx context.Context, targetURL string) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(r.allocCtx)
	defer cancelTab()

	runCtx, cancelRun := context.WithTimeout(tabCtx, r.timeout)
	defer cancelRun()

	r.log.Debugf("rendering %s via headless browser", targetURL)

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		// Respect the caller's context too.
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", &FetchError{URL: targetURL, Reason: classify(err), Attempts: 1,
			Err: fmt.Errorf("browser render failed: %w", err)}
	}
	return html, nil
}

// Close shuts down the browser allocator.
func (r *Renderer) Close() {
	r.allocCancel()
}
