// internal/fetcher/fetcher.go

// Package fetcher retrieves source pages over HTTP with politeness delays,
// retry with exponential backoff, transparent gzip handling and charset
// normalization to UTF-8.
package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"

	"github.com/hwcatalog/harvester/internal/config"
	"github.com/hwcatalog/harvester/internal/logging"
)

// FetchError reports a failed retrieval after all retries were spent.
type FetchError struct {
	URL      string
	Reason   string // "timeout", "http_status" or "network"
	Status   int    // last HTTP status, when Reason is "http_status"
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Reason == "http_status" {
		return fmt.Sprintf("fetch %s: HTTP %d after %d attempts", e.URL, e.Status, e.Attempts)
	}
	return fmt.Sprintf("fetch %s: %s after %d attempts: %v", e.URL, e.Reason, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher is a reusable HTTP retriever. Safe for concurrent use.
type Fetcher struct {
	httpClient *http.Client
	cfg        config.FetchConfig
	limiter    *rate.Limiter
	log        logging.Logger

	uaMu  sync.Mutex
	uaIdx int

	// sleep is swapped out by tests to avoid real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// New builds a Fetcher from the fetch section of the configuration.
func New(cfg config.FetchConfig, log logging.Logger) *Fetcher {
	if len(cfg.UserAgents) == 0 {
		cfg.UserAgents = defaultUserAgents()
	}
	timeout := time.Duration(cfg.TimeoutSeconds * float64(time.Second))
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(1), 2),
		log:     log,
		sleep:   sleepCtx,
	}
}

// Fetch retrieves a URL and returns its body as UTF-8 text. Each attempt is
// preceded by a jittered politeness delay; failed attempts back off by
// 2^attempt seconds. Exhausting the retry budget yields a *FetchError whose
// Reason classifies the last failure.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	if _, err := url.Parse(targetURL); err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", targetURL, err)
	}

	attempts := f.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	lastStatus := 0

	for attempt := 0; attempt < attempts; attempt++ {
		if err := f.sleep(ctx, f.politenessDelay()); err != nil {
			return "", &FetchError{URL: targetURL, Reason: "timeout", Attempts: attempt, Err: err}
		}
		if err := f.limiter.Wait(ctx); err != nil {
			return "", &FetchError{URL: targetURL, Reason: "timeout", Attempts: attempt, Err: err}
		}

		body, status, err := f.attempt(ctx, targetURL)
		if err == nil && status >= 200 && status < 300 {
			return body, nil
		}

		if err != nil {
			lastErr = err
			f.log.Warnf("fetch attempt %d/%d for %s failed: %v", attempt+1, attempts, targetURL, err)
		} else {
			lastStatus = status
			lastErr = fmt.Errorf("HTTP %d", status)
			f.log.Warnf("fetch attempt %d/%d for %s: HTTP %d", attempt+1, attempts, targetURL, status)
			if !retryableStatus(status) {
				break
			}
		}

		if attempt < attempts-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			if err := f.sleep(ctx, backoff); err != nil {
				return "", &FetchError{URL: targetURL, Reason: "timeout", Attempts: attempt + 1, Err: err}
			}
		}
	}

	fe := &FetchError{URL: targetURL, Reason: classify(lastErr), Attempts: attempts, Err: lastErr}
	if lastStatus != 0 && fe.Reason != "timeout" {
		fe.Reason = "http_status"
		fe.Status = lastStatus
	}
	return "", fe
}

func (f *Fetcher) attempt(ctx context.Context, targetURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}
	f.setHeaders(req)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return "", resp.StatusCode, nil
	}

	body, err := decodeBody(resp)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("failed to decode body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// setHeaders applies browser-like defaults, the configured extras, and the
// next user agent in rotation.
func (f *Fetcher) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.nextUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Connection", "keep-alive")

	for key, value := range f.cfg.Headers {
		req.Header.Set(key, value)
	}
}

func (f *Fetcher) nextUserAgent() string {
	f.uaMu.Lock()
	defer f.uaMu.Unlock()
	ua := f.cfg.UserAgents[f.uaIdx]
	f.uaIdx = (f.uaIdx + 1) % len(f.cfg.UserAgents)
	return ua
}

// politenessDelay draws a uniform delay from the configured range.
func (f *Fetcher) politenessDelay() time.Duration {
	min, max := f.cfg.DelayMinSeconds, f.cfg.DelayMaxSeconds
	if max <= min {
		return time.Duration(min * float64(time.Second))
	}
	return time.Duration((min + rand.Float64()*(max-min)) * float64(time.Second))
}

// decodeBody unwraps gzip when present and transcodes the document to UTF-8.
// The declared Content-Type charset wins; otherwise the body is sniffed.
func decodeBody(resp *http.Response) (string, error) {
	var reader io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("bad gzip stream: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	if name := declaredCharset(resp.Header.Get("Content-Type")); name != "" && !isUTF8Name(name) {
		if enc, err := htmlindex.Get(name); err == nil && enc != nil {
			decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
			if err == nil {
				return string(decoded), nil
			}
		}
	}

	// No usable declaration: sniff from the content itself.
	enc, _, certain := charset.DetermineEncoding(raw, resp.Header.Get("Content-Type"))
	if certain || looksNonUTF8(raw) {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err == nil {
			return string(decoded), nil
		}
	}
	return string(raw), nil
}

func declaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

func isUTF8Name(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return n == "utf-8" || n == "utf8" || n == "ascii" || n == "us-ascii"
}

// looksNonUTF8 reports whether the prefix contains bytes invalid as UTF-8.
func looksNonUTF8(raw []byte) bool {
	limit := len(raw)
	if limit > 1024 {
		limit = 1024
	}
	return !utf8.Valid(raw[:limit])
}

func classify(err error) string {
	if err == nil {
		return "network"
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	if strings.Contains(err.Error(), "Client.Timeout") {
		return "timeout"
	}
	return "network"
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func defaultUserAgents() []string {
	return []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	}
}
