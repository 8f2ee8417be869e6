// Package culler finds bookmarks whose URLs no longer resolve.
package culler

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nikbrunner/bmpage/internal/model"
)

// Status represents the health status of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "ok"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single bookmark.
type Result struct {
	Entry      model.Entry
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	Error      string // Error message for unreachable URLs
}

// ProgressFunc is called after each URL is checked.
// completed is the number of URLs checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// Checker checks bookmark URLs with a bounded worker pool.
type Checker struct {
	client      *http.Client
	concurrency int
	exclude     map[string]bool
	logger      logrus.FieldLogger
}

// CheckerParams holds parameters for creating a Checker.
type CheckerParams struct {
	Concurrency int           // defaults to 10
	Timeout     time.Duration // per request, defaults to 10s
	// ExcludeDomains lists hosts where 404 means "possibly private" rather
	// than dead. Subdomains match too.
	ExcludeDomains []string
	Logger         logrus.FieldLogger // optional
	Transport      http.RoundTripper  // optional
}

// NewChecker creates a Checker with defaults filled in.
func NewChecker(params CheckerParams) *Checker {
	concurrency := params.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := params.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	exclude := make(map[string]bool)
	for _, domain := range params.ExcludeDomains {
		exclude[strings.ToLower(domain)] = true
	}

	return &Checker{
		client: &http.Client{
			Timeout:   timeout,
			Transport: params.Transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Follow redirects but limit to 10
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		concurrency: concurrency,
		exclude:     exclude,
		logger:      logger,
	}
}

// Check checks every bookmark in entries and returns one result per bookmark,
// in input order. Folders are skipped. Cancelling ctx marks the remaining
// URLs unreachable.
func (c *Checker) Check(ctx context.Context, entries []model.Entry, onProgress ProgressFunc) []Result {
	var bookmarks []model.Entry
	for _, e := range entries {
		if !e.IsFolder() {
			bookmarks = append(bookmarks, e)
		}
	}
	if len(bookmarks) == 0 {
		return nil
	}

	// Suppress noisy HTTP client logging (protocol errors, unsolicited responses, etc.)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	results := make([]Result, len(bookmarks))
	jobs := make(chan int, len(bookmarks))
	var wg sync.WaitGroup

	// Progress tracking
	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < c.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = c.checkURL(ctx, bookmarks[idx])

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(bookmarks))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range bookmarks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// checkURL checks a single URL and returns the result.
func (c *Checker) checkURL(ctx context.Context, e model.Entry) Result {
	result := Result{Entry: e}

	// Try HEAD first (faster, less bandwidth)
	resp, err := c.do(ctx, http.MethodHead, e.URL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if err == nil {
			resp.Body.Close()
		}
		// Some servers don't support HEAD
		resp, err = c.do(ctx, http.MethodGet, e.URL)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			c.logger.WithFields(logrus.Fields{"id": e.ID, "url": e.URL}).WithError(err).Debug("url unreachable")
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if c.isExcludedDomain(e.URL) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 5xx, 403 and friends may be temporary or need auth
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func (c *Checker) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

// isExcludedDomain checks if the URL's host or one of its parents is excluded.
func (c *Checker) isExcludedDomain(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for domain := range c.exclude {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// DeadEntries returns the entries of results whose URL is gone.
func DeadEntries(results []Result) []model.Entry {
	var dead []model.Entry
	for _, r := range results {
		if r.Status == Dead {
			dead = append(dead, r.Entry)
		}
	}
	return dead
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "context canceled"):
		return "Cancelled"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
