package collector

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Fetcher retrieves the raw CSV text of a sheet.
type Fetcher interface {
	FetchCSV(ctx context.Context, source string) (string, error)
	Name() string
}

// FetchError reports a sheet that could not be retrieved: either the request
// failed outright or the server answered with a non-success status.
type FetchError struct {
	Source     string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		if e.Body != "" {
			return fmt.Sprintf("fetch %s: status %d, body: %s", e.Source, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("fetch %s: status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetcher returns a FileFetcher for file:// URLs and bare paths, and an
// HTTPFetcher otherwise.
func NewFetcher(source string, timeout time.Duration, proxyURL string) Fetcher {
	if isRemote(source) {
		return NewHTTPFetcher(timeout, proxyURL)
	}
	return &FileFetcher{}
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
