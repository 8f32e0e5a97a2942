package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxSheetBytes bounds how much of a response body is read.
const maxSheetBytes = 8 << 20

// HTTPFetcher downloads a published sheet over HTTP(S).
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPFetcher creates a fetcher with the given timeout and optional proxy.
func NewHTTPFetcher(timeout time.Duration, proxyURL string) *HTTPFetcher {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		UserAgent: "StockPortfolio/1.0",
	}
}

func (f *HTTPFetcher) Name() string { return "http" }

// FetchCSV issues a single GET; it does not retry.
func (f *HTTPFetcher) FetchCSV(ctx context.Context, source string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return "", &FetchError{Source: source, Err: err}
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", &FetchError{Source: source, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &FetchError{Source: source, StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSheetBytes+1))
	if err != nil {
		return "", &FetchError{Source: source, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > maxSheetBytes {
		return "", &FetchError{Source: source, Err: fmt.Errorf("sheet larger than %d bytes", maxSheetBytes)}
	}
	return string(body), nil
}
