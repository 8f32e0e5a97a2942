package collector

import (
	"context"
	"os"
	"strings"
)

// FileFetcher reads a sheet exported to the local filesystem.
type FileFetcher struct{}

func (f *FileFetcher) Name() string { return "file" }

func (f *FileFetcher) FetchCSV(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{Source: source, Err: err}
	}
	data, err := os.ReadFile(strings.TrimPrefix(source, "file://"))
	if err != nil {
		return "", &FetchError{Source: source, Err: err}
	}
	return string(data), nil
}

// StaticFetcher returns fixed text or a fixed error, for development and testing.
type StaticFetcher struct {
	Text string
	Err  error
}

func (s *StaticFetcher) Name() string { return "static" }

func (s *StaticFetcher) FetchCSV(_ context.Context, _ string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Text, nil
}
