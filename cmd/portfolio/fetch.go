package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"StockPortfolio/internal/collector"
	"StockPortfolio/internal/model"
	"StockPortfolio/internal/scheduler"
)

type fetchCmd struct {
	format string
	url    string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch the portfolio sheet once and print it" }
func (*fetchCmd) Usage() string {
	return `portfolio fetch [-url <sheet_csv_url>] [-format markdown|term|json]

  Runs a single refresh cycle against the configured sheet and prints the
  resulting dashboard. Exits non-zero when the fetch or parse fails.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", formatMarkdown, "Output format (markdown, term, json).")
	f.StringVar(&c.url, "url", "", "Sheet CSV URL or path. Overrides sheet.url.")
}

func (c *fetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkFormat(c.format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.url != "" {
		cfg.Sheet.URL = c.url
	}
	if cfg.Sheet.URL == "" {
		fmt.Fprintln(os.Stderr, "no sheet URL: set sheet.url, SHEET_URL or -url")
		return subcommands.ExitFailure
	}

	rec := openRecorder(cfg)
	defer rec.Close()

	col := collector.NewCollector(collector.NewFetcher(cfg.Sheet.URL, cfg.Sheet.Timeout.Std(), cfg.Proxy))
	sched := scheduler.NewScheduler(ctx, col, rec, cfg.Sheet.URL, cfg.Aliases, scheduler.Intervals{})

	switch out := sched.RunNow(ctx).(type) {
	case *model.FetchSuccess:
		if err := writeSnapshot(os.Stdout, c.format, out.Snapshot, newFormatter(cfg), out.Aliases); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	case *model.FetchFailure:
		fmt.Fprintln(os.Stderr, out.Message)
	}
	return subcommands.ExitFailure
}
