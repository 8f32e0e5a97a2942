package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"StockPortfolio/internal/sheet"
)

type parseCmd struct {
	format string
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "parse a CSV export from a file or stdin" }
func (*parseCmd) Usage() string {
	return `portfolio parse [-format markdown|term|json] [<file.csv> | -]

  Parses a sheet exported as CSV without any network access and prints the
  snapshot. Reads stdin when the file is "-" or omitted.
`
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", formatJSON, "Output format (markdown, term, json).")
}

func (c *parseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := checkFormat(c.format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "parse takes at most one file")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var data []byte
	if name := f.Arg(0); name == "" || name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	snap, err := sheet.Parse(string(data))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := writeSnapshot(os.Stdout, c.format, snap, newFormatter(cfg), nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
