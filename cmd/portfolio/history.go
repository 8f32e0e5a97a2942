package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"StockPortfolio/internal/display"
	"StockPortfolio/internal/recorder"
)

type historyCmd struct {
	limit int
	plain bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recent refresh cycles from the audit log" }
func (*historyCmd) Usage() string {
	return `portfolio history [-n <count>] [-plain]

  Lists the most recent refresh cycles recorded in database.sqlite_path.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Number of cycles to list.")
	f.BoolVar(&c.plain, "plain", false, "Print markdown instead of rendering it.")
}

func (c *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if cfg.Database.SQLitePath == "" {
		fmt.Fprintln(os.Stderr, "no audit log: set database.sqlite_path or SQLITE_PATH")
		return subcommands.ExitFailure
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer rec.Close()

	cycles, err := rec.Recent(c.limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	md := historyMarkdown(cycles)
	if !c.plain {
		if out, err := display.RenderTerminal(md, 0); err == nil {
			md = out
		}
	}
	fmt.Print(md)
	return subcommands.ExitSuccess
}

func historyMarkdown(cycles []recorder.CycleEvent) string {
	if len(cycles) == 0 {
		return "_no cycles recorded_\n"
	}
	var b strings.Builder
	b.WriteString("| Time | Status | Stocks | Summary | Duration | Message |\n")
	b.WriteString("| --- | --- | ---: | --- | ---: | --- |\n")
	for _, evt := range cycles {
		summary := "no"
		if evt.SummaryPresent {
			summary = "yes"
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %s | %s | %s |\n",
			evt.At.Format("2006-01-02 15:04:05"), evt.Status, evt.StockCount, summary,
			evt.Duration, strings.ReplaceAll(evt.Message, "|", `\|`)))
	}
	return b.String()
}
