package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/phuslu/log"

	"StockPortfolio/internal/config"
	"StockPortfolio/internal/display"
)

var configPath = flag.String("config", defaultConfigPath(), "Path to the YAML or TOML config file")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&serveCmd{}, "")
	commander.Register(&fetchCmd{}, "")
	commander.Register(&parseCmd{}, "")
	commander.Register(&historyCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

// loadConfig loads and validates the config, then configures logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.Logging.Level)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(level string) {
	log.DefaultLogger = log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			ColorOutput:    log.IsTerminal(os.Stderr.Fd()),
			EndWithMessage: true,
			Writer:         os.Stderr,
		},
	}
}

func newFormatter(cfg *config.Config) *display.Formatter {
	return &display.Formatter{
		Columns:        cfg.Display.TableColumns,
		ShowSummary:    cfg.ShowSummary(),
		ShowTable:      cfg.ShowTable(),
		CurrencySymbol: display.CurrencySymbol(cfg.Display.Currency, cfg.Display.CurrencySymbol),
		Aliases:        cfg.Aliases,
	}
}
