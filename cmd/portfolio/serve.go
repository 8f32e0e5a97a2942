package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/phuslu/log"

	"StockPortfolio/internal/collector"
	"StockPortfolio/internal/config"
	"StockPortfolio/internal/display"
	"StockPortfolio/internal/notifier"
	"StockPortfolio/internal/recorder"
	"StockPortfolio/internal/scheduler"
)

type serveCmd struct {
	addr     string
	term     bool
	refresh  int
	runFirst bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "refresh the portfolio periodically and serve the dashboard" }
func (*serveCmd) Usage() string {
	return `portfolio serve [-addr <host:port>] [-term] [-refresh <seconds>] [-now]

  Fetches the configured sheet on a schedule and serves the dashboard over
  HTTP. Optionally prints each new snapshot to the terminal, sends
  summaries to Telegram and answers /portfolio and /refresh there.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Overrides server.addr.")
	f.BoolVar(&c.term, "term", false, "Also print every new snapshot to the terminal.")
	f.IntVar(&c.refresh, "refresh", 60, "Dashboard page reload interval in seconds.")
	f.BoolVar(&c.runFirst, "now", false, "Run the first cycle immediately instead of after schedule.initial_delay.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.addr != "" {
		cfg.Server.Addr = c.addr
	}
	if err := c.run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("serve")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *serveCmd) run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	formatter := newFormatter(cfg)
	var sched *scheduler.Scheduler
	configured := cfg.Sheet.URL != ""
	board := display.NewBoard(configured)

	rec := openRecorder(cfg)
	defer rec.Close()

	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, formatter)
	}

	if configured {
		fetcher := collector.NewFetcher(cfg.Sheet.URL, cfg.Sheet.Timeout.Std(), cfg.Proxy)
		log.Info().Str("fetcher", fetcher.Name()).Str("source", cfg.Sheet.URL).Msg("data source")

		iv := scheduler.Intervals{
			Initial: cfg.Schedule.InitialDelay.Std(),
			Update:  cfg.Schedule.UpdateInterval.Std(),
			Retry:   cfg.Schedule.RetryDelay.Std(),
		}
		if c.runFirst {
			iv.Initial = 0
		}
		sched = scheduler.NewScheduler(ctx, collector.NewCollector(fetcher), rec, cfg.Sheet.URL, cfg.Aliases, iv)
		sched.AddPresenter(board)
		if c.term {
			tp, err := display.NewTerminalPresenter(os.Stdout, formatter, 0)
			if err != nil {
				return err
			}
			sched.AddPresenter(tp)
		}
		if tn != nil {
			sched.AddPresenter(tn)
		}
		sched.Start()
	} else {
		log.Warn().Msg("no sheet URL configured, dashboard will ask for one")
	}

	if tn != nil {
		cmds := &notifier.Commands{Board: board, Formatter: formatter}
		if sched != nil {
			cmds.Refresh = sched.RunNow
		}
		go tn.StartPolling(ctx, cmds.Handle)
		log.Info().Msg("telegram notifications and commands enabled")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           display.NewHandler(board, formatter, display.PageOptions{Refresh: c.refresh, MaxWidth: cfg.Display.MaxWidth}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("dashboard listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var listenErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received, stopping")
	case listenErr = <-errCh:
	}

	// No cycle may start once shutdown begins.
	if sched != nil {
		sched.Stop()
	}
	if listenErr != nil {
		return fmt.Errorf("listen: %w", listenErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("stopped")
	return nil
}

// openRecorder returns the SQLite audit log when configured, otherwise a no-op.
// An unusable database degrades to the no-op recorder.
func openRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}
