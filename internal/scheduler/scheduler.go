package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"StockPortfolio/internal/collector"
	"StockPortfolio/internal/model"
	"StockPortfolio/internal/recorder"
)

// Presenter receives the outcome of every refresh cycle.
type Presenter interface {
	Present(ctx context.Context, out model.Outcome)
}

// Intervals controls when cycles run.
type Intervals struct {
	Initial time.Duration // before the first cycle; zero runs it at Start
	Update  time.Duration // after a successful cycle
	Retry   time.Duration // after a failed cycle
}

// Scheduler runs refresh cycles on a cron entry that is re-registered after
// every cycle with a delay chosen from its outcome.
type Scheduler struct {
	Cron       *cron.Cron
	Collector  *collector.Collector
	Presenters []Presenter
	Recorder   recorder.Recorder
	SheetURL   string
	Aliases    model.AliasTable
	Intervals  Intervals
	Ctx        context.Context

	mu      sync.Mutex
	entry   cron.EntryID
	job     cron.Job
	cycleMu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, rec recorder.Recorder, sheetURL string, aliases model.AliasTable, iv Intervals) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	s := &Scheduler{
		Cron:      cron.New(cron.WithLogger(cronLogger{})),
		Collector: col,
		Recorder:  rec,
		SheetURL:  sheetURL,
		Aliases:   aliases,
		Intervals: iv,
		Ctx:       ctx,
	}
	s.job = cron.NewChain(cron.SkipIfStillRunning(cronLogger{})).Then(cron.FuncJob(s.tick))
	return s
}

// AddPresenter registers p. Presenters are called in registration order.
func (s *Scheduler) AddPresenter(p Presenter) {
	s.Presenters = append(s.Presenters, p)
}

// Start schedules the first cycle after the initial delay and starts cron.
// With no initial delay the first cycle starts right away in the background.
func (s *Scheduler) Start() {
	s.Cron.Start()
	if s.Intervals.Initial <= 0 {
		go s.job.Run()
	} else {
		s.reschedule(s.Intervals.Initial)
	}
	log.Info().Dur("initial_delay", s.Intervals.Initial).Msg("scheduler started")
}

// Stop stops cron and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.cycleMu.Lock()
	s.cycleMu.Unlock()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes one cycle synchronously without touching the schedule.
// It waits for a scheduled cycle that is already running.
func (s *Scheduler) RunNow(ctx context.Context) model.Outcome {
	return s.runCycle(ctx)
}

// NextRun reports when the next cycle is due, or the zero time when none is scheduled.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	id := s.entry
	s.mu.Unlock()
	if id == 0 {
		return time.Time{}
	}
	return s.Cron.Entry(id).Next
}

func (s *Scheduler) tick() {
	if s.Ctx.Err() != nil {
		s.unschedule()
		return
	}
	out := s.runCycle(s.Ctx)
	if s.Ctx.Err() != nil {
		s.unschedule()
		return
	}
	s.reschedule(s.nextDelay(out))
}

func (s *Scheduler) runCycle(ctx context.Context) model.Outcome {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	req := model.FetchRequest{
		ID:       uuid.NewString(),
		SheetURL: s.SheetURL,
		Aliases:  s.Aliases.Clone(),
	}
	started := time.Now()
	out := s.Collector.Collect(ctx, req)
	elapsed := time.Since(started)

	switch o := out.(type) {
	case *model.FetchSuccess:
		log.Info().Str("request", req.ID).Int("stocks", len(o.Snapshot.Stocks)).
			Bool("summary", !o.Snapshot.Summary.IsEmpty()).Dur("elapsed", elapsed).Msg("portfolio refreshed")
	case *model.FetchFailure:
		log.Error().Str("request", req.ID).Err(o.Err).Dur("elapsed", elapsed).Msg("portfolio refresh failed")
	}

	for _, p := range s.Presenters {
		p.Present(ctx, out)
	}

	if err := s.Recorder.RecordCycle(recorder.NewCycleEvent(out, req.SheetURL, started, elapsed)); err != nil {
		log.Error().Err(err).Str("request", req.ID).Msg("record cycle")
	}
	return out
}

func (s *Scheduler) nextDelay(out model.Outcome) time.Duration {
	if _, failed := out.(*model.FetchFailure); failed {
		return s.Intervals.Retry
	}
	return s.Intervals.Update
}

func (s *Scheduler) reschedule(delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entry != 0 {
		s.Cron.Remove(s.entry)
	}
	s.entry = s.Cron.Schedule(cron.Every(delay), s.job)
	log.Debug().Dur("delay", delay).Msg("next cycle scheduled")
}

// unschedule drops the cron entry once the scheduler context is done.
func (s *Scheduler) unschedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entry != 0 {
		s.Cron.Remove(s.entry)
		s.entry = 0
		log.Debug().Msg("scheduler context done, no further cycles")
	}
}
