package collector

import (
	"context"
	"errors"
	"time"

	"github.com/phuslu/log"

	"StockPortfolio/internal/model"
	"StockPortfolio/internal/sheet"
)

// Collector runs one fetch and parse cycle per request.
type Collector struct {
	Fetcher Fetcher
	Now     func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher, Now: time.Now}
}

// Collect fetches the sheet named by req and parses it. Failures are returned
// as *model.FetchFailure, never as a partial snapshot.
func (c *Collector) Collect(ctx context.Context, req model.FetchRequest) model.Outcome {
	start := c.Now()
	log.Debug().Str("request", req.ID).Str("fetcher", c.Fetcher.Name()).Str("source", req.SheetURL).Msg("fetching sheet")

	text, err := c.Fetcher.FetchCSV(ctx, req.SheetURL)
	if err != nil {
		var fe *FetchError
		if !errors.As(err, &fe) {
			err = &FetchError{Source: req.SheetURL, Err: err}
		}
		return &model.FetchFailure{RequestID: req.ID, Message: err.Error(), Err: err}
	}
	log.Debug().Str("request", req.ID).Int("bytes", len(text)).Msg("sheet received")

	snap, err := sheet.Parse(text)
	if err != nil {
		return &model.FetchFailure{RequestID: req.ID, Message: err.Error(), Err: err}
	}
	snap.Source = req.SheetURL
	snap.FetchedAt = c.Now()

	log.Debug().Str("request", req.ID).Int("stocks", len(snap.Stocks)).
		Dur("elapsed", snap.FetchedAt.Sub(start)).Msg("sheet parsed")
	return &model.FetchSuccess{RequestID: req.ID, Snapshot: snap, Aliases: req.Aliases}
}
