package scheduler

import (
	"fmt"

	"github.com/phuslu/log"
)

// cronLogger routes robfig/cron messages to phuslu/log.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	withFields(log.Debug(), keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	withFields(log.Error().Err(err), keysAndValues).Msg("cron: " + msg)
}

func withFields(e *log.Entry, kv []any) *log.Entry {
	for i := 0; i+1 < len(kv); i += 2 {
		e = e.Any(fmt.Sprint(kv[i]), kv[i+1])
	}
	return e
}
