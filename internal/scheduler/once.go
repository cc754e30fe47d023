package scheduler

import (
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// onceSchedule yields its time on the first call and the zero time after,
// which cron treats as "never run again".
type onceSchedule struct {
	at   time.Time
	used atomic.Bool
}

func once(at time.Time) *onceSchedule {
	return &onceSchedule{at: at}
}

func (o *onceSchedule) Next(time.Time) time.Time {
	if o.used.Swap(true) {
		return time.Time{}
	}
	return o.at
}

var _ cron.Schedule = (*onceSchedule)(nil)

// cronLogger routes cron's internal logging into zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
