package metrics

import "time"

// Sink records reminder scheduling and delivery metrics.
// Methods are fire-and-forget and must not block or fail.
type Sink interface {
	JobScheduled()
	JobFired()
	SendCompleted(kind, outcome string, duration time.Duration)
}

// NoopSink is used when metrics are disabled to avoid nil checks.
type NoopSink struct{}

func NewNoopSink() *NoopSink { return &NoopSink{} }

func (NoopSink) JobScheduled()                                       {}
func (NoopSink) JobFired()                                           {}
func (NoopSink) SendCompleted(kind, outcome string, d time.Duration) {}
