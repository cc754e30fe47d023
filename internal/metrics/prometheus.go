package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// PrometheusSink implements Sink with Prometheus collectors.
// Registration errors are logged, never propagated.
type PrometheusSink struct {
	jobsScheduledTotal prometheus.Counter
	jobsFiredTotal     prometheus.Counter
	sendsTotal         *prometheus.CounterVec
	sendDuration       *prometheus.HistogramVec
}

// NewPrometheusSink creates the collectors and registers them on reg.
func NewPrometheusSink(reg prometheus.Registerer, log *zap.Logger) *PrometheusSink {
	s := &PrometheusSink{
		jobsScheduledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reminder_jobs_scheduled_total",
			Help: "Total number of one-shot reminder jobs registered.",
		}),
		jobsFiredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reminder_jobs_fired_total",
			Help: "Total number of reminder jobs whose fire time was reached.",
		}),
		sendsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reminder_sends_total",
			Help: "Total number of message send attempts by kind and outcome.",
		}, []string{"kind", "outcome"}),
		sendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reminder_send_duration_seconds",
			Help:    "Duration of message send attempts in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"kind"}),
	}

	register(reg, log, s.jobsScheduledTotal, "reminder_jobs_scheduled_total")
	register(reg, log, s.jobsFiredTotal, "reminder_jobs_fired_total")
	register(reg, log, s.sendsTotal, "reminder_sends_total")
	register(reg, log, s.sendDuration, "reminder_send_duration_seconds")
	return s
}

func register(reg prometheus.Registerer, log *zap.Logger, c prometheus.Collector, name string) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return
		}
		log.Warn("metrics registration failed", zap.String("metric", name), zap.Error(err))
	}
}

func (s *PrometheusSink) JobScheduled() {
	s.jobsScheduledTotal.Inc()
}

func (s *PrometheusSink) JobFired() {
	s.jobsFiredTotal.Inc()
}

func (s *PrometheusSink) SendCompleted(kind, outcome string, duration time.Duration) {
	s.sendsTotal.WithLabelValues(kind, outcome).Inc()
	s.sendDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
