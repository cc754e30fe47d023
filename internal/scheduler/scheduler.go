package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ykvlv/lesson-reminder/internal/domain"
	"github.com/ykvlv/lesson-reminder/internal/metrics"
)

var ErrInvalidRecipient = errors.New("invalid recipient")

// Notifier is what the scheduler calls when a job is due.
// telegram.Notifier implements it.
type Notifier interface {
	NotifyJob(ctx context.Context, job domain.ReminderJob) domain.Outcome
}

// Scheduler owns the in-memory list of one-shot reminder jobs.
// Jobs are registered once at startup and never rescheduled.
type Scheduler struct {
	cron     *cron.Cron
	loc      *time.Location
	log      *zap.Logger
	notifier Notifier
	metrics  metrics.Sink
	now      func() time.Time

	mu   sync.Mutex
	jobs []domain.ReminderJob
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces time.Now as the reference used to resolve fire times.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a Scheduler whose timers run in loc.
func New(loc *time.Location, log *zap.Logger, notifier Notifier, sink metrics.Sink, opts ...Option) *Scheduler {
	if sink == nil {
		sink = metrics.NewNoopSink()
	}
	cl := cronLogger{log: log.Sugar()}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		loc:      loc,
		log:      log,
		notifier: notifier,
		metrics:  sink,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildJobs resolves every target once against now and creates one job per
// recipient for that instant, each carrying the recipient's own message.
func BuildJobs(targets []domain.Target, recipients []domain.Recipient, now time.Time) []domain.ReminderJob {
	jobs := make([]domain.ReminderJob, 0, len(targets)*len(recipients))
	for _, t := range targets {
		fireAt := domain.NextOccurrence(t, now)
		for _, r := range recipients {
			jobs = append(jobs, domain.ReminderJob{
				ID:        uuid.New(),
				FireAt:    fireAt,
				Recipient: r,
				Text:      r.Message,
			})
		}
	}
	return jobs
}

// Register builds jobs for targets × recipients and hands each one to the timer.
// A recipient without a chat id aborts the whole registration.
func (s *Scheduler) Register(targets []domain.Target, recipients []domain.Recipient) ([]domain.ReminderJob, error) {
	for i, r := range recipients {
		if r.ChatID == 0 {
			return nil, fmt.Errorf("%w: recipient %d has no chat id", ErrInvalidRecipient, i+1)
		}
	}

	now := s.now().In(s.loc)
	for _, t := range targets {
		if at := domain.NextOccurrence(t, now); !t.Matches(at) {
			s.log.Warn("target date does not exist this year, shifted",
				zap.String("target", t.String()),
				zap.Time("fireAt", at),
			)
		}
	}
	jobs := BuildJobs(targets, recipients, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range jobs {
		job := job
		s.cron.Schedule(once(job.FireAt), cron.FuncJob(func() { s.fire(job) }))
		s.jobs = append(s.jobs, job)
		s.metrics.JobScheduled()
		s.log.Info("reminder scheduled",
			zap.String("jobID", job.ID.String()),
			zap.Int64("chatID", job.Recipient.ChatID),
			zap.Time("fireAt", job.FireAt),
		)
	}
	return jobs, nil
}

func (s *Scheduler) fire(job domain.ReminderJob) {
	s.metrics.JobFired()
	s.notifier.NotifyJob(context.Background(), job)
}

// Jobs returns a copy of the registered jobs.
func (s *Scheduler) Jobs() []domain.ReminderJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ReminderJob(nil), s.jobs...)
}

// Start runs the timer in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.Jobs())))
}

// Stop halts the timer without waiting for running sends. The returned
// context is done once they finish, for callers that do want to wait.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}
