package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ykvlv/lesson-reminder/internal/domain"
	"github.com/ykvlv/lesson-reminder/internal/metrics"
	"github.com/ykvlv/lesson-reminder/internal/store"
)

// Sender is the part of the Bot API the notifier needs.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier performs best-effort sends. It never returns an error or panics;
// every attempt ends in a domain.Outcome that is logged, counted and journaled.
type Notifier struct {
	sender  Sender
	log     *zap.Logger
	metrics metrics.Sink
	journal store.Journal // optional
	loc     *time.Location
	now     func() time.Time
}

// NewNotifier creates a Notifier. journal may be nil.
func NewNotifier(sender Sender, log *zap.Logger, sink metrics.Sink, journal store.Journal, loc *time.Location) *Notifier {
	if sink == nil {
		sink = metrics.NewNoopSink()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{
		sender:  sender,
		log:     log,
		metrics: sink,
		journal: journal,
		loc:     loc,
		now:     time.Now,
	}
}

// Notify sends a one-off message such as a startup confirmation.
func (n *Notifier) Notify(ctx context.Context, r domain.Recipient, text string) domain.Outcome {
	return n.deliver(ctx, uuid.Nil, domain.KindStartup, r.ChatID, text)
}

// NotifyJob sends the text of a scheduled reminder job.
func (n *Notifier) NotifyJob(ctx context.Context, job domain.ReminderJob) domain.Outcome {
	return n.deliver(ctx, job.ID, domain.KindReminder, job.Recipient.ChatID, job.Text)
}

func (n *Notifier) deliver(ctx context.Context, jobID uuid.UUID, kind domain.DeliveryKind, chatID int64, text string) (out domain.Outcome) {
	start := n.now()
	defer func() {
		if p := recover(); p != nil {
			out = domain.Outcome{Err: fmt.Errorf("send panicked: %v", p), At: n.now().In(n.loc)}
		}
		n.record(ctx, jobID, kind, chatID, out, n.now().Sub(start))
	}()

	_, err := n.sender.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return domain.Outcome{Err: err, At: n.now().In(n.loc)}
	}
	return domain.Outcome{Sent: true, At: n.now().In(n.loc)}
}

func (n *Notifier) record(ctx context.Context, jobID uuid.UUID, kind domain.DeliveryKind, chatID int64, out domain.Outcome, took time.Duration) {
	fields := []zap.Field{
		zap.Int64("chatID", chatID),
		zap.String("kind", string(kind)),
	}
	if jobID != uuid.Nil {
		fields = append(fields, zap.String("jobID", jobID.String()))
	}

	errMsg := ""
	if out.Sent {
		n.log.Info("message sent", append(fields, zap.Time("sentAt", out.At))...)
	} else {
		errMsg = out.Err.Error()
		n.log.Error("send failed", append(fields, zap.Error(out.Err))...)
	}

	n.metrics.SendCompleted(string(kind), out.Status(), took)

	if n.journal == nil {
		return
	}
	if err := n.journal.Record(ctx, domain.Delivery{
		JobID:  jobID,
		ChatID: chatID,
		Kind:   kind,
		Status: out.Status(),
		Error:  errMsg,
		At:     out.At.UTC(),
	}); err != nil {
		n.log.Warn("journal record failed", append(fields, zap.Error(err))...)
	}
}
