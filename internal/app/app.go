package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ykvlv/lesson-reminder/internal/config"
	"github.com/ykvlv/lesson-reminder/internal/domain"
	"github.com/ykvlv/lesson-reminder/internal/metrics"
	"github.com/ykvlv/lesson-reminder/internal/scheduler"
	"github.com/ykvlv/lesson-reminder/internal/store"
	"github.com/ykvlv/lesson-reminder/internal/telegram"
)

type App struct {
	cfg        config.Config
	log        *zap.Logger
	sender     telegram.Sender
	loc        *time.Location
	targets    []domain.Target
	httpSrv    *http.Server
	metricsSrv *http.Server // nil when METRICS_ADDR is empty
	sink       metrics.Sink
	journal    store.Journal // nil when DB_PATH is empty
	notifier   *telegram.Notifier
	sched      *scheduler.Scheduler
	clock      func() time.Time
}

// New connects to the Bot API and prepares the app. The token is checked
// here, so a bad credential fails startup.
func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	bot.Debug = false
	log.Info("telegram bot authorized", zap.String("username", bot.Self.UserName))

	return newApp(cfg, log, bot)
}

func newApp(cfg config.Config, log *zap.Logger, sender telegram.Sender) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	targets, err := cfg.TargetTable()
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log, sender: sender, loc: loc, targets: targets, clock: time.Now}

	a.httpSrv = &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      newHealthMux(func() time.Time { return a.clock().In(loc) }),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	a.sink = metrics.NewNoopSink()
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		a.sink = metrics.NewPrometheusSink(reg, log)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		a.metricsSrv = &http.Server{
			Addr:         cfg.MetricsAddr,
			Handler:      mux,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
	}
	return a, nil
}

// Run sends startup confirmations, registers reminders, serves health checks
// and blocks until SIGINT/SIGTERM or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.start(ctx); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	a.shutdown()
	return nil
}

func (a *App) start(ctx context.Context) error {
	recipients := a.cfg.Recipients()
	chatIDs := make([]int64, 0, len(recipients))
	for _, r := range recipients {
		chatIDs = append(chatIDs, r.ChatID)
	}
	a.log.Info("starting lesson-reminder",
		zap.String("env", a.cfg.EnvName()),
		zap.String("http", a.cfg.HTTPAddr()),
		zap.String("tz", a.loc.String()),
		zap.Int("tokenLen", len(a.cfg.BotToken)),
		zap.Int64s("chatIDs", chatIDs),
	)

	if a.cfg.DBPath != "" {
		j, err := store.OpenSQLite(ctx, a.cfg.DBPath)
		if err != nil {
			a.log.Error("open sqlite failed", zap.Error(err))
			return err
		}
		a.journal = j
		a.log.Info("delivery journal ready", zap.String("path", a.cfg.DBPath))
	}

	a.notifier = telegram.NewNotifier(a.sender, a.log, a.sink, a.journal, a.loc)

	summary := domain.Describe(a.targets, a.loc)
	for _, r := range recipients {
		a.notifier.Notify(ctx, r, telegram.StartupText(r.Kind, a.cfg.EnvName(), summary))
	}

	a.sched = scheduler.New(a.loc, a.log, a.notifier, a.sink, scheduler.WithClock(a.clock))
	if _, err := a.sched.Register(a.targets, recipients); err != nil {
		a.closeJournal()
		return err
	}
	a.sched.Start()

	go a.serve(a.httpSrv, "http")
	if a.metricsSrv != nil {
		go a.serve(a.metricsSrv, "metrics")
	}
	return nil
}

func (a *App) serve(srv *http.Server, name string) {
	a.log.Info("listening", zap.String("server", name), zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error("server error", zap.String("server", name), zap.Error(err))
	}
}

// shutdown stops the timer without waiting for in-flight sends and drains
// the HTTP servers. The journal is closed once running sends have recorded
// their outcome or the 5s budget runs out, whichever comes first.
func (a *App) shutdown() {
	sendsDone := context.Background()
	if a.sched != nil {
		sendsDone = a.sched.Stop()
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shCtx); err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	if a.metricsSrv != nil {
		if err := a.metricsSrv.Shutdown(shCtx); err != nil {
			a.log.Warn("metrics server shutdown error", zap.Error(err))
		}
	}

	if a.journal != nil && sendsDone.Done() != nil {
		select {
		case <-sendsDone.Done():
		case <-shCtx.Done():
			a.log.Warn("closing journal with sends still running")
		}
	}
	a.closeJournal()
}

func (a *App) closeJournal() {
	if a.journal == nil {
		return
	}
	if err := a.journal.Close(); err != nil {
		a.log.Warn("journal close error", zap.Error(err))
	}
	a.journal = nil
}
