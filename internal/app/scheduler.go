package app

import (
	"context"
	"time"

	"github.com/judoclub/billing_engine/internal/notify"
	"github.com/judoclub/billing_engine/internal/service"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами в режиме демона
type Scheduler struct {
	billing  *service.BillingService
	notifier *notify.Notifier // может быть nil, тогда отчёты только в лог
	loc      *time.Location
	runAt    int // час запуска ежедневного прогона
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(billing *service.BillingService, notifier *notify.Notifier, loc *time.Location, runAt int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		billing:  billing,
		notifier: notifier,
		loc:      loc,
		runAt:    runAt,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Int("run_at_hour", s.runAt))

	go s.runDailyBillingTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runDailyBillingTask раз в сутки, в заданный час школьного времени,
// выполняет прогон списаний за текущую дату
func (s *Scheduler) runDailyBillingTask(ctx context.Context) {
	for {
		wait := time.Until(s.nextRunTime(time.Now().In(s.loc)))
		timer := time.NewTimer(wait)
		s.logger.Info("Next billing run scheduled", zap.Duration("in", wait))

		select {
		case <-timer.C:
			s.runBilling(ctx)
		case <-s.stopChan:
			timer.Stop()
			s.logger.Info("Daily billing task stopped")
			return
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Daily billing task cancelled")
			return
		}
	}
}

// nextRunTime ближайший момент запуска строго после now
func (s *Scheduler) nextRunTime(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), s.runAt, 0, 0, 0, s.loc)
	if !run.After(now) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}

func (s *Scheduler) runBilling(ctx context.Context) {
	today := time.Now().In(s.loc)

	summary, err := s.billing.RunDaily(ctx, today)
	if err != nil {
		s.logger.Error("Billing run failed", zap.Error(err))
	}

	if s.notifier != nil && summary != nil {
		s.notifier.SendRunSummary(ctx, summary)
	}
}
