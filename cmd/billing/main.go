package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/judoclub/billing_engine/internal/app"
	"github.com/judoclub/billing_engine/internal/config"
	"github.com/judoclub/billing_engine/internal/notify"
	"github.com/judoclub/billing_engine/internal/repository"
	"github.com/judoclub/billing_engine/internal/service"
	"go.uber.org/zap"
)

func main() {
	dateFlag := flag.String("date", "", "дата прогона в формате YYYY-MM-DD, по умолчанию сегодня")
	daemonFlag := flag.Bool("daemon", false, "не завершаться, запускать прогон ежедневно в заданный час")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogFile)
	defer logger.Sync()

	if err := run(cfg, logger, *dateFlag, *daemonFlag); err != nil {
		logger.Error("Billing run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, dateArg string, daemon bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	targetDate, err := resolveDate(dateArg, cfg.SchoolTZ)
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("create db pool: %w", err)
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := migrator.Run(ctx); err != nil {
		return err
	}
	migrator.Close()

	studentRepo := repository.NewStudentRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	visitRepo := repository.NewVisitRepository(pool)

	billingService := service.NewBillingService(studentRepo, scheduleRepo, visitRepo, logger)

	var notifier *notify.Notifier
	if cfg.NotificationsEnabled() {
		notifier, err = notify.NewNotifier(cfg.TelegramToken, cfg.AdminChatID, logger)
		if err != nil {
			// Прогон важнее отчёта: без Telegram продолжаем
			logger.Warn("Telegram notifications disabled", zap.Error(err))
		}
	}

	if daemon {
		scheduler := app.NewScheduler(billingService, notifier, cfg.SchoolTZ, cfg.RunAtHour, logger)
		scheduler.Start(ctx)
		defer scheduler.Stop()

		logger.Info("Running in daemon mode")
		<-ctx.Done()
		return nil
	}

	summary, runErr := billingService.RunDaily(ctx, targetDate)
	if notifier != nil && summary != nil {
		notifier.SendRunSummary(ctx, summary)
	}
	if runErr != nil {
		return runErr
	}

	logger.Info("Итог", zap.String("message", summary.Message))
	return nil
}

// resolveDate дата прогона: из аргумента или текущая в часовом поясе школы
func resolveDate(dateArg string, loc *time.Location) (time.Time, error) {
	if dateArg == "" {
		return time.Now().In(loc), nil
	}
	date, err := time.ParseInLocation("2006-01-02", dateArg, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -date %q, expected YYYY-MM-DD: %w", dateArg, err)
	}
	return date, nil
}
