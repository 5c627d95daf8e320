package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/judoclub/billing_engine/internal/app"
	"github.com/judoclub/billing_engine/internal/config"
	"github.com/judoclub/billing_engine/internal/repository"
	"github.com/judoclub/billing_engine/internal/service"
	"go.uber.org/zap"
)

func main() {
	now := time.Now()
	yearFlag := flag.Int("year", now.Year(), "год ведомости")
	monthFlag := flag.Int("month", int(now.Month()), "месяц ведомости (1-12)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogFile)
	defer logger.Sync()

	if err := run(cfg, logger, *yearFlag, *monthFlag); err != nil {
		logger.Error("Salary report failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, year, month int) error {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("create db pool: %w", err)
	}
	defer pool.Close()

	salaryRepo := repository.NewSalaryRepository(pool)
	salaryService := service.NewSalaryService(salaryRepo, logger)

	rows, err := salaryService.MonthlyReport(ctx, year, month)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		logger.Info("Нет оплат за месяц", zap.Int("year", year), zap.Int("month", month))
	}
	return nil
}
