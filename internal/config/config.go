package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string
	Environment    string
	LogFile        string
	SchoolTZ       *time.Location
	MigrationsPath string
	TelegramToken  string
	AdminChatID    int64
	RunAtHour      int // час запуска ежедневного прогона в режиме демона
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    os.Getenv("ENV"),
		LogFile:        os.Getenv("LOG_FILE"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
	}

	// Дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	// Часовой пояс школы, в нём определяется "сегодня" для списаний
	tzName := os.Getenv("SCHOOL_TZ")
	if tzName == "" {
		tzName = "Europe/Moscow"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("load school timezone %q: %w", tzName, err)
	}
	cfg.SchoolTZ = loc

	if v := os.Getenv("ADMIN_CHAT_ID"); v != "" {
		chatID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse ADMIN_CHAT_ID: %w", err)
		}
		cfg.AdminChatID = chatID
	}

	cfg.RunAtHour = 23
	if v := os.Getenv("RUN_AT_HOUR"); v != "" {
		hour, err := strconv.Atoi(v)
		if err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("invalid RUN_AT_HOUR: %q", v)
		}
		cfg.RunAtHour = hour
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

// NotificationsEnabled включена ли отправка отчётов в Telegram
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.AdminChatID != 0
}
