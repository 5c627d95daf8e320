package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/judoclub/billing_engine/internal/service"
	"go.uber.org/zap"
)

// Notifier отправляет отчёты о прогонах в админский чат Telegram
type Notifier struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

// NewNotifier создаёт нотификатор. Токен проверяется при создании бота.
func NewNotifier(token string, chatID int64, logger *zap.Logger) (*Notifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Notifier{
		bot:    b,
		chatID: chatID,
		logger: logger,
	}, nil
}

// SendRunSummary отправляет отчёт о прогоне списаний.
// Ошибка доставки не влияет на результат прогона.
func (n *Notifier) SendRunSummary(ctx context.Context, summary *service.RunSummary) {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      FormatRunSummary(summary),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		n.logger.Error("Не удалось отправить отчёт в Telegram",
			zap.Int64("chat_id", n.chatID),
			zap.Error(err))
		return
	}

	n.logger.Info("Отчёт отправлен в Telegram", zap.Int64("chat_id", n.chatID))
}
