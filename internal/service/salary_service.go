package service

import (
	"context"
	"fmt"

	"github.com/judoclub/billing_engine/internal/model"
	"go.uber.org/zap"
)

const (
	// secondTrainerShare фиксированная часть оплаты, уходящая второму тренеру
	secondTrainerShare = 900
	// payrollRate доля выручки тренера, идущая в зарплату
	payrollRate = 0.368
)

// SalaryStore доступ к агрегату зарплат по оплатам учеников
type SalaryStore interface {
	// TrainerSalaries возвращает зарплатную ведомость за месяц
	TrainerSalaries(ctx context.Context, year, month int) ([]*model.TrainerSalaryRow, error)
}

// SalaryService ежемесячный расчёт зарплат тренеров по фактам оплат
type SalaryService struct {
	store  SalaryStore
	logger *zap.Logger
}

func NewSalaryService(store SalaryStore, logger *zap.Logger) *SalaryService {
	return &SalaryService{store: store, logger: logger}
}

// MonthlyReport считает и логирует ведомость за месяц
func (s *SalaryService) MonthlyReport(ctx context.Context, year, month int) ([]*model.TrainerSalaryRow, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month: %d", month)
	}

	rows, err := s.store.TrainerSalaries(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("trainer salaries %d-%02d: %w", year, month, err)
	}

	for _, row := range rows {
		s.logger.Info("Зарплата тренера",
			zap.String("trainer", row.TrainerName),
			zap.String("month", row.Month),
			zap.Float64("total_amount", row.TotalAmount),
			zap.Float64("salary", row.Salary),
			zap.Int("students", row.TotalStudents),
			zap.Int("as_head", row.MainTrainerStudents),
			zap.Int("as_second", row.SecondStudents))
	}

	return rows, nil
}

// TrainerShare часть стоимости абонемента, причитающаяся тренеру.
// Если второго тренера нет, главный получает всё; иначе второму уходит
// фиксированная доля, главному — остаток.
func TrainerShare(price int, isHead, hasSecond bool) int {
	switch {
	case isHead && !hasSecond:
		return price
	case isHead:
		return price - secondTrainerShare
	default:
		return secondTrainerShare
	}
}

// SalaryFromAmount зарплата с привлечённой тренером суммы
func SalaryFromAmount(amount float64) float64 {
	return amount * payrollRate
}
