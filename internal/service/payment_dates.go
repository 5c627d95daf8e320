package service

import (
	"context"
	"fmt"
	"time"

	"github.com/judoclub/billing_engine/internal/model"
	"go.uber.org/zap"
)

const (
	// debtGraceDays через сколько дней ждём оплату, когда баланс исчерпан
	// или ушёл в долг
	debtGraceDays = 3
	// fallbackDays консервативная дата оплаты, когда расписание ученика
	// не даёт посчитать её точно
	fallbackDays = 30
)

// updatePaymentDates пересчитывает ожидаемые даты оплаты всех активных
// учеников с расписанием. Выполняется после всех списаний за дату.
func (s *BillingService) updatePaymentDates(ctx context.Context, today time.Time, summary *RunSummary) error {
	students, err := s.students.ListActiveWithSchedule(ctx)
	if err != nil {
		return fmt.Errorf("list active students with schedule: %w", err)
	}

	for _, st := range students {
		dueDate, err := s.nextPaymentDate(ctx, st, today)
		if err != nil {
			// Ошибка расчёта не валит прогон: ставим дату через месяц
			s.logger.Warn("Не удалось рассчитать дату оплаты, ставим через 30 дней",
				zap.Int64("student_id", st.ID),
				zap.String("name", st.Name),
				zap.Error(err))
			dueDate = today.AddDate(0, 0, fallbackDays)
		}

		if err := s.students.SetExpectedPaymentDate(ctx, st.ID, dueDate); err != nil {
			summary.AddError(st, fmt.Errorf("set expected payment date: %w", err))
			s.logger.Error("Ошибка обновления даты оплаты",
				zap.Int64("student_id", st.ID),
				zap.String("name", st.Name),
				zap.Error(err))
			continue
		}
		summary.PaymentDatesUpdated++
	}

	return nil
}

// nextPaymentDate проекция даты оплаты: на сколько недель хватит остатка
// при текущей недельной нагрузке, плюс три дня после последней покрытой
// тренировки
func (s *BillingService) nextPaymentDate(ctx context.Context, st *model.Student, today time.Time) (time.Time, error) {
	// Долг: платить нужно сейчас, даём три дня
	if st.ClassesRemaining < 0 {
		return today.AddDate(0, 0, debtGraceDays), nil
	}

	days, err := s.schedule.DaysFor(ctx, st.ID)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule days: %w", err)
	}

	daysPerWeek := len(days)
	// Субботняя тренировка особого тарифа стоит два занятия,
	// по расходу это лишний тренировочный день в неделе
	if st.Policy == model.PolicySpecialSaturday && containsWeekday(days, model.Saturday) {
		daysPerWeek++
	}
	if daysPerWeek == 0 {
		return today.AddDate(0, 0, fallbackDays), nil
	}

	weeksRemaining := 0
	if st.ClassesRemaining > 0 {
		weeksRemaining = (st.ClassesRemaining + daysPerWeek - 1) / daysPerWeek
	}
	if weeksRemaining <= 0 {
		return today.AddDate(0, 0, debtGraceDays), nil
	}

	daysUntilNext := daysUntilNextTraining(today, days)
	lastTrainingDate := today.AddDate(0, 0, daysUntilNext+(weeksRemaining-1)*7)
	return lastTrainingDate.AddDate(0, 0, debtGraceDays), nil
}

// daysUntilNextTraining через сколько дней ближайший тренировочный день,
// строго после сегодняшнего. Если на этой неделе дней не осталось —
// переносим на следующую.
func daysUntilNextTraining(today time.Time, days []model.Weekday) int {
	todayWeekday := model.WeekdayOf(today)

	next := model.Weekday(-1)
	first := model.Weekday(7)
	for _, d := range days {
		if d < first {
			first = d
		}
		if d > todayWeekday && (next == -1 || d < next) {
			next = d
		}
	}

	if next == -1 {
		return 7 - int(todayWeekday) + int(first)
	}
	return int(next - todayWeekday)
}

func containsWeekday(days []model.Weekday, weekday model.Weekday) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}
