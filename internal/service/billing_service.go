package service

import (
	"context"
	"fmt"
	"time"

	"github.com/judoclub/billing_engine/internal/model"
	"go.uber.org/zap"
)

// expectedWeeklyVisits сколько тренировок в неделю предполагает абонемент
// на 8 занятий
const expectedWeeklyVisits = 2

// StudentStore доступ к ученикам и их балансу занятий
type StudentStore interface {
	// ListActiveByPolicy возвращает активных учеников с тарифом указанного класса
	ListActiveByPolicy(ctx context.Context, policy model.TariffPolicy) ([]*model.Student, error)
	// ListActiveWithSchedule возвращает активных учеников, привязанных хотя бы
	// к одному слоту расписания. Как и ListActiveByPolicy, ученики без
	// заведённого остатка не возвращаются: у них nullable-баланс, и один
	// такой ученик не должен ронять пересчёт дат всем остальным.
	ListActiveWithSchedule(ctx context.Context) ([]*model.Student, error)
	// DebitWithWriteOff списывает quantity занятий и атомарно пишет запись
	// в журнал списаний. Возвращает новый остаток.
	DebitWithWriteOff(ctx context.Context, studentID int64, quantity int, date time.Time) (int, error)
	// SetExpectedPaymentDate обновляет ожидаемую дату оплаты
	SetExpectedPaymentDate(ctx context.Context, studentID int64, date time.Time) error
}

// ScheduleStore доступ к еженедельному расписанию учеников
type ScheduleStore interface {
	// DaysFor возвращает дни недели, в которые ученик занимается по расписанию
	DaysFor(ctx context.Context, studentID int64) ([]model.Weekday, error)
}

// VisitStore доступ к фактам посещений
type VisitStore interface {
	// CountOn возвращает число посещений ученика за дату
	CountOn(ctx context.Context, studentID int64, date time.Time) (int, error)
	// CountBetween возвращает число посещений ученика за период дат включительно
	CountBetween(ctx context.Context, studentID int64, from, to time.Time) (int, error)
}

// BillingService ежедневный движок списания занятий: по расписанию и
// посещениям определяет, сколько занятий снять с баланса каждого ученика,
// и пересчитывает ожидаемые даты оплаты
type BillingService struct {
	students StudentStore
	schedule ScheduleStore
	visits   VisitStore
	logger   *zap.Logger
}

func NewBillingService(
	students StudentStore,
	schedule ScheduleStore,
	visits VisitStore,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		students: students,
		schedule: schedule,
		visits:   visits,
		logger:   logger,
	}
}

// debit одна операция списания. У ученика с абонементом на 8 занятий в
// субботу их может быть две: за посещения и за недобор недели.
type debit struct {
	Quantity int
	Reason   string
}

// RunDaily выполняет прогон списаний за дату. Ошибки по отдельным ученикам
// логируются и не прерывают прогон; ошибка доступа к базе прерывает.
//
// Повторный прогон за ту же дату пересчитает те же списания из расписания
// и посещений и применит их ещё раз — однократность запуска обеспечивает
// внешний планировщик, движок отметку "уже обработано" не ведёт.
func (s *BillingService) RunDaily(ctx context.Context, date time.Time) (*RunSummary, error) {
	summary := NewRunSummary(date)

	s.logger.Info("Запуск вычитания занятий",
		zap.String("run_id", summary.RunID.String()),
		zap.String("date", date.Format("2006-01-02")),
		zap.String("weekday", summary.Weekday.RussianName()))

	for _, policy := range model.AllPolicies {
		students, err := s.students.ListActiveByPolicy(ctx, policy)
		if err != nil {
			summary.Fail(fmt.Sprintf("не удалось получить учеников тарифа %s: %v", policy, err))
			return summary, fmt.Errorf("list students by policy %s: %w", policy, err)
		}

		for _, st := range students {
			if err := s.processStudent(ctx, st, policy, date, summary); err != nil {
				summary.AddError(st, err)
				s.logger.Error("Ошибка обработки ученика",
					zap.Int64("student_id", st.ID),
					zap.String("name", st.Name),
					zap.Error(err))
			}
		}
	}

	if err := s.updatePaymentDates(ctx, date, summary); err != nil {
		summary.Fail(fmt.Sprintf("не удалось обновить даты оплаты: %v", err))
		return summary, fmt.Errorf("update payment dates: %w", err)
	}

	summary.Finish()

	s.logger.Info("Прогон завершён",
		zap.String("run_id", summary.RunID.String()),
		zap.Int("students_debited", summary.StudentsDebited),
		zap.Int("classes_written_off", summary.ClassesWrittenOff),
		zap.Int("payment_dates_updated", summary.PaymentDatesUpdated),
		zap.Int("negative_balances", summary.NegativeBalances),
		zap.Int("errors", len(summary.Errors)))

	// Краткий отчёт по первым списаниям, как в операционном логе
	for _, d := range summary.Sample(5) {
		s.logger.Info("Списание",
			zap.String("name", d.Name),
			zap.Int("quantity", d.Quantity),
			zap.Int("remaining", d.Remaining))
	}

	return summary, nil
}

// processStudent вычисляет и применяет списания одного ученика
func (s *BillingService) processStudent(ctx context.Context, st *model.Student, policy model.TariffPolicy, date time.Time, summary *RunSummary) error {
	debits, err := s.computeDebits(ctx, st, policy, date)
	if err != nil {
		return fmt.Errorf("compute debits: %w", err)
	}

	for _, d := range debits {
		if d.Quantity <= 0 {
			continue
		}
		newBalance, err := s.students.DebitWithWriteOff(ctx, st.ID, d.Quantity, date)
		if err != nil {
			return fmt.Errorf("debit %d (%s): %w", d.Quantity, d.Reason, err)
		}
		summary.RecordDebit(st, policy, d.Quantity, newBalance)
		s.logger.Debug("Списано",
			zap.Int64("student_id", st.ID),
			zap.String("name", st.Name),
			zap.Int("quantity", d.Quantity),
			zap.String("reason", d.Reason),
			zap.Int("remaining", newBalance))
	}
	return nil
}

// computeDebits определяет список списаний ученика за дату по классу тарифа
func (s *BillingService) computeDebits(ctx context.Context, st *model.Student, policy model.TariffPolicy, date time.Time) ([]debit, error) {
	weekday := model.WeekdayOf(date)

	switch policy {
	case model.PolicyEightCredit:
		return s.eightCreditDebits(ctx, st, date, weekday)
	case model.PolicySpecialSaturday:
		if weekday != model.Saturday {
			// В будни особый субботний тариф живёт по обычным правилам
			return s.standardDebits(ctx, st, date, weekday)
		}
		attended, err := s.scheduledOrVisited(ctx, st.ID, model.Saturday, date)
		if err != nil {
			return nil, err
		}
		if !attended {
			return nil, nil
		}
		// Субботняя тренировка по этому тарифу всегда стоит два занятия
		return []debit{{Quantity: 2, Reason: "субботняя тренировка, особый тариф"}}, nil
	default:
		return s.standardDebits(ctx, st, date, weekday)
	}
}

// standardDebits обычный тариф: одно занятие за тренировочный день,
// по субботам — по числу фактических посещений, но не меньше одного
func (s *BillingService) standardDebits(ctx context.Context, st *model.Student, date time.Time, weekday model.Weekday) ([]debit, error) {
	if weekday == model.Saturday {
		visitCount, err := s.visits.CountOn(ctx, st.ID, date)
		if err != nil {
			return nil, err
		}
		scheduled, err := s.hasAssignment(ctx, st.ID, model.Saturday)
		if err != nil {
			return nil, err
		}
		if !scheduled && visitCount == 0 {
			return nil, nil
		}
		quantity := visitCount
		if quantity < 1 {
			quantity = 1
		}
		return []debit{{Quantity: quantity, Reason: "субботние посещения"}}, nil
	}

	attended, err := s.scheduledOrVisited(ctx, st.ID, weekday, date)
	if err != nil {
		return nil, err
	}
	if !attended {
		return nil, nil
	}
	return []debit{{Quantity: 1, Reason: "тренировочный день"}}, nil
}

// eightCreditDebits абонемент на 8 занятий: в будни как обычный тариф,
// в субботу — по числу посещений плюс добор до двух тренировок за неделю
func (s *BillingService) eightCreditDebits(ctx context.Context, st *model.Student, date time.Time, weekday model.Weekday) ([]debit, error) {
	if weekday != model.Saturday {
		attended, err := s.scheduledOrVisited(ctx, st.ID, weekday, date)
		if err != nil {
			return nil, err
		}
		if !attended {
			return nil, nil
		}
		return []debit{{Quantity: 1, Reason: "тренировочный день"}}, nil
	}

	saturdayVisits, err := s.visits.CountOn(ctx, st.ID, date)
	if err != nil {
		return nil, err
	}
	scheduled, err := s.hasAssignment(ctx, st.ID, model.Saturday)
	if err != nil {
		return nil, err
	}
	weekVisits, err := s.visits.CountBetween(ctx, st.ID, model.WeekStart(date), model.WeekEnd(date))
	if err != nil {
		return nil, err
	}

	// Ученик всю неделю не появлялся и по субботам не записан — не трогаем
	if !scheduled && saturdayVisits == 0 && weekVisits == 0 {
		return nil, nil
	}

	var debits []debit
	if saturdayVisits > 0 {
		debits = append(debits, debit{Quantity: saturdayVisits, Reason: "субботние посещения"})
	}
	if shortfall := expectedWeeklyVisits - weekVisits; shortfall > 0 {
		debits = append(debits, debit{Quantity: shortfall, Reason: "недобор тренировок за неделю"})
	}
	return debits, nil
}

// scheduledOrVisited записан ли ученик на этот день недели или отмечен ли
// фактом посещения за дату
func (s *BillingService) scheduledOrVisited(ctx context.Context, studentID int64, weekday model.Weekday, date time.Time) (bool, error) {
	scheduled, err := s.hasAssignment(ctx, studentID, weekday)
	if err != nil {
		return false, err
	}
	if scheduled {
		return true, nil
	}
	visits, err := s.visits.CountOn(ctx, studentID, date)
	if err != nil {
		return false, err
	}
	return visits > 0, nil
}

func (s *BillingService) hasAssignment(ctx context.Context, studentID int64, weekday model.Weekday) (bool, error) {
	days, err := s.schedule.DaysFor(ctx, studentID)
	if err != nil {
		return false, err
	}
	for _, d := range days {
		if d == weekday {
			return true, nil
		}
	}
	return false, nil
}
