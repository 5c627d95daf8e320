package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/judoclub/billing_engine/internal/model"
)

// StudentDebit одно применённое списание для отчёта
type StudentDebit struct {
	StudentID int64              `json:"student_id"`
	Name      string             `json:"name"`
	Policy    model.TariffPolicy `json:"policy"`
	Quantity  int                `json:"quantity"`
	Remaining int                `json:"remaining"`
}

// RunSummary итог одного прогона движка списаний
type RunSummary struct {
	RunID               uuid.UUID                  `json:"run_id"`
	Date                time.Time                  `json:"date"`
	Weekday             model.Weekday              `json:"weekday"`
	StudentsDebited     int                        `json:"students_debited"`
	ClassesWrittenOff   int                        `json:"classes_written_off"`
	ByPolicy            map[model.TariffPolicy]int `json:"by_policy"`
	PaymentDatesUpdated int                        `json:"payment_dates_updated"`
	NegativeBalances    int                        `json:"negative_balances"`
	ZeroBalances        int                        `json:"zero_balances"`
	Debits              []StudentDebit             `json:"debits"`
	Errors              []string                   `json:"errors"`
	Success             bool                       `json:"success"`
	Message             string                     `json:"message"`

	// итоговый остаток каждого списанного ученика; счётчики балансов
	// считаются по нему в Finish, а не по промежуточным значениям
	finalBalances map[int64]int
}

func NewRunSummary(date time.Time) *RunSummary {
	return &RunSummary{
		RunID:         uuid.New(),
		Date:          date,
		Weekday:       model.WeekdayOf(date),
		ByPolicy:      make(map[model.TariffPolicy]int),
		finalBalances: make(map[int64]int),
	}
}

// RecordDebit учитывает применённое списание
func (s *RunSummary) RecordDebit(st *model.Student, policy model.TariffPolicy, quantity, newBalance int) {
	s.Debits = append(s.Debits, StudentDebit{
		StudentID: st.ID,
		Name:      st.Name,
		Policy:    policy,
		Quantity:  quantity,
		Remaining: newBalance,
	})
	s.ClassesWrittenOff += quantity
	s.ByPolicy[policy] += quantity

	if _, seen := s.finalBalances[st.ID]; !seen {
		s.StudentsDebited++
	}
	s.finalBalances[st.ID] = newBalance
}

// AddError фиксирует ошибку по отдельному ученику, прогон продолжается
func (s *RunSummary) AddError(st *model.Student, err error) {
	s.Errors = append(s.Errors, fmt.Sprintf("ученик %d (%s): %v", st.ID, st.Name, err))
}

// Fail помечает прогон проваленным
func (s *RunSummary) Fail(message string) {
	s.Success = false
	s.Message = message
}

// Finish помечает прогон успешным, сводит счётчики балансов по итоговым
// остаткам и собирает итоговое сообщение
func (s *RunSummary) Finish() {
	s.Success = true

	s.NegativeBalances = 0
	s.ZeroBalances = 0
	for _, balance := range s.finalBalances {
		switch {
		case balance < 0:
			s.NegativeBalances++
		case balance == 0:
			s.ZeroBalances++
		}
	}
	if s.StudentsDebited == 0 {
		s.Message = fmt.Sprintf("Нет учеников для списания за %s (%s)",
			s.Date.Format("2006-01-02"), s.Weekday.RussianName())
		return
	}
	s.Message = fmt.Sprintf("✅ Списано %d занятий у %d учеников, обновлено %d дат оплаты",
		s.ClassesWrittenOff, s.StudentsDebited, s.PaymentDatesUpdated)
	if len(s.Errors) > 0 {
		s.Message += fmt.Sprintf(", ошибок: %d", len(s.Errors))
	}
}

// Sample возвращает первые n списаний для краткого отчёта
func (s *RunSummary) Sample(n int) []StudentDebit {
	if len(s.Debits) < n {
		n = len(s.Debits)
	}
	return s.Debits[:n]
}
