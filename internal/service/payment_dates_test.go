package service

import (
	"context"
	"testing"
	"time"

	"github.com/judoclub/billing_engine/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNextPaymentDate(t *testing.T) {
	// Понедельник 2 июня 2025
	today := monday

	tests := []struct {
		name    string
		balance int
		policy  model.TariffPolicy
		days    []model.Weekday
		want    time.Time
	}{
		{
			name:    "баланса 6 на два дня в неделю, ближайшая тренировка в четверг",
			balance: 6,
			policy:  model.PolicyStandard,
			days:    []model.Weekday{model.Monday, model.Thursday},
			// недель 3, последняя тренировка через 3+14 дней, плюс 3 дня на оплату
			want: today.AddDate(0, 0, 20),
		},
		{
			name:    "долг — оплата через три дня независимо от расписания",
			balance: -2,
			policy:  model.PolicyStandard,
			days:    []model.Weekday{model.Monday, model.Thursday},
			want:    today.AddDate(0, 0, 3),
		},
		{
			name:    "нулевой баланс — оплата через три дня",
			balance: 0,
			policy:  model.PolicyStandard,
			days:    []model.Weekday{model.Wednesday},
			want:    today.AddDate(0, 0, 3),
		},
		{
			name:    "нет расписания — консервативные 30 дней",
			balance: 6,
			policy:  model.PolicyStandard,
			days:    nil,
			want:    today.AddDate(0, 0, 30),
		},
		{
			name:    "одна тренировка в неделю",
			balance: 2,
			policy:  model.PolicyStandard,
			days:    []model.Weekday{model.Wednesday},
			// недель 2, среда через 2 дня, потом ещё неделя, плюс 3 дня
			want: today.AddDate(0, 0, 2+7+3),
		},
		{
			name:    "особый субботний тариф считает субботу за два дня",
			balance: 6,
			policy:  model.PolicySpecialSaturday,
			days:    []model.Weekday{model.Wednesday, model.Saturday},
			// дней в неделю 3, недель 2, среда через 2 дня, плюс неделя и 3 дня
			want: today.AddDate(0, 0, 2+7+3),
		},
		{
			name:    "тренировочные дни уже прошли — перенос на следующую неделю",
			balance: 1,
			policy:  model.PolicyStandard,
			days:    []model.Weekday{model.Monday},
			// недель 1, следующий понедельник через 7 дней, плюс 3 дня
			want: today.AddDate(0, 0, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			st := &model.Student{ID: 1, Name: "Иванов", Policy: tt.policy, ClassesRemaining: tt.balance}
			store.days[1] = tt.days

			svc := newTestService(store)
			got, err := svc.nextPaymentDate(context.Background(), st, today)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Format("2006-01-02"), got.Format("2006-01-02"))
		})
	}
}

func TestUpdatePaymentDates_FallbackOnError(t *testing.T) {
	store := newFakeStore()
	st := &model.Student{ID: 1, Name: "Иванов", Policy: model.PolicyStandard, ClassesRemaining: 4}
	store.scheduled = []*model.Student{st}
	store.failDaysFor[1] = true

	svc := NewBillingService(store, store, store, zap.NewNop())
	summary := NewRunSummary(monday)
	err := svc.updatePaymentDates(context.Background(), monday, summary)
	require.NoError(t, err)

	// Ошибка расчёта не валит прогон: дата по умолчанию через 30 дней
	got, ok := store.paymentDates[1]
	require.True(t, ok)
	assert.Equal(t, monday.AddDate(0, 0, 30).Format("2006-01-02"), got.Format("2006-01-02"))
	assert.Equal(t, 1, summary.PaymentDatesUpdated)
}

func TestRunDaily_UpdatesPaymentDates(t *testing.T) {
	store := newFakeStore()
	st := store.addStudent(1, "Иванов", model.PolicyStandard, 6, model.Monday, model.Thursday)
	store.scheduled = []*model.Student{st}

	summary, err := newTestService(store).RunDaily(context.Background(), monday)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.PaymentDatesUpdated)
	_, ok := store.paymentDates[1]
	assert.True(t, ok)
}

func TestDaysUntilNextTraining(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		days  []model.Weekday
		want  int
	}{
		{"следующий день на этой неделе", monday, []model.Weekday{model.Monday, model.Thursday}, 3},
		{"только сегодняшний день — через неделю", monday, []model.Weekday{model.Monday}, 7},
		{"перенос через выходные", saturday, []model.Weekday{model.Tuesday}, 3},
		{"воскресенье после субботы", saturday, []model.Weekday{model.Sunday}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, daysUntilNextTraining(tt.today, tt.days))
		})
	}
}
