package service

import (
	"context"
	"testing"

	"github.com/judoclub/billing_engine/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTrainerShare(t *testing.T) {
	tests := []struct {
		name      string
		price     int
		isHead    bool
		hasSecond bool
		want      int
	}{
		{"главный без второго забирает всё", 5000, true, false, 5000},
		{"главный при втором тренере", 5000, true, true, 4100},
		{"второй тренер получает фиксированную часть", 5000, false, true, 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrainerShare(tt.price, tt.isHead, tt.hasSecond))
		})
	}

	// Доли главного и второго складываются в полную цену
	assert.Equal(t, 5000, TrainerShare(5000, true, true)+TrainerShare(5000, false, true))
}

func TestSalaryFromAmount(t *testing.T) {
	assert.InDelta(t, 1840.0, SalaryFromAmount(5000), 0.001)
}

type fakeSalaryStore struct {
	rows []*model.TrainerSalaryRow
}

func (f *fakeSalaryStore) TrainerSalaries(_ context.Context, year, month int) ([]*model.TrainerSalaryRow, error) {
	return f.rows, nil
}

func TestMonthlyReport(t *testing.T) {
	store := &fakeSalaryStore{rows: []*model.TrainerSalaryRow{
		{TrainerName: "Волков", Month: "2025-06", TotalAmount: 50000, Salary: 18400, TotalStudents: 10},
	}}
	svc := NewSalaryService(store, zap.NewNop())

	rows, err := svc.MonthlyReport(context.Background(), 2025, 6)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Волков", rows[0].TrainerName)

	_, err = svc.MonthlyReport(context.Background(), 2025, 13)
	assert.Error(t, err)
}
