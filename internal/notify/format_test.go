package notify

import (
	"testing"
	"time"

	"github.com/judoclub/billing_engine/internal/model"
	"github.com/judoclub/billing_engine/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestPluralizeClasses(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "занятие"},
		{2, "занятия"},
		{5, "занятий"},
		{11, "занятий"},
		{21, "занятие"},
		{104, "занятия"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizeClasses(tt.count), "count=%d", tt.count)
	}
}

func TestPluralizeStudents(t *testing.T) {
	assert.Equal(t, "ученик", PluralizeStudents(1))
	assert.Equal(t, "ученика", PluralizeStudents(3))
	assert.Equal(t, "учеников", PluralizeStudents(12))
}

func TestFormatRunSummary(t *testing.T) {
	date := time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)
	summary := service.NewRunSummary(date)
	summary.RecordDebit(&model.Student{ID: 1, Name: "Иванов"}, model.PolicyStandard, 2, 4)
	summary.RecordDebit(&model.Student{ID: 2, Name: "Петров"}, model.PolicySpecialSaturday, 2, -1)
	summary.Finish()

	text := FormatRunSummary(summary)

	assert.Contains(t, text, "07.06.2025")
	assert.Contains(t, text, "суббота")
	assert.Contains(t, text, "Списано 4 занятия у 2 ученика")
	assert.Contains(t, text, "Иванов")
	assert.Contains(t, text, "Ушли в долг: 1")
}
