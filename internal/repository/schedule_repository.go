package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/judoclub/billing_engine/internal/model"
	"github.com/judoclub/billing_engine/internal/repository/base"
)

type ScheduleRepository struct {
	*base.Repository
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{Repository: base.NewRepository(pool)}
}

// DaysFor возвращает дни недели, в которые ученик занимается по расписанию
func (r *ScheduleRepository) DaysFor(ctx context.Context, studentID int64) ([]model.Weekday, error) {
	query := `
		SELECT DISTINCT sched.day_week
		FROM student_schedule ss
		JOIN schedule sched ON ss.schedule = sched.id
		WHERE ss.student = $1
	`

	rows, err := r.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("schedule days for student: %w", err)
	}
	defer rows.Close()

	var days []model.Weekday
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan schedule day: %w", err)
		}
		// Кривое название дня в расписании — ошибка данных конкретного
		// ученика, наверх она уходит как есть
		day, err := model.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("student %d schedule: %w", studentID, err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule days: %w", err)
	}

	return days, nil
}
