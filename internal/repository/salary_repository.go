package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/judoclub/billing_engine/internal/model"
	"github.com/judoclub/billing_engine/internal/repository/base"
)

type SalaryRepository struct {
	*base.Repository
}

func NewSalaryRepository(pool *pgxpool.Pool) *SalaryRepository {
	return &SalaryRepository{Repository: base.NewRepository(pool)}
}

// TrainerSalaries считает зарплатную ведомость тренеров за месяц по фактам
// оплат. Второму тренеру уходит фиксированная часть абонемента, главному —
// остаток; зарплата — доля от привлечённой суммы.
func (r *SalaryRepository) TrainerSalaries(ctx context.Context, year, month int) ([]*model.TrainerSalaryRow, error) {
	query := `
		SELECT
			t.name AS trainer_name,
			SUM(
				CASE
					WHEN s.second_trainer_id IS NULL THEN p.price
					WHEN s.head_trainer_id = t.id THEN p.price - 900
					WHEN s.second_trainer_id = t.id THEN 900
					ELSE 0
				END
			) AS total_amount,
			SUM(
				CASE
					WHEN s.second_trainer_id IS NULL THEN p.price
					WHEN s.head_trainer_id = t.id THEN p.price - 900
					WHEN s.second_trainer_id = t.id THEN 900
					ELSE 0
				END
			) * 0.368 AS salary,
			COUNT(DISTINCT CASE WHEN s.head_trainer_id = t.id THEN s.id END) AS main_trainer_students,
			COUNT(DISTINCT CASE WHEN s.second_trainer_id = t.id THEN s.id END) AS second_trainer_students,
			COUNT(DISTINCT s.id) AS total_students,
			TO_CHAR(pm.payment_date, 'YYYY-MM') AS month
		FROM trainer t
		LEFT JOIN student s ON s.head_trainer_id = t.id OR s.second_trainer_id = t.id
		LEFT JOIN payment pm ON pm.student_id = s.id
		LEFT JOIN price p ON p.id = pm.price_id
		WHERE pm.payment_date IS NOT NULL
		  AND s.active = true
		  AND EXTRACT(YEAR FROM pm.payment_date) = $1
		  AND EXTRACT(MONTH FROM pm.payment_date) = $2
		GROUP BY t.id, t.name, TO_CHAR(pm.payment_date, 'YYYY-MM')
		ORDER BY salary DESC
	`

	rows, err := r.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("trainer salaries: %w", err)
	}
	defer rows.Close()

	var result []*model.TrainerSalaryRow
	for rows.Next() {
		var row model.TrainerSalaryRow
		err := rows.Scan(
			&row.TrainerName,
			&row.TotalAmount,
			&row.Salary,
			&row.MainTrainerStudents,
			&row.SecondStudents,
			&row.TotalStudents,
			&row.Month,
		)
		if err != nil {
			return nil, fmt.Errorf("scan salary row: %w", err)
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate salary rows: %w", err)
	}

	return result, nil
}
