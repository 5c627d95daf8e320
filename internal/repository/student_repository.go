package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/judoclub/billing_engine/internal/model"
	"github.com/judoclub/billing_engine/internal/repository/base"
)

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{Repository: base.NewRepository(pool)}
}

// Ученики с неизвестным остатком (classes_remaining IS NULL) движку не
// видны: их баланс ещё не заведён, списывать и проецировать нечего.
const listActiveByPolicyQuery = `
	SELECT s.id, s.name, s.classes_remaining, s.price, p.policy
	FROM student s
	JOIN price p ON p.id = s.price
	WHERE s.active = true
	  AND s.classes_remaining IS NOT NULL
	  AND p.policy = $1
	ORDER BY s.id
`

const listActiveWithScheduleQuery = `
	SELECT s.id, s.name, s.classes_remaining, s.price, COALESCE(p.policy, 'standard')
	FROM student s
	LEFT JOIN price p ON p.id = s.price
	WHERE s.active = true
	  AND s.classes_remaining IS NOT NULL
	  AND EXISTS (
		SELECT 1 FROM student_schedule ss WHERE ss.student = s.id
	  )
	ORDER BY s.id
`

// ListActiveByPolicy получает активных учеников с тарифом указанного класса
// и известным остатком занятий
func (r *StudentRepository) ListActiveByPolicy(ctx context.Context, policy model.TariffPolicy) ([]*model.Student, error) {
	rows, err := r.Query(ctx, listActiveByPolicyQuery, policy)
	if err != nil {
		return nil, fmt.Errorf("list active students by policy: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// ListActiveWithSchedule получает активных учеников с известным остатком,
// привязанных хотя бы к одному слоту расписания
func (r *StudentRepository) ListActiveWithSchedule(ctx context.Context) ([]*model.Student, error) {
	rows, err := r.Query(ctx, listActiveWithScheduleQuery)
	if err != nil {
		return nil, fmt.Errorf("list active students with schedule: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// DebitWithWriteOff списывает quantity занятий с баланса и в той же
// транзакции добавляет запись в журнал списаний. Возвращает новый остаток.
func (r *StudentRepository) DebitWithWriteOff(ctx context.Context, studentID int64, quantity int, date time.Time) (int, error) {
	var newBalance int

	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		updateQuery := `
			UPDATE student
			SET classes_remaining = classes_remaining - $2
			WHERE id = $1 AND active = true
			RETURNING classes_remaining
		`
		if err := tx.QueryRow(ctx, updateQuery, studentID, quantity).Scan(&newBalance); err != nil {
			if base.IsNotFound(err) {
				return fmt.Errorf("student %d not found or inactive", studentID)
			}
			return fmt.Errorf("debit balance: %w", err)
		}

		insertQuery := `
			INSERT INTO lesson_write_offs (data, student_id, quantity)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.Exec(ctx, insertQuery, date, studentID, quantity); err != nil {
			return fmt.Errorf("append write-off: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

// SetExpectedPaymentDate обновляет ожидаемую дату оплаты ученика
func (r *StudentRepository) SetExpectedPaymentDate(ctx context.Context, studentID int64, date time.Time) error {
	query := `
		UPDATE student
		SET expected_payment_date = $1
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, date, studentID)
	if err != nil {
		return fmt.Errorf("set expected payment date: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("student %d not found", studentID)
	}
	return nil
}

func scanStudents(rows pgx.Rows) ([]*model.Student, error) {
	var students []*model.Student
	for rows.Next() {
		var student model.Student
		err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.ClassesRemaining,
			&student.TariffID,
			&student.Policy,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		student.Active = true
		students = append(students, &student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return students, nil
}
