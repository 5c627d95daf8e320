package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/judoclub/billing_engine/internal/repository/base"
)

type VisitRepository struct {
	*base.Repository
}

func NewVisitRepository(pool *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{Repository: base.NewRepository(pool)}
}

// CountOn возвращает число посещений ученика за календарную дату
func (r *VisitRepository) CountOn(ctx context.Context, studentID int64, date time.Time) (int, error) {
	return r.CountBetween(ctx, studentID, date, date)
}

// CountBetween возвращает число посещений ученика за период дат включительно.
// Посещения хранятся с меткой времени, поэтому границы берём по дням.
func (r *VisitRepository) CountBetween(ctx context.Context, studentID int64, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM visit
		WHERE student = $1
		  AND data >= $2
		  AND data < $3
	`

	dayStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	dayEnd := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)

	var count int
	if err := r.QueryRow(ctx, query, studentID, dayStart, dayEnd).Scan(&count); err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return count, nil
}
