package model

import "time"

// Visit факт посещения тренировки. Записи создаются при отметке
// посещаемости и никогда не изменяются.
type Visit struct {
	ID         int64     `json:"id"`
	Date       time.Time `json:"date"`
	TrainerID  int64     `json:"trainer_id"`
	StudentID  int64     `json:"student_id"`
	PlaceID    int64     `json:"place_id"`
	Discipline int64     `json:"sport_discipline"`
	ScheduleID int64     `json:"schedule_id"`
}

// WriteOff запись журнала списаний занятий. Создаётся только движком
// списаний, строго по одной на каждую операцию списания.
type WriteOff struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	StudentID int64     `json:"student_id"`
	Quantity  int       `json:"quantity"`
}

// Payment факт оплаты абонемента
type Payment struct {
	ID            int64     `json:"id"`
	StudentID     int64     `json:"student_id"`
	TariffID      int64     `json:"tariff_id"`
	PaymentAmount int       `json:"payment_amount"`
	PaymentDate   time.Time `json:"payment_date"`
}
