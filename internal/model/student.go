package model

import "time"

// Student ученик школы
type Student struct {
	ID                  int64        `json:"id"`
	Name                string       `json:"name"`
	Birthday            *time.Time   `json:"birthday"`
	HeadTrainerID       *int64       `json:"head_trainer_id"`
	SecondTrainerID     *int64       `json:"second_trainer_id"`
	TariffID            int64        `json:"tariff_id"`
	Policy              TariffPolicy `json:"policy"` // из связанного тарифа
	PaymentDay          *int         `json:"payment_day"`
	ClassesRemaining    int          `json:"classes_remaining"` // может уходить в минус — это долг
	ExpectedPaymentDate *time.Time   `json:"expected_payment_date"`
	Telephone           string       `json:"telephone"`
	TelegramID          *int64       `json:"telegram_id"`
	Active              bool         `json:"active"`
}

// Trainer тренер
type Trainer struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Telephone  string `json:"telephone"`
	TelegramID int64  `json:"telegram_id"`
	Active     bool   `json:"active"`
}
