package model

import "time"

// ScheduleSlot слот еженедельного расписания тренировок
type ScheduleSlot struct {
	ID            int64     `json:"id"`
	Weekday       Weekday   `json:"weekday"`
	TimeStart     time.Time `json:"time_start"`
	TimeEnd       time.Time `json:"time_end"`
	TrainingPlace int64     `json:"training_place"`
	Discipline    int64     `json:"sport_discipline"`
	Description   string    `json:"description"`
}

// ScheduleAssignment привязка ученика к слоту расписания
type ScheduleAssignment struct {
	ID         int64 `json:"id"`
	StudentID  int64 `json:"student_id"`
	ScheduleID int64 `json:"schedule_id"`
}
