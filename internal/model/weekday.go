package model

import (
	"fmt"
	"time"
)

// Weekday день недели. Понедельник = 0, воскресенье = 6 — так же нумерует
// дни тренировочное расписание в базе.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// weekdayNamesRU канонические названия дней недели, под которыми расписание
// хранится в таблице schedule.day_week.
var weekdayNamesRU = [7]string{
	"понедельник",
	"вторник",
	"среда",
	"четверг",
	"пятница",
	"суббота",
	"воскресенье",
}

// RussianName возвращает название дня недели для хранения и отображения
func (w Weekday) RussianName() string {
	if w < Monday || w > Sunday {
		return "неизвестно"
	}
	return weekdayNamesRU[w]
}

func (w Weekday) String() string {
	return w.RussianName()
}

// ParseWeekday преобразует название дня недели из базы в Weekday
func ParseWeekday(name string) (Weekday, error) {
	for i, n := range weekdayNamesRU {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday name: %q", name)
}

// WeekdayOf возвращает день недели для даты.
// time.Weekday считает воскресенье нулём, поэтому сдвигаем.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// WeekStart возвращает понедельник недели, к которой относится дата
func WeekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -int(WeekdayOf(d)))
}

// WeekEnd возвращает воскресенье недели, к которой относится дата
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}
