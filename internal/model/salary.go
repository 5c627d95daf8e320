package model

// TrainerSalaryRow зарплата тренера за месяц по фактам оплат его учеников
type TrainerSalaryRow struct {
	TrainerName         string  `json:"trainer_name"`
	Month               string  `json:"month"` // YYYY-MM
	TotalAmount         float64 `json:"total_amount"`
	Salary              float64 `json:"salary"`
	MainTrainerStudents int     `json:"main_trainer_students"`
	SecondStudents      int     `json:"second_trainer_students"`
	TotalStudents       int     `json:"total_students"`
}
