package model

// TariffPolicy правило списания занятий для тарифа. Задаётся явно при
// создании тарифа, а не выводится из ID или количества занятий.
type TariffPolicy string

const (
	// PolicyStandard одно занятие за тренировочный день, по субботам —
	// по числу фактических посещений
	PolicyStandard TariffPolicy = "standard"
	// PolicySpecialSaturday фиксированные два занятия за субботнюю тренировку
	PolicySpecialSaturday TariffPolicy = "special_saturday"
	// PolicyEightCredit абонемент на 8 занятий: суббота по посещениям
	// плюс добор до двух тренировок в неделю
	PolicyEightCredit TariffPolicy = "eight_credit"
)

// AllPolicies порядок обработки тарифных классов за один прогон
var AllPolicies = []TariffPolicy{PolicyStandard, PolicySpecialSaturday, PolicyEightCredit}

// Tariff прайс на месяц занятий
type Tariff struct {
	ID             int64        `json:"id"`
	Price          int          `json:"price"`
	ClassesInPrice int          `json:"classes_in_price"`
	Description    string       `json:"description"`
	Policy         TariffPolicy `json:"policy"`
}
