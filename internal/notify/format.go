package notify

import (
	"fmt"
	"strings"

	"github.com/judoclub/billing_engine/internal/service"
)

// PluralizeClasses возвращает правильное склонение слова "занятие"
func PluralizeClasses(count int) string {
	n := count
	if n < 0 {
		n = -n
	}
	if n%10 == 1 && n%100 != 11 {
		return "занятие"
	}
	if n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20) {
		return "занятия"
	}
	return "занятий"
}

// PluralizeStudents возвращает правильное склонение слова "ученик"
func PluralizeStudents(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "ученик"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "ученика"
	}
	return "учеников"
}

// FormatRunSummary собирает текст отчёта о прогоне для админского чата
func FormatRunSummary(summary *service.RunSummary) string {
	var b strings.Builder

	statusEmoji := "✅"
	if !summary.Success {
		statusEmoji = "💥"
	}

	fmt.Fprintf(&b, "%s <b>Списания за %s (%s)</b>\n\n",
		statusEmoji,
		summary.Date.Format("02.01.2006"),
		summary.Weekday.RussianName())

	fmt.Fprintf(&b, "📉 Списано %d %s у %d %s\n",
		summary.ClassesWrittenOff, PluralizeClasses(summary.ClassesWrittenOff),
		summary.StudentsDebited, PluralizeStudents(summary.StudentsDebited))
	fmt.Fprintf(&b, "📅 Обновлено дат оплаты: %d\n", summary.PaymentDatesUpdated)

	if summary.NegativeBalances > 0 {
		fmt.Fprintf(&b, "⚠️ Ушли в долг: %d\n", summary.NegativeBalances)
	}
	if summary.ZeroBalances > 0 {
		fmt.Fprintf(&b, "🔔 Баланс исчерпан: %d\n", summary.ZeroBalances)
	}

	if sample := summary.Sample(5); len(sample) > 0 {
		b.WriteString("\n")
		for _, d := range sample {
			fmt.Fprintf(&b, "👉 %s — %d %s, осталось %d\n",
				d.Name, d.Quantity, PluralizeClasses(d.Quantity), d.Remaining)
		}
		if extra := len(summary.Debits) - len(sample); extra > 0 {
			fmt.Fprintf(&b, "… и ещё %d\n", extra)
		}
	}

	if len(summary.Errors) > 0 {
		fmt.Fprintf(&b, "\n❌ Ошибок: %d\n", len(summary.Errors))
		for i, e := range summary.Errors {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "   %s\n", e)
		}
	}

	return b.String()
}
