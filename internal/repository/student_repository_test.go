package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Баланс занятий в базе nullable: выборки движка обязаны отсекать учеников
// без заведённого остатка, иначе Scan падает на NULL и валит весь прогон
func TestStudentQueriesFilterNullBalance(t *testing.T) {
	queries := map[string]string{
		"ListActiveByPolicy":     listActiveByPolicyQuery,
		"ListActiveWithSchedule": listActiveWithScheduleQuery,
	}

	for name, query := range queries {
		t.Run(name, func(t *testing.T) {
			assert.True(t, strings.Contains(query, "classes_remaining IS NOT NULL"),
				"запрос должен исключать учеников с неизвестным остатком")
			assert.True(t, strings.Contains(query, "s.active = true"))
		})
	}
}
