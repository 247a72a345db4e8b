package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateTotalDays(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", day(2025, time.March, 10), day(2025, time.March, 10), 1},
		{"three days", day(2025, time.March, 10), day(2025, time.March, 12), 3},
		{"across month boundary", day(2025, time.January, 30), day(2025, time.February, 2), 4},
		{"across year boundary", day(2024, time.December, 30), day(2025, time.January, 2), 4},
		{"leap february", day(2024, time.February, 28), day(2024, time.March, 1), 3},
		{"full week", day(2025, time.June, 2), day(2025, time.June, 8), 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, CalculateTotalDays(c.start, c.end))
		})
	}
}

func TestCalculateTotalDaysIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, time.March, 10, 23, 45, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 12, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 3, CalculateTotalDays(start, end))
}

func TestCalculateTotalDaysAtLeastOne(t *testing.T) {
	start := day(2025, time.March, 10)
	for offset := 0; offset < 60; offset++ {
		end := start.AddDate(0, 0, offset)
		got := CalculateTotalDays(start, end)
		assert.Equal(t, offset+1, got)
		assert.GreaterOrEqual(t, got, 1)
	}
}

func TestIsValidType(t *testing.T) {
	for _, lt := range AllTypes() {
		assert.True(t, IsValidType(string(lt)))
	}
	assert.False(t, IsValidType("sabbatical"))
	assert.False(t, IsValidType(""))
}

func TestIsValidDecision(t *testing.T) {
	assert.True(t, IsValidDecision("approved"))
	assert.True(t, IsValidDecision("rejected"))
	assert.False(t, IsValidDecision("pending"))
	assert.False(t, IsValidDecision("Approved"))
	assert.False(t, IsValidDecision(""))
}
