package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountInclusiveDays(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	}

	assert.Equal(t, 1, CountInclusiveDays(date(2024, 2, 5), date(2024, 2, 5)))
	assert.Equal(t, 5, CountInclusiveDays(date(2024, 2, 5), date(2024, 2, 9)))
	// Lintas akhir bulan
	assert.Equal(t, 3, CountInclusiveDays(date(2024, 2, 28), date(2024, 3, 1)))
	// Rentang terbalik
	assert.Equal(t, 0, CountInclusiveDays(date(2024, 2, 9), date(2024, 2, 5)))
}

func TestValidLeaveType(t *testing.T) {
	assert.True(t, ValidLeaveType(LeaveVacation))
	assert.True(t, ValidLeaveType(LeaveUnpaid))
	assert.False(t, ValidLeaveType("holiday"))
	assert.False(t, ValidLeaveType(""))
}
