package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/hr-attendance-app/models"
)

// seedOrg: 10 karyawan aktif, 6 check-in pada 2024-01-10 (2 terlambat),
// 4 tanpa baris sama sekali.
func seedOrg(t *testing.T, db *gorm.DB) []models.Employee {
	t.Helper()

	employees := make([]models.Employee, 0, 10)
	for i := 1; i <= 10; i++ {
		employees = append(employees, seedEmployee(t, db, fmt.Sprintf("Employee %d", i), fmt.Sprintf("EMP-%03d", i)))
	}

	onTime := time.Date(2024, 1, 10, 8, 30, 0, 0, time.Local)
	late := time.Date(2024, 1, 10, 9, 45, 0, 0, time.Local)

	for i := 0; i < 6; i++ {
		checkIn := onTime
		if i < 2 {
			checkIn = late
		}
		db.Create(&models.AttendanceRecord{
			EmployeeID:  employees[i].ID,
			WorkDate:    "2024-01-10",
			CheckInTime: &checkIn,
		})
	}
	return employees
}

func TestDailySnapshot(t *testing.T) {
	db := setupAttendanceTestDB(t)
	seedOrg(t, db)

	svc := NewReportService(db)
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)

	stat, err := svc.DailySnapshot(day)
	assert.NoError(t, err)
	assert.Equal(t, 10, stat.TotalEmployees)
	assert.Equal(t, 6, stat.PresentCount)
	assert.Equal(t, 4, stat.AbsentCount)
	assert.Equal(t, 2, stat.LateCount)
	assert.Equal(t, "Wednesday", stat.Weekday)

	// Invarian agregasi: present + absent == total, late subset present.
	assert.Equal(t, stat.TotalEmployees, stat.PresentCount+stat.AbsentCount)
	assert.LessOrEqual(t, stat.LateCount, stat.PresentCount)
}

func TestDailySnapshotExcludesArchivedEmployees(t *testing.T) {
	db := setupAttendanceTestDB(t)
	employees := seedOrg(t, db)

	// Arsipkan satu karyawan yang absent: total dan absent turun satu.
	db.Model(&models.Employee{}).Where("id = ?", employees[9].ID).
		Update("status", models.EmployeeArchived)

	svc := NewReportService(db)
	stat, err := svc.DailySnapshot(time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local))
	assert.NoError(t, err)
	assert.Equal(t, 9, stat.TotalEmployees)
	assert.Equal(t, 6, stat.PresentCount)
	assert.Equal(t, 3, stat.AbsentCount)
}

func TestDailyListFilters(t *testing.T) {
	db := setupAttendanceTestDB(t)
	seedOrg(t, db)

	svc := NewReportService(db)
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)

	all, err := svc.DailyList(day, "", "all")
	assert.NoError(t, err)
	assert.Len(t, all, 10)

	late, err := svc.DailyList(day, "", StatusLate)
	assert.NoError(t, err)
	assert.Len(t, late, 2)

	absent, err := svc.DailyList(day, "", StatusAbsent)
	assert.NoError(t, err)
	assert.Len(t, absent, 4)
	for _, row := range absent {
		assert.Nil(t, row.Record)
	}

	byCode, err := svc.DailyList(day, "EMP-003", "all")
	assert.NoError(t, err)
	assert.Len(t, byCode, 1)
	assert.Equal(t, "EMP-003", byCode[0].Employee.StaffCode)
}

func TestPeriodReport(t *testing.T) {
	db := setupAttendanceTestDB(t)
	e1 := seedEmployee(t, db, "Alice", "EMP-001")
	e2 := seedEmployee(t, db, "Bob", "EMP-002")

	// e1 hadir 3 dari 4 hari (1 kali terlambat), e2 hadir 1 hari.
	for i, date := range []string{"2024-01-08", "2024-01-09", "2024-01-10"} {
		hour := 8
		if i == 2 {
			hour = 10
		}
		checkIn := time.Date(2024, 1, 8+i, hour, 0, 0, 0, time.Local)
		db.Create(&models.AttendanceRecord{EmployeeID: e1.ID, WorkDate: date, CheckInTime: &checkIn})
	}
	checkIn := time.Date(2024, 1, 9, 8, 0, 0, 0, time.Local)
	db.Create(&models.AttendanceRecord{EmployeeID: e2.ID, WorkDate: "2024-01-09", CheckInTime: &checkIn})

	svc := NewReportService(db)
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 1, 11, 0, 0, 0, 0, time.Local)

	report, err := svc.PeriodReport(start, end)
	assert.NoError(t, err)
	assert.Equal(t, 4, report.TotalDays)
	assert.Len(t, report.DailyStats, 4)
	assert.Equal(t, "Monday", report.DailyStats[0].Weekday)
	assert.Equal(t, "2024-01-11", report.DailyStats[3].Date)
	assert.Equal(t, 0, report.DailyStats[3].PresentCount)

	assert.Len(t, report.EmployeeStats, 2)
	// Leaderboard: rate tertinggi dulu.
	top := report.EmployeeStats[0]
	assert.Equal(t, e1.ID, top.EmployeeID)
	assert.Equal(t, 3, top.PresentDays)
	assert.Equal(t, 1, top.AbsentDays)
	assert.Equal(t, 1, top.LateDays)
	assert.Equal(t, 75.0, top.AttendanceRate)

	second := report.EmployeeStats[1]
	assert.Equal(t, 25.0, second.AttendanceRate)

	for _, es := range report.EmployeeStats {
		assert.GreaterOrEqual(t, es.AttendanceRate, 0.0)
		assert.LessOrEqual(t, es.AttendanceRate, 100.0)
	}
}

func TestPeriodReportInvertedRange(t *testing.T) {
	db := setupAttendanceTestDB(t)
	seedEmployee(t, db, "Alice", "EMP-001")

	svc := NewReportService(db)
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 1, 8, 0, 0, 0, 0, time.Local)

	// Rentang terbalik: bukan error, daftar harian kosong, rate 0.
	report, err := svc.PeriodReport(start, end)
	assert.NoError(t, err)
	assert.Equal(t, 0, report.TotalDays)
	assert.Empty(t, report.DailyStats)
	assert.Len(t, report.EmployeeStats, 1)
	assert.Equal(t, 0.0, report.EmployeeStats[0].AttendanceRate)
}

func TestPeriodReportTieBreakByEmployeeID(t *testing.T) {
	db := setupAttendanceTestDB(t)
	e1 := seedEmployee(t, db, "Alice", "EMP-001")
	e2 := seedEmployee(t, db, "Bob", "EMP-002")

	checkIn := time.Date(2024, 1, 8, 8, 0, 0, 0, time.Local)
	db.Create(&models.AttendanceRecord{EmployeeID: e1.ID, WorkDate: "2024-01-08", CheckInTime: &checkIn})
	db.Create(&models.AttendanceRecord{EmployeeID: e2.ID, WorkDate: "2024-01-08", CheckInTime: &checkIn})

	svc := NewReportService(db)
	day := time.Date(2024, 1, 8, 0, 0, 0, 0, time.Local)
	report, err := svc.PeriodReport(day, day)
	assert.NoError(t, err)

	// Rate sama: ID kecil dulu supaya deterministik.
	assert.Equal(t, e1.ID, report.EmployeeStats[0].EmployeeID)
	assert.Equal(t, e2.ID, report.EmployeeStats[1].EmployeeID)
}

func TestEmployeePeriodReport(t *testing.T) {
	db := setupAttendanceTestDB(t)
	e1 := seedEmployee(t, db, "Alice", "EMP-001")

	checkIn := time.Date(2024, 1, 8, 9, 30, 0, 0, time.Local)
	db.Create(&models.AttendanceRecord{EmployeeID: e1.ID, WorkDate: "2024-01-08", CheckInTime: &checkIn})

	svc := NewReportService(db)
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 1, 9, 0, 0, 0, 0, time.Local)

	stat, err := svc.EmployeePeriodReport(e1.ID, start, end)
	assert.NoError(t, err)
	assert.Equal(t, 1, stat.PresentDays)
	assert.Equal(t, 1, stat.AbsentDays)
	assert.Equal(t, 1, stat.LateDays)
	assert.Equal(t, 50.0, stat.AttendanceRate)

	_, err = svc.EmployeePeriodReport(e1.ID+99, start, end)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}
