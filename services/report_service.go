package services

import (
	"sort"
	"time"

	"github.com/yeremiapane/hr-attendance-app/models"
	"github.com/yeremiapane/hr-attendance-app/utils"
	"gorm.io/gorm"
)

// DayStat adalah agregat satu hari untuk seluruh organisasi.
// presentCount menghitung semua record yang punya check-in, terlambat
// atau tidak; lateCount adalah subset dari presentCount. Karyawan tanpa
// baris sama sekali dihitung absent.
type DayStat struct {
	Date           string `json:"date"`
	Weekday        string `json:"weekday"`
	PresentCount   int    `json:"present_count"`
	AbsentCount    int    `json:"absent_count"`
	LateCount      int    `json:"late_count"`
	TotalEmployees int    `json:"total_employees"`
}

// EmployeeStat adalah agregat per karyawan dalam satu periode.
type EmployeeStat struct {
	EmployeeID     uint    `json:"employee_id"`
	Name           string  `json:"name"`
	StaffCode      string  `json:"staff_code"`
	PresentDays    int     `json:"present_days"`
	AbsentDays     int     `json:"absent_days"`
	LateDays       int     `json:"late_days"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type PeriodReport struct {
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	TotalDays     int            `json:"total_days"`
	DailyStats    []DayStat      `json:"daily_stats"`
	EmployeeStats []EmployeeStat `json:"employee_stats"`
}

// EmployeeDayRow adalah satu baris daftar kehadiran harian admin.
type EmployeeDayRow struct {
	Employee models.Employee          `json:"employee"`
	Record   *models.AttendanceRecord `json:"record,omitempty"`
	Status   AttendanceStatus         `json:"status"`
}

// ReportService hanya membaca Attendance Record Store, tidak pernah
// memutasi.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

func (s *ReportService) activeEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	err := s.DB.Where("status = ?", models.EmployeeActive).
		Order("id asc").
		Find(&employees).Error
	return employees, err
}

// recordsByEmployeeAndDate memuat seluruh record dalam rentang tanggal
// sekali jalan dan mengelompokkannya per (employee, date).
func (s *ReportService) recordsByEmployeeAndDate(start, end string) (map[uint]map[string]*models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := s.DB.Where("work_date >= ? AND work_date <= ?", start, end).
		Find(&records).Error; err != nil {
		return nil, err
	}

	byEmployee := make(map[uint]map[string]*models.AttendanceRecord)
	for i := range records {
		r := &records[i]
		if byEmployee[r.EmployeeID] == nil {
			byEmployee[r.EmployeeID] = make(map[string]*models.AttendanceRecord)
		}
		byEmployee[r.EmployeeID][r.WorkDate] = r
	}
	return byEmployee, nil
}

// DailySnapshot menghitung present/absent/late untuk satu hari.
// Invarian: presentCount + absentCount == totalEmployees.
func (s *ReportService) DailySnapshot(day time.Time) (*DayStat, error) {
	employees, err := s.activeEmployees()
	if err != nil {
		return nil, err
	}

	workDate := day.Format(models.WorkDateLayout)
	byEmployee, err := s.recordsByEmployeeAndDate(workDate, workDate)
	if err != nil {
		return nil, err
	}

	stat := &DayStat{
		Date:           workDate,
		Weekday:        day.Weekday().String(),
		TotalEmployees: len(employees),
	}
	for _, e := range employees {
		record := byEmployee[e.ID][workDate]
		switch Classify(record) {
		case StatusLate:
			stat.PresentCount++
			stat.LateCount++
		case StatusPresent:
			stat.PresentCount++
		}
	}
	stat.AbsentCount = stat.TotalEmployees - stat.PresentCount
	return stat, nil
}

// DailyList mengembalikan baris per karyawan aktif untuk satu hari,
// dengan filter pencarian (nama atau staff code) dan status
// {present, absent, late, all}.
func (s *ReportService) DailyList(day time.Time, search string, status AttendanceStatus) ([]EmployeeDayRow, error) {
	query := s.DB.Where("status = ?", models.EmployeeActive).Order("id asc")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR staff_code LIKE ?", like, like)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}

	workDate := day.Format(models.WorkDateLayout)
	byEmployee, err := s.recordsByEmployeeAndDate(workDate, workDate)
	if err != nil {
		return nil, err
	}

	rows := make([]EmployeeDayRow, 0, len(employees))
	for _, e := range employees {
		record := byEmployee[e.ID][workDate]
		rowStatus := Classify(record)
		if status != "" && status != "all" && rowStatus != status {
			continue
		}
		rows = append(rows, EmployeeDayRow{Employee: e, Record: record, Status: rowStatus})
	}
	return rows, nil
}

// PeriodReport menghitung statistik harian dan per karyawan untuk
// [start, end] inklusif. Rentang terbalik menghasilkan laporan kosong
// dengan rate 0, bukan error.
func (s *ReportService) PeriodReport(start, end time.Time) (*PeriodReport, error) {
	employees, err := s.activeEmployees()
	if err != nil {
		return nil, err
	}

	startDate := start.Format(models.WorkDateLayout)
	endDate := end.Format(models.WorkDateLayout)
	totalDays := models.CountInclusiveDays(start, end)

	report := &PeriodReport{
		StartDate:     startDate,
		EndDate:       endDate,
		TotalDays:     totalDays,
		DailyStats:    []DayStat{},
		EmployeeStats: make([]EmployeeStat, 0, len(employees)),
	}

	if totalDays <= 0 {
		for _, e := range employees {
			report.EmployeeStats = append(report.EmployeeStats, EmployeeStat{
				EmployeeID: e.ID,
				Name:       e.Name,
				StaffCode:  e.StaffCode,
			})
		}
		return report, nil
	}

	byEmployee, err := s.recordsByEmployeeAndDate(startDate, endDate)
	if err != nil {
		return nil, err
	}

	perEmployee := make(map[uint]*EmployeeStat, len(employees))
	for _, e := range employees {
		perEmployee[e.ID] = &EmployeeStat{
			EmployeeID: e.ID,
			Name:       e.Name,
			StaffCode:  e.StaffCode,
		}
	}

	base := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < totalDays; i++ {
		day := base.AddDate(0, 0, i)
		workDate := day.Format(models.WorkDateLayout)

		stat := DayStat{
			Date:           workDate,
			Weekday:        day.Weekday().String(),
			TotalEmployees: len(employees),
		}
		for _, e := range employees {
			record := byEmployee[e.ID][workDate]
			switch Classify(record) {
			case StatusLate:
				stat.PresentCount++
				stat.LateCount++
				perEmployee[e.ID].PresentDays++
				perEmployee[e.ID].LateDays++
			case StatusPresent:
				stat.PresentCount++
				perEmployee[e.ID].PresentDays++
			}
		}
		stat.AbsentCount = stat.TotalEmployees - stat.PresentCount
		report.DailyStats = append(report.DailyStats, stat)
	}

	for _, e := range employees {
		es := perEmployee[e.ID]
		es.AbsentDays = totalDays - es.PresentDays
		es.AttendanceRate = utils.Round2(float64(es.PresentDays) / float64(totalDays) * 100)
		report.EmployeeStats = append(report.EmployeeStats, *es)
	}

	// Leaderboard: rate tertinggi dulu, seri dipecah dengan ID naik
	// supaya deterministik.
	sort.SliceStable(report.EmployeeStats, func(i, j int) bool {
		a, b := report.EmployeeStats[i], report.EmployeeStats[j]
		if a.AttendanceRate != b.AttendanceRate {
			return a.AttendanceRate > b.AttendanceRate
		}
		return a.EmployeeID < b.EmployeeID
	})

	return report, nil
}

// EmployeePeriodReport adalah laporan periode yang dibatasi ke satu
// karyawan (self-service).
func (s *ReportService) EmployeePeriodReport(employeeID uint, start, end time.Time) (*EmployeeStat, error) {
	var employee models.Employee
	if err := s.DB.First(&employee, employeeID).Error; err != nil {
		return nil, ErrEmployeeNotFound
	}

	stat := &EmployeeStat{
		EmployeeID: employee.ID,
		Name:       employee.Name,
		StaffCode:  employee.StaffCode,
	}

	totalDays := models.CountInclusiveDays(start, end)
	if totalDays <= 0 {
		return stat, nil
	}

	var records []models.AttendanceRecord
	if err := s.DB.Where("employee_id = ? AND work_date >= ? AND work_date <= ?",
		employeeID, start.Format(models.WorkDateLayout), end.Format(models.WorkDateLayout)).
		Find(&records).Error; err != nil {
		return nil, err
	}

	for i := range records {
		switch Classify(&records[i]) {
		case StatusLate:
			stat.PresentDays++
			stat.LateDays++
		case StatusPresent:
			stat.PresentDays++
		}
	}
	stat.AbsentDays = totalDays - stat.PresentDays
	stat.AttendanceRate = utils.Round2(float64(stat.PresentDays) / float64(totalDays) * 100)
	return stat, nil
}
