package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/hr-attendance-app/services"
	"github.com/yeremiapane/hr-attendance-app/utils"
	"gorm.io/gorm"
)

type ReportController struct {
	DB      *gorm.DB
	Reports *services.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Reports: services.NewReportService(db)}
}

// GetDailyAttendance -> daftar kehadiran harian seluruh organisasi.
// Filter: ?date= (default hari ini), ?search= (nama / staff code),
// ?status= {present, absent, late, all}.
func (rc *ReportController) GetDailyAttendance(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	status := services.AttendanceStatus(c.DefaultQuery("status", "all"))
	switch status {
	case "all", services.StatusPresent, services.StatusAbsent, services.StatusLate:
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("status must be present, absent, late or all"))
		return
	}

	rows, err := rc.Reports.DailyList(day, c.Query("search"), status)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Daily attendance", rows)
}

// GetDailySnapshot -> {present, absent, late, total_employees} satu hari.
func (rc *ReportController) GetDailySnapshot(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	stat, err := rc.Reports.DailySnapshot(day)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Daily snapshot", stat)
}

// GetPeriodReport -> statistik harian + per karyawan untuk satu rentang.
func (rc *ReportController) GetPeriodReport(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("start_date and end_date must be YYYY-MM-DD"))
		return
	}

	report, err := rc.Reports.PeriodReport(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Period report", report)
}

// ExportData -> laporan periode sebagai CSV.
func (rc *ReportController) ExportData(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("start_date and end_date must be YYYY-MM-DD"))
		return
	}

	report, err := rc.Reports.PeriodReport(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.csv", report.StartDate, report.EndDate)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"employee_id", "staff_code", "name", "present_days", "absent_days", "late_days", "attendance_rate"})
	for _, es := range report.EmployeeStats {
		_ = w.Write([]string{
			strconv.FormatUint(uint64(es.EmployeeID), 10),
			es.StaffCode,
			es.Name,
			strconv.Itoa(es.PresentDays),
			strconv.Itoa(es.AbsentDays),
			strconv.Itoa(es.LateDays),
			fmt.Sprintf("%.2f", es.AttendanceRate),
		})
	}
	w.Flush()
}

// ExportPDF -> laporan periode sebagai PDF tabular.
func (rc *ReportController) ExportPDF(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("start_date and end_date must be YYYY-MM-DD"))
		return
	}

	report, err := rc.Reports.PeriodReport(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Attendance Report %s - %s", report.StartDate, report.EndDate))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"Staff Code", "Name", "Present", "Absent", "Late", "Rate (%)"}
	widths := []float64{28, 62, 22, 22, 22, 24}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, es := range report.EmployeeStats {
		pdf.CellFormat(widths[0], 7, es.StaffCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, es.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, strconv.Itoa(es.PresentDays), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, strconv.Itoa(es.AbsentDays), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, strconv.Itoa(es.LateDays), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, fmt.Sprintf("%.2f", es.AttendanceRate), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	filename := fmt.Sprintf("attendance_%s_%s.pdf", report.StartDate, report.EndDate)
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Failed to write PDF report: %v", err)
	}
}
