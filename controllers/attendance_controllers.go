package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hr-attendance-app/services"
	"github.com/yeremiapane/hr-attendance-app/utils"
	"gorm.io/gorm"
)

type AttendanceController struct {
	DB      *gorm.DB
	Service *services.AttendanceService
	Reports *services.ReportService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:      db,
		Service: services.NewAttendanceService(db),
		Reports: services.NewReportService(db),
	}
}

type checkRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Address   string   `json:"address" binding:"required"`
	Notes     string   `json:"notes"`
}

func (cr checkRequest) toEvent() services.CheckEvent {
	return services.CheckEvent{
		Latitude:  *cr.Latitude,
		Longitude: *cr.Longitude,
		Address:   cr.Address,
		Notes:     cr.Notes,
	}
}

// GetToday -> record hari ini milik user login, 404 jika belum ada.
func (ac *AttendanceController) GetToday(c *gin.Context) {
	employeeID, err := currentEmployeeID(c, ac.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	record, err := ac.Service.TodayRecord(employeeID, ac.Service.Now())
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Today's attendance", record)
}

// CheckIn -> 201 saat berhasil, 409 kalau sudah check-in hari ini.
// Selalu untuk "hari ini"; backdating tidak lewat endpoint ini.
func (ac *AttendanceController) CheckIn(c *gin.Context) {
	employeeID, err := currentEmployeeID(c, ac.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	record, err := ac.Service.CheckIn(employeeID, ac.Service.Now(), req.toEvent())
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Checked in", gin.H{
		"record": record,
		"late":   services.IsLate(*record.CheckInTime),
	})
}

// CheckOut -> 200 plus durasi kerja, 409 kalau belum check-in atau
// sudah check-out.
func (ac *AttendanceController) CheckOut(c *gin.Context) {
	employeeID, err := currentEmployeeID(c, ac.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := ac.Service.CheckOut(employeeID, ac.Service.Now(), req.toEvent())
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Checked out", gin.H{
		"record":     result.Record,
		"work_hours": utils.Round2(result.WorkHours),
	})
}

// GetHistory -> riwayat milik sendiri, terbaru dulu, dipaginasi.
func (ac *AttendanceController) GetHistory(c *gin.Context) {
	employeeID, err := currentEmployeeID(c, ac.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	page, size := utils.ParsePagination(c)
	records, total, err := ac.Service.History(employeeID, page, size)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Attendance history", gin.H{
		"records": records,
		"meta":    utils.NewPageMeta(page, size, total),
	})
}

// GetMyReport -> laporan periode yang dibatasi ke karyawan login.
func (ac *AttendanceController) GetMyReport(c *gin.Context) {
	employeeID, err := currentEmployeeID(c, ac.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	stat, err := ac.Reports.EmployeePeriodReport(employeeID, start, end)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Attendance report", stat)
}

// AdminGetRecord -> detail satu record untuk koreksi manual.
func (ac *AttendanceController) AdminGetRecord(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("record_id"))

	record, err := ac.Service.RecordByID(uint(id))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Attendance record detail", record)
}

// AdminUpdateRecord adalah jalur koreksi manual. Melewati state machine
// tapi invarian check-out >= check-in tetap divalidasi ulang di service.
func (ac *AttendanceController) AdminUpdateRecord(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("record_id"))

	type reqBody struct {
		CheckInTime     *time.Time `json:"check_in_time"`
		CheckOutTime    *time.Time `json:"check_out_time"`
		CheckInLat      *float64   `json:"check_in_lat"`
		CheckInLng      *float64   `json:"check_in_lng"`
		CheckInAddress  *string    `json:"check_in_address"`
		CheckOutLat     *float64   `json:"check_out_lat"`
		CheckOutLng     *float64   `json:"check_out_lng"`
		CheckOutAddress *string    `json:"check_out_address"`
		Notes           *string    `json:"notes"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	record, err := ac.Service.AdminUpdate(uint(id), services.RecordPatch{
		CheckInTime:     body.CheckInTime,
		CheckOutTime:    body.CheckOutTime,
		CheckInLat:      body.CheckInLat,
		CheckInLng:      body.CheckInLng,
		CheckInAddress:  body.CheckInAddress,
		CheckOutLat:     body.CheckOutLat,
		CheckOutLng:     body.CheckOutLng,
		CheckOutAddress: body.CheckOutAddress,
		Notes:           body.Notes,
	})
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Attendance record updated", record)
}

// parseRange membaca ?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD.
func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	start, err := parseDate(c.Query("start_date"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(c.Query("end_date"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
