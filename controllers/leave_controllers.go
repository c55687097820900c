package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hr-attendance-app/models"
	"github.com/yeremiapane/hr-attendance-app/services"
	"github.com/yeremiapane/hr-attendance-app/utils"
	"gorm.io/gorm"
)

type LeaveController struct {
	DB      *gorm.DB
	Service *services.LeaveService
}

func NewLeaveController(db *gorm.DB) *LeaveController {
	return &LeaveController{DB: db, Service: services.NewLeaveService(db)}
}

// CreateLeaveRequest -> pengajuan cuti oleh karyawan login.
func (lc *LeaveController) CreateLeaveRequest(c *gin.Context) {
	employeeID, err := currentEmployeeID(c, lc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	type reqBody struct {
		LeaveType string `json:"leave_type" binding:"required"`
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
		Reason    string `json:"reason"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	start, err := parseDate(body.StartDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("start_date must be YYYY-MM-DD"))
		return
	}
	end, err := parseDate(body.EndDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("end_date must be YYYY-MM-DD"))
		return
	}

	request, err := lc.Service.Create(employeeID, models.LeaveType(body.LeaveType), start, end, body.Reason)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Leave request submitted", request)
}

// GetMyLeaveRequests
func (lc *LeaveController) GetMyLeaveRequests(c *gin.Context) {
	employeeID, err := currentEmployeeID(c, lc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	requests, err := lc.Service.ListForEmployee(employeeID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My leave requests", requests)
}

// CancelLeaveRequest -> batalkan pengajuan pending milik sendiri.
func (lc *LeaveController) CancelLeaveRequest(c *gin.Context) {
	employeeID, err := currentEmployeeID(c, lc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("leave_id"))
	request, err := lc.Service.Cancel(employeeID, uint(id))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Leave request cancelled", request)
}

// GetAllLeaveRequests -> daftar untuk admin, ?status= opsional.
func (lc *LeaveController) GetAllLeaveRequests(c *gin.Context) {
	requests, err := lc.Service.ListAll(models.LeaveStatus(c.Query("status")))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All leave requests", requests)
}

// DecideLeaveRequest -> approve / reject / cancel oleh admin.
// Persetujuan men-stamp approver dan waktunya.
func (lc *LeaveController) DecideLeaveRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("leave_id"))

	type reqBody struct {
		Status string `json:"status" binding:"required"` // approved, rejected, cancelled
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	next := models.LeaveStatus(body.Status)
	if next != models.LeaveApproved && next != models.LeaveRejected && next != models.LeaveCancelled {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status must be approved, rejected or cancelled"))
		return
	}

	request, err := lc.Service.Decide(uint(id), userID, next)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Leave request updated", request)
}
