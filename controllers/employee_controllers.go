package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hr-attendance-app/models"
	"github.com/yeremiapane/hr-attendance-app/utils"
	"gorm.io/gorm"
)

type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

// GetAllEmployees -> daftar karyawan, default hanya yang aktif.
// ?status=archived menampilkan arsip, ?status=all semuanya.
func (ec *EmployeeController) GetAllEmployees(c *gin.Context) {
	query := ec.DB.Order("id asc")

	switch c.DefaultQuery("status", "active") {
	case "all":
		// tanpa filter
	case "archived":
		query = query.Where("status = ?", models.EmployeeArchived)
	default:
		query = query.Where("status = ?", models.EmployeeActive)
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR staff_code LIKE ?", like, like)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All employees", employees)
}

// CreateEmployee
func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	type reqBody struct {
		Name           string `json:"name" binding:"required"`
		StaffCode      string `json:"staff_code" binding:"required"`
		EmploymentType string `json:"employment_type"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	employmentType := models.EmploymentType(body.EmploymentType)
	if body.EmploymentType == "" {
		employmentType = models.EmploymentEmployee
	}
	if !models.ValidEmploymentType(employmentType) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("employment_type must be employee or student"))
		return
	}

	employee := models.Employee{
		Name:           body.Name,
		StaffCode:      body.StaffCode,
		EmploymentType: employmentType,
		Status:         models.EmployeeActive,
	}
	if err := ec.DB.Create(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Employee created: %s (%s)", employee.Name, employee.StaffCode)
	utils.RespondJSON(c, http.StatusCreated, "Employee created", employee)
}

// GetEmployeeByID
func (ec *EmployeeController) GetEmployeeByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("employee_id"))

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Employee detail", employee)
}

// UpdateEmployee
func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("employee_id"))

	type reqBody struct {
		Name           *string `json:"name"`
		StaffCode      *string `json:"staff_code"`
		EmploymentType *string `json:"employment_type"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != nil {
		employee.Name = *body.Name
	}
	if body.StaffCode != nil {
		employee.StaffCode = *body.StaffCode
	}
	if body.EmploymentType != nil {
		employmentType := models.EmploymentType(*body.EmploymentType)
		if !models.ValidEmploymentType(employmentType) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("employment_type must be employee or student"))
			return
		}
		employee.EmploymentType = employmentType
	}

	if err := ec.DB.Save(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Employee updated", employee)
}

// ArchiveEmployee -> soft delete: status archived, bisa dipulihkan.
// Record kehadiran historis tidak ikut terhapus.
func (ec *EmployeeController) ArchiveEmployee(c *gin.Context) {
	ec.setStatus(c, models.EmployeeArchived, "Employee archived")
}

// RestoreEmployee -> kembalikan dari arsip.
func (ec *EmployeeController) RestoreEmployee(c *gin.Context) {
	ec.setStatus(c, models.EmployeeActive, "Employee restored")
}

func (ec *EmployeeController) setStatus(c *gin.Context, status models.EmployeeStatus, message string) {
	id, _ := strconv.Atoi(c.Param("employee_id"))

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	employee.Status = status
	if err := ec.DB.Save(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, message, employee)
}

// DeleteEmployee menghapus permanen. Hanya karyawan yang sudah
// diarsipkan yang boleh dihapus, supaya hapus permanen selalu aksi dua
// langkah yang eksplisit.
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("employee_id"))

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !employee.IsArchived() {
		utils.RespondError(c, http.StatusConflict, errors.New("employee must be archived before permanent deletion"))
		return
	}

	if err := ec.DB.Delete(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Employee permanently deleted: %s (%s)", employee.Name, employee.StaffCode)
	utils.RespondJSON(c, http.StatusOK, "Employee permanently deleted", gin.H{"employee_id": id})
}
