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

type ClientController struct {
	DB *gorm.DB
}

func NewClientController(db *gorm.DB) *ClientController {
	return &ClientController{DB: db}
}

// GetAllClients
func (cc *ClientController) GetAllClients(c *gin.Context) {
	query := cc.DB.Preload("Employees").Order("id asc")
	if c.DefaultQuery("status", "active") != "all" {
		query = query.Where("status = ?", models.ClientStatus(c.DefaultQuery("status", "active")))
	}

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All clients", clients)
}

// CreateClient
func (cc *ClientController) CreateClient(c *gin.Context) {
	type reqBody struct {
		Name          string `json:"name" binding:"required"`
		ContactPerson string `json:"contact_person"`
		Email         string `json:"email"`
		Phone         string `json:"phone"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	client := models.Client{
		Name:          body.Name,
		ContactPerson: body.ContactPerson,
		Email:         body.Email,
		Phone:         body.Phone,
		Status:        models.ClientActive,
	}
	if err := cc.DB.Create(&client).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Client created", client)
}

// GetClientByID
func (cc *ClientController) GetClientByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("client_id"))

	var client models.Client
	if err := cc.DB.Preload("Employees").First(&client, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Client detail", client)
}

// UpdateClient
func (cc *ClientController) UpdateClient(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("client_id"))

	type reqBody struct {
		Name          *string `json:"name"`
		ContactPerson *string `json:"contact_person"`
		Email         *string `json:"email"`
		Phone         *string `json:"phone"`
		Status        *string `json:"status"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var client models.Client
	if err := cc.DB.First(&client, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != nil {
		client.Name = *body.Name
	}
	if body.ContactPerson != nil {
		client.ContactPerson = *body.ContactPerson
	}
	if body.Email != nil {
		client.Email = *body.Email
	}
	if body.Phone != nil {
		client.Phone = *body.Phone
	}
	if body.Status != nil {
		status := models.ClientStatus(*body.Status)
		if status != models.ClientActive && status != models.ClientArchived {
			utils.RespondError(c, http.StatusBadRequest, errors.New("status must be active or archived"))
			return
		}
		client.Status = status
	}

	if err := cc.DB.Save(&client).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Client updated", client)
}

// AssignEmployee menghubungkan karyawan ke klien (many-to-many).
func (cc *ClientController) AssignEmployee(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("client_id"))

	type reqBody struct {
		EmployeeID uint `json:"employee_id" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var client models.Client
	if err := cc.DB.First(&client, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var employee models.Employee
	if err := cc.DB.First(&employee, body.EmployeeID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if employee.IsArchived() {
		utils.RespondError(c, http.StatusConflict, errors.New("cannot assign an archived employee"))
		return
	}

	if err := cc.DB.Model(&client).Association("Employees").Append(&employee); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Employee assigned to client", gin.H{
		"client_id":   client.ID,
		"employee_id": employee.ID,
	})
}

// UnassignEmployee melepas hubungan karyawan-klien.
func (cc *ClientController) UnassignEmployee(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("client_id"))
	employeeID, _ := strconv.Atoi(c.Param("employee_id"))

	var client models.Client
	if err := cc.DB.First(&client, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var employee models.Employee
	if err := cc.DB.First(&employee, employeeID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := cc.DB.Model(&client).Association("Employees").Delete(&employee); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Employee unassigned from client", gin.H{
		"client_id":   client.ID,
		"employee_id": employee.ID,
	})
}
