package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/hr-attendance-app/models"
	"github.com/yeremiapane/hr-attendance-app/router"
	"github.com/yeremiapane/hr-attendance-app/utils"
)

func setupIntegrationApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.AttendanceRecord{},
		&models.LeaveRequest{},
		&models.Client{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return router.SetupRouter(db), db
}

func seedAccount(t *testing.T, db *gorm.DB, name, email, password, role string, employeeID *uint) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := models.User{
		Name: name, Email: email, Password: string(hashed),
		Role: role, EmployeeID: employeeID,
	}
	assert.NoError(t, db.Create(&user).Error)
	return user
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["data"].(map[string]interface{})["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

// Alur penuh lewat router asli: login JWT, check-in, check-out, lalu
// snapshot harian oleh admin.
func TestAttendanceEndToEnd(t *testing.T) {
	r, db := setupIntegrationApp(t)

	employee := models.Employee{
		Name:      "Integration Employee",
		StaffCode: "EMP-100",
		Status:    models.EmployeeActive,
	}
	assert.NoError(t, db.Create(&employee).Error)

	seedAccount(t, db, "Integration Employee", "emp@example.com", "Password123", "employee", &employee.ID)
	seedAccount(t, db, "Admin", "admin@example.com", "Password123", "admin", nil)

	empToken := loginAs(t, r, "emp@example.com", "Password123")
	adminToken := loginAs(t, r, "admin@example.com", "Password123")

	checkPayload := map[string]interface{}{
		"latitude":  23.7925,
		"longitude": 90.4078,
		"address":   "Gulshan-1, Dhaka",
	}

	// Tanpa token -> 401
	w := doJSON(t, r, "POST", "/api/attendance/check-in", "", checkPayload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Check-in pertama -> 201
	w = doJSON(t, r, "POST", "/api/attendance/check-in", empToken, checkPayload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Check-in kedua di hari yang sama -> 409, record tidak berubah
	w = doJSON(t, r, "POST", "/api/attendance/check-out", empToken, checkPayload)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", "/api/attendance/check-in", empToken, checkPayload)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.AttendanceRecord{}).Where("employee_id = ?", employee.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// Endpoint admin ditolak untuk karyawan biasa
	w = doJSON(t, r, "GET", "/admin/reports/daily", empToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Snapshot harian oleh admin: 1 hadir dari 1 karyawan aktif
	today := time.Now().Format(models.WorkDateLayout)
	w = doJSON(t, r, "GET", "/admin/reports/daily?date="+today, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["present_count"])
	assert.Equal(t, float64(0), data["absent_count"])
	assert.Equal(t, float64(1), data["total_employees"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, db := setupIntegrationApp(t)
	seedAccount(t, db, "Admin", "admin2@example.com", "Password123", "admin", nil)

	w := doJSON(t, r, "POST", "/login", "", map[string]string{
		"email":    "admin2@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
