package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/hr-attendance-app/controllers"
	"github.com/yeremiapane/hr-attendance-app/models"
	"github.com/yeremiapane/hr-attendance-app/utils"
)

func setupTestDBForAttendance(t *testing.T) (*gorm.DB, models.User) {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal("failed to connect database")
	}
	err = db.AutoMigrate(&models.User{}, &models.Employee{}, &models.AttendanceRecord{})
	if err != nil {
		t.Fatal(err)
	}

	employee := models.Employee{
		Name:           "Employee1",
		StaffCode:      "EMP-001",
		EmploymentType: models.EmploymentEmployee,
		Status:         models.EmployeeActive,
	}
	db.Create(&employee)

	user := models.User{
		Name:       "Employee1",
		Email:      "employee1@example.com",
		Password:   "secret", // untuk test, password plain
		Role:       "employee",
		EmployeeID: &employee.ID,
	}
	db.Create(&user)
	return db, user
}

// fakeAuth meniru AuthMiddleware: set user_id + role tanpa token.
func fakeAuth(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func setupAttendanceRouter(db *gorm.DB, user models.User) (*gin.Engine, *controllers.AttendanceController) {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	attendanceCtrl := controllers.NewAttendanceController(db)

	authed := router.Group("/api")
	authed.Use(fakeAuth(user.ID, user.Role))
	authed.GET("/attendance/today", attendanceCtrl.GetToday)
	authed.POST("/attendance/check-in", attendanceCtrl.CheckIn)
	authed.POST("/attendance/check-out", attendanceCtrl.CheckOut)
	authed.GET("/attendance/history", attendanceCtrl.GetHistory)
	return router, attendanceCtrl
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var checkPayload = map[string]interface{}{
	"latitude":  23.7925,
	"longitude": 90.4078,
	"address":   "Gulshan-1, Dhaka",
}

func TestCheckInFlow(t *testing.T) {
	db, user := setupTestDBForAttendance(t)
	router, ctrl := setupAttendanceRouter(db, user)

	checkInAt := time.Date(2024, 1, 10, 9, 15, 0, 0, time.Local)
	ctrl.Service.Now = func() time.Time { return checkInAt }

	// Belum ada record -> 404
	req, _ := http.NewRequest("GET", "/api/attendance/today", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Check-in -> 201, terlambat karena lewat 09:00
	w = postJSON(t, router, "/api/attendance/check-in", checkPayload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Checked in", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["late"])

	// Check-in kedua -> 409, bukan overwrite
	w = postJSON(t, router, "/api/attendance/check-in", checkPayload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Record hari ini sekarang ada
	req, _ = http.NewRequest("GET", "/api/attendance/today", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckOutFlow(t *testing.T) {
	db, user := setupTestDBForAttendance(t)
	router, ctrl := setupAttendanceRouter(db, user)

	// Check-out tanpa check-in -> 409
	w := postJSON(t, router, "/api/attendance/check-out", checkPayload)
	assert.Equal(t, http.StatusConflict, w.Code)

	checkInAt := time.Date(2024, 1, 10, 8, 0, 0, 0, time.Local)
	ctrl.Service.Now = func() time.Time { return checkInAt }
	w = postJSON(t, router, "/api/attendance/check-in", checkPayload)
	assert.Equal(t, http.StatusCreated, w.Code)

	ctrl.Service.Now = func() time.Time {
		return time.Date(2024, 1, 10, 16, 30, 0, 0, time.Local)
	}
	w = postJSON(t, router, "/api/attendance/check-out", checkPayload)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 8.5, data["work_hours"].(float64))

	// Check-out kedua -> 409
	w = postJSON(t, router, "/api/attendance/check-out", checkPayload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckInValidationOverHTTP(t *testing.T) {
	db, user := setupTestDBForAttendance(t)
	router, _ := setupAttendanceRouter(db, user)

	// Alamat wajib diisi (binding)
	w := postJSON(t, router, "/api/attendance/check-in", map[string]interface{}{
		"latitude":  23.7925,
		"longitude": 90.4078,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Koordinat di luar jangkauan (validasi service)
	w = postJSON(t, router, "/api/attendance/check-in", map[string]interface{}{
		"latitude":  123.0,
		"longitude": 90.4078,
		"address":   "Gulshan-1, Dhaka",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryEndpoint(t *testing.T) {
	db, user := setupTestDBForAttendance(t)
	router, _ := setupAttendanceRouter(db, user)

	checkIn := time.Date(2024, 1, 8, 8, 0, 0, 0, time.Local)
	for _, date := range []string{"2024-01-08", "2024-01-09", "2024-01-10"} {
		db.Create(&models.AttendanceRecord{
			EmployeeID:  *user.EmployeeID,
			WorkDate:    date,
			CheckInTime: &checkIn,
		})
	}

	req, _ := http.NewRequest("GET", "/api/attendance/history?page=1&page_size=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	records := data["records"].([]interface{})
	assert.Len(t, records, 2)

	// Terbaru dulu
	first := records[0].(map[string]interface{})
	assert.Equal(t, "2024-01-10", first["work_date"])

	meta := data["meta"].(map[string]interface{})
	assert.Equal(t, float64(3), meta["total_rows"])
	assert.Equal(t, float64(2), meta["total_pages"])
}
