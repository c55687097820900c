package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hr-attendance-app/controllers"
	"github.com/yeremiapane/hr-attendance-app/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	employeeCtrl := controllers.NewEmployeeController(db)
	attendanceCtrl := controllers.NewAttendanceController(db)
	leaveCtrl := controllers.NewLeaveController(db)
	clientCtrl := controllers.NewClientController(db)
	reportCtrl := controllers.NewReportController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//              EMPLOYEE SELF-SERVICE (auth)
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/profile", userCtrl.GetProfile)

		// Kehadiran: selalu untuk diri sendiri, selalu hari ini.
		api.GET("/attendance/today", attendanceCtrl.GetToday)
		api.POST("/attendance/check-in", attendanceCtrl.CheckIn)
		api.POST("/attendance/check-out", attendanceCtrl.CheckOut)
		api.GET("/attendance/history", attendanceCtrl.GetHistory)
		api.GET("/attendance/report", attendanceCtrl.GetMyReport)

		// Cuti
		api.POST("/leaves", leaveCtrl.CreateLeaveRequest)
		api.GET("/leaves", leaveCtrl.GetMyLeaveRequests)
		api.POST("/leaves/:leave_id/cancel", leaveCtrl.CancelLeaveRequest)

		// Notifikasi
		api.GET("/notifications", notificationCtrl.GetMyNotifications)
		api.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkNotificationRead)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.GET("/users", userCtrl.GetAllUsers)

		// EMPLOYEES
		admin.GET("/employees", employeeCtrl.GetAllEmployees)
		admin.POST("/employees", employeeCtrl.CreateEmployee)
		admin.GET("/employees/:employee_id", employeeCtrl.GetEmployeeByID)
		admin.PATCH("/employees/:employee_id", employeeCtrl.UpdateEmployee)
		admin.POST("/employees/:employee_id/archive", employeeCtrl.ArchiveEmployee)
		admin.POST("/employees/:employee_id/restore", employeeCtrl.RestoreEmployee)
		admin.DELETE("/employees/:employee_id", employeeCtrl.DeleteEmployee)

		// CLIENTS + ASSIGNMENTS
		admin.GET("/clients", clientCtrl.GetAllClients)
		admin.POST("/clients", clientCtrl.CreateClient)
		admin.GET("/clients/:client_id", clientCtrl.GetClientByID)
		admin.PATCH("/clients/:client_id", clientCtrl.UpdateClient)
		admin.POST("/clients/:client_id/employees", clientCtrl.AssignEmployee)
		admin.DELETE("/clients/:client_id/employees/:employee_id", clientCtrl.UnassignEmployee)

		// ATTENDANCE (oversight + koreksi manual)
		admin.GET("/attendance", reportCtrl.GetDailyAttendance)
		admin.GET("/attendance/:record_id", attendanceCtrl.AdminGetRecord)
		admin.PATCH("/attendance/:record_id", attendanceCtrl.AdminUpdateRecord)

		// LEAVES
		admin.GET("/leaves", leaveCtrl.GetAllLeaveRequests)
		admin.POST("/leaves/:leave_id/decide", leaveCtrl.DecideLeaveRequest)

		// REPORTS
		admin.GET("/reports/daily", reportCtrl.GetDailySnapshot)
		admin.GET("/reports/period", reportCtrl.GetPeriodReport)
		admin.GET("/reports/export", reportCtrl.ExportData)
		admin.GET("/reports/export-pdf", reportCtrl.ExportPDF)

		// NOTIFICATIONS (pengumuman manual)
		admin.POST("/notifications", notificationCtrl.CreateNotification)
	}

	return r
}
