package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hr-attendance-app/models"
	"github.com/yeremiapane/hr-attendance-app/services"
	"gorm.io/gorm"
)

var ErrNoPermission = errors.New("you do not have permission for this action")

var errNoEmployeeProfile = errors.New("no employee profile linked to this account")

// statusForError memetakan taksonomi error service ke kode HTTP:
// validasi 400, not-found 404, konflik state/konkurensi 409.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNoRecord),
		errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrLeaveNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyCheckedIn),
		errors.Is(err, services.ErrNotCheckedIn),
		errors.Is(err, services.ErrAlreadyCheckedOut),
		errors.Is(err, services.ErrConcurrentWrite),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrLeaveAlreadyClosed):
		return http.StatusConflict
	case errors.Is(err, services.ErrEmployeeArchived),
		errors.Is(err, services.ErrNotRequestOwner):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// currentUserID mengambil user_id yang diset AuthMiddleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// currentEmployeeID me-resolve employee milik user yang sedang login.
// Route self-service selalu memakai ini, tidak pernah employee_id dari
// payload.
func currentEmployeeID(c *gin.Context, db *gorm.DB) (uint, error) {
	userID, ok := currentUserID(c)
	if !ok {
		return 0, errors.New("user id not found in context")
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return 0, err
	}
	if user.EmployeeID == nil {
		return 0, errNoEmployeeProfile
	}
	return *user.EmployeeID, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(models.WorkDateLayout, value)
}
