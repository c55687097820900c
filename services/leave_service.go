package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/hr-attendance-app/models"
	"github.com/yeremiapane/hr-attendance-app/utils"
	"gorm.io/gorm"
)

var (
	ErrLeaveNotFound      = errors.New("leave request not found")
	ErrInvalidTransition  = errors.New("invalid leave status transition")
	ErrNotRequestOwner    = errors.New("leave request belongs to another employee")
	ErrLeaveAlreadyClosed = errors.New("leave request is already closed")
)

type LeaveService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewLeaveService(db *gorm.DB) *LeaveService {
	return &LeaveService{DB: db, Now: time.Now}
}

// Create mengajukan cuti baru dengan status pending dan jumlah hari
// inklusif yang dihitung dari rentang tanggal.
func (s *LeaveService) Create(employeeID uint, leaveType models.LeaveType, start, end time.Time, reason string) (*models.LeaveRequest, error) {
	if !models.ValidLeaveType(leaveType) {
		return nil, fmt.Errorf("%w: unknown leave type %q", ErrValidation, leaveType)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date must not be before start date", ErrValidation)
	}
	if len(reason) > 500 {
		return nil, fmt.Errorf("%w: reason must not exceed 500 characters", ErrValidation)
	}
	if _, err := s.findEmployee(employeeID); err != nil {
		return nil, err
	}

	request := models.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		Status:     models.LeavePending,
		StartDate:  start.Format(models.WorkDateLayout),
		EndDate:    end.Format(models.WorkDateLayout),
		TotalDays:  models.CountInclusiveDays(start, end),
		Reason:     reason,
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// Cancel membatalkan pengajuan milik karyawan sendiri. Hanya pending
// yang bisa dibatalkan lewat jalur self-service.
func (s *LeaveService) Cancel(employeeID, requestID uint) (*models.LeaveRequest, error) {
	request, err := s.find(requestID)
	if err != nil {
		return nil, err
	}
	if request.EmployeeID != employeeID {
		return nil, ErrNotRequestOwner
	}
	if request.Status != models.LeavePending {
		return nil, ErrLeaveAlreadyClosed
	}

	request.Status = models.LeaveCancelled
	if err := s.DB.Save(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// Decide memutus pengajuan oleh admin. Transisi yang sah:
// pending -> approved|rejected|cancelled, approved -> rejected|cancelled.
// Persetujuan men-stamp approver + waktu; transisi keluar dari approved
// menghapus stamp itu.
func (s *LeaveService) Decide(requestID, approverUserID uint, next models.LeaveStatus) (*models.LeaveRequest, error) {
	request, err := s.find(requestID)
	if err != nil {
		return nil, err
	}

	if !validLeaveTransition(request.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, request.Status, next)
	}

	wasApproved := request.Status == models.LeaveApproved
	request.Status = next

	if next == models.LeaveApproved {
		now := s.Now()
		request.ApproverID = &approverUserID
		request.ApprovedAt = &now
	} else if wasApproved {
		request.ApproverID = nil
		request.ApprovedAt = nil
	}

	if err := s.DB.Save(request).Error; err != nil {
		return nil, err
	}

	s.notifyEmployee(request)
	return request, nil
}

// ListForEmployee mengembalikan pengajuan milik satu karyawan, terbaru dulu.
func (s *LeaveService) ListForEmployee(employeeID uint) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	err := s.DB.Where("employee_id = ?", employeeID).
		Order("created_at desc").
		Find(&requests).Error
	return requests, err
}

// ListAll mengembalikan semua pengajuan, opsional difilter status.
func (s *LeaveService) ListAll(status models.LeaveStatus) ([]models.LeaveRequest, error) {
	query := s.DB.Preload("Employee").Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var requests []models.LeaveRequest
	err := query.Find(&requests).Error
	return requests, err
}

func (s *LeaveService) find(requestID uint) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	if err := s.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (s *LeaveService) findEmployee(employeeID uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.DB.First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if employee.IsArchived() {
		return nil, ErrEmployeeArchived
	}
	return &employee, nil
}

// notifyEmployee mengirim notifikasi keputusan ke akun user milik
// karyawan, bila ada. Gagal kirim hanya dicatat, tidak membatalkan
// keputusan.
func (s *LeaveService) notifyEmployee(request *models.LeaveRequest) {
	var user models.User
	if err := s.DB.Where("employee_id = ?", request.EmployeeID).First(&user).Error; err != nil {
		return
	}

	title := "Leave request update"
	notif := models.Notification{
		UserID:  &user.ID,
		Title:   &title,
		Message: fmt.Sprintf("Your %s leave request (%s to %s) is now %s", request.LeaveType, request.StartDate, request.EndDate, request.Status),
	}
	if err := s.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create leave notification: %v", err)
	}
}

func validLeaveTransition(from, to models.LeaveStatus) bool {
	switch from {
	case models.LeavePending:
		return to == models.LeaveApproved || to == models.LeaveRejected || to == models.LeaveCancelled
	case models.LeaveApproved:
		return to == models.LeaveRejected || to == models.LeaveCancelled
	}
	return false
}
