package models

import "time"

type LeaveType string

const (
	LeaveVacation LeaveType = "vacation"
	LeaveSick     LeaveType = "sick"
	LeavePersonal LeaveType = "personal"
	LeaveUnpaid   LeaveType = "unpaid"
)

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

type LeaveRequest struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	EmployeeID uint        `gorm:"not null;index" json:"employee_id"`
	Employee   Employee    `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"employee"`
	LeaveType  LeaveType   `gorm:"type:varchar(20);not null" json:"leave_type"`
	Status     LeaveStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	StartDate  string      `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate    string      `gorm:"type:varchar(10);not null" json:"end_date"`
	TotalDays  int         `gorm:"not null" json:"total_days"`
	Reason     string      `gorm:"type:varchar(500)" json:"reason,omitempty"`
	ApproverID *uint       `json:"approver_id,omitempty"`
	ApprovedAt *time.Time  `json:"approved_at,omitempty"`
	CreatedAt  time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"not null" json:"updated_at"`
}

// ValidLeaveType checks the closed leave type set.
func ValidLeaveType(t LeaveType) bool {
	switch t {
	case LeaveVacation, LeaveSick, LeavePersonal, LeaveUnpaid:
		return true
	}
	return false
}

// CountInclusiveDays returns the number of calendar days in [start, end],
// both bounds included. Returns 0 when the range is inverted.
func CountInclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
