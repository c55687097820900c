package models

import "time"

// WorkDateLayout is the storage format for AttendanceRecord.WorkDate.
// Dates are kept as plain strings so the (employee_id, work_date) unique
// index behaves the same on MySQL and SQLite.
const WorkDateLayout = "2006-01-02"

type AttendanceRecord struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	EmployeeID      uint       `gorm:"not null;uniqueIndex:idx_employee_work_date" json:"employee_id"`
	Employee        Employee   `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"employee"`
	WorkDate        string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_employee_work_date;index" json:"work_date"`
	CheckInTime     *time.Time `json:"check_in_time,omitempty"`
	CheckInLat      *float64   `json:"check_in_lat,omitempty"`
	CheckInLng      *float64   `json:"check_in_lng,omitempty"`
	CheckInAddress  string     `gorm:"type:varchar(255)" json:"check_in_address,omitempty"`
	CheckOutTime    *time.Time `json:"check_out_time,omitempty"`
	CheckOutLat     *float64   `json:"check_out_lat,omitempty"`
	CheckOutLng     *float64   `json:"check_out_lng,omitempty"`
	CheckOutAddress string     `gorm:"type:varchar(255)" json:"check_out_address,omitempty"`
	Notes           string     `gorm:"type:varchar(500)" json:"notes,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}

// HasCheckedIn reports whether a check-in has been recorded. A row can
// exist without one (pre-seeded for reporting); such a row still counts
// as absent.
func (r *AttendanceRecord) HasCheckedIn() bool {
	return r.CheckInTime != nil
}

// HasCheckedOut reports whether the day is complete.
func (r *AttendanceRecord) HasCheckedOut() bool {
	return r.CheckOutTime != nil
}
