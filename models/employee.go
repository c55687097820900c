package models

import "time"

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeArchived EmployeeStatus = "archived"
)

type EmploymentType string

const (
	EmploymentEmployee EmploymentType = "employee"
	EmploymentStudent  EmploymentType = "student"
)

type Employee struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	StaffCode      string         `gorm:"type:varchar(50);unique;not null" json:"staff_code"`
	EmploymentType EmploymentType `gorm:"type:varchar(20);not null;default:'employee'" json:"employment_type"`
	Status         EmployeeStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

// IsArchived reports whether the employee is soft-deleted.
func (e *Employee) IsArchived() bool {
	return e.Status == EmployeeArchived
}

// ValidEmploymentType checks the closed employment type set.
func ValidEmploymentType(t EmploymentType) bool {
	return t == EmploymentEmployee || t == EmploymentStudent
}
