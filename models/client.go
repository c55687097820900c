package models

import "time"

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientArchived ClientStatus = "archived"
)

type Client struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"type:varchar(255);not null" json:"name"`
	ContactPerson string       `gorm:"type:varchar(255)" json:"contact_person,omitempty"`
	Email         string       `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone         string       `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Status        ClientStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Employees     []Employee   `gorm:"many2many:client_assignments" json:"employees,omitempty"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}
