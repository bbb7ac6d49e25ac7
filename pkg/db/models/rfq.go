package models

import (
	"time"

	"github.com/google/uuid"
)

// RFQ is a customer's request for quotation, grouping part numbers.
type RFQ struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID uuid.UUID  `gorm:"column:company_id;type:uuid;not null"`
	Name      string     `gorm:"column:name;not null"`
	DueDate   *time.Time `gorm:"column:due_date"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
