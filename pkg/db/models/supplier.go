package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a manufacturing vendor quotes are solicited from.
type Supplier struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID    *uuid.UUID `gorm:"column:company_id;type:uuid"`
	Name         string     `gorm:"column:name;not null"`
	ContactEmail *string    `gorm:"column:contact_email"`
	Currency     string     `gorm:"column:currency;not null;default:'USD'"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
