package models

import (
	"time"

	"github.com/google/uuid"
)

// Company backs both customers and supplier organizations.
type Company struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Kind      string    `gorm:"column:kind;not null;default:'customer'"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
