package models

import (
	"time"

	"github.com/google/uuid"
)

// PartNumber is a distinct manufactured item within an RFQ.
type PartNumber struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RFQID         uuid.UUID `gorm:"column:rfq_id;type:uuid;not null"`
	DrawingNumber string    `gorm:"column:drawing_number;not null"`
	Description   *string   `gorm:"column:description"`
	EAU           *int      `gorm:"column:eau"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
