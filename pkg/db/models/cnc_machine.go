package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CNCMachine is a machine reference row with its default hourly rate.
type CNCMachine struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string           `gorm:"column:name;not null;uniqueIndex"`
	HourlyRate *decimal.Decimal `gorm:"column:hourly_rate;type:numeric(12,4)"`
	AxisCount  *int             `gorm:"column:axis_count"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
