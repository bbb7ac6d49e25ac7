package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialAlloy is a raw-material reference row used by quotation forms.
type MaterialAlloy struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string           `gorm:"column:name;not null;uniqueIndex"`
	DensityKgM3 *decimal.Decimal `gorm:"column:density_kg_m3;type:numeric(10,2)"`
	PricePerKg  *decimal.Decimal `gorm:"column:price_per_kg;type:numeric(12,4)"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
